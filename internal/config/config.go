// Package config loads the card form configuration from defaults, an
// optional YAML file and CARDFORM_ prefixed environment variables.
package config

import (
	"github.com/goliatone/go-cardform/pkg/form"
	"github.com/goliatone/go-cardform/pkg/record"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverJSONFile = "jsonfile"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "CARDFORM_"

// DefaultStoreKey is the collection name used by every sink.
const DefaultStoreKey = "cardLoggerDB"

type Config struct {
	Log     LogConfig     `koanf:"log" json:"log" yaml:"log"`
	Store   StoreConfig   `koanf:"store" json:"store" yaml:"store"`
	Records RecordsConfig `koanf:"records" json:"records" yaml:"records"`
	Server  ServerConfig  `koanf:"server" json:"server" yaml:"server"`
	Form    FormConfig    `koanf:"form" json:"form" yaml:"form"`
}

type LogConfig struct {
	Level string `koanf:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json" json:"json" yaml:"json"`
}

type StoreConfig struct {
	Driver    string `koanf:"driver" json:"driver" yaml:"driver" validate:"oneof=memory jsonfile sqlite redis"`
	Path      string `koanf:"path" json:"path" yaml:"path"`
	Key       string `koanf:"key" json:"key" yaml:"key" validate:"required"`
	RedisAddr string `koanf:"redis_addr" json:"redis_addr" yaml:"redis_addr"`
}

type RecordsConfig struct {
	IDStrategy string `koanf:"id_strategy" json:"id_strategy" yaml:"id_strategy" validate:"oneof=sequence uuid"`
	// IDPrefix defaults to "User" for sequence ids and to none for uuids.
	IDPrefix string `koanf:"id_prefix" json:"id_prefix" yaml:"id_prefix"`
}

type ServerConfig struct {
	Addr     string `koanf:"addr" json:"addr" yaml:"addr" validate:"required"`
	BasePath string `koanf:"base_path" json:"base_path" yaml:"base_path"`
	// RevealRecords lists stored records unredacted over HTTP.
	RevealRecords bool `koanf:"reveal_records" json:"reveal_records" yaml:"reveal_records"`
}

type FormConfig struct {
	NextURL string `koanf:"next_url" json:"next_url" yaml:"next_url" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			Key:    DefaultStoreKey,
		},
		Records: RecordsConfig{
			IDStrategy: string(record.IDStrategySequence),
		},
		Server: ServerConfig{
			Addr:     ":8080",
			BasePath: "/api/card",
		},
		Form: FormConfig{
			NextURL: form.DefaultNextURL,
		},
	}
}
