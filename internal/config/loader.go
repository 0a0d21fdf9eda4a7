package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// ErrFileNotFound is returned when an explicit config path does not exist.
var ErrFileNotFound = errors.New("config: file not found")

// Option tweaks a Load call.
type Option func(*loadOptions)

type loadOptions struct {
	environ []string
}

// WithEnviron replaces os.Environ() as the environment source.
func WithEnviron(environ []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty)
// and CARDFORM_* environment variables, in that order, and validates the
// result.
func Load(ctx context.Context, path string, options ...Option) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := loadOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(yamlFile(path), nil); err != nil {
			return nil, err
		}
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}
	if opts.environ != nil {
		envOpt.EnvironFunc = func() []string { return opts.environ }
	}
	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// transformEnv maps CARDFORM_STORE_REDIS_ADDR to store.redis_addr: the
// first segment is the section, the rest is the field name.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], value
	}
	return parts[0] + "." + strings.Join(parts[1:], "_"), value
}

// Validate checks field constraints and the store driver requirements.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: configuration is nil")
	}
	v := validator.New()
	v.RegisterStructValidation(validateStore, StoreConfig{})
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

func validateStore(sl validator.StructLevel) {
	store := sl.Current().Interface().(StoreConfig)
	switch store.Driver {
	case DriverJSONFile, DriverSQLite:
		if strings.TrimSpace(store.Path) == "" {
			sl.ReportError(store.Path, "Path", "path", "required_for_driver", store.Driver)
		}
	case DriverRedis:
		if strings.TrimSpace(store.RedisAddr) == "" {
			sl.ReportError(store.RedisAddr, "RedisAddr", "redis_addr", "required_for_driver", store.Driver)
		}
	}
}

// fileProvider is a koanf.Provider decoding a YAML file with yaml.v3.
type fileProvider struct {
	path string
}

func yamlFile(path string) *fileProvider {
	return &fileProvider{path: path}
}

func (f *fileProvider) ReadBytes() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.path)
		}
		return nil, fmt.Errorf("config: read %s: %w", f.path, err)
	}
	return data, nil
}

func (f *fileProvider) Read() (map[string]any, error) {
	data, err := f.ReadBytes()
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", f.path, err)
	}
	return out, nil
}
