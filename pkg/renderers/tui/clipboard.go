package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard reads the text a user would paste.
type Clipboard interface {
	ReadAll() (string, error)
}

// SystemClipboard reads the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return text, nil
}

// StaticClipboard always yields the same text; handy for scripted sessions.
type StaticClipboard string

func (c StaticClipboard) ReadAll() (string, error) {
	return string(c), nil
}
