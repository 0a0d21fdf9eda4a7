package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C or Cancel).
	ErrAborted = errors.New("tui: aborted")
	// ErrClipboardUnavailable is reported when paste is requested but no
	// clipboard is configured or readable.
	ErrClipboardUnavailable = errors.New("tui: clipboard unavailable")
)
