package keymap

import "errors"

var (
	// ErrUnknownKey is returned when a key name or character resolves
	// through no table and no fallback applies.
	ErrUnknownKey = errors.New("unknown key")

	// ErrKeysymRange is returned when a code point lies outside the
	// encodable keysym space.
	ErrKeysymRange = errors.New("code point outside keysym range")
)
