// Package keymap translates human-readable key names and literal characters
// to the keysym codes the remote input protocol expects.
package keymap

import "fmt"

// Keymap is a named, immutable set of lookup tables for one keyboard layout
// or compatibility mode. Multiple keymaps may coexist; none is ever mutated
// after construction.
type Keymap struct {
	// Name identifies the keymap (e.g. "US", "US-mac", "direct").
	Name string

	// AllowFallback enables synthesizing a keysym from a character's code
	// point when the character appears in no table.
	AllowFallback bool

	// Modifiers maps modifier key names to keysyms.
	Modifiers map[string]uint32

	// Control maps control and navigation key names to keysyms.
	Control map[string]uint32

	// Printable maps single printable characters (as one-rune names) to
	// their keysym.
	Printable map[string]uint32

	// Combined maps characters that need a multi-key sequence (typically
	// Shift plus a base key) to the ordered keysym sequence producing them.
	Combined map[rune][]uint32
}

// KeyRef identifies a key either by symbolic name or by a raw keysym code
// that bypasses translation entirely.
type KeyRef struct {
	name string
	code uint32
	raw  bool
}

// Name returns a KeyRef resolved by table lookup (case-insensitive).
func Name(name string) KeyRef {
	return KeyRef{name: name}
}

// Code returns a KeyRef carrying a raw keysym accepted verbatim.
func Code(code uint32) KeyRef {
	return KeyRef{code: code, raw: true}
}

// String returns the key name, or the hex form for raw codes.
func (r KeyRef) String() string {
	if r.raw {
		return fmt.Sprintf("0x%x", r.code)
	}
	return r.name
}
