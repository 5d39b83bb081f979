package keymap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Table is the lookup structure derived from one Keymap: a case-insensitive
// name map merged from the modifier, control and printable tables, and a
// case-sensitive character map merged from the printable and combined
// tables. Built once, read-only thereafter.
type Table struct {
	name          string
	allowFallback bool
	names         map[string]uint32
	chars         map[rune][]uint32
}

// New builds the derived lookup table for a keymap.
func New(km Keymap) *Table {
	t := &Table{
		name:          km.Name,
		allowFallback: km.AllowFallback,
		names:         make(map[string]uint32, len(km.Modifiers)+len(km.Control)+len(km.Printable)),
		chars:         make(map[rune][]uint32, len(km.Printable)+len(km.Combined)+3),
	}
	for name, code := range km.Modifiers {
		t.names[strings.ToLower(name)] = code
	}
	for name, code := range km.Control {
		t.names[strings.ToLower(name)] = code
	}
	for name, code := range km.Printable {
		t.names[strings.ToLower(name)] = code
	}

	// Printable entries shadow combined ones for the same character.
	for r, seq := range km.Combined {
		t.chars[r] = seq
	}
	for name, code := range km.Printable {
		if utf8.RuneCountInString(name) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(name)
		t.chars[r] = []uint32{code}
	}

	// Newline, space and tab always resolve through the control table,
	// whatever the printable tables say.
	t.chars['\n'] = []uint32{km.Control["Enter"]}
	t.chars[' '] = []uint32{km.Control["Space"]}
	t.chars['\t'] = []uint32{km.Control["Tab"]}
	return t
}

// Name returns the keymap name the table was built from.
func (t *Table) Name() string {
	return t.name
}

// Keysym resolves a key name to its keysym. Names are matched
// case-insensitively; a "0x" prefix parses the rest as a hexadecimal keysym
// returned verbatim, bypassing the tables.
func (t *Table) Keysym(name string) (uint32, error) {
	if strings.HasPrefix(name, "0x") {
		v, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w %q in keymap %s: bad hex code", ErrUnknownKey, name, t.name)
		}
		return uint32(v), nil
	}
	if code, ok := t.names[strings.ToLower(name)]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w %q in keymap %s", ErrUnknownKey, name, t.name)
}

// Char resolves a single character to the ordered keysym sequence that
// produces it: one code for plain printable characters, several for
// combined sequences such as Shift plus a base key. Characters absent from
// the tables use the code-point fallback when the keymap allows it.
func (t *Table) Char(r rune) ([]uint32, error) {
	if seq, ok := t.chars[r]; ok {
		return seq, nil
	}
	if !t.allowFallback {
		return nil, fmt.Errorf("%w %q in keymap %s", ErrUnknownKey, string(r), t.name)
	}
	code, err := unicodeKeysym(r)
	if err != nil {
		return nil, err
	}
	return []uint32{code}, nil
}

// Resolve translates a KeyRef: raw codes pass through unchanged, names go
// through Keysym.
func (t *Table) Resolve(ref KeyRef) (uint32, error) {
	if ref.raw {
		return ref.code, nil
	}
	return t.Keysym(ref.name)
}

// unicodeKeysym encodes a code point as a keysym: control characters map
// into the 0xFF00 block, Latin-1 maps to itself, and everything else uses
// the 0x01000000-offset unicode range.
func unicodeKeysym(r rune) (uint32, error) {
	switch {
	case r < 0:
		return 0, fmt.Errorf("%w: %U", ErrKeysymRange, r)
	case r <= 0x1F || (r >= 0x7F && r <= 0x9F):
		return 0xFF00 | uint32(r), nil
	case r <= 0xFF:
		return uint32(r), nil
	case r <= 0x10FFFF:
		return 0x01000000 | uint32(r), nil
	default:
		return 0, fmt.Errorf("%w: %U", ErrKeysymRange, r)
	}
}
