package keymap

import "strings"

// Built-in keymaps. Additional layouts are data, not code: construct a
// Keymap value and build a Table from it.
var (
	// US is the default layout. Printable ASCII resolves through its
	// tables; anything else falls back to the code-point encoding.
	US = Keymap{
		Name:          "US",
		AllowFallback: true,
		Modifiers:     usModifiers(),
		Control:       usControl(),
		Printable:     usPrintable(),
		Combined:      usCombined(),
	}

	// USMac is the US layout with Apple modifier names.
	USMac = Keymap{
		Name:          "US-mac",
		AllowFallback: true,
		Modifiers:     macModifiers(),
		Control:       usControl(),
		Printable:     usPrintable(),
		Combined:      usCombined(),
	}

	// Direct carries no printable tables: every character resolves through
	// the code-point fallback. Key names still resolve for modifiers and
	// control keys.
	Direct = Keymap{
		Name:          "direct",
		AllowFallback: true,
		Modifiers:     usModifiers(),
		Control:       usControl(),
		Printable:     map[string]uint32{},
		Combined:      map[rune][]uint32{},
	}
)

// Lookup returns the built-in keymap with the given name, case-insensitively.
func Lookup(name string) (Keymap, bool) {
	for _, km := range []Keymap{US, USMac, Direct} {
		if strings.EqualFold(km.Name, name) {
			return km, true
		}
	}
	return Keymap{}, false
}

func usModifiers() map[string]uint32 {
	return map[string]uint32{
		"Shift":    xkShiftL,
		"Ctrl":     xkControlL,
		"Control":  xkControlL,
		"Alt":      xkAltL,
		"Meta":     xkMetaL,
		"Super":    xkSuperL,
		"Win":      xkSuperL,
		"CapsLock": xkCapsLock,
	}
}

func macModifiers() map[string]uint32 {
	m := usModifiers()
	m["Cmd"] = xkMetaL
	m["Command"] = xkMetaL
	m["Option"] = xkAltL
	return m
}

func usControl() map[string]uint32 {
	return map[string]uint32{
		"Enter":       xkReturn,
		"Return":      xkReturn,
		"Esc":         xkEscape,
		"Escape":      xkEscape,
		"Backspace":   xkBackSpace,
		"Tab":         xkTab,
		"Space":       xkSpace,
		"Up":          xkUp,
		"Down":        xkDown,
		"Left":        xkLeft,
		"Right":       xkRight,
		"Home":        xkHome,
		"End":         xkEnd,
		"PageUp":      xkPageUp,
		"PageDown":    xkPageDown,
		"Insert":      xkInsert,
		"Delete":      xkDelete,
		"PrintScreen": xkPrint,
		"Pause":       xkPause,
		"ScrollLock":  xkScrollLock,
		"NumLock":     xkNumLock,
		"Menu":        xkMenu,
		"F1":          xkF1,
		"F2":          xkF2,
		"F3":          xkF3,
		"F4":          xkF4,
		"F5":          xkF5,
		"F6":          xkF6,
		"F7":          xkF7,
		"F8":          xkF8,
		"F9":          xkF9,
		"F10":         xkF10,
		"F11":         xkF11,
		"F12":         xkF12,
	}
}

// usPrintable maps the unshifted printable ASCII characters. Keysyms for
// printable Latin-1 equal the character code.
func usPrintable() map[string]uint32 {
	m := make(map[string]uint32, 48)
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = uint32(c)
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = uint32(c)
	}
	for _, c := range "`-=[]\\;',./" {
		m[string(c)] = uint32(c)
	}
	return m
}

// usCombined maps the shifted printable ASCII characters to Shift plus the
// unshifted base keysym they live on.
func usCombined() map[rune][]uint32 {
	m := make(map[rune][]uint32, 48)
	for c := 'A'; c <= 'Z'; c++ {
		m[c] = []uint32{xkShiftL, uint32(c + 'a' - 'A')}
	}
	shifted := map[rune]rune{
		'~': '`', '!': '1', '@': '2', '#': '3', '$': '4',
		'%': '5', '^': '6', '&': '7', '*': '8', '(': '9',
		')': '0', '_': '-', '+': '=', '{': '[', '}': ']',
		'|': '\\', ':': ';', '"': '\'', '<': ',', '>': '.',
		'?': '/',
	}
	for c, base := range shifted {
		m[c] = []uint32{xkShiftL, uint32(base)}
	}
	return m
}
