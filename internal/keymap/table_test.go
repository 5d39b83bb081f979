package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysymCaseInsensitive(t *testing.T) {
	table := New(US)
	for _, name := range []string{"CTRL", "ctrl", "Ctrl", "cTRl"} {
		code, err := table.Keysym(name)
		require.NoError(t, err, name)
		assert.Equal(t, xkControlL, code, name)
	}
}

func TestKeysymHexPassthrough(t *testing.T) {
	// Hex references bypass the tables entirely, even on an empty keymap.
	table := New(Keymap{Name: "empty"})
	code, err := table.Keysym("0x41")
	require.NoError(t, err)
	assert.Equal(t, uint32(65), code)

	code, err = table.Keysym("0xffe1")
	require.NoError(t, err)
	assert.Equal(t, xkShiftL, code)

	_, err = table.Keysym("0xzz")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestKeysymUnknown(t *testing.T) {
	table := New(US)
	_, err := table.Keysym("Frobnicate")
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "Frobnicate")
	assert.Contains(t, err.Error(), "US")
}

func TestCharPrintableAndCombined(t *testing.T) {
	table := New(US)

	seq, err := table.Char('a')
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x61}, seq)

	seq, err = table.Char('A')
	require.NoError(t, err)
	assert.Equal(t, []uint32{xkShiftL, 0x61}, seq)

	seq, err = table.Char('!')
	require.NoError(t, err)
	assert.Equal(t, []uint32{xkShiftL, 0x31}, seq)
}

func TestCharFixedOverrides(t *testing.T) {
	table := New(US)

	seq, err := table.Char('\n')
	require.NoError(t, err)
	assert.Equal(t, []uint32{xkReturn}, seq)

	seq, err = table.Char(' ')
	require.NoError(t, err)
	assert.Equal(t, []uint32{xkSpace}, seq)

	seq, err = table.Char('\t')
	require.NoError(t, err)
	assert.Equal(t, []uint32{xkTab}, seq)
}

func TestCharFallbackEncoding(t *testing.T) {
	table := New(Direct)

	// Control characters map into the 0xFF00 block.
	seq, err := table.Char('\x01')
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xFF01}, seq)

	// Latin-1 maps to its own code point.
	seq, err = table.Char('é')
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x00E9}, seq)

	// Everything above uses the unicode offset.
	seq, err = table.Char('€')
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x010020AC}, seq)
}

func TestCharFallbackDisallowed(t *testing.T) {
	strict := Keymap{
		Name:      "strict",
		Printable: map[string]uint32{"a": 0x61},
		Control:   map[string]uint32{"Enter": xkReturn, "Space": xkSpace, "Tab": xkTab},
	}
	table := New(strict)

	seq, err := table.Char('a')
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x61}, seq)

	_, err = table.Char('é')
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "strict")
}

func TestPrintableShadowsCombined(t *testing.T) {
	km := Keymap{
		Name:      "overlap",
		Printable: map[string]uint32{"x": 0x78},
		Combined:  map[rune][]uint32{'x': {xkShiftL, 0x78}},
	}
	seq, err := New(km).Char('x')
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x78}, seq)
}

func TestResolve(t *testing.T) {
	table := New(US)

	code, err := table.Resolve(Code(1234))
	require.NoError(t, err)
	assert.Equal(t, uint32(1234), code)

	code, err = table.Resolve(Name("Shift"))
	require.NoError(t, err)
	assert.Equal(t, xkShiftL, code)

	_, err = table.Resolve(Name("NoSuchKey"))
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestLookupKeymaps(t *testing.T) {
	km, ok := Lookup("us-mac")
	require.True(t, ok)
	assert.Equal(t, "US-mac", km.Name)

	cmd, ok := km.Modifiers["Cmd"]
	require.True(t, ok)
	assert.Equal(t, xkMetaL, cmd)

	_, ok = Lookup("dvorak")
	assert.False(t, ok)
}
