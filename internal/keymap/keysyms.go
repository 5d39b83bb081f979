package keymap

// Keysym constants from X11/keysymdef.h, the code space the remote input
// protocol uses.
const (
	xkBackSpace  uint32 = 0xFF08
	xkTab        uint32 = 0xFF09
	xkReturn     uint32 = 0xFF0D
	xkPause      uint32 = 0xFF13
	xkScrollLock uint32 = 0xFF14
	xkEscape     uint32 = 0xFF1B
	xkHome       uint32 = 0xFF50
	xkLeft       uint32 = 0xFF51
	xkUp         uint32 = 0xFF52
	xkRight      uint32 = 0xFF53
	xkDown       uint32 = 0xFF54
	xkPageUp     uint32 = 0xFF55
	xkPageDown   uint32 = 0xFF56
	xkEnd        uint32 = 0xFF57
	xkPrint      uint32 = 0xFF61
	xkInsert     uint32 = 0xFF63
	xkMenu       uint32 = 0xFF67
	xkNumLock    uint32 = 0xFF7F
	xkF1         uint32 = 0xFFBE
	xkF2         uint32 = 0xFFBF
	xkF3         uint32 = 0xFFC0
	xkF4         uint32 = 0xFFC1
	xkF5         uint32 = 0xFFC2
	xkF6         uint32 = 0xFFC3
	xkF7         uint32 = 0xFFC4
	xkF8         uint32 = 0xFFC5
	xkF9         uint32 = 0xFFC6
	xkF10        uint32 = 0xFFC7
	xkF11        uint32 = 0xFFC8
	xkF12        uint32 = 0xFFC9
	xkShiftL     uint32 = 0xFFE1
	xkControlL   uint32 = 0xFFE3
	xkCapsLock   uint32 = 0xFFE5
	xkMetaL      uint32 = 0xFFE7
	xkAltL       uint32 = 0xFFE9
	xkSuperL     uint32 = 0xFFEB
	xkDelete     uint32 = 0xFFFF
	xkSpace      uint32 = 0x0020
)
