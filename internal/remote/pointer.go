package remote

import "fmt"

// Button is one logical pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// buttonNames are the case-sensitive names the command language accepts.
var buttonNames = map[string]Button{
	"Left":       ButtonLeft,
	"Middle":     ButtonMiddle,
	"Right":      ButtonRight,
	"ScrollUp":   ButtonScrollUp,
	"ScrollDown": ButtonScrollDown,
}

// ParseButton resolves a case-sensitive button name.
func ParseButton(name string) (Button, error) {
	b, ok := buttonNames[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownButton, name)
	}
	return b, nil
}

func (b Button) String() string {
	for name, v := range buttonNames {
		if v == b {
			return name
		}
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// PointerState is the full snapshot of cursor position and button states.
// The remote side expects full-state sync: the whole record is transmitted
// on every pointer change, never a delta.
type PointerState struct {
	X, Y       int
	Left       bool
	Middle     bool
	Right      bool
	ScrollUp   bool
	ScrollDown bool
}

// Set updates the state of one button.
func (p *PointerState) Set(b Button, pressed bool) {
	switch b {
	case ButtonLeft:
		p.Left = pressed
	case ButtonMiddle:
		p.Middle = pressed
	case ButtonRight:
		p.Right = pressed
	case ButtonScrollUp:
		p.ScrollUp = pressed
	case ButtonScrollDown:
		p.ScrollDown = pressed
	}
}

// Mask packs the button states into the wire button mask.
func (p PointerState) Mask() uint8 {
	var mask uint8
	if p.Left {
		mask |= 1 << 0
	}
	if p.Middle {
		mask |= 1 << 1
	}
	if p.Right {
		mask |= 1 << 2
	}
	if p.ScrollUp {
		mask |= 1 << 3
	}
	if p.ScrollDown {
		mask |= 1 << 4
	}
	return mask
}
