// Package automation sequences high-level input intents into ordered,
// delay-separated low-level events on a remote transport.
package automation

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"vncpilot/internal/keymap"
	"vncpilot/internal/remote"
)

// Delays holds the timing knobs for event sequencing.
type Delays struct {
	// Toggle is held between a key or button press and its release.
	Toggle time.Duration

	// DoubleClick separates repeated clicks within one logical
	// multi-click.
	DoubleClick time.Duration

	// BetweenKeys separates characters while typing.
	BetweenKeys time.Duration
}

// DefaultDelays returns conservative timings that most remote desktops
// register reliably.
func DefaultDelays() Delays {
	return Delays{
		Toggle:      100 * time.Millisecond,
		DoubleClick: 250 * time.Millisecond,
		BetweenKeys: 20 * time.Millisecond,
	}
}

// Executor turns high-level input operations into ordered transport
// events. It owns the authoritative pointer state for its connection and
// refuses every operation while the transport is not connected.
//
// Operations run to completion on the caller's stack; delays are plain
// suspensions, so events of one operation never interleave with another's.
type Executor struct {
	conn    remote.Conn
	keys    *keymap.Table
	delays  Delays
	pointer remote.PointerState

	// sleep is swapped out by tests to record delays instead of waiting.
	sleep func(time.Duration)
}

// New creates an executor for a connected transport.
func New(conn remote.Conn, keys *keymap.Table, delays Delays) *Executor {
	return &Executor{
		conn:   conn,
		keys:   keys,
		delays: delays,
		sleep:  time.Sleep,
	}
}

// ready is the connection guard run at the top of every operation.
func (e *Executor) ready() error {
	if s := e.conn.State(); s != remote.Connected {
		return fmt.Errorf("%w (transport %s)", ErrNotConnected, s)
	}
	return nil
}

// resolve translates key references up front so a bad name fails before
// any event is emitted.
func (e *Executor) resolve(refs []keymap.KeyRef) ([]uint32, error) {
	codes := make([]uint32, len(refs))
	for i, ref := range refs {
		code, err := e.keys.Resolve(ref)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// KeysDown presses the referenced keys in order.
func (e *Executor) KeysDown(refs []keymap.KeyRef) error {
	if err := e.ready(); err != nil {
		return err
	}
	codes, err := e.resolve(refs)
	if err != nil {
		return err
	}
	return e.sendKeys(true, codes)
}

// KeysUp releases the referenced keys in order.
func (e *Executor) KeysUp(refs []keymap.KeyRef) error {
	if err := e.ready(); err != nil {
		return err
	}
	codes, err := e.resolve(refs)
	if err != nil {
		return err
	}
	return e.sendKeys(false, codes)
}

// KeysPress presses the referenced keys, holds them for the toggle delay,
// and releases them in reverse order.
func (e *Executor) KeysPress(refs []keymap.KeyRef) error {
	if err := e.ready(); err != nil {
		return err
	}
	codes, err := e.resolve(refs)
	if err != nil {
		return err
	}
	if err := e.sendKeys(true, codes); err != nil {
		return err
	}
	e.sleep(e.delays.Toggle)
	return e.sendKeys(false, reversed(codes))
}

// Type sends the text one character at a time: each character's keysym
// sequence is pressed, held for the toggle delay and released in reverse,
// with the between-keys delay separating characters.
func (e *Executor) Type(text string) error {
	if err := e.ready(); err != nil {
		return err
	}
	runes := []rune(text)
	for i, r := range runes {
		seq, err := e.keys.Char(r)
		if err != nil {
			return err
		}
		if err := e.sendKeys(true, seq); err != nil {
			return err
		}
		e.sleep(e.delays.Toggle)
		if err := e.sendKeys(false, reversed(seq)); err != nil {
			return err
		}
		if i < len(runes)-1 {
			e.sleep(e.delays.BetweenKeys)
		}
	}
	return nil
}

// MouseButtonDown presses a button and transmits the full pointer state.
func (e *Executor) MouseButtonDown(b remote.Button) error {
	return e.setButton(b, true)
}

// MouseButtonUp releases a button and transmits the full pointer state.
func (e *Executor) MouseButtonUp(b remote.Button) error {
	return e.setButton(b, false)
}

func (e *Executor) setButton(b remote.Button, pressed bool) error {
	if err := e.ready(); err != nil {
		return err
	}
	e.pointer.Set(b, pressed)
	return e.conn.SendPointerState(e.pointer)
}

// MouseClick clicks a button count times with the given modifier keys
// held. Clicks within one call are separated by the double-click delay.
func (e *Executor) MouseClick(b remote.Button, count int, modifiers []keymap.KeyRef) error {
	if err := e.ready(); err != nil {
		return err
	}
	if count < 1 {
		count = 1
	}
	if len(modifiers) > 0 {
		if err := e.KeysDown(modifiers); err != nil {
			return err
		}
	}
	for i := 0; i < count; i++ {
		if err := e.setButton(b, true); err != nil {
			return err
		}
		e.sleep(e.delays.Toggle)
		if err := e.setButton(b, false); err != nil {
			return err
		}
		if i < count-1 {
			e.sleep(e.delays.DoubleClick)
		}
	}
	if len(modifiers) > 0 {
		return e.KeysUp(modifiers)
	}
	return nil
}

// MouseDoubleClick clicks a button twice.
func (e *Executor) MouseDoubleClick(b remote.Button) error {
	return e.MouseClick(b, 2, nil)
}

// Scroll scrolls by the given number of lines, up for positive and down
// for negative. Both the press duration and the gap between repeats use
// the toggle delay; this intentionally differs from MouseClick's
// double-click gap.
func (e *Executor) Scroll(lines int) error {
	if err := e.ready(); err != nil {
		return err
	}
	b, n := remote.ButtonScrollUp, lines
	if lines < 0 {
		b, n = remote.ButtonScrollDown, -lines
	}
	for i := 0; i < n; i++ {
		if err := e.setButton(b, true); err != nil {
			return err
		}
		e.sleep(e.delays.Toggle)
		if err := e.setButton(b, false); err != nil {
			return err
		}
		if i < n-1 {
			e.sleep(e.delays.Toggle)
		}
	}
	return nil
}

// MouseMove moves the pointer to absolute coordinates and transmits the
// full pointer state. Coordinates outside the 16-bit range of the pointer
// wire format fail before any state change.
func (e *Executor) MouseMove(x, y int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if x < 0 || y < 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrNegativeCoordinate, x, y)
	}
	if x > 0xFFFF || y > 0xFFFF {
		return fmt.Errorf("%w: (%d, %d)", ErrCoordinateRange, x, y)
	}
	e.pointer.X, e.pointer.Y = x, y
	return e.conn.SendPointerState(e.pointer)
}

// CaptureScreen returns the current remote frame encoded as PNG.
func (e *Executor) CaptureScreen() ([]byte, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	frame := e.conn.Frame()
	if frame == nil || frame.Bounds().Dx() == 0 || frame.Bounds().Dy() == 0 {
		return nil, ErrFramebufferNotReady
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	return buf.Bytes(), nil
}

// Pause suspends for the given number of seconds without touching the
// transport.
func (e *Executor) Pause(seconds float64) error {
	if err := e.ready(); err != nil {
		return err
	}
	if seconds > 0 {
		e.sleep(time.Duration(seconds * float64(time.Second)))
	}
	return nil
}

// Disconnect tears down the transport. Every later operation fails the
// connection guard.
func (e *Executor) Disconnect() error {
	if err := e.ready(); err != nil {
		return err
	}
	return e.conn.Close()
}

func (e *Executor) sendKeys(pressed bool, codes []uint32) error {
	for _, code := range codes {
		if err := e.conn.SendKeyEvent(pressed, code); err != nil {
			return err
		}
	}
	return nil
}

func reversed(codes []uint32) []uint32 {
	out := make([]uint32, len(codes))
	for i, c := range codes {
		out[len(codes)-1-i] = c
	}
	return out
}
