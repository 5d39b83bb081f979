package automation

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vncpilot/internal/keymap"
	"vncpilot/internal/remote"
)

// fakeConn records every transport interaction, interleaved with the
// executor's sleeps, so tests can assert exact event ordering and timing.
type fakeConn struct {
	state  remote.ConnectionState
	events []string
	frame  image.Image
}

func (f *fakeConn) State() remote.ConnectionState { return f.state }

func (f *fakeConn) SendKeyEvent(pressed bool, keysym uint32) error {
	dir := "up"
	if pressed {
		dir = "down"
	}
	f.events = append(f.events, fmt.Sprintf("key %s 0x%x", dir, keysym))
	return nil
}

func (f *fakeConn) SendPointerState(ps remote.PointerState) error {
	f.events = append(f.events, fmt.Sprintf("pointer %d,%d mask=0x%02x", ps.X, ps.Y, ps.Mask()))
	return nil
}

func (f *fakeConn) Frame() image.Image { return f.frame }

func (f *fakeConn) Close() error {
	f.state = remote.Disconnected
	return nil
}

func newTestExecutor(delays Delays) (*Executor, *fakeConn) {
	conn := &fakeConn{state: remote.Connected}
	e := New(conn, keymap.New(keymap.US), delays)
	e.sleep = func(d time.Duration) {
		conn.events = append(conn.events, fmt.Sprintf("sleep %s", d))
	}
	return e, conn
}

func refs(names ...string) []keymap.KeyRef {
	out := make([]keymap.KeyRef, len(names))
	for i, n := range names {
		out[i] = keymap.Name(n)
	}
	return out
}

func TestKeysPressReleasesInReverse(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond})
	require.NoError(t, e.KeysPress(refs("Ctrl", "c")))
	assert.Equal(t, []string{
		"key down 0xffe3",
		"key down 0x63",
		"sleep 12ms",
		"key up 0x63",
		"key up 0xffe3",
	}, conn.events)
}

func TestKeysPressUnknownKeyEmitsNothing(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	err := e.KeysPress(refs("Ctrl", "NoSuchKey"))
	require.ErrorIs(t, err, keymap.ErrUnknownKey)
	assert.Empty(t, conn.events)
}

func TestKeysDownRawCode(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	require.NoError(t, e.KeysDown([]keymap.KeyRef{keymap.Code(0xFF0D)}))
	assert.Equal(t, []string{"key down 0xff0d"}, conn.events)
}

func TestTypeSequencing(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond, BetweenKeys: 5 * time.Millisecond})
	require.NoError(t, e.Type("ab"))
	assert.Equal(t, []string{
		"key down 0x61",
		"sleep 12ms",
		"key up 0x61",
		"sleep 5ms",
		"key down 0x62",
		"sleep 12ms",
		"key up 0x62",
	}, conn.events)
}

func TestTypeShiftedCharacter(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond})
	require.NoError(t, e.Type("A"))
	assert.Equal(t, []string{
		"key down 0xffe1",
		"key down 0x61",
		"sleep 12ms",
		"key up 0x61",
		"key up 0xffe1",
	}, conn.events)
}

func TestMouseClickDoubleTiming(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond, DoubleClick: 100 * time.Millisecond})
	require.NoError(t, e.MouseClick(remote.ButtonLeft, 2, nil))
	assert.Equal(t, []string{
		"pointer 0,0 mask=0x01",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
		"sleep 100ms",
		"pointer 0,0 mask=0x01",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
	}, conn.events)
}

func TestMouseClickWithModifiers(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond})
	require.NoError(t, e.MouseClick(remote.ButtonRight, 1, refs("Shift")))
	assert.Equal(t, []string{
		"key down 0xffe1",
		"pointer 0,0 mask=0x04",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
		"key up 0xffe1",
	}, conn.events)
}

func TestScrollUsesToggleDelayBetweenRepeats(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond, DoubleClick: 100 * time.Millisecond})
	require.NoError(t, e.Scroll(-3))
	assert.Equal(t, []string{
		"pointer 0,0 mask=0x10",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
		"sleep 12ms",
		"pointer 0,0 mask=0x10",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
		"sleep 12ms",
		"pointer 0,0 mask=0x10",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
	}, conn.events)
}

func TestScrollUp(t *testing.T) {
	e, conn := newTestExecutor(Delays{Toggle: 12 * time.Millisecond})
	require.NoError(t, e.Scroll(1))
	assert.Equal(t, []string{
		"pointer 0,0 mask=0x08",
		"sleep 12ms",
		"pointer 0,0 mask=0x00",
	}, conn.events)
}

func TestMouseMove(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	require.NoError(t, e.MouseMove(10, 20))
	assert.Equal(t, []string{"pointer 10,20 mask=0x00"}, conn.events)

	// The position sticks for later pointer events.
	require.NoError(t, e.MouseButtonDown(remote.ButtonLeft))
	assert.Equal(t, "pointer 10,20 mask=0x01", conn.events[1])
}

func TestMouseMoveNegativeRejectedBeforeAnyEffect(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	require.NoError(t, e.MouseMove(5, 5))
	conn.events = nil

	err := e.MouseMove(-1, 0)
	require.ErrorIs(t, err, ErrNegativeCoordinate)
	assert.Empty(t, conn.events)
	assert.Equal(t, 5, e.pointer.X)
	assert.Equal(t, 5, e.pointer.Y)
}

func TestMouseMoveOutOfRangeRejectedBeforeAnyEffect(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	require.NoError(t, e.MouseMove(5, 5))
	conn.events = nil

	err := e.MouseMove(70000, 0)
	require.ErrorIs(t, err, ErrCoordinateRange)

	err = e.MouseMove(0, 0x10000)
	require.ErrorIs(t, err, ErrCoordinateRange)

	assert.Empty(t, conn.events)
	assert.Equal(t, 5, e.pointer.X)
	assert.Equal(t, 5, e.pointer.Y)
}

func TestCaptureScreen(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())

	_, err := e.CaptureScreen()
	assert.ErrorIs(t, err, ErrFramebufferNotReady)

	conn.frame = image.NewRGBA(image.Rect(0, 0, 0, 0))
	_, err = e.CaptureScreen()
	assert.ErrorIs(t, err, ErrFramebufferNotReady)

	conn.frame = image.NewRGBA(image.Rect(0, 0, 4, 3))
	data, err := e.CaptureScreen()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestPauseTouchesNoTransport(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	require.NoError(t, e.Pause(0.5))
	assert.Equal(t, []string{"sleep 500ms"}, conn.events)
}

func TestEverythingFailsAfterDisconnect(t *testing.T) {
	e, conn := newTestExecutor(DefaultDelays())
	require.NoError(t, e.Disconnect())
	conn.events = nil

	ops := map[string]func() error{
		"KeysDown":   func() error { return e.KeysDown(refs("a")) },
		"KeysUp":     func() error { return e.KeysUp(refs("a")) },
		"KeysPress":  func() error { return e.KeysPress(refs("a")) },
		"Type":       func() error { return e.Type("x") },
		"ButtonDown": func() error { return e.MouseButtonDown(remote.ButtonLeft) },
		"ButtonUp":   func() error { return e.MouseButtonUp(remote.ButtonLeft) },
		"Click":      func() error { return e.MouseClick(remote.ButtonLeft, 1, nil) },
		"Scroll":     func() error { return e.Scroll(1) },
		"Move":       func() error { return e.MouseMove(1, 1) },
		"Capture":    func() error { _, err := e.CaptureScreen(); return err },
		"Pause":      func() error { return e.Pause(1) },
		"Disconnect": func() error { return e.Disconnect() },
	}
	for name, op := range ops {
		assert.ErrorIs(t, op(), ErrNotConnected, name)
	}
	assert.Empty(t, conn.events)
}
