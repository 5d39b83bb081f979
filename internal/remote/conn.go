// Package remote implements the transport to the remote display: a
// framebuffer-protocol client over a websocket endpoint, the connection
// state machine, and the pointer snapshot the wire format expects.
package remote

import "image"

// Conn is the transport surface the action executor drives. The executor
// never constructs or parses wire bytes itself.
type Conn interface {
	// State reports the current connection state.
	State() ConnectionState

	// SendKeyEvent transmits one key press or release.
	SendKeyEvent(pressed bool, keysym uint32) error

	// SendPointerState transmits the full pointer snapshot.
	SendPointerState(ps PointerState) error

	// Frame returns the current rendered frame of the remote display, or
	// nil if no framebuffer update has been received yet.
	Frame() image.Image

	// Close tears down the transport. Subsequent sends fail.
	Close() error
}
