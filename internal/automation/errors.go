package automation

import "errors"

var (
	// ErrNotConnected is returned when any operation is attempted while
	// the transport is not in the connected state.
	ErrNotConnected = errors.New("not connected")

	// ErrFramebufferNotReady is returned when a capture is requested
	// before the remote display has delivered any frame.
	ErrFramebufferNotReady = errors.New("framebuffer not initialized")

	// ErrNegativeCoordinate is returned by pointer moves to negative
	// coordinates.
	ErrNegativeCoordinate = errors.New("negative pointer coordinate")

	// ErrCoordinateRange is returned by pointer moves beyond the 16-bit
	// coordinate space of the pointer wire format.
	ErrCoordinateRange = errors.New("pointer coordinate out of range")
)
