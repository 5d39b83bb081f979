package remote

import "errors"

var (
	// ErrUnknownButton is returned for a button name outside the closed
	// set of logical buttons.
	ErrUnknownButton = errors.New("unknown button")

	// ErrClosed is returned when sending on a transport that is no longer
	// connected.
	ErrClosed = errors.New("transport closed")

	// ErrHandshake is returned when the server speaks an unsupported
	// protocol variant or sends a malformed message.
	ErrHandshake = errors.New("handshake failed")
)
