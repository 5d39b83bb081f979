package script

import "errors"

var (
	// ErrUnknownCommand is returned for a command name absent from the
	// registry.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArgument is returned when a command receives too few
	// arguments or a value its parser rejects.
	ErrInvalidArgument = errors.New("invalid argument")
)
