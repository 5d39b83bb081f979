package rfb

import "fmt"

// StatusError wraps a protocol-reported status code with a best-effort
// symbolic name and the reason string the server supplied, if any.
type StatusError struct {
	Status uint32
	Reason string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("protocol error %d (%s): %s", e.Status, statusName(e.Status), e.Reason)
	}
	return fmt.Sprintf("protocol error %d (%s)", e.Status, statusName(e.Status))
}

func statusName(status uint32) string {
	switch status {
	case SecurityResultOK:
		return "ok"
	case SecurityResultFailed:
		return "security handshake failed"
	case 2:
		return "too many attempts"
	default:
		return "unknown status"
	}
}
