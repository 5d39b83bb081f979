package remote

// ConnectionState tracks the lifecycle of one transport instance.
// Disconnected and Failed are terminal: a new connection means a new client.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	Failed
)

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a connection-state notification delivered on the client's
// events channel.
type Event struct {
	State ConnectionState
	Err   error
}
