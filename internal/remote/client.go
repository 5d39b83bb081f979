package remote

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"vncpilot/internal/rfb"
)

// Client is a remote framebuffer client speaking RFB 3.8 framed over a
// websocket endpoint. One Client serves one connection: after Close or a
// failure it is not reused.
type Client struct {
	url string

	conn   *websocket.Conn
	stream io.Reader

	mu      sync.Mutex // guards state, frame, desktop dimensions
	state   ConnectionState
	frame   *image.RGBA
	width   int
	height  int
	desktop string

	writeMu sync.Mutex

	events chan Event
}

// NewClient creates a client for a websocket URL such as
// "ws://host:5901/websockify". No network activity happens until Connect.
func NewClient(url string) *Client {
	return &Client{
		url:    url,
		state:  Disconnected,
		events: make(chan Event, 8),
	}
}

// Events delivers connection-state notifications: Connected once the
// handshake completes, Failed or Disconnected with the underlying error.
func (c *Client) Events() <-chan Event {
	return c.events
}

// State reports the current connection state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DesktopName returns the name announced by the server, once connected.
func (c *Client) DesktopName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desktop
}

// Connect dials the endpoint and runs the handshake. It returns once the
// session is established or the connection has failed; a failed client
// stays in the Failed state for good.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(Connecting, nil)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.setState(Failed, err)
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	c.conn = conn
	c.stream = &messageReader{conn: conn}

	if err := c.handshake(); err != nil {
		c.setState(Failed, err)
		conn.Close()
		return err
	}

	c.setState(Connected, nil)
	log.Printf("Remote: connected to %q (%dx%d)", c.desktop, c.width, c.height)

	go c.readPump()
	return nil
}

// handshake runs the version, security and init exchanges and pushes the
// client's pixel format and encoding preferences.
func (c *Client) handshake() error {
	version := make([]byte, 12)
	if _, err := io.ReadFull(c.stream, version); err != nil {
		return fmt.Errorf("read server version: %w", err)
	}
	if string(version[:4]) != "RFB " {
		return fmt.Errorf("%w: unexpected greeting %q", ErrHandshake, version)
	}
	if err := c.write([]byte(rfb.ProtocolVersion)); err != nil {
		return err
	}

	// Security negotiation: a zero-length type list carries a failure
	// reason instead.
	var count [1]byte
	if _, err := io.ReadFull(c.stream, count[:]); err != nil {
		return fmt.Errorf("read security types: %w", err)
	}
	if count[0] == 0 {
		reason, _ := rfb.ReadString(c.stream)
		return &rfb.StatusError{Status: rfb.SecurityResultFailed, Reason: reason}
	}
	types := make([]byte, count[0])
	if _, err := io.ReadFull(c.stream, types); err != nil {
		return fmt.Errorf("read security types: %w", err)
	}
	if !contains(types, rfb.SecurityNone) {
		return fmt.Errorf("%w: no supported security type in %v", ErrHandshake, types)
	}
	if err := c.write([]byte{rfb.SecurityNone}); err != nil {
		return err
	}

	var result [4]byte
	if _, err := io.ReadFull(c.stream, result[:]); err != nil {
		return fmt.Errorf("read security result: %w", err)
	}
	if status := beUint32(result[:]); status != rfb.SecurityResultOK {
		reason, _ := rfb.ReadString(c.stream)
		return &rfb.StatusError{Status: status, Reason: reason}
	}

	// ClientInit: request a shared session.
	if err := c.write([]byte{1}); err != nil {
		return err
	}
	si, err := rfb.ReadServerInit(c.stream)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.width, c.height, c.desktop = int(si.Width), int(si.Height), si.Name
	c.mu.Unlock()

	if err := c.write(rfb.EncodeSetPixelFormat(rfb.RGBA32())); err != nil {
		return err
	}
	if err := c.write(rfb.EncodeSetEncodings(rfb.EncodingRaw)); err != nil {
		return err
	}
	return c.write(rfb.EncodeFramebufferUpdateRequest(false, 0, 0, si.Width, si.Height))
}

// readPump consumes server messages until the connection drops.
func (c *Client) readPump() {
	for {
		var msgType [1]byte
		if _, err := io.ReadFull(c.stream, msgType[:]); err != nil {
			c.dropped(err)
			return
		}
		switch msgType[0] {
		case rfb.TypeFramebufferUpdate:
			if err := c.readFramebufferUpdate(); err != nil {
				c.dropped(err)
				return
			}
		case rfb.TypeBell:
			log.Printf("Remote: bell")
		case rfb.TypeServerCutText:
			var pad [3]byte
			if _, err := io.ReadFull(c.stream, pad[:]); err != nil {
				c.dropped(err)
				return
			}
			text, err := rfb.ReadString(c.stream)
			if err != nil {
				c.dropped(err)
				return
			}
			log.Printf("Remote: server cut text (%d bytes)", len(text))
		case rfb.TypeSetColorMapEntries:
			if err := c.skipColorMap(); err != nil {
				c.dropped(err)
				return
			}
		default:
			c.dropped(fmt.Errorf("%w: unexpected server message %d", ErrHandshake, msgType[0]))
			return
		}
	}
}

func (c *Client) readFramebufferUpdate() error {
	var head [3]byte // pad(1) + numRects(2)
	if _, err := io.ReadFull(c.stream, head[:]); err != nil {
		return err
	}
	numRects := int(head[1])<<8 | int(head[2])
	for i := 0; i < numRects; i++ {
		rect, err := rfb.ReadRect(c.stream)
		if err != nil {
			return err
		}
		if rect.Encoding != rfb.EncodingRaw {
			return fmt.Errorf("%w: unsupported encoding %d", ErrHandshake, rect.Encoding)
		}
		if err := c.readRawRect(rect); err != nil {
			return err
		}
	}
	// Keep the framebuffer current between captures.
	return c.write(rfb.EncodeFramebufferUpdateRequest(true, 0, 0, uint16(c.width), uint16(c.height)))
}

// readRawRect blits one raw-encoded rectangle into the framebuffer. Pixels
// arrive in the format requested at handshake: 32bpp little endian with
// red at shift 16. A rectangle outside the negotiated dimensions fails
// the connection rather than the process.
func (c *Client) readRawRect(rect rfb.Rect) error {
	if int(rect.X)+int(rect.W) > c.width || int(rect.Y)+int(rect.H) > c.height {
		return fmt.Errorf("%w: rect %dx%d at (%d, %d) outside %dx%d framebuffer",
			ErrHandshake, rect.W, rect.H, rect.X, rect.Y, c.width, c.height)
	}
	data := make([]byte, int(rect.W)*int(rect.H)*4)
	if _, err := io.ReadFull(c.stream, data); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		c.frame = image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	}
	src := 0
	for y := 0; y < int(rect.H); y++ {
		row := c.frame.PixOffset(int(rect.X), int(rect.Y)+y)
		for x := 0; x < int(rect.W); x++ {
			c.frame.Pix[row+0] = data[src+2] // red
			c.frame.Pix[row+1] = data[src+1] // green
			c.frame.Pix[row+2] = data[src+0] // blue
			c.frame.Pix[row+3] = 0xFF
			row += 4
			src += 4
		}
	}
	return nil
}

func (c *Client) skipColorMap() error {
	var head [5]byte // pad(1) + firstColor(2) + numColors(2)
	if _, err := io.ReadFull(c.stream, head[:]); err != nil {
		return err
	}
	numColors := int(head[3])<<8 | int(head[4])
	_, err := io.CopyN(io.Discard, c.stream, int64(numColors)*6)
	return err
}

// SendKeyEvent transmits one key press or release.
func (c *Client) SendKeyEvent(pressed bool, keysym uint32) error {
	if c.State() != Connected {
		return ErrClosed
	}
	return c.write(rfb.EncodeKeyEvent(pressed, keysym))
}

// SendPointerState transmits the full pointer snapshot as a pointer event.
func (c *Client) SendPointerState(ps PointerState) error {
	if c.State() != Connected {
		return ErrClosed
	}
	return c.write(rfb.EncodePointerEvent(ps.Mask(), clampUint16(ps.X), clampUint16(ps.Y)))
}

// Frame returns a copy of the current framebuffer, or nil before the first
// update has been received.
func (c *Client) Frame() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return nil
	}
	clone := image.NewRGBA(c.frame.Rect)
	copy(clone.Pix, c.frame.Pix)
	return clone
}

// Close tears down the transport. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	wasConnected := c.state == Connected
	if c.state == Connected || c.state == Connecting {
		c.state = Disconnected
	}
	conn := c.conn
	c.mu.Unlock()

	if wasConnected {
		c.emit(Event{State: Disconnected})
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (c *Client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.conn == nil {
		return ErrClosed
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

// dropped records a post-connection read failure. A deliberate Close has
// already moved the state away from Connected, so the error is only
// surfaced for a live session that broke.
func (c *Client) dropped(err error) {
	c.mu.Lock()
	live := c.state == Connected
	if live {
		c.state = Disconnected
	}
	c.mu.Unlock()
	if live {
		log.Printf("Remote: connection lost: %v", err)
		c.emit(Event{State: Disconnected, Err: err})
	}
}

func (c *Client) setState(s ConnectionState, err error) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.emit(Event{State: s, Err: err})
}

func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

// messageReader presents the websocket's binary messages as one contiguous
// byte stream, the framing the protocol was written for.
type messageReader struct {
	conn *websocket.Conn
	cur  io.Reader
}

func (m *messageReader) Read(p []byte) (int, error) {
	for {
		if m.cur == nil {
			_, r, err := m.conn.NextReader()
			if err != nil {
				return 0, err
			}
			m.cur = r
		}
		n, err := m.cur.Read(p)
		if err == io.EOF {
			m.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func contains(list []byte, v byte) bool {
	for _, b := range list {
		if b == v {
			return true
		}
	}
	return false
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func clampUint16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
