// Package rfb encodes and decodes the remote framebuffer client and server
// messages. Only the message framing lives here; the connection itself is
// managed by the remote package.
package rfb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ProtocolVersion is the version string exchanged during the handshake.
const ProtocolVersion = "RFB 003.008\n"

// Client-to-server message types.
const (
	TypeSetPixelFormat           uint8 = 0
	TypeSetEncodings             uint8 = 2
	TypeFramebufferUpdateRequest uint8 = 3
	TypeKeyEvent                 uint8 = 4
	TypePointerEvent             uint8 = 5
	TypeClientCutText            uint8 = 6
)

// Server-to-client message types.
const (
	TypeFramebufferUpdate  uint8 = 0
	TypeSetColorMapEntries uint8 = 1
	TypeBell               uint8 = 2
	TypeServerCutText      uint8 = 3
)

// Security types and handshake results.
const (
	SecurityInvalid uint8 = 0
	SecurityNone    uint8 = 1
	SecurityVNCAuth uint8 = 2

	SecurityResultOK     uint32 = 0
	SecurityResultFailed uint32 = 1
)

// EncodingRaw is the only pixel encoding the client negotiates.
const EncodingRaw int32 = 0

// EncodeKeyEvent serializes a key event.
//
// Wire format: type(1) + down(1) + pad(2) + keysym(4) = 8 bytes.
func EncodeKeyEvent(pressed bool, keysym uint32) []byte {
	buf := make([]byte, 8)
	buf[0] = TypeKeyEvent
	if pressed {
		buf[1] = 1
	}
	binary.BigEndian.PutUint32(buf[4:8], keysym)
	return buf
}

// EncodePointerEvent serializes a pointer event.
//
// Wire format: type(1) + buttonMask(1) + x(2) + y(2) = 6 bytes.
func EncodePointerEvent(mask uint8, x, y uint16) []byte {
	buf := make([]byte, 6)
	buf[0] = TypePointerEvent
	buf[1] = mask
	binary.BigEndian.PutUint16(buf[2:4], x)
	binary.BigEndian.PutUint16(buf[4:6], y)
	return buf
}

// EncodeFramebufferUpdateRequest serializes an update request for the given
// region. Incremental requests ask only for changes since the last update.
func EncodeFramebufferUpdateRequest(incremental bool, x, y, w, h uint16) []byte {
	buf := make([]byte, 10)
	buf[0] = TypeFramebufferUpdateRequest
	if incremental {
		buf[1] = 1
	}
	binary.BigEndian.PutUint16(buf[2:4], x)
	binary.BigEndian.PutUint16(buf[4:6], y)
	binary.BigEndian.PutUint16(buf[6:8], w)
	binary.BigEndian.PutUint16(buf[8:10], h)
	return buf
}

// EncodeSetEncodings serializes the client's encoding preference list.
func EncodeSetEncodings(encodings ...int32) []byte {
	buf := make([]byte, 4+4*len(encodings))
	buf[0] = TypeSetEncodings
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(encodings)))
	for i, enc := range encodings {
		binary.BigEndian.PutUint32(buf[4+4*i:], uint32(enc))
	}
	return buf
}

// EncodeSetPixelFormat serializes a pixel format change request.
//
// Wire format: type(1) + pad(3) + pixel format(16) = 20 bytes.
func EncodeSetPixelFormat(pf PixelFormat) []byte {
	buf := make([]byte, 20)
	buf[0] = TypeSetPixelFormat
	pf.encode(buf[4:20])
	return buf
}

// PixelFormat describes how pixels are laid out on the wire.
type PixelFormat struct {
	BitsPerPixel uint8
	Depth        uint8
	BigEndian    bool
	TrueColor    bool
	RedMax       uint16
	GreenMax     uint16
	BlueMax      uint16
	RedShift     uint8
	GreenShift   uint8
	BlueShift    uint8
}

// RGBA32 is the format the client requests: 32 bits per pixel, little
// endian, true color with 8 bits per channel.
func RGBA32() PixelFormat {
	return PixelFormat{
		BitsPerPixel: 32,
		Depth:        24,
		TrueColor:    true,
		RedMax:       255,
		GreenMax:     255,
		BlueMax:      255,
		RedShift:     16,
		GreenShift:   8,
		BlueShift:    0,
	}
}

func (pf PixelFormat) encode(buf []byte) {
	buf[0] = pf.BitsPerPixel
	buf[1] = pf.Depth
	if pf.BigEndian {
		buf[2] = 1
	}
	if pf.TrueColor {
		buf[3] = 1
	}
	binary.BigEndian.PutUint16(buf[4:6], pf.RedMax)
	binary.BigEndian.PutUint16(buf[6:8], pf.GreenMax)
	binary.BigEndian.PutUint16(buf[8:10], pf.BlueMax)
	buf[10] = pf.RedShift
	buf[11] = pf.GreenShift
	buf[12] = pf.BlueShift
}

func decodePixelFormat(buf []byte) PixelFormat {
	return PixelFormat{
		BitsPerPixel: buf[0],
		Depth:        buf[1],
		BigEndian:    buf[2] != 0,
		TrueColor:    buf[3] != 0,
		RedMax:       binary.BigEndian.Uint16(buf[4:6]),
		GreenMax:     binary.BigEndian.Uint16(buf[6:8]),
		BlueMax:      binary.BigEndian.Uint16(buf[8:10]),
		RedShift:     buf[10],
		GreenShift:   buf[11],
		BlueShift:    buf[12],
	}
}

// ServerInit is the message completing the handshake: framebuffer
// dimensions, server pixel format and desktop name.
type ServerInit struct {
	Width  uint16
	Height uint16
	Format PixelFormat
	Name   string
}

// ReadServerInit reads a ServerInit message from the stream.
func ReadServerInit(r io.Reader) (ServerInit, error) {
	var buf [24]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ServerInit{}, fmt.Errorf("read server init: %w", err)
	}
	si := ServerInit{
		Width:  binary.BigEndian.Uint16(buf[0:2]),
		Height: binary.BigEndian.Uint16(buf[2:4]),
		Format: decodePixelFormat(buf[4:20]),
	}
	nameLen := binary.BigEndian.Uint32(buf[20:24])
	if nameLen > 0 {
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return ServerInit{}, fmt.Errorf("read desktop name: %w", err)
		}
		si.Name = string(name)
	}
	return si, nil
}

// Rect is one rectangle header inside a framebuffer update.
type Rect struct {
	X, Y     uint16
	W, H     uint16
	Encoding int32
}

// ReadRect reads a rectangle header from the stream.
func ReadRect(r io.Reader) (Rect, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Rect{}, fmt.Errorf("read rect header: %w", err)
	}
	return Rect{
		X:        binary.BigEndian.Uint16(buf[0:2]),
		Y:        binary.BigEndian.Uint16(buf[2:4]),
		W:        binary.BigEndian.Uint16(buf[4:6]),
		H:        binary.BigEndian.Uint16(buf[6:8]),
		Encoding: int32(binary.BigEndian.Uint32(buf[8:12])),
	}, nil
}

// maxStringLen bounds length-prefixed strings. Failure reasons, desktop
// names and cut text are all short; anything near the u32 limit is a
// hostile or broken peer, not data worth allocating for.
const maxStringLen = 1 << 20

// ErrStringTooLong is returned when a length-prefixed string exceeds
// maxStringLen.
var ErrStringTooLong = errors.New("string length exceeds limit")

// ReadString reads a length-prefixed string from the stream, as used for
// handshake failure reasons and cut text.
func ReadString(r io.Reader) (string, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxStringLen {
		return "", fmt.Errorf("%w: %d bytes", ErrStringTooLong, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
