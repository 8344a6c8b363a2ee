package netio

import (
	"net"

	"github.com/feathercam/picamera/internal/wire"
)

// WriteFrame serializes and sends a complete frame over a blocking write.
func WriteFrame(conn net.Conn, f wire.Frame) error {
	return SendAll(conn, wire.EncodeFrame(f))
}

// ReadFrame blocks until a complete frame (header + payload) has been
// received, or the connection dies.
func ReadFrame(conn net.Conn) (wire.Frame, error) {
	header := make([]byte, wire.HeaderSize)
	if err := ReceiveAll(conn, header); err != nil {
		return wire.Frame{}, err
	}

	opcode, errCode, payloadLen, err := wire.DecodeHeader(header)
	if err != nil {
		_ = conn.Close()
		return wire.Frame{}, err
	}

	f := wire.Frame{Opcode: opcode, Err: errCode}
	if errCode == wire.Success && payloadLen > 0 {
		payload := make([]byte, payloadLen)
		if err := ReceiveAll(conn, payload); err != nil {
			return wire.Frame{}, err
		}
		f.Payload = payload
	}

	return f, nil
}

// TryReadFrameHeader probes non-blockingly for the first header byte, as
// the service poll loop does once per session per tick. Once that byte has
// arrived it is committed: the remaining 5 header bytes and the payload are
// read with blocking receives, and the complete frame is returned.
func TryReadFrameHeader(conn net.Conn) (wire.Frame, bool, error) {
	header := make([]byte, wire.HeaderSize)
	if err := TryReceiveAll(conn, header); err != nil {
		if err == ErrWouldBlock {
			return wire.Frame{}, false, nil
		}
		return wire.Frame{}, false, err
	}

	opcode, errCode, payloadLen, err := wire.DecodeHeader(header)
	if err != nil {
		_ = conn.Close()
		return wire.Frame{}, false, err
	}

	f := wire.Frame{Opcode: opcode, Err: errCode}
	if errCode == wire.Success && payloadLen > 0 {
		payload := make([]byte, payloadLen)
		if err := ReceiveAll(conn, payload); err != nil {
			return wire.Frame{}, false, err
		}
		f.Payload = payload
	}

	return f, true, nil
}
