package wire

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed, unpadded size of a frame header: opcode byte,
// error byte, 4-byte big-endian payload length.
const HeaderSize = 6

// MaxPayloadSize bounds the length field before a receive buffer is
// allocated for it. Nothing in the protocol needs a single frame larger
// than this; file transfer chunks are capped well under it (see
// internal/filetransfer). Resolves the "no cap on payload length" open
// question from spec §9.
const MaxPayloadSize = 32 << 20 // 32 MiB

// Frame is one header plus an optional payload, the atomic unit of the
// wire protocol. Payload is only meaningful when Err == Success.
type Frame struct {
	Opcode  Opcode
	Err     ErrorCode
	Payload []byte
}

// EncodeFrame serializes f exactly as: opcode byte, error byte, 4-byte
// big-endian length, then payload bytes (omitted unless Err == Success
// and len(Payload) > 0).
func EncodeFrame(f Frame) []byte {
	var payload []byte
	if f.Err == Success {
		payload = f.Payload
	}

	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = byte(f.Opcode)
	buf[1] = byte(f.Err)
	binary.BigEndian.PutUint32(buf[2:6], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf
}

// DecodeHeader parses the fixed 6-byte header. It does not read the
// payload; callers use the returned length to know how many more bytes to
// receive.
func DecodeHeader(buf []byte) (opcode Opcode, errCode ErrorCode, payloadLen uint32, err error) {
	if len(buf) < HeaderSize {
		return 0, 0, 0, fmt.Errorf("wire: short header: %d bytes", len(buf))
	}

	opcode = Opcode(buf[0])
	errCode = ErrorCode(buf[1])
	payloadLen = binary.BigEndian.Uint32(buf[2:6])

	if payloadLen > MaxPayloadSize {
		return 0, 0, 0, fmt.Errorf("wire: payload length %d exceeds ceiling %d", payloadLen, MaxPayloadSize)
	}

	return opcode, errCode, payloadLen, nil
}

// DecodeFrame is the inverse of EncodeFrame over a complete buffer
// (header + payload already concatenated). It exists mainly for tests
// exercising the encode∘decode identity; production code streams the
// header and payload separately via internal/netio.
func DecodeFrame(buf []byte) (Frame, error) {
	opcode, errCode, payloadLen, err := DecodeHeader(buf)
	if err != nil {
		return Frame{}, err
	}

	if uint32(len(buf)-HeaderSize) < payloadLen {
		return Frame{}, fmt.Errorf("wire: short payload: want %d, have %d", payloadLen, len(buf)-HeaderSize)
	}

	f := Frame{Opcode: opcode, Err: errCode}
	if errCode == Success && payloadLen > 0 {
		f.Payload = append([]byte(nil), buf[HeaderSize:HeaderSize+payloadLen]...)
	}
	return f, nil
}

// putUint16/putUint32/putUint64 and their getUint* counterparts are thin
// big-endian helpers used by config.go so payload encoding never drifts
// from the frame header's byte order.

func putUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func putUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func putUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

func getUint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func getUint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func getUint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }
