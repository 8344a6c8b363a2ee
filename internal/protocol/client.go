package protocol

import (
	"net"

	"github.com/feathercam/picamera/internal/netio"
	"github.com/feathercam/picamera/internal/wire"
)

// roundTrip sends a request frame carrying reqPayload under op and blocks
// for exactly one response frame. A transport failure on send or receive
// closes the socket (netio already does this) and is reported as
// ConnectionClosed — the client-begin contract from spec §4.C.
func roundTrip(conn net.Conn, op wire.Opcode, reqPayload []byte) (wire.Frame, wire.ErrorCode) {
	if err := netio.WriteFrame(conn, wire.Frame{Opcode: op, Err: wire.Success, Payload: reqPayload}); err != nil {
		return wire.Frame{}, wire.ConnectionClosed
	}

	resp, err := netio.ReadFrame(conn)
	if err != nil {
		return wire.Frame{}, wire.ConnectionClosed
	}

	return resp, wire.Success
}

// beginGet runs a no-argument request and decodes the response payload
// with decode. transportErr is returned verbatim when the round trip
// itself failed; otherwise the response's own error code is returned.
func beginGet[T any](conn net.Conn, op wire.Opcode, decode func([]byte) T) (T, wire.ErrorCode) {
	var zero T
	resp, transportErr := roundTrip(conn, op, nil)
	if transportErr != wire.Success {
		return zero, transportErr
	}
	if resp.Err != wire.Success {
		return zero, resp.Err
	}
	return decode(resp.Payload), wire.Success
}

// beginSet runs a single-value request and reports only the error code.
func beginSet[T any](conn net.Conn, op wire.Opcode, value T, encode func(T) []byte) wire.ErrorCode {
	resp, transportErr := roundTrip(conn, op, encode(value))
	if transportErr != wire.Success {
		return transportErr
	}
	return resp.Err
}

// --- scalar codecs used by the generic helpers above ---

func decodeBool(b []byte) bool   { return len(b) > 0 && b[0] != 0 }
func decodeInt8(b []byte) int8   { return int8(b[0]) }
func decodeUint8(b []byte) uint8 { return b[0] }
func decodeUint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}
func decodeUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
func decodeUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b[:8] {
		v = v<<8 | uint64(x)
	}
	return v
}

func encodeInt8(v int8) []byte   { return []byte{byte(v)} }
func encodeUint8(v uint8) []byte { return []byte{v} }
func encodeUint16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}
func encodeUint32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
func encodeUint64(v uint64) []byte {
	out := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// BeginIsBusy is the only get-style op with no setter counterpart.
func BeginIsBusy(conn net.Conn) (bool, wire.ErrorCode) {
	return beginGet(conn, wire.OpIsBusy, decodeBool)
}

func BeginGetEV(conn net.Conn) (int8, wire.ErrorCode) { return beginGet(conn, wire.OpGetEV, decodeInt8) }
func BeginSetEV(conn net.Conn, v int8) wire.ErrorCode { return beginSet(conn, wire.OpSetEV, v, encodeInt8) }

func BeginGetISO(conn net.Conn) (uint16, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetISO, decodeUint16)
}
func BeginSetISO(conn net.Conn, v uint16) wire.ErrorCode {
	return beginSet(conn, wire.OpSetISO, v, encodeUint16)
}

func BeginGetConfig(conn net.Conn) (wire.CameraConfig, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetConfig, func(b []byte) wire.CameraConfig {
		c, _ := wire.DecodeConfig(b)
		return c
	})
}
func BeginSetConfig(conn net.Conn, v wire.CameraConfig) wire.ErrorCode {
	return beginSet(conn, wire.OpSetConfig, v, wire.EncodeConfig)
}

func BeginGetContrast(conn net.Conn) (int8, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetContrast, decodeInt8)
}
func BeginSetContrast(conn net.Conn, v int8) wire.ErrorCode {
	return beginSet(conn, wire.OpSetContrast, v, encodeInt8)
}

func BeginGetSharpness(conn net.Conn) (int8, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetSharpness, decodeInt8)
}
func BeginSetSharpness(conn net.Conn, v int8) wire.ErrorCode {
	return beginSet(conn, wire.OpSetSharpness, v, encodeInt8)
}

func BeginGetBrightness(conn net.Conn) (uint8, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetBrightness, decodeUint8)
}
func BeginSetBrightness(conn net.Conn, v uint8) wire.ErrorCode {
	return beginSet(conn, wire.OpSetBrightness, v, encodeUint8)
}

func BeginGetSaturation(conn net.Conn) (int8, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetSaturation, decodeInt8)
}
func BeginSetSaturation(conn net.Conn, v int8) wire.ErrorCode {
	return beginSet(conn, wire.OpSetSaturation, v, encodeInt8)
}

func BeginGetWhiteBalance(conn net.Conn) (wire.WhiteBalance, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetWhiteBalance, func(b []byte) wire.WhiteBalance {
		return wire.WhiteBalance(decodeUint8(b))
	})
}
func BeginSetWhiteBalance(conn net.Conn, v wire.WhiteBalance) wire.ErrorCode {
	return beginSet(conn, wire.OpSetWhiteBalance, v, func(v wire.WhiteBalance) []byte {
		return encodeUint8(uint8(v))
	})
}

func BeginGetShutterSpeed(conn net.Conn) (uint64, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetShutterSpeed, decodeUint64)
}
func BeginSetShutterSpeed(conn net.Conn, v uint64) wire.ErrorCode {
	return beginSet(conn, wire.OpSetShutterSpeed, v, encodeUint64)
}

func BeginGetExposureMode(conn net.Conn) (wire.ExposureMode, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetExposureMode, func(b []byte) wire.ExposureMode {
		return wire.ExposureMode(decodeUint8(b))
	})
}
func BeginSetExposureMode(conn net.Conn, v wire.ExposureMode) wire.ErrorCode {
	return beginSet(conn, wire.OpSetExposureMode, v, func(v wire.ExposureMode) []byte {
		return encodeUint8(uint8(v))
	})
}

func BeginGetMeteringMode(conn net.Conn) (wire.MeteringMode, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetMeteringMode, func(b []byte) wire.MeteringMode {
		return wire.MeteringMode(decodeUint8(b))
	})
}
func BeginSetMeteringMode(conn net.Conn, v wire.MeteringMode) wire.ErrorCode {
	return beginSet(conn, wire.OpSetMeteringMode, v, func(v wire.MeteringMode) []byte {
		return encodeUint8(uint8(v))
	})
}

func BeginGetJpgQuality(conn net.Conn) (uint8, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetJpgQuality, decodeUint8)
}
func BeginSetJpgQuality(conn net.Conn, v uint8) wire.ErrorCode {
	return beginSet(conn, wire.OpSetJpgQuality, v, encodeUint8)
}

type imageSize struct{ Width, Height uint16 }

func BeginGetImageSize(conn net.Conn) (uint16, uint16, wire.ErrorCode) {
	sz, ec := beginGet(conn, wire.OpGetImageSize, func(b []byte) imageSize {
		return imageSize{Width: decodeUint16(b[0:2]), Height: decodeUint16(b[2:4])}
	})
	return sz.Width, sz.Height, ec
}
func BeginSetImageSize(conn net.Conn, width, height uint16) wire.ErrorCode {
	return beginSet(conn, wire.OpSetImageSize, imageSize{width, height}, func(v imageSize) []byte {
		return append(encodeUint16(v.Width), encodeUint16(v.Height)...)
	})
}

func BeginGetImageEffect(conn net.Conn) (wire.ImageEffect, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetImageEffect, func(b []byte) wire.ImageEffect {
		return wire.ImageEffect(decodeUint8(b))
	})
}
func BeginSetImageEffect(conn net.Conn, v wire.ImageEffect) wire.ErrorCode {
	return beginSet(conn, wire.OpSetImageEffect, v, func(v wire.ImageEffect) []byte {
		return encodeUint8(uint8(v))
	})
}

func BeginGetImageRotation(conn net.Conn) (uint16, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetImageRotation, decodeUint16)
}
func BeginSetImageRotation(conn net.Conn, v uint16) wire.ErrorCode {
	return beginSet(conn, wire.OpSetImageRotation, v, encodeUint16)
}

func BeginGetVideoBitRate(conn net.Conn) (uint32, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetVideoBitRate, decodeUint32)
}
func BeginSetVideoBitRate(conn net.Conn, v uint32) wire.ErrorCode {
	return beginSet(conn, wire.OpSetVideoBitRate, v, encodeUint32)
}

func BeginGetVideoFrameRate(conn net.Conn) (uint8, wire.ErrorCode) {
	return beginGet(conn, wire.OpGetVideoFrameRate, decodeUint8)
}
func BeginSetVideoFrameRate(conn net.Conn, v uint8) wire.ErrorCode {
	return beginSet(conn, wire.OpSetVideoFrameRate, v, encodeUint8)
}

// BeginCapture and BeginCaptureVideo send the triggering request and
// return the server's first response frame verbatim: on success its
// opcode is OpFileTransferOffer carrying the total size, on failure its
// opcode echoes the request and its error code names the failure. The
// caller (pkg/camera) hands this frame to internal/filetransfer.Receive.
func BeginCapture(conn net.Conn) (wire.Frame, error) {
	if err := netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpCapture, Err: wire.Success}); err != nil {
		return wire.Frame{}, err
	}
	return netio.ReadFrame(conn)
}

func BeginCaptureVideo(conn net.Conn, seconds uint32) (wire.Frame, error) {
	if err := netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpCaptureVideo, Err: wire.Success, Payload: encodeUint32(seconds)}); err != nil {
		return wire.Frame{}, err
	}
	return netio.ReadFrame(conn)
}
