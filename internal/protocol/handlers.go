package protocol

import (
	"fmt"
	"net"
	"os"

	"github.com/feathercam/picamera/internal/filetransfer"
	"github.com/feathercam/picamera/internal/netio"
	"github.com/feathercam/picamera/internal/wire"
)

// HandlerFunc reads req's already-decoded payload, invokes d, and writes
// exactly one response frame (or, for Capture/CaptureVideo, the whole
// file-transfer dance). A non-nil return is a transport failure the
// session poll loop treats as fatal to that session.
type HandlerFunc func(conn net.Conn, d Driver, req wire.Frame) error

// TableEntry pairs a handler with the opcode it must be registered under;
// ValidateTable reports an error if the two ever drift, and OpenService
// refuses to start on that error, so a protocol extension that forgets to
// update its slot fails at service start rather than at runtime under a
// client's first malformed call.
type TableEntry struct {
	Opcode  wire.Opcode
	Handler HandlerFunc
}

func completeValue[T any](conn net.Conn, op wire.Opcode, value T, encode func(T) []byte) error {
	return netio.WriteFrame(conn, wire.Frame{Opcode: op, Err: wire.Success, Payload: encode(value)})
}

func completeVoid(conn net.Conn, op wire.Opcode) error {
	return netio.WriteFrame(conn, wire.Frame{Opcode: op, Err: wire.Success})
}

func handleIsBusy(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpIsBusy, d.IsBusy(), func(v bool) []byte {
		if v {
			return []byte{1}
		}
		return []byte{0}
	})
}

func handleGetEV(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetEV, d.GetEV(), encodeInt8)
}
func handleSetEV(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetEV(decodeInt8(req.Payload))
	return completeVoid(conn, wire.OpSetEV)
}

func handleGetISO(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetISO, d.GetISO(), encodeUint16)
}
func handleSetISO(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetISO(decodeUint16(req.Payload))
	return completeVoid(conn, wire.OpSetISO)
}

func handleGetConfig(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetConfig, d.GetConfig(), wire.EncodeConfig)
}
func handleSetConfig(conn net.Conn, d Driver, req wire.Frame) error {
	cfg, err := wire.DecodeConfig(req.Payload)
	if err != nil {
		return netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpSetConfig, Err: wire.Undefined})
	}
	d.SetConfig(cfg)
	return completeVoid(conn, wire.OpSetConfig)
}

func handleGetContrast(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetContrast, d.GetContrast(), encodeInt8)
}
func handleSetContrast(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetContrast(decodeInt8(req.Payload))
	return completeVoid(conn, wire.OpSetContrast)
}

func handleGetSharpness(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetSharpness, d.GetSharpness(), encodeInt8)
}
func handleSetSharpness(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetSharpness(decodeInt8(req.Payload))
	return completeVoid(conn, wire.OpSetSharpness)
}

func handleGetBrightness(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetBrightness, d.GetBrightness(), encodeUint8)
}
func handleSetBrightness(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetBrightness(decodeUint8(req.Payload))
	return completeVoid(conn, wire.OpSetBrightness)
}

func handleGetSaturation(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetSaturation, d.GetSaturation(), encodeInt8)
}
func handleSetSaturation(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetSaturation(decodeInt8(req.Payload))
	return completeVoid(conn, wire.OpSetSaturation)
}

func handleGetWhiteBalance(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetWhiteBalance, d.GetWhiteBalance(), func(v wire.WhiteBalance) []byte {
		return encodeUint8(uint8(v))
	})
}
func handleSetWhiteBalance(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetWhiteBalance(wire.WhiteBalance(decodeUint8(req.Payload)))
	return completeVoid(conn, wire.OpSetWhiteBalance)
}

func handleGetShutterSpeed(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetShutterSpeed, d.GetShutterSpeed(), encodeUint64)
}
func handleSetShutterSpeed(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetShutterSpeed(decodeUint64(req.Payload))
	return completeVoid(conn, wire.OpSetShutterSpeed)
}

func handleGetExposureMode(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetExposureMode, d.GetExposureMode(), func(v wire.ExposureMode) []byte {
		return encodeUint8(uint8(v))
	})
}
func handleSetExposureMode(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetExposureMode(wire.ExposureMode(decodeUint8(req.Payload)))
	return completeVoid(conn, wire.OpSetExposureMode)
}

func handleGetMeteringMode(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetMeteringMode, d.GetMeteringMode(), func(v wire.MeteringMode) []byte {
		return encodeUint8(uint8(v))
	})
}
func handleSetMeteringMode(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetMeteringMode(wire.MeteringMode(decodeUint8(req.Payload)))
	return completeVoid(conn, wire.OpSetMeteringMode)
}

func handleGetJpgQuality(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetJpgQuality, d.GetJpgQuality(), encodeUint8)
}
func handleSetJpgQuality(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetJpgQuality(decodeUint8(req.Payload))
	return completeVoid(conn, wire.OpSetJpgQuality)
}

func handleGetImageSize(conn net.Conn, d Driver, _ wire.Frame) error {
	w, h := d.GetImageSize()
	return completeValue(conn, wire.OpGetImageSize, imageSize{w, h}, func(v imageSize) []byte {
		return append(encodeUint16(v.Width), encodeUint16(v.Height)...)
	})
}
func handleSetImageSize(conn net.Conn, d Driver, req wire.Frame) error {
	if len(req.Payload) < 4 {
		return netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpSetImageSize, Err: wire.Undefined})
	}
	d.SetImageSize(decodeUint16(req.Payload[0:2]), decodeUint16(req.Payload[2:4]))
	return completeVoid(conn, wire.OpSetImageSize)
}

func handleGetImageEffect(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetImageEffect, d.GetImageEffect(), func(v wire.ImageEffect) []byte {
		return encodeUint8(uint8(v))
	})
}
func handleSetImageEffect(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetImageEffect(wire.ImageEffect(decodeUint8(req.Payload)))
	return completeVoid(conn, wire.OpSetImageEffect)
}

func handleGetImageRotation(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetImageRotation, d.GetImageRotation(), encodeUint16)
}
func handleSetImageRotation(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetImageRotation(decodeUint16(req.Payload))
	return completeVoid(conn, wire.OpSetImageRotation)
}

func handleGetVideoBitRate(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetVideoBitRate, d.GetVideoBitRate(), encodeUint32)
}
func handleSetVideoBitRate(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetVideoBitRate(decodeUint32(req.Payload))
	return completeVoid(conn, wire.OpSetVideoBitRate)
}

func handleGetVideoFrameRate(conn net.Conn, d Driver, _ wire.Frame) error {
	return completeValue(conn, wire.OpGetVideoFrameRate, d.GetVideoFrameRate(), encodeUint8)
}
func handleSetVideoFrameRate(conn net.Conn, d Driver, req wire.Frame) error {
	d.SetVideoFrameRate(decodeUint8(req.Payload))
	return completeVoid(conn, wire.OpSetVideoFrameRate)
}

func handleCapture(conn net.Conn, d Driver, _ wire.Frame) error {
	path, ec := d.Capture()
	if ec != wire.Success {
		return netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpCapture, Err: ec})
	}
	defer os.Remove(path)
	return filetransfer.Send(conn, wire.OpCapture, path)
}

func handleCaptureVideo(conn net.Conn, d Driver, req wire.Frame) error {
	if len(req.Payload) < 4 {
		return netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpCaptureVideo, Err: wire.Undefined})
	}
	seconds := decodeUint32(req.Payload)
	path, ec := d.CaptureVideo(seconds)
	if ec != wire.Success {
		return netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpCaptureVideo, Err: ec})
	}
	defer os.Remove(path)
	return filetransfer.Send(conn, wire.OpCaptureVideo, path)
}

// BuildTable returns the fixed-length, opcode-indexed handler table.
// Entries 35/36 (file-transfer offer/ack) carry a nil handler: those
// opcodes must only ever appear inside an ongoing transfer, never as a
// top-level request.
func BuildTable() [wire.OpCount]TableEntry {
	var t [wire.OpCount]TableEntry

	set := func(op wire.Opcode, h HandlerFunc) { t[op] = TableEntry{Opcode: op, Handler: h} }

	set(wire.OpIsBusy, handleIsBusy)
	set(wire.OpGetEV, handleGetEV)
	set(wire.OpSetEV, handleSetEV)
	set(wire.OpGetISO, handleGetISO)
	set(wire.OpSetISO, handleSetISO)
	set(wire.OpGetConfig, handleGetConfig)
	set(wire.OpSetConfig, handleSetConfig)
	set(wire.OpGetContrast, handleGetContrast)
	set(wire.OpSetContrast, handleSetContrast)
	set(wire.OpGetSharpness, handleGetSharpness)
	set(wire.OpSetSharpness, handleSetSharpness)
	set(wire.OpGetBrightness, handleGetBrightness)
	set(wire.OpSetBrightness, handleSetBrightness)
	set(wire.OpGetSaturation, handleGetSaturation)
	set(wire.OpSetSaturation, handleSetSaturation)
	set(wire.OpGetWhiteBalance, handleGetWhiteBalance)
	set(wire.OpSetWhiteBalance, handleSetWhiteBalance)
	set(wire.OpGetShutterSpeed, handleGetShutterSpeed)
	set(wire.OpSetShutterSpeed, handleSetShutterSpeed)
	set(wire.OpGetExposureMode, handleGetExposureMode)
	set(wire.OpSetExposureMode, handleSetExposureMode)
	set(wire.OpGetMeteringMode, handleGetMeteringMode)
	set(wire.OpSetMeteringMode, handleSetMeteringMode)
	set(wire.OpGetJpgQuality, handleGetJpgQuality)
	set(wire.OpSetJpgQuality, handleSetJpgQuality)
	set(wire.OpGetImageSize, handleGetImageSize)
	set(wire.OpSetImageSize, handleSetImageSize)
	set(wire.OpGetImageEffect, handleGetImageEffect)
	set(wire.OpSetImageEffect, handleSetImageEffect)
	set(wire.OpGetImageRotation, handleGetImageRotation)
	set(wire.OpSetImageRotation, handleSetImageRotation)
	set(wire.OpGetVideoBitRate, handleGetVideoBitRate)
	set(wire.OpSetVideoBitRate, handleSetVideoBitRate)
	set(wire.OpGetVideoFrameRate, handleGetVideoFrameRate)
	set(wire.OpSetVideoFrameRate, handleSetVideoFrameRate)
	set(wire.OpFileTransferOffer, nil)
	set(wire.OpFileTransferAck, nil)
	set(wire.OpCapture, handleCapture)
	set(wire.OpCaptureVideo, handleCaptureVideo)

	return t
}

// ValidateTable enforces table[i].Opcode == i for every slot, the
// build-time invariant spec §4.C requires before a service may run.
func ValidateTable(t [wire.OpCount]TableEntry) error {
	for i, entry := range t {
		if int(entry.Opcode) != i {
			return fmt.Errorf("protocol: handler table slot %d declares opcode %d", i, entry.Opcode)
		}
	}
	return nil
}

// Dispatch looks up the handler for req.Opcode and invokes it. It returns
// ok=false when the opcode is out of range or has a nil handler (unknown
// opcode, or a bare top-level file-transfer frame) — the caller must close
// the session in that case.
func Dispatch(t [wire.OpCount]TableEntry, conn net.Conn, d Driver, req wire.Frame) (ok bool, err error) {
	if int(req.Opcode) >= len(t) {
		return false, nil
	}
	entry := t[req.Opcode]
	if entry.Handler == nil {
		return false, nil
	}
	return true, entry.Handler(conn, d, req)
}
