package camera

import (
	"net"

	"github.com/feathercam/picamera/internal/protocol"
	"github.com/feathercam/picamera/internal/wire"
)

// getField and setField collapse the four-way Local/Remote/Service/Session
// dispatch shared by every scalar field into one generic pair: Local,
// Service, and Session all read the same embedded localDriver directly,
// while Remote issues the matching internal/protocol RPC. This mirrors the
// Begin*/complete* generic helpers in internal/protocol itself, just one
// layer up.
func getField[T any](h *Handle, localFn func(*localDriver) T, remoteFn func(net.Conn) (T, wire.ErrorCode)) (T, ErrorCode) {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		ld := h.localState()
		if ld == nil {
			var zero T
			return zero, Undefined
		}
		return localFn(ld), Success
	case KindRemote:
		h.remote.mu.Lock()
		defer h.remote.mu.Unlock()
		if h.remote.conn == nil {
			var zero T
			return zero, ConnectionClosed
		}
		v, ec := remoteFn(h.remote.conn)
		if ec == ConnectionClosed {
			h.remote.closeLocked()
		}
		return v, ec
	default:
		var zero T
		return zero, Undefined
	}
}

func setField[T any](h *Handle, v T, localFn func(*localDriver, T), remoteFn func(net.Conn, T) wire.ErrorCode) ErrorCode {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		ld := h.localState()
		if ld == nil {
			return Undefined
		}
		localFn(ld, v)
		return Success
	case KindRemote:
		h.remote.mu.Lock()
		defer h.remote.mu.Unlock()
		if h.remote.conn == nil {
			return ConnectionClosed
		}
		ec := remoteFn(h.remote.conn, v)
		if ec == ConnectionClosed {
			h.remote.closeLocked()
		}
		return ec
	default:
		return Undefined
	}
}

// IsBusy reports whether a capture is currently in flight.
func (h *Handle) IsBusy() (bool, ErrorCode) {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		return h.localState().IsBusy(), Success
	case KindRemote:
		h.remote.mu.Lock()
		defer h.remote.mu.Unlock()
		if h.remote.conn == nil {
			return false, ConnectionClosed
		}
		busy, ec := protocol.BeginIsBusy(h.remote.conn)
		if ec == ConnectionClosed {
			h.remote.closeLocked()
		}
		return busy, ec
	default:
		return false, Undefined
	}
}

func (h *Handle) GetConfig() (CameraConfig, ErrorCode) {
	return getField(h, (*localDriver).GetConfig, protocol.BeginGetConfig)
}
func (h *Handle) SetConfig(v CameraConfig) ErrorCode {
	return setField(h, v, (*localDriver).SetConfig, protocol.BeginSetConfig)
}

func (h *Handle) GetEV() (int8, ErrorCode) { return getField(h, (*localDriver).GetEV, protocol.BeginGetEV) }
func (h *Handle) SetEV(v int8) ErrorCode   { return setField(h, v, (*localDriver).SetEV, protocol.BeginSetEV) }

func (h *Handle) GetISO() (uint16, ErrorCode) {
	return getField(h, (*localDriver).GetISO, protocol.BeginGetISO)
}
func (h *Handle) SetISO(v uint16) ErrorCode {
	return setField(h, v, (*localDriver).SetISO, protocol.BeginSetISO)
}

func (h *Handle) GetContrast() (int8, ErrorCode) {
	return getField(h, (*localDriver).GetContrast, protocol.BeginGetContrast)
}
func (h *Handle) SetContrast(v int8) ErrorCode {
	return setField(h, v, (*localDriver).SetContrast, protocol.BeginSetContrast)
}

func (h *Handle) GetSharpness() (int8, ErrorCode) {
	return getField(h, (*localDriver).GetSharpness, protocol.BeginGetSharpness)
}
func (h *Handle) SetSharpness(v int8) ErrorCode {
	return setField(h, v, (*localDriver).SetSharpness, protocol.BeginSetSharpness)
}

func (h *Handle) GetBrightness() (uint8, ErrorCode) {
	return getField(h, (*localDriver).GetBrightness, protocol.BeginGetBrightness)
}
func (h *Handle) SetBrightness(v uint8) ErrorCode {
	return setField(h, v, (*localDriver).SetBrightness, protocol.BeginSetBrightness)
}

func (h *Handle) GetSaturation() (int8, ErrorCode) {
	return getField(h, (*localDriver).GetSaturation, protocol.BeginGetSaturation)
}
func (h *Handle) SetSaturation(v int8) ErrorCode {
	return setField(h, v, (*localDriver).SetSaturation, protocol.BeginSetSaturation)
}

func (h *Handle) GetWhiteBalance() (WhiteBalance, ErrorCode) {
	return getField(h, (*localDriver).GetWhiteBalance, protocol.BeginGetWhiteBalance)
}
func (h *Handle) SetWhiteBalance(v WhiteBalance) ErrorCode {
	return setField(h, v, (*localDriver).SetWhiteBalance, protocol.BeginSetWhiteBalance)
}

func (h *Handle) GetShutterSpeed() (uint64, ErrorCode) {
	return getField(h, (*localDriver).GetShutterSpeed, protocol.BeginGetShutterSpeed)
}
func (h *Handle) SetShutterSpeed(v uint64) ErrorCode {
	return setField(h, v, (*localDriver).SetShutterSpeed, protocol.BeginSetShutterSpeed)
}

func (h *Handle) GetExposureMode() (ExposureMode, ErrorCode) {
	return getField(h, (*localDriver).GetExposureMode, protocol.BeginGetExposureMode)
}
func (h *Handle) SetExposureMode(v ExposureMode) ErrorCode {
	return setField(h, v, (*localDriver).SetExposureMode, protocol.BeginSetExposureMode)
}

func (h *Handle) GetMeteringMode() (MeteringMode, ErrorCode) {
	return getField(h, (*localDriver).GetMeteringMode, protocol.BeginGetMeteringMode)
}
func (h *Handle) SetMeteringMode(v MeteringMode) ErrorCode {
	return setField(h, v, (*localDriver).SetMeteringMode, protocol.BeginSetMeteringMode)
}

func (h *Handle) GetJpgQuality() (uint8, ErrorCode) {
	return getField(h, (*localDriver).GetJpgQuality, protocol.BeginGetJpgQuality)
}
func (h *Handle) SetJpgQuality(v uint8) ErrorCode {
	return setField(h, v, (*localDriver).SetJpgQuality, protocol.BeginSetJpgQuality)
}

func (h *Handle) GetImageEffect() (ImageEffect, ErrorCode) {
	return getField(h, (*localDriver).GetImageEffect, protocol.BeginGetImageEffect)
}
func (h *Handle) SetImageEffect(v ImageEffect) ErrorCode {
	return setField(h, v, (*localDriver).SetImageEffect, protocol.BeginSetImageEffect)
}

func (h *Handle) GetImageRotation() (uint16, ErrorCode) {
	return getField(h, (*localDriver).GetImageRotation, protocol.BeginGetImageRotation)
}
func (h *Handle) SetImageRotation(v uint16) ErrorCode {
	return setField(h, v, (*localDriver).SetImageRotation, protocol.BeginSetImageRotation)
}

func (h *Handle) GetVideoBitRate() (uint32, ErrorCode) {
	return getField(h, (*localDriver).GetVideoBitRate, protocol.BeginGetVideoBitRate)
}
func (h *Handle) SetVideoBitRate(v uint32) ErrorCode {
	return setField(h, v, (*localDriver).SetVideoBitRate, protocol.BeginSetVideoBitRate)
}

func (h *Handle) GetVideoFrameRate() (uint8, ErrorCode) {
	return getField(h, (*localDriver).GetVideoFrameRate, protocol.BeginGetVideoFrameRate)
}
func (h *Handle) SetVideoFrameRate(v uint8) ErrorCode {
	return setField(h, v, (*localDriver).SetVideoFrameRate, protocol.BeginSetVideoFrameRate)
}

// GetImageSize and SetImageSize are the two fields that don't fit the
// single-value generic shape above.
func (h *Handle) GetImageSize() (uint16, uint16, ErrorCode) {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		w, ht := h.localState().GetImageSize()
		return w, ht, Success
	case KindRemote:
		h.remote.mu.Lock()
		defer h.remote.mu.Unlock()
		if h.remote.conn == nil {
			return 0, 0, ConnectionClosed
		}
		w, ht, ec := protocol.BeginGetImageSize(h.remote.conn)
		if ec == ConnectionClosed {
			h.remote.closeLocked()
		}
		return w, ht, ec
	default:
		return 0, 0, Undefined
	}
}

func (h *Handle) SetImageSize(width, height uint16) ErrorCode {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		h.localState().SetImageSize(width, height)
		return Success
	case KindRemote:
		h.remote.mu.Lock()
		defer h.remote.mu.Unlock()
		if h.remote.conn == nil {
			return ConnectionClosed
		}
		ec := protocol.BeginSetImageSize(h.remote.conn, width, height)
		if ec == ConnectionClosed {
			h.remote.closeLocked()
		}
		return ec
	default:
		return Undefined
	}
}
