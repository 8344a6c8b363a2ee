// Package protocol implements the begin/complete pairs for every opcode in
// internal/wire's operation table, plus the service-side handler table that
// dispatches a decoded request to a Driver. It knows nothing about how a
// Driver is implemented — pkg/camera's local driver is the only one today,
// but the interface keeps this package free of that dependency.
package protocol

import "github.com/feathercam/picamera/internal/wire"

// Driver is everything a service handler needs from the camera backing a
// session. pkg/camera's local driver implements it; tests use a fake.
type Driver interface {
	IsBusy() bool

	GetEV() int8
	SetEV(int8)
	GetISO() uint16
	SetISO(uint16)
	GetConfig() wire.CameraConfig
	SetConfig(wire.CameraConfig)
	GetContrast() int8
	SetContrast(int8)
	GetSharpness() int8
	SetSharpness(int8)
	GetBrightness() uint8
	SetBrightness(uint8)
	GetSaturation() int8
	SetSaturation(int8)
	GetWhiteBalance() wire.WhiteBalance
	SetWhiteBalance(wire.WhiteBalance)
	GetShutterSpeed() uint64
	SetShutterSpeed(uint64)
	GetExposureMode() wire.ExposureMode
	SetExposureMode(wire.ExposureMode)
	GetMeteringMode() wire.MeteringMode
	SetMeteringMode(wire.MeteringMode)
	GetJpgQuality() uint8
	SetJpgQuality(uint8)
	GetImageSize() (uint16, uint16)
	SetImageSize(uint16, uint16)
	GetImageEffect() wire.ImageEffect
	SetImageEffect(wire.ImageEffect)
	GetImageRotation() uint16
	SetImageRotation(uint16)
	GetVideoBitRate() uint32
	SetVideoBitRate(uint32)
	GetVideoFrameRate() uint8
	SetVideoFrameRate(uint8)

	// Capture and CaptureVideo run the backend synchronously, choosing and
	// returning the temp file path they wrote on success. The caller (the
	// service's handler) owns deleting that file once the file-transfer
	// sub-protocol (internal/filetransfer) has moved it to the client.
	Capture() (path string, ec wire.ErrorCode)
	CaptureVideo(seconds uint32) (path string, ec wire.ErrorCode)
}
