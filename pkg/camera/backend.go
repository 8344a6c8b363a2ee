package camera

import (
	"context"
	"time"

	"github.com/feathercam/picamera/internal/backend"
)

// CaptureBackend is the external collaborator spec §1/§4.E describe: it
// turns a config plus a destination path into a file on disk. Local's
// capture path delegates to one; the reference implementation
// (NewRaspberryPiBackend) shells out to raspistill/raspivid, but any
// implementation satisfying this interface can be plugged in via
// OpenLocalWithBackend or ServiceConfig.Backend.
type CaptureBackend interface {
	CaptureStill(cfg CameraConfig, destPath string) ErrorCode
	CaptureVideo(cfg CameraConfig, durationSeconds uint32, destPath string) ErrorCode
}

// raspberryPiBackend adapts internal/backend's exec-based implementation
// (which knows nothing about wire.CameraConfig) to the CaptureBackend
// interface.
type raspberryPiBackend struct {
	impl *backend.Backend
}

// NewRaspberryPiBackend returns the reference CaptureBackend: raspistill
// for stills, raspivid+MP4Box for video.
func NewRaspberryPiBackend() CaptureBackend {
	return &raspberryPiBackend{impl: backend.NewBackend()}
}

func toBackendArgs(cfg CameraConfig) backend.Args {
	return backend.Args{
		EV:             cfg.EV,
		ISO:            cfg.ISO,
		Contrast:       cfg.Contrast,
		Sharpness:      cfg.Sharpness,
		Brightness:     cfg.Brightness,
		Saturation:     cfg.Saturation,
		WhiteBalance:   uint8(cfg.WhiteBalance),
		ShutterSpeedUs: cfg.ShutterSpeedUs,
		ExposureMode:   uint8(cfg.ExposureMode),
		MeteringMode:   uint8(cfg.MeteringMode),
		JpgQuality:     cfg.JpgQuality,
		ImageEffect:    uint8(cfg.ImageEffect),
		ImageRotation:  cfg.ImageRotation,
		ImageWidth:     cfg.ImageWidth,
		ImageHeight:    cfg.ImageHeight,
		VideoBitRate:   cfg.VideoBitRate,
		VideoFrameRate: cfg.VideoFrameRate,
	}
}

func (b *raspberryPiBackend) CaptureStill(cfg CameraConfig, destPath string) ErrorCode {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.impl.CaptureStill(ctx, toBackendArgs(cfg), destPath); err != nil {
		return CameraFailed
	}
	return Success
}

func (b *raspberryPiBackend) CaptureVideo(cfg CameraConfig, durationSeconds uint32, destPath string) ErrorCode {
	ctx, cancel := backend.WithTimeout(context.Background(), time.Duration(durationSeconds)*time.Second+30*time.Second)
	defer cancel()

	if err := b.impl.CaptureVideo(ctx, toBackendArgs(cfg), durationSeconds, destPath); err != nil {
		return CameraFailed
	}
	return Success
}
