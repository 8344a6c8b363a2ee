// Package backend supplies the reference CaptureBackend implementation:
// building raspistill/raspivid argument strings from a camera config and
// shelling out to them. Nothing here is wire-protocol aware — it takes
// plain values and a destination path and returns an error.
//
// Grounded on original_source/PiCamera/pi_camera.cpp's
// pi_camera_cli_build_params_* family and the RaspiStill/RaspiVid
// documentation it cites.
package backend

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/juju/errors"
)

// Args mirrors the fields of wire.CameraConfig that the capture utilities
// accept as command-line flags. Kept free of any wire/camera import so
// this package has nothing to do with the protocol layer — only the
// argument-building and process-invocation concern.
type Args struct {
	EV             int8
	ISO            uint16
	Contrast       int8
	Sharpness      int8
	Brightness     uint8
	Saturation     int8
	WhiteBalance   uint8
	ShutterSpeedUs uint64
	ExposureMode   uint8
	MeteringMode   uint8
	JpgQuality     uint8
	ImageEffect    uint8
	ImageRotation  uint16
	ImageWidth     uint16
	ImageHeight    uint16
	VideoBitRate   uint32
	VideoFrameRate uint8
}

var whiteBalanceKeywords = map[uint8]string{
	0: "off", 1: "auto", 2: "sun", 3: "flash", 4: "shade",
	5: "cloudshade", 6: "horizon", 7: "tungsten", 8: "fluorescent", 9: "incandescent",
}

var exposureModeKeywords = map[uint8]string{
	0: "off", 1: "auto", 2: "snow", 3: "beach", 4: "night", 5: "sports",
	6: "backlight", 7: "spotlight", 8: "verylong", 9: "fixedfps",
	10: "fireworks", 11: "antishake", 12: "nightpreview",
}

var meteringModeKeywords = map[uint8]string{
	0: "spot", 1: "matrix", 2: "average", 3: "backlit",
}

var imageEffectKeywords = map[uint8]string{
	1: "negative", 2: "solarise", 3: "whiteboard", 4: "blackboard", 5: "sketch",
	6: "denoise", 7: "emboss", 8: "oilpaint", 9: "gpen", 10: "hatch",
	11: "pastel", 12: "watercolour", 13: "film", 14: "blur", 15: "saturation",
	// 0 (none) deliberately absent: no -ifx flag is emitted for it.
}

func appendFlag(args []string, flag, value string) []string {
	return append(args, flag, value)
}

// StillArgs builds the raspistill argument list for a still capture,
// excluding -o (the caller appends the destination path).
func StillArgs(a Args) []string {
	var args []string

	args = appendFlag(args, "-ev", strconv.Itoa(int(a.EV)))
	args = appendFlag(args, "-ISO", strconv.Itoa(int(a.ISO)))
	args = appendFlag(args, "-co", strconv.Itoa(int(a.Contrast)))
	args = appendFlag(args, "-sh", strconv.Itoa(int(a.Sharpness)))
	args = appendFlag(args, "-br", strconv.Itoa(int(a.Brightness)))
	args = appendFlag(args, "-sa", strconv.Itoa(int(a.Saturation)))

	if kw, ok := whiteBalanceKeywords[a.WhiteBalance]; ok {
		args = appendFlag(args, "-awb", kw)
	}
	if a.ShutterSpeedUs != 0 {
		args = appendFlag(args, "-ss", strconv.FormatUint(a.ShutterSpeedUs, 10))
	}
	if kw, ok := exposureModeKeywords[a.ExposureMode]; ok {
		args = appendFlag(args, "-ex", kw)
	}
	if kw, ok := meteringModeKeywords[a.MeteringMode]; ok {
		args = appendFlag(args, "-mm", kw)
	}

	args = appendFlag(args, "-q", strconv.Itoa(int(a.JpgQuality)))
	args = appendFlag(args, "-w", strconv.Itoa(int(a.ImageWidth)))
	args = appendFlag(args, "-h", strconv.Itoa(int(a.ImageHeight)))

	if kw, ok := imageEffectKeywords[a.ImageEffect]; ok {
		args = appendFlag(args, "-ifx", kw)
	}

	args = appendFlag(args, "-rot", strconv.Itoa(int(a.ImageRotation)))

	return args
}

// VideoArgs builds the raspivid argument list for the elementary-stream
// capture stage, excluding -o and -t (the caller appends the destination
// path and duration).
func VideoArgs(a Args) []string {
	var args []string

	args = appendFlag(args, "-ev", strconv.Itoa(int(a.EV)))
	args = appendFlag(args, "-ISO", strconv.Itoa(int(a.ISO)))
	args = appendFlag(args, "-co", strconv.Itoa(int(a.Contrast)))
	args = appendFlag(args, "-sh", strconv.Itoa(int(a.Sharpness)))
	args = appendFlag(args, "-br", strconv.Itoa(int(a.Brightness)))
	args = appendFlag(args, "-sa", strconv.Itoa(int(a.Saturation)))

	if kw, ok := whiteBalanceKeywords[a.WhiteBalance]; ok {
		args = appendFlag(args, "-awb", kw)
	}
	if a.ShutterSpeedUs != 0 {
		args = appendFlag(args, "-ss", strconv.FormatUint(a.ShutterSpeedUs, 10))
	}
	if kw, ok := exposureModeKeywords[a.ExposureMode]; ok {
		args = appendFlag(args, "-ex", kw)
	}
	if kw, ok := meteringModeKeywords[a.MeteringMode]; ok {
		args = appendFlag(args, "-mm", kw)
	}

	args = appendFlag(args, "-w", strconv.Itoa(int(a.ImageWidth)))
	args = appendFlag(args, "-h", strconv.Itoa(int(a.ImageHeight)))
	args = appendFlag(args, "-b", strconv.Itoa(int(a.VideoBitRate)))
	args = appendFlag(args, "-fps", strconv.Itoa(int(a.VideoFrameRate)))

	if kw, ok := imageEffectKeywords[a.ImageEffect]; ok {
		args = appendFlag(args, "-ifx", kw)
	}

	args = appendFlag(args, "-rot", strconv.Itoa(int(a.ImageRotation)))

	return args
}

// Backend is the reference CaptureBackend: it shells out to raspistill
// for stills, and to raspivid + MP4Box for video (raw H.264 elementary
// stream repackaged into an MP4 container, the pipeline the original
// RaspiVid tooling documentation points at).
type Backend struct {
	// StillCommand/VideoCommand/MuxCommand let tests substitute a fake
	// executable; they default to the real utility names.
	StillCommand string
	VideoCommand string
	MuxCommand   string
}

// NewBackend returns a Backend wired to the real raspistill/raspivid/MP4Box
// binaries.
func NewBackend() *Backend {
	return &Backend{StillCommand: "raspistill", VideoCommand: "raspivid", MuxCommand: "MP4Box"}
}

// CaptureStill runs raspistill with args built from a and writes destPath.
func (b *Backend) CaptureStill(ctx context.Context, a Args, destPath string) error {
	args := append(StillArgs(a), "-o", destPath)
	cmd := exec.CommandContext(ctx, b.command(b.StillCommand, "raspistill"), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Annotatef(err, "backend: raspistill failed: %s", string(out))
	}
	return nil
}

// CaptureVideo runs raspivid for durationSeconds into a scratch elementary
// stream file, then repackages it into destPath (an MP4 container) via
// MP4Box. The scratch file is always removed before returning.
func (b *Backend) CaptureVideo(ctx context.Context, a Args, durationSeconds uint32, destPath string) error {
	rawPath := destPath + ".h264"
	defer removeQuiet(rawPath)

	args := append(VideoArgs(a), "-o", rawPath, "-t", strconv.Itoa(int(durationSeconds)*1000))
	cmd := exec.CommandContext(ctx, b.command(b.VideoCommand, "raspivid"), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Annotatef(err, "backend: raspivid failed: %s", string(out))
	}

	muxCmd := exec.CommandContext(ctx, b.command(b.MuxCommand, "MP4Box"), "-add", rawPath, destPath)
	if out, err := muxCmd.CombinedOutput(); err != nil {
		return errors.Annotatef(err, "backend: MP4Box failed: %s", string(out))
	}

	return nil
}

func (b *Backend) command(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}

// WithTimeout is a small convenience for callers that want a capture
// bounded to, e.g., the video duration plus a grace period.
func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, d)
}

func removeQuiet(path string) {
	_ = os.Remove(path)
}
