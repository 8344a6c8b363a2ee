package camera

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/elgs/gostrgen"
	"github.com/rs/zerolog"

	"github.com/feathercam/picamera/internal/backend"
)

// localDriver is the authoritative camera state described in spec §4.F: a
// CameraConfig, a busy flag, image/video counters used to name temp
// capture files, and the derived raspistill/raspivid argument strings
// rebuilt after every setter. Every Local and Service handle owns exactly
// one; a Service's embedded localDriver is the single source of truth for
// every session's reads and writes (spec §3's invariant), enforced here by
// guarding all state behind mu — resolving the open concurrency question
// in spec §5 with a mutex rather than routing calls through the worker.
type localDriver struct {
	mu sync.Mutex

	cfg  CameraConfig
	busy bool

	backend CaptureBackend
	tempDir string

	imageCounter uint32
	videoCounter uint32

	stillArgs []string
	videoArgs []string

	log zerolog.Logger
}

func newLocalDriver(cb CaptureBackend, log zerolog.Logger) *localDriver {
	l := &localDriver{
		cfg:     DefaultConfig(),
		backend: cb,
		tempDir: os.TempDir(),
		log:     log,
	}
	l.rebuildArgsLocked()
	return l
}

// rebuildArgsLocked recomputes the derived still/video argument strings.
// Callers must hold mu.
func (l *localDriver) rebuildArgsLocked() {
	a := toBackendArgs(l.cfg)
	l.stillArgs = backend.StillArgs(a)
	l.videoArgs = backend.VideoArgs(a)
}

func (l *localDriver) setConfigLocked(cfg CameraConfig) {
	l.cfg = Clamp(cfg)
	l.rebuildArgsLocked()
}

func (l *localDriver) IsBusy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

func (l *localDriver) GetConfig() CameraConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

func (l *localDriver) SetConfig(cfg CameraConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setConfigLocked(cfg)
}

func (l *localDriver) GetEV() int8 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.EV }
func (l *localDriver) SetEV(v int8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.EV = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetISO() uint16 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.ISO }
func (l *localDriver) SetISO(v uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.ISO = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetContrast() int8 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.Contrast }
func (l *localDriver) SetContrast(v int8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Contrast = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetSharpness() int8 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.Sharpness }
func (l *localDriver) SetSharpness(v int8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Sharpness = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetBrightness() uint8 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.Brightness }
func (l *localDriver) SetBrightness(v uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Brightness = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetSaturation() int8 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.Saturation }
func (l *localDriver) SetSaturation(v int8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Saturation = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetWhiteBalance() WhiteBalance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.WhiteBalance
}
func (l *localDriver) SetWhiteBalance(v WhiteBalance) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.WhiteBalance = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetShutterSpeed() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.ShutterSpeedUs
}
func (l *localDriver) SetShutterSpeed(v uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.ShutterSpeedUs = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetExposureMode() ExposureMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.ExposureMode
}
func (l *localDriver) SetExposureMode(v ExposureMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.ExposureMode = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetMeteringMode() MeteringMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.MeteringMode
}
func (l *localDriver) SetMeteringMode(v MeteringMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.MeteringMode = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetJpgQuality() uint8 { l.mu.Lock(); defer l.mu.Unlock(); return l.cfg.JpgQuality }
func (l *localDriver) SetJpgQuality(v uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.JpgQuality = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetImageSize() (uint16, uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.ImageWidth, l.cfg.ImageHeight
}
func (l *localDriver) SetImageSize(width, height uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.ImageWidth = width
	l.cfg.ImageHeight = height
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetImageEffect() ImageEffect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.ImageEffect
}
func (l *localDriver) SetImageEffect(v ImageEffect) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.ImageEffect = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetImageRotation() uint16 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.ImageRotation
}
func (l *localDriver) SetImageRotation(v uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.ImageRotation = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetVideoBitRate() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.VideoBitRate
}
func (l *localDriver) SetVideoBitRate(v uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.VideoBitRate = v
	l.setConfigLocked(l.cfg)
}

func (l *localDriver) GetVideoFrameRate() uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.VideoFrameRate
}
func (l *localDriver) SetVideoFrameRate(v uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.VideoFrameRate = v
	l.setConfigLocked(l.cfg)
}

// tempSuffix generates the gostrgen-based disambiguator appended to every
// counter-named temp file, so two rapid captures across different sessions
// never collide even if a previous temp file hasn't been cleaned up yet.
func tempSuffix() string {
	s, err := gostrgen.RandGen(6, gostrgen.LowerUpperDigit, "", "")
	if err != nil {
		return "000000"
	}
	return s
}

// Capture runs a still capture if the driver is not busy, marking it busy
// for the duration of the backend call (spec §9's note: the reference
// source never actually sets this flag; this implementation does).
func (l *localDriver) Capture() (string, ErrorCode) {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return "", CameraBusy
	}
	l.busy = true
	l.imageCounter++
	n := l.imageCounter
	cfg := l.cfg
	l.mu.Unlock()

	path := filepath.Join(l.tempDir, fmt.Sprintf("picam_img_%04d_%s.jpg", n, tempSuffix()))

	ec := l.backend.CaptureStill(cfg, path)

	l.mu.Lock()
	l.busy = false
	l.mu.Unlock()

	if ec != Success {
		l.log.Warn().Uint32("counter", n).Str("code", ec.String()).Msg("still capture failed")
		return "", ec
	}
	return path, Success
}

// CaptureVideo runs a video capture for seconds, same busy-flag discipline
// as Capture.
func (l *localDriver) CaptureVideo(seconds uint32) (string, ErrorCode) {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return "", CameraBusy
	}
	l.busy = true
	l.videoCounter++
	n := l.videoCounter
	cfg := l.cfg
	l.mu.Unlock()

	path := filepath.Join(l.tempDir, fmt.Sprintf("picam_vid_%04d_%s.mp4", n, tempSuffix()))

	ec := l.backend.CaptureVideo(cfg, seconds, path)

	l.mu.Lock()
	l.busy = false
	l.mu.Unlock()

	if ec != Success {
		l.log.Warn().Uint32("counter", n).Str("code", ec.String()).Msg("video capture failed")
		return "", ec
	}
	return path, Success
}
