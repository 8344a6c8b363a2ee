package camera

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu sync.Mutex

	stillCalls int
	videoCalls int

	stillErr ErrorCode
	videoErr ErrorCode

	// duringStill, if set, runs inside CaptureStill while the capture is
	// in progress.
	duringStill func()
}

func (b *fakeBackend) CaptureStill(cfg CameraConfig, destPath string) ErrorCode {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stillCalls++
	if b.duringStill != nil {
		b.duringStill()
	}
	if b.stillErr != Success {
		return b.stillErr
	}
	_ = os.WriteFile(destPath, []byte("jpeg"), 0o644)
	return Success
}

func (b *fakeBackend) CaptureVideo(cfg CameraConfig, durationSeconds uint32, destPath string) ErrorCode {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.videoCalls++
	if b.videoErr != Success {
		return b.videoErr
	}
	_ = os.WriteFile(destPath, []byte("mp4"), 0o644)
	return Success
}

func TestSetISOClampsOutOfRangeValue(t *testing.T) {
	h := OpenLocalWithBackend(&fakeBackend{})
	ec := h.SetISO(9000)
	require.Equal(t, Success, ec)

	got, ec := h.GetISO()
	require.Equal(t, Success, ec)
	require.LessOrEqual(t, got, uint16(800))
}

func TestSetEVClampsToDeclaredRange(t *testing.T) {
	h := OpenLocalWithBackend(&fakeBackend{})
	ec := h.SetEV(-100)
	require.Equal(t, Success, ec)

	got, ec := h.GetEV()
	require.Equal(t, Success, ec)
	require.GreaterOrEqual(t, got, int8(-10))
}

func TestCaptureMarksBusyDuringBackendCall(t *testing.T) {
	fb := &fakeBackend{}
	h := OpenLocalWithBackend(fb)

	busy, ec := h.IsBusy()
	require.Equal(t, Success, ec)
	require.False(t, busy)

	var busyDuring bool
	fb.duringStill = func() { busyDuring, _ = h.IsBusy() }

	destPath := filepath.Join(t.TempDir(), "out.jpg")
	ec = h.Capture(destPath)
	require.Equal(t, Success, ec)
	require.Equal(t, 1, fb.stillCalls)
	require.True(t, busyDuring, "busy flag must be set while the backend runs")

	busy, ec = h.IsBusy()
	require.Equal(t, Success, ec)
	require.False(t, busy, "busy flag must be released once capture completes")
}

func TestCaptureSurfacesBackendFailure(t *testing.T) {
	fb := &fakeBackend{stillErr: CameraFailed}
	h := OpenLocalWithBackend(fb)

	ec := h.Capture(filepath.Join(t.TempDir(), "out.jpg"))
	require.Equal(t, CameraFailed, ec)
}
