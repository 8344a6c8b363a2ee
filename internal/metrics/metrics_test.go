package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feathercam/picamera/pkg/camera"
)

func TestNewRecorderRepeatedlyDoesNotPanicOnDuplicateDescribe(t *testing.T) {
	require.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			NewRecorder()
		}
	})
}

func TestHealthzReflectsMarkStopped(t *testing.T) {
	r := NewRecorder()
	srv := httptest.NewServer(r.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	r.MarkStopped()

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestMetricsRouteServesPrometheusFormat(t *testing.T) {
	r := NewRecorder()
	hooks := r.Hooks()
	hooks.OnTick(3, 10*time.Millisecond)
	hooks.OnCaptureResult(false, camera.Success)
	hooks.OnCaptureResult(true, camera.CameraFailed)

	srv := httptest.NewServer(r.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `picamera_captures_total{kind="still",result="success"} 1`)
}
