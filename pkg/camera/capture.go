package camera

import (
	"github.com/feathercam/picamera/internal/filetransfer"
	"github.com/feathercam/picamera/internal/protocol"
)

// Capture takes a still photo and writes it to destPath. On a Local,
// Service, or Session handle this runs the backend directly and moves the
// resulting temp file to destPath; on a Remote handle it triggers the
// service's capture over the wire and streams the result down via
// internal/filetransfer.
func (h *Handle) Capture(destPath string) ErrorCode {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		return h.captureLocal(destPath, false, 0)
	case KindRemote:
		return h.captureRemote(destPath, false, 0)
	default:
		return Undefined
	}
}

// CaptureVideo records seconds of video and writes it to destPath.
func (h *Handle) CaptureVideo(destPath string, seconds uint32) ErrorCode {
	switch h.kind {
	case KindLocal, KindService, KindSession:
		return h.captureLocal(destPath, true, seconds)
	case KindRemote:
		return h.captureRemote(destPath, true, seconds)
	default:
		return Undefined
	}
}

func (h *Handle) captureLocal(destPath string, video bool, seconds uint32) ErrorCode {
	ld := h.localState()
	if ld == nil {
		return Undefined
	}

	var tmpPath string
	var ec ErrorCode
	if video {
		tmpPath, ec = ld.CaptureVideo(seconds)
	} else {
		tmpPath, ec = ld.Capture()
	}
	h.reportCaptureResult(video, ec)
	if ec != Success {
		return ec
	}
	defer removeQuiet(tmpPath)

	if err := moveFile(tmpPath, destPath); err != nil {
		return FileWriteError
	}
	return Success
}

// reportCaptureResult notifies a Service's metrics hook, if any, of a
// direct (non-wire) capture triggered through this Handle. Sessions report
// through their owning Service; Local has no hooks to call.
func (h *Handle) reportCaptureResult(video bool, ec ErrorCode) {
	var hooks *ServiceHooks
	switch h.kind {
	case KindService:
		hooks = &h.service.hooks
	case KindSession:
		hooks = &h.session.service.hooks
	}
	if hooks != nil && hooks.OnCaptureResult != nil {
		hooks.OnCaptureResult(video, ec)
	}
}

func (h *Handle) captureRemote(destPath string, video bool, seconds uint32) ErrorCode {
	h.remote.mu.Lock()
	defer h.remote.mu.Unlock()

	if h.remote.conn == nil {
		return ConnectionClosed
	}

	if video {
		resp, err := protocol.BeginCaptureVideo(h.remote.conn, seconds)
		if err != nil {
			h.remote.closeLocked()
			return ConnectionClosed
		}
		ec := filetransfer.Receive(h.remote.conn, resp, destPath, nil)
		if ec == ConnectionClosed {
			h.remote.closeLocked()
		}
		return ec
	}

	resp, err := protocol.BeginCapture(h.remote.conn)
	if err != nil {
		h.remote.closeLocked()
		return ConnectionClosed
	}
	ec := filetransfer.Receive(h.remote.conn, resp, destPath, nil)
	if ec == ConnectionClosed {
		h.remote.closeLocked()
	}
	return ec
}
