package camera

import "github.com/feathercam/picamera/internal/wire"

// ErrorCode is the byte every public operation returns, re-exported from
// internal/wire so callers never need to import that package directly.
type ErrorCode = wire.ErrorCode

const (
	Success                = wire.Success
	DnsFailed              = wire.DnsFailed
	CameraBusy             = wire.CameraBusy
	CameraFailed           = wire.CameraFailed
	FileOpenError          = wire.FileOpenError
	FileStatError          = wire.FileStatError
	FileReadError          = wire.FileReadError
	FileWriteError         = wire.FileWriteError
	ThreadStartFailed      = wire.ThreadStartFailed
	ConnectionFailed       = wire.ConnectionFailed
	ConnectionClosed       = wire.ConnectionClosed
	ConnectionListenFailed = wire.ConnectionListenFailed
	Undefined              = wire.Undefined
)
