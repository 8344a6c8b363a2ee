// Package wire implements the binary frame format and config layout shared
// by every role in the camera protocol: a 6-byte header followed by an
// optional payload, and a fixed 31-byte packed encoding of CameraConfig.
package wire

// ErrorCode is the single byte carried in every frame header. Zero means
// success; every other value names a specific failure so the caller never
// has to guess which layer produced it.
type ErrorCode uint8

const (
	Success ErrorCode = iota
	DnsFailed
	CameraBusy
	CameraFailed
	FileOpenError
	FileStatError
	FileReadError
	FileWriteError
	ThreadStartFailed
	ConnectionFailed
	ConnectionClosed
	ConnectionListenFailed

	// Undefined is returned when a handle's role is not handled by a
	// dispatch switch — it should only ever be observed if a new Kind
	// is added without updating every switch, so treat it as a bug guard.
	Undefined
)

var errorStrings = map[ErrorCode]string{
	Success:                "Success",
	DnsFailed:              "DNS resolution failed",
	CameraBusy:             "Camera busy",
	CameraFailed:           "Camera failed",
	FileOpenError:          "File open error",
	FileStatError:          "File stat error",
	FileReadError:          "File read error",
	FileWriteError:         "File write error",
	ThreadStartFailed:      "Thread start failed",
	ConnectionFailed:       "Connection failed",
	ConnectionClosed:       "Connection closed",
	ConnectionListenFailed: "Connection listen failed",
	Undefined:              "Undefined",
}

func (e ErrorCode) String() string {
	if s, ok := errorStrings[e]; ok {
		return s
	}
	return "Undefined"
}

// Error satisfies the error interface so an ErrorCode can be returned
// directly from internal plumbing that prefers Go's error convention over
// a bare byte.
func (e ErrorCode) Error() string {
	return e.String()
}
