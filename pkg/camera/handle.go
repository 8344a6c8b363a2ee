package camera

import (
	"github.com/juju/errors"
	"github.com/rs/zerolog"
)

// Kind discriminates the four shapes a Handle can take. The operation set
// is closed and small enough that a tagged union dispatched with a switch
// reads clearer than an interface with four implementations, especially
// since every Kind shares the bulk of its Get/Set surface.
type Kind int

const (
	// KindLocal drives a camera attached to this process directly.
	KindLocal Kind = iota
	// KindRemote is a client connected to a KindService elsewhere.
	KindRemote
	// KindService listens for KindRemote clients and serves their requests
	// against its own embedded local driver.
	KindService
	// KindSession is one connection accepted by a KindService.
	KindSession
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	case KindService:
		return "service"
	case KindSession:
		return "session"
	default:
		return "undefined"
	}
}

// Handle is the single public entry point for every camera operation: get
// and set each field, query busy state, capture a still or video, and
// inspect what kind of handle this is. Exactly one of the embedded
// variants is populated, selected by Kind.
type Handle struct {
	kind Kind

	local   *localDriver
	remote  *remoteClient
	service *Service
	session *Session
}

// ErrWrongKind is returned by any operation not valid for a Handle's Kind
// (e.g. RunService on a Handle that is not a Service).
var ErrWrongKind = errors.New("camera: operation not valid for this handle kind")

// OpenLocal returns a Handle driving a camera attached to this process,
// using the reference raspistill/raspivid backend. Use OpenLocalWithBackend
// to substitute a fake for testing.
func OpenLocal() *Handle {
	return OpenLocalWithBackend(NewRaspberryPiBackend())
}

// OpenLocalWithBackend is OpenLocal with an explicit CaptureBackend.
func OpenLocalWithBackend(cb CaptureBackend) *Handle {
	return &Handle{kind: KindLocal, local: newLocalDriver(cb, zerolog.Nop())}
}

// Kind reports which of the four roles this Handle plays.
func (h *Handle) Kind() Kind { return h.kind }

func (h *Handle) IsLocal() bool   { return h.kind == KindLocal }
func (h *Handle) IsRemote() bool  { return h.kind == KindRemote }
func (h *Handle) IsService() bool { return h.kind == KindService }
func (h *Handle) IsSession() bool { return h.kind == KindSession }

// IsConnected reports whether a Remote's transport or a Session's accepted
// connection is currently usable. Local has no transport to lose and always
// reports true; a Service answers the question about its own listener
// rather than a peer, reporting true while it is Listening or Running.
func (h *Handle) IsConnected() bool {
	switch h.kind {
	case KindLocal:
		return true
	case KindRemote:
		return h.remote.connected()
	case KindService:
		return h.service.listening()
	case KindSession:
		return h.session.connected()
	default:
		return false
	}
}

// Close releases whatever transport or listener this Handle owns. It is a
// no-op for Local.
func (h *Handle) Close() error {
	switch h.kind {
	case KindLocal:
		return nil
	case KindRemote:
		return h.remote.close()
	case KindService:
		return h.service.Stop()
	case KindSession:
		return h.session.Close()
	default:
		return ErrWrongKind
	}
}

// localState returns the Driver-shaped value backing a Local, Service, or
// Session handle: all three ultimately read and write the same embedded
// localDriver. Remote has no local driver — callers must branch on Kind
// before reaching here.
func (h *Handle) localState() *localDriver {
	switch h.kind {
	case KindLocal:
		return h.local
	case KindService:
		return h.service.driver
	case KindSession:
		return h.session.service.driver
	default:
		return nil
	}
}
