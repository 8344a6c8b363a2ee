package camera

import (
	"net"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/juju/errors"

	"github.com/feathercam/picamera/internal/netio"
	"github.com/feathercam/picamera/internal/protocol"
	"github.com/feathercam/picamera/internal/wire"
)

var errUnknownOpcode = errors.New("camera: session sent an undispatchable opcode")

// Session is one connection a Service has accepted. It has no driver of
// its own — every Get/Set it answers reads and writes the owning Service's
// embedded localDriver, which is shared by every concurrently connected
// Session. ID identifies this session in the service's log lines,
// independent of its (reusable) remote address.
type Session struct {
	mu     sync.Mutex
	conn   net.Conn
	closed bool

	ID      string
	service *Service
}

func newSessionID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// RemoteAddr reports the address of the connected peer, or "" if closed.
func (s *Session) RemoteAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ""
	}
	return s.conn.RemoteAddr().String()
}

func (s *Session) connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

func (s *Session) closedState() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close tears down the session's connection. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// pollOnce probes the session's connection for one pending frame and, if
// one is ready, dispatches it against driver using table. A non-nil return
// means the session is no longer usable and must be dropped — either
// because of a transport failure or because the peer sent an opcode with
// no handler (an unknown opcode or a bare file-transfer frame), which spec
// §4.C treats as grounds to close the connection outright.
func (s *Session) pollOnce(table [wire.OpCount]protocol.TableEntry, driver *localDriver) error {
	s.mu.Lock()
	conn := s.conn
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil
	}

	req, ready, err := netio.TryReadFrameHeader(conn)
	if err != nil {
		return err
	}
	if !ready {
		return nil
	}

	ok, err := protocol.Dispatch(table, conn, driver, req)
	if !ok {
		return errUnknownOpcode
	}
	return err
}
