package camera

import (
	"net"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/feathercam/picamera/internal/netio"
	"github.com/feathercam/picamera/internal/protocol"
	"github.com/feathercam/picamera/internal/wire"
)

// ServiceState is the state machine a Service moves through: New before
// Listen, Listening once bound but before the poll loop starts, Running
// while Run is looping, Stopping while shutdown is closing every session
// and the listener, and Stopped once that teardown is done.
type ServiceState int

const (
	ServiceNew ServiceState = iota
	ServiceListening
	ServiceRunning
	ServiceStopping
	ServiceStopped
)

func (s ServiceState) String() string {
	switch s {
	case ServiceNew:
		return "new"
	case ServiceListening:
		return "listening"
	case ServiceRunning:
		return "running"
	case ServiceStopping:
		return "stopping"
	case ServiceStopped:
		return "stopped"
	default:
		return "undefined"
	}
}

// ServiceHooks lets a caller (cmd/picamerad's metrics wiring) observe the
// poll loop without the Service package depending on Prometheus directly.
type ServiceHooks struct {
	OnTick           func(activeSessions int, duration time.Duration)
	OnSessionOpened  func()
	OnSessionClosed  func()
	OnCaptureResult  func(video bool, ec wire.ErrorCode)
}

// Service listens for Remote clients and answers their requests against a
// single embedded local driver shared by every accepted Session — the
// concurrency model spec §5 leaves open, resolved here by guarding the
// driver's state with localDriver's own mutex rather than funnelling every
// request through a worker goroutine.
type Service struct {
	mu sync.Mutex

	state    ServiceState
	listener *net.TCPListener
	driver   *localDriver

	maxConnections int
	tickRateHz     float64
	sessions       []*Session

	table [wire.OpCount]protocol.TableEntry
	hooks ServiceHooks

	log zerolog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// ServiceConfig configures OpenService. TickRateHz resolves the open
// question of a fixed poll rate: spec left it a build-time constant in the
// original source, but this implementation makes it configurable with a
// sensible default.
type ServiceConfig struct {
	Host           string
	Port           uint16
	MaxConnections int
	TickRateHz     float64
	Backend        CaptureBackend
	Logger         zerolog.Logger
	Hooks          ServiceHooks
}

const DefaultTickRateHz = 2.0

// OpenService binds a listening socket and returns a Handle of KindService
// in state ServiceListening. Call Run to start accepting and polling.
func OpenService(cfg ServiceConfig) (*Handle, ErrorCode) {
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = 1
	}
	if cfg.TickRateHz <= 0 {
		cfg.TickRateHz = DefaultTickRateHz
	}
	if cfg.Backend == nil {
		cfg.Backend = NewRaspberryPiBackend()
	}

	addr, err := netio.Resolve(cfg.Host, cfg.Port)
	if err != nil {
		return nil, DnsFailed
	}

	ln, err := netio.Listen(addr)
	if err != nil {
		return nil, ConnectionListenFailed
	}

	table := protocol.BuildTable()
	if err := protocol.ValidateTable(table); err != nil {
		return nil, Undefined
	}

	svc := &Service{
		state:          ServiceListening,
		listener:       ln,
		driver:         newLocalDriver(cfg.Backend, cfg.Logger),
		maxConnections: cfg.MaxConnections,
		tickRateHz:     cfg.TickRateHz,
		table:          table,
		hooks:          cfg.Hooks,
		log:            cfg.Logger,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}

	return &Handle{kind: KindService, service: svc}, Success
}

// RunService runs a Service handle's accept/poll loop, blocking the
// calling goroutine. It is only valid for a KindService Handle; the REPL
// runs it in a background goroutine after "start" so the shell stays
// interactive.
func (h *Handle) RunService() error {
	if h.kind != KindService {
		return ErrWrongKind
	}
	return h.service.Run()
}

func (s *Service) listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == ServiceListening || s.state == ServiceRunning
}

// State reports the Service's current position in its state machine.
func (s *Service) State() ServiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Sessions returns a snapshot of currently accepted sessions.
func (s *Service) Sessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Run accepts and polls sessions at TickRateHz until Stop is called or a
// fatal listener error occurs. It blocks the calling goroutine.
func (s *Service) Run() error {
	s.mu.Lock()
	if s.state != ServiceListening {
		s.mu.Unlock()
		return errors.New("camera: service must be in Listening state to Run")
	}
	s.state = ServiceRunning
	s.mu.Unlock()

	interval := time.Duration(float64(time.Second) / s.tickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			s.shutdown()
			return nil
		case start := <-ticker.C:
			s.tick()
			if s.hooks.OnTick != nil {
				s.hooks.OnTick(len(s.Sessions()), time.Since(start))
			}
		}
	}
}

// tick runs one accept-then-poll cycle: at most one new connection is
// accepted per tick (bounded by MaxConnections), and every existing
// session gets one chance to have a pending frame dispatched.
func (s *Service) tick() {
	s.maybeAccept()

	for _, sess := range s.Sessions() {
		if sess.closedState() {
			s.removeSession(sess)
			continue
		}
		if err := sess.pollOnce(s.table, s.driver); err != nil {
			_ = sess.Close()
			s.removeSession(sess)
		}
	}
}

func (s *Service) maybeAccept() {
	s.mu.Lock()
	full := len(s.sessions) >= s.maxConnections
	ln := s.listener
	s.mu.Unlock()

	if full || ln == nil {
		return
	}

	conn, err := netio.Accept(ln)
	if err != nil {
		if err == netio.ErrWouldBlock {
			return
		}
		s.log.Error().Err(err).Msg("service: accept failed, listener closed")
		s.stopOnce.Do(func() { close(s.stopCh) })
		return
	}

	sess := &Session{conn: conn, service: s, ID: newSessionID()}
	s.mu.Lock()
	s.sessions = append(s.sessions, sess)
	s.mu.Unlock()

	s.log.Debug().Str("session_id", sess.ID).Str("remote", conn.RemoteAddr().String()).Msg("session opened")

	if s.hooks.OnSessionOpened != nil {
		s.hooks.OnSessionOpened()
	}
}

func (s *Service) removeSession(target *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sess := range s.sessions {
		if sess == target {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	if s.hooks.OnSessionClosed != nil {
		s.hooks.OnSessionClosed()
	}
}

func (s *Service) shutdown() {
	s.mu.Lock()
	s.state = ServiceStopping
	sessions := s.sessions
	s.sessions = nil
	ln := s.listener
	s.mu.Unlock()

	for _, sess := range sessions {
		_ = sess.Close()
	}
	if ln != nil {
		_ = ln.Close()
	}

	s.mu.Lock()
	s.state = ServiceStopped
	s.mu.Unlock()
}

// Stop signals Run to exit and waits for it to finish tearing down every
// session and the listener. Safe to call once; a second call is a no-op.
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.state == ServiceStopped || s.state == ServiceStopping {
		s.mu.Unlock()
		return nil
	}
	running := s.state == ServiceRunning
	s.mu.Unlock()

	if !running {
		s.shutdown()
		return nil
	}

	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
	return nil
}
