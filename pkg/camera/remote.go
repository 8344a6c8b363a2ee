package camera

import (
	"net"
	"sync"

	"github.com/feathercam/picamera/internal/netio"
)

// remoteClient is a synchronous RPC connection to a Service. Every
// Begin/Complete pair in internal/protocol is a single blocking round
// trip, so a mutex around the connection is enough to let one Handle be
// shared across goroutines without interleaving two requests' frames.
type remoteClient struct {
	mu   sync.Mutex
	conn net.Conn
}

// OpenRemote dials host:port and returns a Handle whose operations are RPCs
// against whatever Service is listening there.
func OpenRemote(host string, port uint16) (*Handle, ErrorCode) {
	addr, err := netio.Resolve(host, port)
	if err != nil {
		return nil, DnsFailed
	}

	conn, err := netio.Connect(addr)
	if err != nil {
		return nil, ConnectionFailed
	}

	return &Handle{kind: KindRemote, remote: &remoteClient{conn: conn}}, Success
}

func (r *remoteClient) connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conn != nil
}

func (r *remoteClient) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

// closeLocked tears down the connection once an RPC has reported
// ConnectionClosed — netio has already closed the underlying net.Conn by
// that point, but conn must still be nilled out so connected()/IsConnected()
// stop reporting a dead transport as live. Callers must hold mu.
func (r *remoteClient) closeLocked() error {
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}
