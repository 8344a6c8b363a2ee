// Package netio wraps the raw TCP operations the protocol layer needs:
// blocking and non-blocking send/receive, connect, listen/accept, and DNS
// resolution. Every error path here closes the underlying socket — callers
// never have to remember to clean up after a failed I/O call.
package netio

import (
	"net"
	"strconv"
	"time"

	"github.com/juju/errors"
)

// ErrWouldBlock signals that a non-blocking read found no bytes ready at
// all. It is distinct from a hard error and from a closed connection.
var ErrWouldBlock = errors.New("netio: would block")

// pollDeadline is how long TryReceiveAll waits on a read before concluding
// nothing is ready. It is short because the service loop calls it once per
// session per tick and must not stall the tick.
const pollDeadline = time.Millisecond

// Resolve resolves host:port to a TCP address, wrapping DNS failures with
// context the caller can log.
func Resolve(host string, port uint16) (*net.TCPAddr, error) {
	addr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, errors.Annotate(err, "netio: resolve")
	}
	return addr, nil
}

// Connect dials a blocking (synchronous RPC) TCP connection.
func Connect(addr *net.TCPAddr) (*net.TCPConn, error) {
	conn, err := net.DialTCP("tcp", nil, addr)
	if err != nil {
		return nil, errors.Annotate(err, "netio: connect")
	}
	return conn, nil
}

// Listen opens a listening socket. It takes no backlog argument: Go's
// net.ListenTCP does not expose a backlog knob directly, so the OS default
// is used, which is what every stdlib-based service does in practice.
func Listen(addr *net.TCPAddr) (*net.TCPListener, error) {
	ln, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return nil, errors.Annotate(err, "netio: listen")
	}
	return ln, nil
}

// Accept polls the listener non-blockingly: it returns (nil, ErrWouldBlock)
// if no connection is pending, (conn, nil) on success, or (nil, err) on a
// hard error (which the caller should treat as fatal to the whole service).
func Accept(ln *net.TCPListener) (*net.TCPConn, error) {
	if err := ln.SetDeadline(time.Now().Add(pollDeadline)); err != nil {
		_ = ln.Close()
		return nil, errors.Annotate(err, "netio: accept set deadline")
	}

	conn, err := ln.AcceptTCP()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrWouldBlock
		}
		_ = ln.Close()
		return nil, errors.Annotate(err, "netio: accept")
	}

	return conn, nil
}

// SendAll writes buf in full, closing the connection on any error.
func SendAll(conn net.Conn, buf []byte) error {
	if _, err := conn.Write(buf); err != nil {
		_ = conn.Close()
		return errors.Annotate(err, "netio: send")
	}
	return nil
}

// TryReceiveAll probes for the first byte of buf non-blockingly: if no
// bytes at all are ready it returns ErrWouldBlock without reading anything.
// Once the first byte has arrived, the remainder of buf is read with a
// blocking ReceiveAll — the reader is committed once it has seen any byte
// of the frame.
func TryReceiveAll(conn net.Conn, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	if err := conn.SetReadDeadline(time.Now().Add(pollDeadline)); err != nil {
		_ = conn.Close()
		return errors.Annotate(err, "netio: try-receive set deadline")
	}

	n, err := conn.Read(buf[:1])
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ErrWouldBlock
		}
		_ = conn.Close()
		return errors.Annotate(err, "netio: try-receive")
	}
	if n == 0 {
		return ErrWouldBlock
	}

	if len(buf) == 1 {
		return nil
	}
	return ReceiveAll(conn, buf[1:])
}

// ReceiveAll blocks until buf is filled or the connection dies.
func ReceiveAll(conn net.Conn, buf []byte) error {
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		_ = conn.Close()
		return errors.Annotate(err, "netio: receive clear deadline")
	}

	off := 0
	for off < len(buf) {
		n, err := conn.Read(buf[off:])
		if err != nil {
			_ = conn.Close()
			return errors.Annotate(err, "netio: receive")
		}
		if n == 0 {
			_ = conn.Close()
			return errors.New("netio: receive: connection closed")
		}
		off += n
	}
	return nil
}
