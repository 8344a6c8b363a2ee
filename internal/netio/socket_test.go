package netio

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func listenLoopback(t *testing.T) *net.TCPListener {
	addr, err := Resolve("127.0.0.1", 0)
	require.NoError(t, err)
	ln, err := Listen(addr)
	require.NoError(t, err)
	return ln
}

func TestSendAllReceiveAllRoundTrip(t *testing.T) {
	ln := listenLoopback(t)
	defer ln.Close()

	clientDone := make(chan error, 1)
	go func() {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			clientDone <- err
			return
		}
		defer conn.Close()
		clientDone <- SendAll(conn, []byte("hello"))
	}()

	serverConn, err := ln.Accept()
	require.NoError(t, err)
	defer serverConn.Close()

	buf := make([]byte, 5)
	require.NoError(t, ReceiveAll(serverConn, buf))
	require.Equal(t, "hello", string(buf))
	require.NoError(t, <-clientDone)
}

func TestTryReceiveAllWouldBlockWhenIdle(t *testing.T) {
	ln := listenLoopback(t)
	defer ln.Close()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	go func() {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err == nil {
			defer conn.Close()
			<-release
		}
	}()

	serverConn, err := ln.Accept()
	require.NoError(t, err)
	defer serverConn.Close()

	buf := make([]byte, 4)
	err = TryReceiveAll(serverConn, buf)
	require.ErrorIs(t, err, ErrWouldBlock)
}

func TestAcceptWouldBlockWithNoPendingConnection(t *testing.T) {
	ln := listenLoopback(t)
	defer ln.Close()

	_, err := Accept(ln)
	require.ErrorIs(t, err, ErrWouldBlock)
}

func TestResolveLoopbackPort(t *testing.T) {
	addr, err := Resolve("127.0.0.1", 9999)
	require.NoError(t, err)
	require.Equal(t, 9999, addr.Port)
	require.Equal(t, "127.0.0.1", addr.IP.String())
}
