package camera

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) uint16 {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return uint16(ln.Addr().(*net.TCPAddr).Port)
}

func TestServiceAcceptsAndDispatchesOverTheWire(t *testing.T) {
	port := freePort(t)

	h, ec := OpenService(ServiceConfig{
		Host:           "127.0.0.1",
		Port:           port,
		MaxConnections: 4,
		TickRateHz:     50,
		Backend:        &fakeBackend{},
		Logger:         zerolog.Nop(),
	})
	require.Equal(t, Success, ec)
	require.True(t, h.IsService())

	runDone := make(chan error, 1)
	go func() { runDone <- h.RunService() }()

	time.Sleep(20 * time.Millisecond)

	remote, ec := OpenRemote("127.0.0.1", port)
	require.Equal(t, Success, ec)
	require.True(t, remote.IsConnected())

	ec = remote.SetISO(640)
	require.Equal(t, Success, ec)

	got, ec := remote.GetISO()
	require.Equal(t, Success, ec)
	require.Equal(t, uint16(640), got)

	require.NoError(t, remote.Close())
	require.NoError(t, h.Close())
	require.NoError(t, <-runDone)
	require.Equal(t, ServiceStopped, h.service.State())
}

func TestServiceRejectsConnectionsBeyondMaxConnections(t *testing.T) {
	port := freePort(t)

	h, ec := OpenService(ServiceConfig{
		Host:           "127.0.0.1",
		Port:           port,
		MaxConnections: 1,
		TickRateHz:     50,
		Backend:        &fakeBackend{},
		Logger:         zerolog.Nop(),
	})
	require.Equal(t, Success, ec)

	go func() { _ = h.RunService() }()
	defer h.Close()

	time.Sleep(20 * time.Millisecond)

	first, ec := OpenRemote("127.0.0.1", port)
	require.Equal(t, Success, ec)
	defer first.Close()

	second, ec := OpenRemote("127.0.0.1", port)
	require.Equal(t, Success, ec)
	defer second.Close()

	time.Sleep(50 * time.Millisecond)
	require.Len(t, h.service.Sessions(), 1)
}

func TestRemoteHandleDisconnectsAfterTransportFailure(t *testing.T) {
	port := freePort(t)

	h, ec := OpenService(ServiceConfig{
		Host:           "127.0.0.1",
		Port:           port,
		MaxConnections: 4,
		TickRateHz:     50,
		Backend:        &fakeBackend{},
		Logger:         zerolog.Nop(),
	})
	require.Equal(t, Success, ec)

	go func() { _ = h.RunService() }()

	time.Sleep(20 * time.Millisecond)

	remote, ec := OpenRemote("127.0.0.1", port)
	require.Equal(t, Success, ec)
	require.True(t, remote.IsConnected())

	require.NoError(t, h.Close())

	_, ec = remote.GetISO()
	require.Equal(t, ConnectionClosed, ec)
	require.False(t, remote.IsConnected())
}

func TestHardAcceptErrorStopsService(t *testing.T) {
	port := freePort(t)

	h, ec := OpenService(ServiceConfig{
		Host:           "127.0.0.1",
		Port:           port,
		MaxConnections: 4,
		TickRateHz:     50,
		Backend:        &fakeBackend{},
		Logger:         zerolog.Nop(),
	})
	require.Equal(t, Success, ec)

	runDone := make(chan error, 1)
	go func() { runDone <- h.RunService() }()

	time.Sleep(20 * time.Millisecond)

	// Closing the listener out from under the service simulates the hard,
	// non-timeout Accept error netio.Accept returns when the listener
	// itself is gone; maybeAccept must treat that as fatal.
	require.NoError(t, h.service.listener.Close())

	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("service did not stop after a hard accept error")
	}
	require.Equal(t, ServiceStopped, h.service.State())
}

func TestSessionDropOnUnknownOpcodeDoesNotAffectOtherSessions(t *testing.T) {
	port := freePort(t)

	h, ec := OpenService(ServiceConfig{
		Host:           "127.0.0.1",
		Port:           port,
		MaxConnections: 4,
		TickRateHz:     50,
		Backend:        &fakeBackend{},
		Logger:         zerolog.Nop(),
	})
	require.Equal(t, Success, ec)

	go func() { _ = h.RunService() }()
	defer h.Close()

	time.Sleep(20 * time.Millisecond)

	bad, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port))))
	require.NoError(t, err)
	defer bad.Close()

	good, ec := OpenRemote("127.0.0.1", port)
	require.Equal(t, Success, ec)
	defer good.Close()

	// header: opcode=250 (undefined), err=Success, payload len=0
	_, err = bad.Write([]byte{250, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	ec = good.SetISO(200)
	require.Equal(t, Success, ec)
}
