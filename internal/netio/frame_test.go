package netio

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feathercam/picamera/internal/wire"
)

func dialPair(t *testing.T) (client, server net.Conn) {
	ln := listenLoopback(t)
	t.Cleanup(func() { ln.Close() })

	acceptDone := make(chan net.Conn, 1)
	go func() {
		c, _ := ln.Accept()
		acceptDone <- c
	}()

	c, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)

	s := <-acceptDone
	require.NotNil(t, s)

	t.Cleanup(func() { c.Close(); s.Close() })
	return c, s
}

func TestWriteFrameReadFrameRoundTrip(t *testing.T) {
	client, server := dialPair(t)

	f := wire.Frame{Opcode: wire.OpGetISO, Err: wire.Success, Payload: []byte{0x01, 0x90}}
	require.NoError(t, WriteFrame(client, f))

	got, err := ReadFrame(server)
	require.NoError(t, err)
	require.Equal(t, f.Opcode, got.Opcode)
	require.Equal(t, f.Err, got.Err)
	require.Equal(t, f.Payload, got.Payload)
}

func TestTryReadFrameHeaderNotReady(t *testing.T) {
	_, server := dialPair(t)

	_, ready, err := TryReadFrameHeader(server)
	require.NoError(t, err)
	require.False(t, ready)
}

func TestTryReadFrameHeaderReadyOnceSent(t *testing.T) {
	client, server := dialPair(t)

	require.NoError(t, WriteFrame(client, wire.Frame{Opcode: wire.OpIsBusy, Err: wire.Success}))

	got, ready, err := TryReadFrameHeader(server)
	require.NoError(t, err)
	require.True(t, ready)
	require.Equal(t, wire.OpIsBusy, got.Opcode)
}
