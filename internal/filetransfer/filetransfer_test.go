package filetransfer

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feathercam/picamera/internal/netio"
	"github.com/feathercam/picamera/internal/wire"
)

func dialPair(t *testing.T) (client, server net.Conn) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
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

func receiveOverWire(t *testing.T, client net.Conn, destPath string) wire.ErrorCode {
	first, err := netio.ReadFrame(client)
	require.NoError(t, err)
	return Receive(client, first, destPath, nil)
}

func TestSendReceiveRoundTripSmallFile(t *testing.T) {
	client, server := dialPair(t)

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "still.jpg")
	content := strings.Repeat("x", 128)
	require.NoError(t, os.WriteFile(srcPath, []byte(content), 0o644))

	sendDone := make(chan error, 1)
	go func() { sendDone <- Send(server, wire.OpCapture, srcPath) }()

	destPath := filepath.Join(t.TempDir(), "out.jpg")
	ec := receiveOverWire(t, client, destPath)
	require.NoError(t, <-sendDone)
	require.Equal(t, wire.Success, ec)

	got, err := os.ReadFile(destPath)
	require.NoError(t, err)
	require.Equal(t, content, string(got))
}

func TestSendReceiveRoundTripMultiChunk(t *testing.T) {
	client, server := dialPair(t)

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "video.mp4")
	content := strings.Repeat("v", ChunkSize+(ChunkSize/4))
	require.NoError(t, os.WriteFile(srcPath, []byte(content), 0o644))

	var chunkCount int
	sendDone := make(chan error, 1)
	go func() { sendDone <- Send(server, wire.OpCaptureVideo, srcPath) }()

	first, err := netio.ReadFrame(client)
	require.NoError(t, err)

	destPath := filepath.Join(t.TempDir(), "out.mp4")
	ec := Receive(client, first, destPath, func(total, received uint64) { chunkCount++ })
	require.NoError(t, <-sendDone)
	require.Equal(t, wire.Success, ec)
	require.Equal(t, 2, chunkCount)

	got, err := os.ReadFile(destPath)
	require.NoError(t, err)
	require.Equal(t, len(content), len(got))
	require.Equal(t, content, string(got))
}

func TestSendMissingFileReturnsFileStatError(t *testing.T) {
	client, server := dialPair(t)

	sendDone := make(chan error, 1)
	go func() { sendDone <- Send(server, wire.OpCapture, filepath.Join(t.TempDir(), "missing.jpg")) }()

	first, err := netio.ReadFrame(client)
	require.NoError(t, err)
	require.NoError(t, <-sendDone)
	require.Equal(t, wire.FileStatError, first.Err)
}

func TestReceiveSurfacesCaptureFailureWithoutTouchingDisk(t *testing.T) {
	destPath := filepath.Join(t.TempDir(), "untouched.jpg")

	ec := Receive(nil, wire.Frame{Opcode: wire.OpCapture, Err: wire.CameraBusy}, destPath, nil)
	require.Equal(t, wire.CameraBusy, ec)

	_, err := os.Stat(destPath)
	require.True(t, os.IsNotExist(err))
}
