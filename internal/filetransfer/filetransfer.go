// Package filetransfer implements the chunked, acknowledged file-transfer
// sub-protocol layered on top of the regular frame exchange: size announce
// → ack → chunked data with a per-chunk ack. It is used for Capture and
// CaptureVideo responses and knows nothing about cameras — just files and
// frames.
package filetransfer

import (
	"encoding/binary"
	"io"
	"net"
	"os"

	"github.com/feathercam/picamera/internal/netio"
	"github.com/feathercam/picamera/internal/wire"
)

// ChunkSize is the spec-mandated chunk size; the last chunk is whatever
// remains.
const ChunkSize = 1_000_000

// Send runs the sender (service) side. triggerOp is the opcode of the
// request this transfer answers (Capture or CaptureVideo) — it is used for
// the pre-offer error frame so a client still sees a response under the
// opcode it asked about. The caller is responsible for deleting filePath
// once Send returns, regardless of the outcome.
func Send(conn net.Conn, triggerOp wire.Opcode, filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return netio.WriteFrame(conn, wire.Frame{Opcode: triggerOp, Err: wire.FileStatError})
	}

	f, err := os.Open(filePath)
	if err != nil {
		return netio.WriteFrame(conn, wire.Frame{Opcode: triggerOp, Err: wire.FileOpenError})
	}
	defer f.Close()

	size := uint64(info.Size())
	sizeBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(sizeBuf, size)

	if err := netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferOffer, Err: wire.Success, Payload: sizeBuf}); err != nil {
		return err
	}

	ack, err := netio.ReadFrame(conn)
	if err != nil {
		return err
	}
	if ack.Err != wire.Success {
		// Receiver could not open its destination file; nothing more to do.
		return nil
	}

	buf := make([]byte, ChunkSize)
	var sent uint64
	for sent < size {
		n, readErr := io.ReadFull(f, buf)
		if readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF {
			return netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferOffer, Err: wire.FileReadError})
		}

		chunk := buf[:n]
		if err := netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferOffer, Err: wire.Success, Payload: chunk}); err != nil {
			return err
		}
		sent += uint64(n)

		chunkAck, err := netio.ReadFrame(conn)
		if err != nil {
			return err
		}
		if chunkAck.Err != wire.Success {
			// Receiver failed to write the chunk; sender has nothing left to do.
			return nil
		}
	}

	return nil
}

// Receive runs the receiver (client) side. first is the frame the client
// already read as the response to its Capture/CaptureVideo request — if
// its error code is not Success, the capture itself failed and Receive
// returns that code without touching the filesystem. progress, if
// non-nil, is invoked after every successfully written chunk.
func Receive(conn net.Conn, first wire.Frame, destPath string, progress func(total, received uint64)) wire.ErrorCode {
	if first.Err != wire.Success {
		return first.Err
	}
	if first.Opcode != wire.OpFileTransferOffer || len(first.Payload) < 8 {
		return wire.Undefined
	}

	total := binary.BigEndian.Uint64(first.Payload)

	f, err := os.Create(destPath)
	if err != nil {
		_ = netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferAck, Err: wire.FileOpenError})
		return wire.FileOpenError
	}
	defer f.Close()

	if err := netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferAck, Err: wire.Success}); err != nil {
		return wire.ConnectionClosed
	}

	var received uint64
	for received < total {
		chunk, err := netio.ReadFrame(conn)
		if err != nil {
			return wire.ConnectionClosed
		}
		if chunk.Err != wire.Success {
			return chunk.Err
		}

		if _, err := f.Write(chunk.Payload); err != nil {
			_ = netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferAck, Err: wire.FileWriteError})
			return wire.FileWriteError
		}
		received += uint64(len(chunk.Payload))

		if err := netio.WriteFrame(conn, wire.Frame{Opcode: wire.OpFileTransferAck, Err: wire.Success}); err != nil {
			return wire.ConnectionClosed
		}

		if progress != nil {
			progress(total, received)
		}
	}

	return wire.Success
}
