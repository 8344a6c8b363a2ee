package wire

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	cases := []Frame{
		{Opcode: OpIsBusy, Err: Success},
		{Opcode: OpGetEV, Err: Success, Payload: []byte{0x05}},
		{Opcode: OpCapture, Err: CameraBusy},
		{Opcode: OpFileTransferOffer, Err: Success, Payload: bytes.Repeat([]byte{0xAB}, 1000)},
	}

	for _, f := range cases {
		buf := EncodeFrame(f)
		got, err := DecodeFrame(buf)
		if err != nil {
			t.Fatalf("DecodeFrame: %v", err)
		}
		if got.Opcode != f.Opcode || got.Err != f.Err {
			t.Fatalf("decoded header mismatch: got %+v, want opcode=%v err=%v", got, f.Opcode, f.Err)
		}
		if f.Err == Success && !bytes.Equal(got.Payload, f.Payload) {
			t.Fatalf("decoded payload mismatch: got %v, want %v", got.Payload, f.Payload)
		}
	}
}

func TestEncodeFrameOmitsPayloadOnError(t *testing.T) {
	buf := EncodeFrame(Frame{Opcode: OpCapture, Err: FileStatError, Payload: []byte("ignored")})
	if len(buf) != HeaderSize {
		t.Fatalf("expected header-only frame, got %d bytes", len(buf))
	}
}

func TestDecodeHeaderRejectsOversizedPayload(t *testing.T) {
	buf := make([]byte, HeaderSize)
	buf[0] = byte(OpCapture)
	buf[1] = byte(Success)
	putUint32(buf[2:], MaxPayloadSize+1)

	if _, _, _, err := DecodeHeader(buf); err == nil {
		t.Fatal("expected error for oversized payload length")
	}
}

func TestDecodeHeaderRejectsShortBuffer(t *testing.T) {
	if _, _, _, err := DecodeHeader(make([]byte, HeaderSize-1)); err == nil {
		t.Fatal("expected error for short header")
	}
}
