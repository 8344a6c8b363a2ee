package protocol

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feathercam/picamera/internal/wire"
)

// fakeDriver is an in-memory Driver used to exercise the handler table
// without a real camera backend.
type fakeDriver struct {
	busy   bool
	cfg    wire.CameraConfig
	width  uint16
	height uint16

	capturePath string
	captureErr  wire.ErrorCode
}

func newFakeDriver() *fakeDriver {
	cfg := wire.DefaultConfig()
	return &fakeDriver{cfg: cfg, width: cfg.ImageWidth, height: cfg.ImageHeight}
}

func (d *fakeDriver) IsBusy() bool                          { return d.busy }
func (d *fakeDriver) GetEV() int8                           { return d.cfg.EV }
func (d *fakeDriver) SetEV(v int8)                          { d.cfg.EV = v }
func (d *fakeDriver) GetISO() uint16                        { return d.cfg.ISO }
func (d *fakeDriver) SetISO(v uint16)                        { d.cfg.ISO = v }
func (d *fakeDriver) GetConfig() wire.CameraConfig          { return d.cfg }
func (d *fakeDriver) SetConfig(c wire.CameraConfig)         { d.cfg = c }
func (d *fakeDriver) GetContrast() int8                     { return d.cfg.Contrast }
func (d *fakeDriver) SetContrast(v int8)                    { d.cfg.Contrast = v }
func (d *fakeDriver) GetSharpness() int8                    { return d.cfg.Sharpness }
func (d *fakeDriver) SetSharpness(v int8)                   { d.cfg.Sharpness = v }
func (d *fakeDriver) GetBrightness() uint8                  { return d.cfg.Brightness }
func (d *fakeDriver) SetBrightness(v uint8)                 { d.cfg.Brightness = v }
func (d *fakeDriver) GetSaturation() int8                   { return d.cfg.Saturation }
func (d *fakeDriver) SetSaturation(v int8)                   { d.cfg.Saturation = v }
func (d *fakeDriver) GetWhiteBalance() wire.WhiteBalance    { return d.cfg.WhiteBalance }
func (d *fakeDriver) SetWhiteBalance(v wire.WhiteBalance)   { d.cfg.WhiteBalance = v }
func (d *fakeDriver) GetShutterSpeed() uint64                { return d.cfg.ShutterSpeedUs }
func (d *fakeDriver) SetShutterSpeed(v uint64)                { d.cfg.ShutterSpeedUs = v }
func (d *fakeDriver) GetExposureMode() wire.ExposureMode     { return d.cfg.ExposureMode }
func (d *fakeDriver) SetExposureMode(v wire.ExposureMode)    { d.cfg.ExposureMode = v }
func (d *fakeDriver) GetMeteringMode() wire.MeteringMode     { return d.cfg.MeteringMode }
func (d *fakeDriver) SetMeteringMode(v wire.MeteringMode)    { d.cfg.MeteringMode = v }
func (d *fakeDriver) GetJpgQuality() uint8                   { return d.cfg.JpgQuality }
func (d *fakeDriver) SetJpgQuality(v uint8)                   { d.cfg.JpgQuality = v }
func (d *fakeDriver) GetImageSize() (uint16, uint16)          { return d.width, d.height }
func (d *fakeDriver) SetImageSize(w, h uint16)                { d.width, d.height = w, h }
func (d *fakeDriver) GetImageEffect() wire.ImageEffect        { return d.cfg.ImageEffect }
func (d *fakeDriver) SetImageEffect(v wire.ImageEffect)       { d.cfg.ImageEffect = v }
func (d *fakeDriver) GetImageRotation() uint16                { return d.cfg.ImageRotation }
func (d *fakeDriver) SetImageRotation(v uint16)                { d.cfg.ImageRotation = v }
func (d *fakeDriver) GetVideoBitRate() uint32                  { return d.cfg.VideoBitRate }
func (d *fakeDriver) SetVideoBitRate(v uint32)                  { d.cfg.VideoBitRate = v }
func (d *fakeDriver) GetVideoFrameRate() uint8                  { return d.cfg.VideoFrameRate }
func (d *fakeDriver) SetVideoFrameRate(v uint8)                  { d.cfg.VideoFrameRate = v }

func (d *fakeDriver) Capture() (string, wire.ErrorCode) {
	return d.capturePath, d.captureErr
}
func (d *fakeDriver) CaptureVideo(seconds uint32) (string, wire.ErrorCode) {
	return d.capturePath, d.captureErr
}

func TestBuildTableIsSelfConsistent(t *testing.T) {
	table := BuildTable()
	require.NoError(t, ValidateTable(table))
}

func TestFileTransferOpcodesHaveNoTopLevelHandler(t *testing.T) {
	table := BuildTable()
	require.Nil(t, table[wire.OpFileTransferOffer].Handler)
	require.Nil(t, table[wire.OpFileTransferAck].Handler)
}

func dialServicePair(t *testing.T) (client net.Conn, server net.Conn) {
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

func TestDispatchGetSetISOOverTheWire(t *testing.T) {
	client, server := dialServicePair(t)
	table := BuildTable()
	driver := newFakeDriver()

	go func() {
		req, err := waitForFrame(server)
		require.NoError(t, err)
		ok, err := Dispatch(table, server, driver, req)
		require.True(t, ok)
		require.NoError(t, err)
	}()

	ec := BeginSetISO(client, 400)
	require.Equal(t, wire.Success, ec)
	require.Equal(t, uint16(400), driver.GetISO())

	go func() {
		req, err := waitForFrame(server)
		require.NoError(t, err)
		ok, err := Dispatch(table, server, driver, req)
		require.True(t, ok)
		require.NoError(t, err)
	}()

	got, ec := BeginGetISO(client)
	require.Equal(t, wire.Success, ec)
	require.Equal(t, uint16(400), got)
}

func TestDispatchUnknownOpcodeReturnsNotOK(t *testing.T) {
	table := BuildTable()
	driver := newFakeDriver()

	ok, err := Dispatch(table, nil, driver, wire.Frame{Opcode: wire.Opcode(250)})
	require.False(t, ok)
	require.NoError(t, err)
}

func waitForFrame(conn net.Conn) (wire.Frame, error) {
	header := make([]byte, wire.HeaderSize)
	if _, err := io.ReadFull(conn, header); err != nil {
		return wire.Frame{}, err
	}
	opcode, errCode, payloadLen, err := wire.DecodeHeader(header)
	if err != nil {
		return wire.Frame{}, err
	}
	f := wire.Frame{Opcode: opcode, Err: errCode}
	if errCode == wire.Success && payloadLen > 0 {
		payload := make([]byte, payloadLen)
		if _, err := io.ReadFull(conn, payload); err != nil {
			return wire.Frame{}, err
		}
		f.Payload = payload
	}
	return f, nil
}
