package wire

import "testing"

func TestOpcodeStringKnownAndUnknown(t *testing.T) {
	if OpIsBusy.String() != "is_busy" {
		t.Errorf("OpIsBusy.String() = %q", OpIsBusy.String())
	}
	if OpCaptureVideo.String() != "capture_video" {
		t.Errorf("OpCaptureVideo.String() = %q", OpCaptureVideo.String())
	}
	if got := OpCount.String(); got != "unknown" {
		t.Errorf("OpCount.String() = %q, want unknown", got)
	}
}

func TestOpcodeGetSetPairsAreSequential(t *testing.T) {
	pairs := [][2]Opcode{
		{OpGetEV, OpSetEV}, {OpGetISO, OpSetISO}, {OpGetConfig, OpSetConfig},
		{OpGetContrast, OpSetContrast}, {OpGetSharpness, OpSetSharpness},
		{OpGetBrightness, OpSetBrightness}, {OpGetSaturation, OpSetSaturation},
		{OpGetWhiteBalance, OpSetWhiteBalance}, {OpGetShutterSpeed, OpSetShutterSpeed},
		{OpGetExposureMode, OpSetExposureMode}, {OpGetMeteringMode, OpSetMeteringMode},
		{OpGetJpgQuality, OpSetJpgQuality}, {OpGetImageSize, OpSetImageSize},
		{OpGetImageEffect, OpSetImageEffect}, {OpGetImageRotation, OpSetImageRotation},
		{OpGetVideoBitRate, OpSetVideoBitRate}, {OpGetVideoFrameRate, OpSetVideoFrameRate},
	}
	for _, p := range pairs {
		if p[1] != p[0]+1 {
			t.Errorf("set opcode %v is not get opcode %v + 1", p[1], p[0])
		}
	}
}
