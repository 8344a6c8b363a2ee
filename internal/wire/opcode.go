package wire

// Opcode identifies the operation a frame carries. Opcodes are stable and
// wire-visible: adding one is additive, reordering one is a breaking change.
type Opcode uint8

const (
	OpIsBusy Opcode = iota // 0

	OpGetEV // 1
	OpSetEV // 2

	OpGetISO // 3
	OpSetISO // 4

	OpGetConfig // 5
	OpSetConfig // 6

	OpGetContrast // 7
	OpSetContrast // 8

	OpGetSharpness // 9
	OpSetSharpness // 10

	OpGetBrightness // 11
	OpSetBrightness // 12

	OpGetSaturation // 13
	OpSetSaturation // 14

	OpGetWhiteBalance // 15
	OpSetWhiteBalance // 16

	OpGetShutterSpeed // 17
	OpSetShutterSpeed // 18

	OpGetExposureMode // 19
	OpSetExposureMode // 20

	OpGetMeteringMode // 21
	OpSetMeteringMode // 22

	OpGetJpgQuality // 23
	OpSetJpgQuality // 24

	OpGetImageSize // 25
	OpSetImageSize // 26

	OpGetImageEffect // 27
	OpSetImageEffect // 28

	OpGetImageRotation // 29
	OpSetImageRotation // 30

	OpGetVideoBitRate // 31
	OpSetVideoBitRate // 32

	OpGetVideoFrameRate // 33
	OpSetVideoFrameRate // 34

	OpFileTransferOffer // 35 — never a top-level request, only mid-transfer
	OpFileTransferAck    // 36 — never a top-level request, only mid-transfer

	OpCapture      // 37
	OpCaptureVideo // 38

	OpCount
)

var opcodeNames = [OpCount]string{
	OpIsBusy:             "is_busy",
	OpGetEV:               "get_ev",
	OpSetEV:               "set_ev",
	OpGetISO:              "get_iso",
	OpSetISO:              "set_iso",
	OpGetConfig:           "get_config",
	OpSetConfig:           "set_config",
	OpGetContrast:         "get_contrast",
	OpSetContrast:         "set_contrast",
	OpGetSharpness:        "get_sharpness",
	OpSetSharpness:        "set_sharpness",
	OpGetBrightness:       "get_brightness",
	OpSetBrightness:       "set_brightness",
	OpGetSaturation:       "get_saturation",
	OpSetSaturation:       "set_saturation",
	OpGetWhiteBalance:     "get_white_balance",
	OpSetWhiteBalance:     "set_white_balance",
	OpGetShutterSpeed:     "get_shutter_speed",
	OpSetShutterSpeed:     "set_shutter_speed",
	OpGetExposureMode:     "get_exposure_mode",
	OpSetExposureMode:     "set_exposure_mode",
	OpGetMeteringMode:     "get_metering_mode",
	OpSetMeteringMode:     "set_metering_mode",
	OpGetJpgQuality:       "get_jpg_quality",
	OpSetJpgQuality:       "set_jpg_quality",
	OpGetImageSize:        "get_image_size",
	OpSetImageSize:        "set_image_size",
	OpGetImageEffect:      "get_image_effect",
	OpSetImageEffect:      "set_image_effect",
	OpGetImageRotation:    "get_image_rotation",
	OpSetImageRotation:    "set_image_rotation",
	OpGetVideoBitRate:     "get_video_bit_rate",
	OpSetVideoBitRate:     "set_video_bit_rate",
	OpGetVideoFrameRate:   "get_video_frame_rate",
	OpSetVideoFrameRate:   "set_video_frame_rate",
	OpFileTransferOffer:   "file_transfer_offer",
	OpFileTransferAck:     "file_transfer_ack",
	OpCapture:             "capture",
	OpCaptureVideo:        "capture_video",
}

func (o Opcode) String() string {
	if o < OpCount {
		return opcodeNames[o]
	}
	return "unknown"
}
