package wire

import "fmt"

// Enumerations stored verbatim on the wire and in CameraConfig — their
// values are part of the protocol, not just UI labels.

type WhiteBalance uint8

const (
	WhiteBalanceOff WhiteBalance = iota
	WhiteBalanceAuto
	WhiteBalanceSun
	WhiteBalanceFlash
	WhiteBalanceShade
	WhiteBalanceClouds
	WhiteBalanceHorizon
	WhiteBalanceTungsten
	WhiteBalanceFluorescent
	WhiteBalanceIncandescent
)

type ExposureMode uint8

const (
	ExposureModeOff ExposureMode = iota
	ExposureModeAuto
	ExposureModeSnow
	ExposureModeBeach
	ExposureModeNight
	ExposureModeSports
	ExposureModeBacklight
	ExposureModeSpotlight
	ExposureModeVeryLong
	ExposureModeFixedFPS
	ExposureModeFireworks
	ExposureModeAntiShake
	ExposureModeNightPreview
)

type MeteringMode uint8

const (
	MeteringModeSpot MeteringMode = iota
	MeteringModeMatrix
	MeteringModeAverage
	MeteringModeBacklit
)

type ImageEffect uint8

const (
	ImageEffectNone ImageEffect = iota
	ImageEffectNegative
	ImageEffectSolarise
	ImageEffectWhiteboard
	ImageEffectBlackboard
	ImageEffectSketch
	ImageEffectDenoise
	ImageEffectEmboss
	ImageEffectOilPaint
	ImageEffectGraphiteSketch
	ImageEffectCrossHatchSketch
	ImageEffectPastel
	ImageEffectWatercolor
	ImageEffectFilm
	ImageEffectBlur
	ImageEffectSaturate
)

// Range constants, named per spec §4.E / §3.
const (
	EVMin, EVMax = -10, 10
	EVDefault    = 0

	ISOMin, ISOMax = 0, 800
	ISODefault     = 100

	ContrastMin, ContrastMax = -100, 100
	ContrastDefault          = 0

	SharpnessMin, SharpnessMax = -100, 100
	SharpnessDefault           = 0

	BrightnessMin, BrightnessMax = 0, 100
	BrightnessDefault            = 50

	SaturationMin, SaturationMax = -100, 100
	SaturationDefault            = 0

	ShutterSpeedAutoUs = 0

	JpgQualityMin, JpgQualityMax = 0, 100
	JpgQualityDefault            = 75

	ImageRotationMin, ImageRotationMax = 0, 359
	ImageRotationDefault               = 0

	ImageSizeWidthMax  = 3280
	ImageSizeHeightMax = 2464

	VideoFrameRateMin, VideoFrameRateMax = 2, 30
	VideoFrameRateDefault                = 30

	VideoBitRateMin     = 1
	VideoBitRateDefault = 17000000
)

// CameraConfig is the plain-old-data record described in spec §3. Field
// order here is also wire order: ConfigWireSize must stay in lockstep with
// EncodeConfig/DecodeConfig below.
type CameraConfig struct {
	EV             int8
	ISO            uint16
	Contrast       int8
	Sharpness      int8
	Brightness     uint8
	Saturation     int8
	WhiteBalance   WhiteBalance
	ShutterSpeedUs uint64
	ExposureMode   ExposureMode
	MeteringMode   MeteringMode
	JpgQuality     uint8
	ImageEffect    ImageEffect
	ImageRotation  uint16
	ImageWidth     uint16
	ImageHeight    uint16
	VideoBitRate   uint32
	VideoFrameRate uint8
}

// ConfigWireSize is the constant encoded length: the sum of every field's
// width in declaration order (1+2+1+1+1+1+1+8+1+1+1+1+2+2+2+4+1).
const ConfigWireSize = 31

// DefaultConfig mirrors the defaults pi_camera_local seeds at open time.
func DefaultConfig() CameraConfig {
	return CameraConfig{
		EV:             EVDefault,
		ISO:            ISODefault,
		Contrast:       ContrastDefault,
		Sharpness:      SharpnessDefault,
		Brightness:     BrightnessDefault,
		Saturation:     SaturationDefault,
		WhiteBalance:   WhiteBalanceAuto,
		ShutterSpeedUs: ShutterSpeedAutoUs,
		ExposureMode:   ExposureModeAuto,
		MeteringMode:   MeteringModeMatrix,
		JpgQuality:     JpgQualityDefault,
		ImageEffect:    ImageEffectNone,
		ImageRotation:  ImageRotationDefault,
		ImageWidth:     ImageSizeWidthMax,
		ImageHeight:    ImageSizeHeightMax,
		VideoBitRate:   VideoBitRateDefault,
		VideoFrameRate: VideoFrameRateDefault,
	}
}

func clampInt8(v, lo, hi int8) int8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint16(v, lo, hi uint16) uint16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint8(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp* helpers apply the invariant from spec §4.E: after any mutation the
// value is clamped into its declared range before being stored. Enum-valued
// fields are stored verbatim and have no Clamp* function.

func ClampEV(v int8) int8              { return clampInt8(v, EVMin, EVMax) }
func ClampISO(v uint16) uint16         { return clampUint16(v, ISOMin, ISOMax) }
func ClampContrast(v int8) int8        { return clampInt8(v, ContrastMin, ContrastMax) }
func ClampSharpness(v int8) int8       { return clampInt8(v, SharpnessMin, SharpnessMax) }
func ClampBrightness(v uint8) uint8    { return clampUint8(v, BrightnessMin, BrightnessMax) }
func ClampSaturation(v int8) int8      { return clampInt8(v, SaturationMin, SaturationMax) }
func ClampJpgQuality(v uint8) uint8    { return clampUint8(v, JpgQualityMin, JpgQualityMax) }
func ClampImageRotation(v uint16) uint16 {
	return clampUint16(v, ImageRotationMin, ImageRotationMax)
}
func ClampImageWidth(v uint16) uint16  { return clampUint16(v, 0, ImageSizeWidthMax) }
func ClampImageHeight(v uint16) uint16 { return clampUint16(v, 0, ImageSizeHeightMax) }
func ClampShutterSpeed(v uint64) uint64 { return v } // unbounded, 0 means auto
func ClampVideoBitRate(v uint32) uint32 {
	if v < VideoBitRateMin {
		return VideoBitRateMin
	}
	return v
}
func ClampVideoFrameRate(v uint8) uint8 {
	return clampUint8(v, VideoFrameRateMin, VideoFrameRateMax)
}

// Clamp applies every field's clamp rule and returns the corrected copy.
func Clamp(c CameraConfig) CameraConfig {
	c.EV = ClampEV(c.EV)
	c.ISO = ClampISO(c.ISO)
	c.Contrast = ClampContrast(c.Contrast)
	c.Sharpness = ClampSharpness(c.Sharpness)
	c.Brightness = ClampBrightness(c.Brightness)
	c.Saturation = ClampSaturation(c.Saturation)
	c.ShutterSpeedUs = ClampShutterSpeed(c.ShutterSpeedUs)
	c.JpgQuality = ClampJpgQuality(c.JpgQuality)
	c.ImageRotation = ClampImageRotation(c.ImageRotation)
	c.ImageWidth = ClampImageWidth(c.ImageWidth)
	c.ImageHeight = ClampImageHeight(c.ImageHeight)
	c.VideoBitRate = ClampVideoBitRate(c.VideoBitRate)
	c.VideoFrameRate = ClampVideoFrameRate(c.VideoFrameRate)
	return c
}

// EncodeConfig writes c in declaration order, big-endian for every
// multi-byte field, per the golden layout table in spec §6.
func EncodeConfig(c CameraConfig) []byte {
	buf := make([]byte, ConfigWireSize)
	i := 0

	buf[i] = byte(c.EV)
	i++
	putUint16(buf[i:], c.ISO)
	i += 2
	buf[i] = byte(c.Contrast)
	i++
	buf[i] = byte(c.Sharpness)
	i++
	buf[i] = c.Brightness
	i++
	buf[i] = byte(c.Saturation)
	i++
	buf[i] = byte(c.WhiteBalance)
	i++
	putUint64(buf[i:], c.ShutterSpeedUs)
	i += 8
	buf[i] = byte(c.ExposureMode)
	i++
	buf[i] = byte(c.MeteringMode)
	i++
	buf[i] = c.JpgQuality
	i++
	buf[i] = byte(c.ImageEffect)
	i++
	putUint16(buf[i:], c.ImageRotation)
	i += 2
	putUint16(buf[i:], c.ImageWidth)
	i += 2
	putUint16(buf[i:], c.ImageHeight)
	i += 2
	putUint32(buf[i:], c.VideoBitRate)
	i += 4
	buf[i] = c.VideoFrameRate

	return buf
}

// DecodeConfig is the inverse of EncodeConfig.
func DecodeConfig(buf []byte) (CameraConfig, error) {
	if len(buf) < ConfigWireSize {
		return CameraConfig{}, fmt.Errorf("wire: short config payload: want %d, have %d", ConfigWireSize, len(buf))
	}

	var c CameraConfig
	i := 0

	c.EV = int8(buf[i])
	i++
	c.ISO = getUint16(buf[i:])
	i += 2
	c.Contrast = int8(buf[i])
	i++
	c.Sharpness = int8(buf[i])
	i++
	c.Brightness = buf[i]
	i++
	c.Saturation = int8(buf[i])
	i++
	c.WhiteBalance = WhiteBalance(buf[i])
	i++
	c.ShutterSpeedUs = getUint64(buf[i:])
	i += 8
	c.ExposureMode = ExposureMode(buf[i])
	i++
	c.MeteringMode = MeteringMode(buf[i])
	i++
	c.JpgQuality = buf[i]
	i++
	c.ImageEffect = ImageEffect(buf[i])
	i++
	c.ImageRotation = getUint16(buf[i:])
	i += 2
	c.ImageWidth = getUint16(buf[i:])
	i += 2
	c.ImageHeight = getUint16(buf[i:])
	i += 2
	c.VideoBitRate = getUint32(buf[i:])
	i += 4
	c.VideoFrameRate = buf[i]

	return c, nil
}
