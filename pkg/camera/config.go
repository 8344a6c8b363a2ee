// Package camera is the public camera-control library: a single Handle
// type whose getters, setters, and capture operations transparently
// resolve to a local driver, a remote TCP client, a listening service, or
// a service's accepted session, depending on how the handle was opened.
package camera

import "github.com/feathercam/picamera/internal/wire"

// CameraConfig is the plain-old-data record described in spec §3: every
// field fixed-width, clamped into its declared range on every mutation.
// It is a direct alias of the wire package's packed layout, since the
// public config and the on-wire config are the same 31-byte structure —
// there is no separate "domain model" to keep in sync with the codec.
type CameraConfig = wire.CameraConfig

type (
	WhiteBalance = wire.WhiteBalance
	ExposureMode = wire.ExposureMode
	MeteringMode = wire.MeteringMode
	ImageEffect  = wire.ImageEffect
)

const (
	WhiteBalanceOff          = wire.WhiteBalanceOff
	WhiteBalanceAuto         = wire.WhiteBalanceAuto
	WhiteBalanceSun          = wire.WhiteBalanceSun
	WhiteBalanceFlash        = wire.WhiteBalanceFlash
	WhiteBalanceShade        = wire.WhiteBalanceShade
	WhiteBalanceClouds       = wire.WhiteBalanceClouds
	WhiteBalanceHorizon      = wire.WhiteBalanceHorizon
	WhiteBalanceTungsten     = wire.WhiteBalanceTungsten
	WhiteBalanceFluorescent  = wire.WhiteBalanceFluorescent
	WhiteBalanceIncandescent = wire.WhiteBalanceIncandescent

	ExposureModeOff          = wire.ExposureModeOff
	ExposureModeAuto         = wire.ExposureModeAuto
	ExposureModeSnow         = wire.ExposureModeSnow
	ExposureModeBeach        = wire.ExposureModeBeach
	ExposureModeNight        = wire.ExposureModeNight
	ExposureModeSports       = wire.ExposureModeSports
	ExposureModeBacklight    = wire.ExposureModeBacklight
	ExposureModeSpotlight    = wire.ExposureModeSpotlight
	ExposureModeVeryLong     = wire.ExposureModeVeryLong
	ExposureModeFixedFPS     = wire.ExposureModeFixedFPS
	ExposureModeFireworks    = wire.ExposureModeFireworks
	ExposureModeAntiShake    = wire.ExposureModeAntiShake
	ExposureModeNightPreview = wire.ExposureModeNightPreview

	MeteringModeSpot    = wire.MeteringModeSpot
	MeteringModeMatrix  = wire.MeteringModeMatrix
	MeteringModeAverage = wire.MeteringModeAverage
	MeteringModeBacklit = wire.MeteringModeBacklit

	ImageEffectNone             = wire.ImageEffectNone
	ImageEffectNegative         = wire.ImageEffectNegative
	ImageEffectSolarise         = wire.ImageEffectSolarise
	ImageEffectWhiteboard       = wire.ImageEffectWhiteboard
	ImageEffectBlackboard       = wire.ImageEffectBlackboard
	ImageEffectSketch           = wire.ImageEffectSketch
	ImageEffectDenoise          = wire.ImageEffectDenoise
	ImageEffectEmboss           = wire.ImageEffectEmboss
	ImageEffectOilPaint         = wire.ImageEffectOilPaint
	ImageEffectGraphiteSketch   = wire.ImageEffectGraphiteSketch
	ImageEffectCrossHatchSketch = wire.ImageEffectCrossHatchSketch
	ImageEffectPastel           = wire.ImageEffectPastel
	ImageEffectWatercolor       = wire.ImageEffectWatercolor
	ImageEffectFilm             = wire.ImageEffectFilm
	ImageEffectBlur             = wire.ImageEffectBlur
	ImageEffectSaturate         = wire.ImageEffectSaturate
)

// DefaultConfig returns the config a freshly opened Local or Service
// handle starts with.
func DefaultConfig() CameraConfig { return wire.DefaultConfig() }

// Clamp applies every field's declared-range clamp rule, per spec §4.E.
func Clamp(c CameraConfig) CameraConfig { return wire.Clamp(c) }
