package cli

import (
	"fmt"
	"strconv"

	"github.com/feathercam/picamera/pkg/camera"
)

// field binds the alias table in spec §6 to the Handle's typed Get/Set
// methods. get/set work in strings so the REPL's command loop never has
// to know the underlying wire type.
type field struct {
	name    string
	aliases []string
	get     func(*camera.Handle) (string, camera.ErrorCode)
	set     func(*camera.Handle, []string) camera.ErrorCode
}

func parseInt8(s string) (int8, error) {
	v, err := strconv.ParseInt(s, 10, 8)
	return int8(v), err
}
func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	return uint8(v), err
}
func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
func parseUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint64(v), err
}

var fieldTable = []field{
	{
		name:    "ev",
		aliases: []string{"e"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetEV()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseInt8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetEV(v)
		},
	},
	{
		name:    "iso",
		aliases: []string{"i"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetISO()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint16(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetISO(v)
		},
	},
	{
		name:    "contrast",
		aliases: []string{"co"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetContrast()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseInt8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetContrast(v)
		},
	},
	{
		name:    "sharpness",
		aliases: []string{"sh"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetSharpness()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseInt8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetSharpness(v)
		},
	},
	{
		name:    "brightness",
		aliases: []string{"br"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetBrightness()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetBrightness(v)
		},
	},
	{
		name:    "saturation",
		aliases: []string{"sa"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetSaturation()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseInt8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetSaturation(v)
		},
	},
	{
		name:    "white_balance",
		aliases: []string{"wb"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetWhiteBalance()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetWhiteBalance(camera.WhiteBalance(v))
		},
	},
	{
		name:    "shutter_speed",
		aliases: []string{"shutter", "ss"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetShutterSpeed()
			return strconv.FormatUint(v, 10), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint64(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetShutterSpeed(v)
		},
	},
	{
		name:    "exposure_mode",
		aliases: []string{"ex"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetExposureMode()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetExposureMode(camera.ExposureMode(v))
		},
	},
	{
		name:    "metering_mode",
		aliases: []string{"mm"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetMeteringMode()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetMeteringMode(camera.MeteringMode(v))
		},
	},
	{
		name:    "jpg_quality",
		aliases: []string{"q"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetJpgQuality()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetJpgQuality(v)
		},
	},
	{
		name:    "image_size",
		aliases: []string{"size", "is"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			w, ht, ec := h.GetImageSize()
			return fmt.Sprintf("%dx%d", w, ht), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			if len(args) < 2 {
				return camera.Undefined
			}
			w, err1 := parseUint16(args[0])
			ht, err2 := parseUint16(args[1])
			if err1 != nil || err2 != nil {
				return camera.Undefined
			}
			return h.SetImageSize(w, ht)
		},
	},
	{
		name:    "image_effect",
		aliases: []string{"ifx", "effect"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetImageEffect()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetImageEffect(camera.ImageEffect(v))
		},
	},
	{
		name:    "image_rotation",
		aliases: []string{"rot"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetImageRotation()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint16(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetImageRotation(v)
		},
	},
	{
		name:    "video_bit_rate",
		aliases: []string{"vbr", "bitrate"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetVideoBitRate()
			return strconv.FormatUint(uint64(v), 10), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint32(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetVideoBitRate(v)
		},
	},
	{
		name:    "video_frame_rate",
		aliases: []string{"vfr", "fps"},
		get: func(h *camera.Handle) (string, camera.ErrorCode) {
			v, ec := h.GetVideoFrameRate()
			return strconv.Itoa(int(v)), ec
		},
		set: func(h *camera.Handle, args []string) camera.ErrorCode {
			v, err := parseUint8(args[0])
			if err != nil {
				return camera.Undefined
			}
			return h.SetVideoFrameRate(v)
		},
	},
}

// lookupField resolves a FIELD token (canonical name or any alias).
func lookupField(token string) (field, bool) {
	for _, f := range fieldTable {
		if f.name == token {
			return f, true
		}
		for _, a := range f.aliases {
			if a == token {
				return f, true
			}
		}
	}
	return field{}, false
}
