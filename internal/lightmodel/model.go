// Package lightmodel describes Hue light models and selects one by the
// model ID the bridge reports.
package lightmodel

import (
	"errors"
	"fmt"
)

// Light types as reported by the bridge.
const (
	TypeExtendedColor    = "Extended color light"
	TypeColor            = "Color light"
	TypeColorTemperature = "Color temperature light"
	TypeDimmable         = "Dimmable light"
	TypeUnknown          = "Unknown"
)

// ErrNotColorCapable is returned when a color conversion is requested from
// a model without a color gamut.
var ErrNotColorCapable = errors.New("light model is not color capable")

// MiredRange is the color temperature range of a white-ambiance light.
type MiredRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Model is the behavior and metadata of one light model.
type Model struct {
	ID           string      `json:"model_id"`
	Manufacturer string      `json:"manufacturer"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Gamut        *Gamut      `json:"gamut,omitempty"`
	ColorTemp    *MiredRange `json:"color_temp,omitempty"`
}

// ColorBased reports whether the light reproduces colors (has a gamut).
func (m *Model) ColorBased() bool {
	return m.Gamut != nil
}

// Dimmable reports whether brightness can be set. Every known type is.
func (m *Model) Dimmable() bool {
	return m.Type != TypeUnknown
}

// RGBToXY converts an sRGB color to the closest xy point the light can show.
func (m *Model) RGBToXY(r, g, b uint8) (XY, error) {
	if m.Gamut == nil {
		return XY{}, fmt.Errorf("%w: %s", ErrNotColorCapable, m.ID)
	}
	return m.Gamut.Closest(rgbToXY(r, g, b)), nil
}

// ClampMired clamps a color temperature to the model's range. Models
// without a color temperature range return the value unchanged.
func (m *Model) ClampMired(mired int) int {
	if m.ColorTemp == nil {
		return mired
	}
	return max(m.ColorTemp.Min, min(m.ColorTemp.Max, mired))
}

// String returns "ID (Name)".
func (m *Model) String() string {
	return fmt.Sprintf("%s (%s)", m.ID, m.Name)
}
