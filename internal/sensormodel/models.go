// Package sensormodel describes Hue sensor models and selects one by the
// model ID the bridge reports.
package sensormodel

import (
	"github.com/dokzlo13/huecatalog/internal/dispatch"
	"github.com/dokzlo13/huecatalog/internal/sensortype"
)

// Supported sensor model IDs.
const (
	PHDL00    = "PHDL00"
	RWL020    = "RWL020"
	RWL021    = "RWL021"
	ZGPSWITCH = "ZGPSWITCH"
	Unknown   = dispatch.Unknown
)

// ButtonEvent is one buttonevent code a switch model can report.
type ButtonEvent struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// Model is the metadata of one sensor model.
type Model struct {
	ID           string `json:"model_id"`
	Manufacturer string `json:"manufacturer"`
	Name         string `json:"name"`
	// Type is the sensor type this model reports, see package sensortype.
	Type   string        `json:"type"`
	Events []ButtonEvent `json:"events,omitempty"`
}

// IsSwitch reports whether the model emits button events.
func (m *Model) IsSwitch() bool {
	return len(m.Events) > 0
}

// DescribeEvent returns the description of a buttonevent code.
func (m *Model) DescribeEvent(code int) (string, bool) {
	for _, e := range m.Events {
		if e.Code == code {
			return e.Description, true
		}
	}
	return "", false
}

// Constructor builds a new Model value.
type Constructor func() *Model

// Models is the canonical set of supported sensor model IDs.
var Models = dispatch.MustKeySet(PHDL00, RWL020, RWL021, ZGPSWITCH, Unknown)

var registry = dispatch.MustNew(Models, map[string]Constructor{
	PHDL00: func() *Model {
		return &Model{ID: PHDL00, Manufacturer: "Philips", Name: "Daylight", Type: sensortype.Daylight}
	},
	RWL020: func() *Model {
		return &Model{ID: RWL020, Manufacturer: "Philips", Name: "Hue Dimmer Switch", Type: sensortype.ZLLSwitch, Events: dimmerEvents()}
	},
	RWL021: func() *Model {
		return &Model{ID: RWL021, Manufacturer: "Philips", Name: "Hue Dimmer Switch", Type: sensortype.ZLLSwitch, Events: dimmerEvents()}
	},
	ZGPSWITCH: func() *Model {
		return &Model{ID: ZGPSWITCH, Manufacturer: "Philips", Name: "Hue Tap", Type: sensortype.ZGPSwitch, Events: tapEvents()}
	},
	Unknown: func() *Model {
		return &Model{ID: Unknown, Manufacturer: Unknown, Name: Unknown, Type: sensortype.Unknown}
	},
})

// New returns a fresh Model for modelID, or the Unknown model when the ID is
// not supported.
func New(modelID string) *Model {
	_, ctor := registry.Lookup(modelID)
	return ctor()
}

// Resolve maps modelID onto a supported ID, Unknown if unsupported.
func Resolve(modelID string) string {
	return Models.Resolve(modelID)
}

// Supported reports whether modelID has a dedicated model.
func Supported(modelID string) bool {
	return modelID != Unknown && Models.Contains(modelID)
}

func dimmerEvents() []ButtonEvent {
	buttons := []string{"On", "Dim up", "Dim down", "Off"}
	actions := []string{"initial press", "hold", "short release", "long release"}

	events := make([]ButtonEvent, 0, len(buttons)*len(actions))
	for i, button := range buttons {
		for j, action := range actions {
			events = append(events, ButtonEvent{
				Code:        (i+1)*1000 + j,
				Description: button + " " + action,
			})
		}
	}
	return events
}

func tapEvents() []ButtonEvent {
	return []ButtonEvent{
		{Code: 34, Description: "Button 1"},
		{Code: 16, Description: "Button 2"},
		{Code: 17, Description: "Button 3"},
		{Code: 18, Description: "Button 4"},
	}
}
