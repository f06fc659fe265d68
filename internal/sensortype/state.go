package sensortype

import (
	"encoding/json"
	"time"
)

// lastUpdatedLayout is the bridge's timestamp format (UTC, no zone suffix).
const lastUpdatedLayout = "2006-01-02T15:04:05"

// State is the reported state half of a sensor.
type State interface {
	SensorType() string
	Updated() (time.Time, bool)
}

// BaseState holds the attributes every sensor state carries.
type BaseState struct {
	LastUpdated string `json:"lastupdated,omitempty"`
}

// Updated parses LastUpdated. It reports false for "none" or a missing value.
func (s *BaseState) Updated() (time.Time, bool) {
	t, err := time.ParseInLocation(lastUpdatedLayout, s.LastUpdated, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FlagState is the state of a CLIP generic flag sensor.
type FlagState struct {
	BaseState
	Flag bool `json:"flag"`
}

func (s *FlagState) SensorType() string { return CLIPGenericFlag }

// StatusState is the state of a CLIP generic status sensor.
type StatusState struct {
	BaseState
	Status int `json:"status"`
}

func (s *StatusState) SensorType() string { return CLIPGenericStatus }

// HumidityState reports relative humidity in 0.01% steps.
type HumidityState struct {
	BaseState
	Humidity int `json:"humidity"`
}

func (s *HumidityState) SensorType() string { return CLIPHumidity }

// Percent returns the humidity in percent.
func (s *HumidityState) Percent() float64 {
	return float64(s.Humidity) / 100
}

// OpenCloseState is the state of a CLIP open/close sensor.
type OpenCloseState struct {
	BaseState
	Open bool `json:"open"`
}

func (s *OpenCloseState) SensorType() string { return CLIPOpenClose }

// PresenceState is the state of a CLIP presence sensor.
type PresenceState struct {
	BaseState
	Presence bool `json:"presence"`
}

func (s *PresenceState) SensorType() string { return CLIPPresence }

// TemperatureState reports temperature in 0.01 °C steps.
type TemperatureState struct {
	BaseState
	Temperature int `json:"temperature"`
}

func (s *TemperatureState) SensorType() string { return CLIPTemperature }

// Celsius returns the temperature in degrees Celsius.
func (s *TemperatureState) Celsius() float64 {
	return float64(s.Temperature) / 100
}

// DaylightState is nil-valued until the daylight sensor is configured.
type DaylightState struct {
	BaseState
	Daylight *bool `json:"daylight"`
}

func (s *DaylightState) SensorType() string { return Daylight }

// ButtonState is the state of any switch sensor.
type ButtonState struct {
	BaseState
	ButtonEvent int `json:"buttonevent"`

	typ string
}

func (s *ButtonState) SensorType() string { return s.typ }

func buttonState(typ string) StateConstructor {
	return stateOf(func() *ButtonState { return &ButtonState{typ: typ} })
}

// UnknownState keeps the raw attributes of an unsupported sensor type.
// LastUpdated is filled only when it is a string.
type UnknownState struct {
	BaseState
	Attributes map[string]any `json:"-"`
}

func (s *UnknownState) SensorType() string { return Unknown }

// MarshalJSON emits the raw attributes, completed by the base fields.
func (s *UnknownState) MarshalJSON() ([]byte, error) {
	return mergeJSON(s.BaseState, s.Attributes)
}

func newUnknownState(raw json.RawMessage) (State, error) {
	s := &UnknownState{Attributes: map[string]any{}}
	fields, err := decodeAttributes(raw, &s.Attributes)
	if err != nil {
		return nil, err
	}

	decodeField(fields, "lastupdated", &s.LastUpdated)
	return s, nil
}
