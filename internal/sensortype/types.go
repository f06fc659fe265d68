// Package sensortype builds typed config and state values for Hue sensors.
//
// Config and state registries are validated against the same key set, so a
// given sensor type always yields a matching config/state pair.
package sensortype

import (
	"encoding/json"

	"github.com/dokzlo13/huecatalog/internal/dispatch"
)

// Supported sensor types.
const (
	CLIPGenericFlag   = "CLIPGenericFlag"
	CLIPGenericStatus = "CLIPGenericStatus"
	CLIPHumidity      = "CLIPHumidity"
	CLIPOpenClose     = "CLIPOpenClose"
	CLIPPresence      = "CLIPPresence"
	CLIPSwitch        = "CLIPSwitch"
	CLIPTemperature   = "CLIPTemperature"
	Daylight          = "Daylight"
	ZGPSwitch         = "ZGPSwitch"
	ZLLSwitch         = "ZLLSwitch"
	Unknown           = dispatch.Unknown
)

// Types is the canonical set of supported sensor types, shared by the
// config and state registries.
var Types = dispatch.MustKeySet(
	CLIPGenericFlag,
	CLIPGenericStatus,
	CLIPHumidity,
	CLIPOpenClose,
	CLIPPresence,
	CLIPSwitch,
	CLIPTemperature,
	Daylight,
	ZGPSwitch,
	ZLLSwitch,
	Unknown,
)

// ConfigConstructor decodes a raw config payload into a typed Config.
type ConfigConstructor func(raw json.RawMessage) (Config, error)

// StateConstructor decodes a raw state payload into a typed State.
type StateConstructor func(raw json.RawMessage) (State, error)

var configs = dispatch.MustNew(Types, map[string]ConfigConstructor{
	CLIPGenericFlag:   clipConfig(CLIPGenericFlag),
	CLIPGenericStatus: clipConfig(CLIPGenericStatus),
	CLIPHumidity:      clipConfig(CLIPHumidity),
	CLIPOpenClose:     clipConfig(CLIPOpenClose),
	CLIPPresence:      clipConfig(CLIPPresence),
	CLIPSwitch:        clipConfig(CLIPSwitch),
	CLIPTemperature:   clipConfig(CLIPTemperature),
	Daylight:          configOf(func() *DaylightConfig { return &DaylightConfig{} }),
	ZGPSwitch:         switchConfig(ZGPSwitch),
	ZLLSwitch:         switchConfig(ZLLSwitch),
	Unknown:           newUnknownConfig,
})

var states = dispatch.MustNew(Types, map[string]StateConstructor{
	CLIPGenericFlag:   stateOf(func() *FlagState { return &FlagState{} }),
	CLIPGenericStatus: stateOf(func() *StatusState { return &StatusState{} }),
	CLIPHumidity:      stateOf(func() *HumidityState { return &HumidityState{} }),
	CLIPOpenClose:     stateOf(func() *OpenCloseState { return &OpenCloseState{} }),
	CLIPPresence:      stateOf(func() *PresenceState { return &PresenceState{} }),
	CLIPSwitch:        buttonState(CLIPSwitch),
	CLIPTemperature:   stateOf(func() *TemperatureState { return &TemperatureState{} }),
	Daylight:          stateOf(func() *DaylightState { return &DaylightState{} }),
	ZGPSwitch:         buttonState(ZGPSwitch),
	ZLLSwitch:         buttonState(ZLLSwitch),
	Unknown:           newUnknownState,
})

// Resolve maps typ onto a supported sensor type, Unknown if unsupported.
func Resolve(typ string) string {
	return Types.Resolve(typ)
}

// NewConfig decodes raw into the config variant for typ. Unsupported types
// yield an *UnknownConfig. Decoding errors are returned as-is.
func NewConfig(typ string, raw json.RawMessage) (Config, error) {
	_, ctor := configs.Lookup(typ)
	return ctor(raw)
}

// NewState decodes raw into the state variant for typ. Unsupported types
// yield an *UnknownState. Decoding errors are returned as-is.
func NewState(typ string, raw json.RawMessage) (State, error) {
	_, ctor := states.Lookup(typ)
	return ctor(raw)
}

// Pair is a matched config and state of one sensor type.
type Pair struct {
	Type   string
	Config Config
	State  State
}

// NewPair builds both halves for typ.
func NewPair(typ string, config, state json.RawMessage) (Pair, error) {
	resolved := Resolve(typ)

	c, err := NewConfig(resolved, config)
	if err != nil {
		return Pair{}, err
	}
	s, err := NewState(resolved, state)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Type: resolved, Config: c, State: s}, nil
}

// decodePayload unmarshals raw into v. An absent payload leaves v zeroed.
func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// decodeAttributes unmarshals raw into attrs and also returns the undecoded
// field values. Only a payload that is not a JSON object fails.
func decodeAttributes(raw json.RawMessage, attrs *map[string]any) (map[string]json.RawMessage, error) {
	if err := decodePayload(raw, attrs); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := decodePayload(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeField unmarshals fields[key] into v and reports whether it was set.
// Missing keys, nulls and type mismatches leave v untouched.
func decodeField[T any](fields map[string]json.RawMessage, key string, v *T) bool {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return false
	}
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return false
	}
	*v = decoded
	return true
}

// mergeJSON encodes base and adds every attribute, attributes taking
// precedence over base fields of the same name.
func mergeJSON(base any, attrs map[string]any) ([]byte, error) {
	data, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]any, len(attrs))
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range attrs {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func configOf[T Config](build func() T) ConfigConstructor {
	return func(raw json.RawMessage) (Config, error) {
		c := build()
		if err := decodePayload(raw, c); err != nil {
			return nil, err
		}
		return c, nil
	}
}

func stateOf[T State](build func() T) StateConstructor {
	return func(raw json.RawMessage) (State, error) {
		s := build()
		if err := decodePayload(raw, s); err != nil {
			return nil, err
		}
		return s, nil
	}
}
