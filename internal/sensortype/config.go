package sensortype

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Config is the configuration half of a sensor.
type Config interface {
	SensorType() string
	Base() *BaseConfig
}

// BaseConfig holds the attributes every sensor config carries.
type BaseConfig struct {
	On        bool `json:"on"`
	Reachable bool `json:"reachable"`
	// Battery is nil for mains powered and virtual sensors.
	Battery *int `json:"battery,omitempty"`
}

func (c *BaseConfig) Base() *BaseConfig { return c }

// ClipConfig is the config of a CLIP (software) sensor.
type ClipConfig struct {
	BaseConfig
	URL string `json:"url,omitempty"`

	typ string
}

func (c *ClipConfig) SensorType() string { return c.typ }

func clipConfig(typ string) ConfigConstructor {
	return configOf(func() *ClipConfig { return &ClipConfig{typ: typ} })
}

// SwitchConfig is the config of a ZigBee switch.
type SwitchConfig struct {
	BaseConfig

	typ string
}

func (c *SwitchConfig) SensorType() string { return c.typ }

func switchConfig(typ string) ConfigConstructor {
	return configOf(func() *SwitchConfig { return &SwitchConfig{typ: typ} })
}

// DaylightConfig is the config of the bridge's built-in daylight sensor.
// Long and Lat use the bridge notation, e.g. "000.0000E" and "051.0000N".
type DaylightConfig struct {
	BaseConfig
	Long          string `json:"long,omitempty"`
	Lat           string `json:"lat,omitempty"`
	SunriseOffset int    `json:"sunriseoffset"`
	SunsetOffset  int    `json:"sunsetoffset"`
	Configured    bool   `json:"configured"`
}

func (c *DaylightConfig) SensorType() string { return Daylight }

// Coordinates returns the configured position in signed decimal degrees.
func (c *DaylightConfig) Coordinates() (lat, lon float64, ok bool) {
	lat, okLat := parseCoordinate(c.Lat, 'N', 'S')
	lon, okLon := parseCoordinate(c.Long, 'E', 'W')
	return lat, lon, okLat && okLon
}

func parseCoordinate(s string, positive, negative byte) (float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, false
	}
	hemisphere := s[len(s)-1]
	v, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, false
	}
	switch hemisphere {
	case positive:
		return v, true
	case negative:
		return -v, true
	}
	return 0, false
}

// UnknownConfig keeps the raw attributes of an unsupported sensor type.
// Base fields are filled when their values have the expected types.
type UnknownConfig struct {
	BaseConfig
	Attributes map[string]any `json:"-"`
}

func (c *UnknownConfig) SensorType() string { return Unknown }

// MarshalJSON emits the raw attributes, completed by the base fields.
func (c *UnknownConfig) MarshalJSON() ([]byte, error) {
	return mergeJSON(c.BaseConfig, c.Attributes)
}

func newUnknownConfig(raw json.RawMessage) (Config, error) {
	c := &UnknownConfig{Attributes: map[string]any{}}
	fields, err := decodeAttributes(raw, &c.Attributes)
	if err != nil {
		return nil, err
	}

	decodeField(fields, "on", &c.On)
	decodeField(fields, "reachable", &c.Reachable)
	var battery int
	if decodeField(fields, "battery", &battery) {
		c.Battery = &battery
	}
	return c, nil
}
