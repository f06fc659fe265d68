package sensortype

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewState_ZLLSwitch(t *testing.T) {
	s, err := NewState("ZLLSwitch", json.RawMessage(`{"buttonevent": 34, "lastupdated": "2016-03-05T12:00:01"}`))
	require.NoError(t, err)

	bs, ok := s.(*ButtonState)
	require.True(t, ok, "got %T", s)
	assert.Equal(t, ZLLSwitch, bs.SensorType())
	assert.Equal(t, 34, bs.ButtonEvent)

	updated, ok := bs.Updated()
	require.True(t, ok)
	assert.Equal(t, time.Date(2016, 3, 5, 12, 0, 1, 0, time.UTC), updated)
}

func TestBogusTypeResolvesToUnknownPair(t *testing.T) {
	c, err := NewConfig("Bogus", json.RawMessage(`{}`))
	require.NoError(t, err)
	s, err := NewState("Bogus", json.RawMessage(`{}`))
	require.NoError(t, err)

	assert.IsType(t, &UnknownConfig{}, c)
	assert.IsType(t, &UnknownState{}, s)
	assert.Equal(t, Unknown, c.SensorType())
	assert.Equal(t, Unknown, s.SensorType())
}

func TestTrailingWhitespaceIsNotAKnownType(t *testing.T) {
	c, err := NewConfig("CLIPGenericFlag ", nil)
	require.NoError(t, err)
	assert.Equal(t, Unknown, c.SensorType())

	c, err = NewConfig(CLIPGenericFlag, nil)
	require.NoError(t, err)
	assert.Equal(t, CLIPGenericFlag, c.SensorType())
}

func TestEveryTypeHasMatchingPair(t *testing.T) {
	codes := Types.Codes()
	require.Len(t, codes, 11)
	for _, typ := range codes {
		c, err := NewConfig(typ, nil)
		require.NoError(t, err, typ)
		s, err := NewState(typ, nil)
		require.NoError(t, err, typ)

		assert.Equal(t, typ, c.SensorType(), "config for %s", typ)
		assert.Equal(t, typ, s.SensorType(), "state for %s", typ)
	}
}

func TestRegistriesShareKeySet(t *testing.T) {
	assert.Same(t, configs.Keys(), states.Keys())
	assert.Same(t, Types, configs.Keys())
}

func TestProperty_ConfigAndStateAlwaysPaired(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		typ := rapid.OneOf(
			rapid.SampledFrom(Types.Codes()),
			rapid.String(),
			rapid.StringMatching(`(CLIP|ZLL|ZGP)[A-Za-z]{0,12}`),
		).Draw(rt, "type")

		c, err := NewConfig(typ, nil)
		require.NoError(rt, err)
		s, err := NewState(typ, nil)
		require.NoError(rt, err)

		require.Equal(rt, c.SensorType(), s.SensorType())
		require.Equal(rt, Resolve(typ), c.SensorType())
	})
}

func TestNewConfig_Daylight(t *testing.T) {
	raw := json.RawMessage(`{
		"on": true,
		"long": "004.9000E",
		"lat": "052.3700N",
		"sunriseoffset": 30,
		"sunsetoffset": -30,
		"configured": true
	}`)
	c, err := NewConfig(Daylight, raw)
	require.NoError(t, err)

	dc, ok := c.(*DaylightConfig)
	require.True(t, ok, "got %T", c)
	assert.True(t, dc.On)
	assert.True(t, dc.Configured)
	assert.Equal(t, 30, dc.SunriseOffset)
	assert.Equal(t, -30, dc.SunsetOffset)

	lat, lon, ok := dc.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 52.37, lat, 1e-9)
	assert.InDelta(t, 4.9, lon, 1e-9)
}

func TestDaylightConfig_CoordinatesSouthWest(t *testing.T) {
	dc := &DaylightConfig{Lat: "033.8600S", Long: "151.2000W"}
	lat, lon, ok := dc.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, -33.86, lat, 1e-9)
	assert.InDelta(t, -151.2, lon, 1e-9)

	_, _, ok = (&DaylightConfig{Lat: "none", Long: "none"}).Coordinates()
	assert.False(t, ok)
}

func TestNewConfig_ClipWithBattery(t *testing.T) {
	c, err := NewConfig(CLIPTemperature, json.RawMessage(`{"on":true,"reachable":true,"battery":87,"url":"http://example.local/t"}`))
	require.NoError(t, err)

	cc, ok := c.(*ClipConfig)
	require.True(t, ok, "got %T", c)
	assert.Equal(t, CLIPTemperature, cc.SensorType())
	assert.Equal(t, "http://example.local/t", cc.URL)
	require.NotNil(t, cc.Base().Battery)
	assert.Equal(t, 87, *cc.Base().Battery)
	assert.True(t, cc.Base().Reachable)
}

func TestNewState_Values(t *testing.T) {
	s, err := NewState(CLIPTemperature, json.RawMessage(`{"temperature": 2150}`))
	require.NoError(t, err)
	assert.InDelta(t, 21.5, s.(*TemperatureState).Celsius(), 1e-9)

	s, err = NewState(CLIPHumidity, json.RawMessage(`{"humidity": 4525}`))
	require.NoError(t, err)
	assert.InDelta(t, 45.25, s.(*HumidityState).Percent(), 1e-9)

	s, err = NewState(CLIPOpenClose, json.RawMessage(`{"open": true}`))
	require.NoError(t, err)
	assert.True(t, s.(*OpenCloseState).Open)

	s, err = NewState(CLIPPresence, json.RawMessage(`{"presence": true}`))
	require.NoError(t, err)
	assert.True(t, s.(*PresenceState).Presence)

	s, err = NewState(CLIPGenericFlag, json.RawMessage(`{"flag": true}`))
	require.NoError(t, err)
	assert.True(t, s.(*FlagState).Flag)

	s, err = NewState(CLIPGenericStatus, json.RawMessage(`{"status": 3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, s.(*StatusState).Status)

	s, err = NewState(Daylight, json.RawMessage(`{"daylight": null, "lastupdated": "none"}`))
	require.NoError(t, err)
	ds := s.(*DaylightState)
	assert.Nil(t, ds.Daylight)
	_, ok := ds.Updated()
	assert.False(t, ok)
}

func TestNewState_UnknownKeepsAttributes(t *testing.T) {
	s, err := NewState("ZHALightLevel", json.RawMessage(`{"lightlevel": 12000, "dark": false, "lastupdated": "2020-01-01T00:00:00"}`))
	require.NoError(t, err)

	us, ok := s.(*UnknownState)
	require.True(t, ok, "got %T", s)
	assert.Equal(t, float64(12000), us.Attributes["lightlevel"])
	assert.Equal(t, false, us.Attributes["dark"])
	assert.Equal(t, "2020-01-01T00:00:00", us.LastUpdated)
}

func TestNewConfig_UnknownKeepsAttributes(t *testing.T) {
	c, err := NewConfig("ZHAPresence", json.RawMessage(`{"on": true, "sensitivity": 2}`))
	require.NoError(t, err)

	uc, ok := c.(*UnknownConfig)
	require.True(t, ok, "got %T", c)
	assert.True(t, uc.On)
	assert.Equal(t, float64(2), uc.Attributes["sensitivity"])
}

func TestUnknownVariantsTolerateMistypedBaseFields(t *testing.T) {
	c, err := NewConfig("ZHAVibration", json.RawMessage(`{"on": true, "battery": "low"}`))
	require.NoError(t, err)
	uc := c.(*UnknownConfig)
	assert.True(t, uc.On)
	assert.Nil(t, uc.Battery)
	assert.Equal(t, "low", uc.Attributes["battery"])

	s, err := NewState("ZHAVibration", json.RawMessage(`{"lastupdated": 1700000000}`))
	require.NoError(t, err)
	us := s.(*UnknownState)
	assert.Empty(t, us.LastUpdated)
	assert.Equal(t, float64(1700000000), us.Attributes["lastupdated"])

	_, err = NewConfig("ZHAVibration", json.RawMessage(`[1, 2]`))
	require.Error(t, err)
}

func TestUnknownVariantsMarshalAttributes(t *testing.T) {
	c, err := NewConfig("ZHAPresence", json.RawMessage(`{"reachable": true, "battery": "low", "sensitivity": 2}`))
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(2), got["sensitivity"])
	assert.Equal(t, "low", got["battery"])
	assert.Equal(t, true, got["reachable"])
	assert.Equal(t, false, got["on"])

	s, err := NewState("ZHALightLevel", json.RawMessage(`{"lightlevel": 12000}`))
	require.NoError(t, err)
	data, err = json.Marshal(s)
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{"lightlevel": float64(12000)}, got)
}

func TestDecodeErrorsPropagateUnchanged(t *testing.T) {
	_, err := NewState(ZLLSwitch, json.RawMessage(`{"buttonevent": "not a number"}`))
	require.Error(t, err)
	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)

	_, err = NewConfig(Unknown, json.RawMessage(`{"on": `))
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestNewPair(t *testing.T) {
	p, err := NewPair(ZGPSwitch, json.RawMessage(`{"on": true}`), json.RawMessage(`{"buttonevent": 16}`))
	require.NoError(t, err)
	assert.Equal(t, ZGPSwitch, p.Type)
	assert.Equal(t, ZGPSwitch, p.Config.SensorType())
	assert.Equal(t, 16, p.State.(*ButtonState).ButtonEvent)

	p, err = NewPair("zllswitch", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Unknown, p.Type)

	_, err = NewPair(ZLLSwitch, nil, json.RawMessage(`[`))
	require.Error(t, err)
}
