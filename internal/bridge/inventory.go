// Package bridge decodes Hue bridge (v1 API) resource dumps and resolves
// every light and sensor to its model, config and state variants.
package bridge

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/huecatalog/internal/lightmodel"
	"github.com/dokzlo13/huecatalog/internal/sensormodel"
	"github.com/dokzlo13/huecatalog/internal/sensortype"
)

// Inventory holds all resolved devices of one bridge
type Inventory struct {
	Lights  []Light
	Sensors []Sensor
}

// Light returns the light with the given bridge ID
func (inv *Inventory) Light(id string) (*Light, bool) {
	for i := range inv.Lights {
		if inv.Lights[i].ID == id {
			return &inv.Lights[i], true
		}
	}
	return nil, false
}

// Sensor returns the sensor with the given bridge ID
func (inv *Inventory) Sensor(id string) (*Sensor, bool) {
	for i := range inv.Sensors {
		if inv.Sensors[i].ID == id {
			return &inv.Sensors[i], true
		}
	}
	return nil, false
}

// LoadInventory reads a bridge datastore dump (GET /api/<user>) from path
func LoadInventory(path string) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inv, err := DecodeInventory(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode inventory %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("lights", len(inv.Lights)).
		Int("sensors", len(inv.Sensors)).
		Msg("Inventory loaded")

	return inv, nil
}

// DecodeInventory decodes a datastore dump with "lights" and "sensors" maps.
// Other top level sections (groups, scenes, config...) are ignored.
func DecodeInventory(r io.Reader) (*Inventory, error) {
	data, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Lights  map[string]Light     `json:"lights"`
		Sensors map[string]rawSensor `json:"sensors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	sensors, err := resolveSensors(raw.Sensors)
	if err != nil {
		return nil, err
	}

	return &Inventory{
		Lights:  resolveLights(raw.Lights),
		Sensors: sensors,
	}, nil
}

// DecodeLights decodes the response of GET /api/<user>/lights
func DecodeLights(r io.Reader) ([]Light, error) {
	data, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]Light
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return resolveLights(raw), nil
}

// DecodeSensors decodes the response of GET /api/<user>/sensors
func DecodeSensors(r io.Reader) ([]Sensor, error) {
	data, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]rawSensor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return resolveSensors(raw)
}

// readPayload reads the whole body and turns a bridge error array into an *APIError
func readPayload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []struct {
			Error *APIError `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Error != nil {
				return nil, e.Error
			}
		}
		return nil, fmt.Errorf("unexpected array response")
	}

	return trimmed, nil
}

func resolveLights(raw map[string]Light) []Light {
	lights := make([]Light, 0, len(raw))
	for id, light := range raw {
		light.ID = id
		light.Model = lightmodel.New(light.ModelID)

		if light.Model.ID == lightmodel.Unknown {
			log.Warn().
				Str("light", id).
				Str("name", light.Name).
				Str("model_id", light.ModelID).
				Msg("Unsupported light model, using Unknown")
		}

		lights = append(lights, light)
	}

	slices.SortFunc(lights, func(a, b Light) int { return compareIDs(a.ID, b.ID) })
	return lights
}

func resolveSensors(raw map[string]rawSensor) ([]Sensor, error) {
	sensors := make([]Sensor, 0, len(raw))
	for id, rs := range raw {
		pair, err := sensortype.NewPair(rs.Type, rs.Config, rs.State)
		if err != nil {
			return nil, fmt.Errorf("sensor %s (%s): %w", id, rs.Type, err)
		}

		sensor := Sensor{
			ID:               id,
			Name:             rs.Name,
			Type:             rs.Type,
			ModelID:          rs.ModelID,
			ManufacturerName: rs.ManufacturerName,
			UniqueID:         rs.UniqueID,
			SoftwareVersion:  rs.SoftwareVersion,
			Model:            sensormodel.New(rs.ModelID),
			Config:           pair.Config,
			State:            pair.State,
		}

		if pair.Type == sensortype.Unknown {
			log.Warn().
				Str("sensor", id).
				Str("name", rs.Name).
				Str("type", rs.Type).
				Msg("Unsupported sensor type, using Unknown")
		}
		if sensor.Model.ID == sensormodel.Unknown {
			log.Debug().
				Str("sensor", id).
				Str("model_id", rs.ModelID).
				Msg("Unsupported sensor model, using Unknown")
		}

		sensors = append(sensors, sensor)
	}

	slices.SortFunc(sensors, func(a, b Sensor) int { return compareIDs(a.ID, b.ID) })
	return sensors, nil
}

// compareIDs orders numeric bridge IDs numerically, anything else lexically
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}
