package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/dokzlo13/huecatalog/internal/lightmodel"
	"github.com/dokzlo13/huecatalog/internal/sensormodel"
	"github.com/dokzlo13/huecatalog/internal/sensortype"
)

// LightState represents the state of a Hue light (v1 API)
type LightState struct {
	On        bool      `json:"on"`
	Bri       int       `json:"bri"`
	Hue       int       `json:"hue"`
	Sat       int       `json:"sat"`
	XY        []float64 `json:"xy,omitempty"`
	CT        int       `json:"ct"`
	Alert     string    `json:"alert,omitempty"`
	Effect    string    `json:"effect,omitempty"`
	ColorMode string    `json:"colormode,omitempty"`
	Reachable bool      `json:"reachable"`
}

// Light represents a Hue light (v1 API) with its resolved model
type Light struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	ModelID          string     `json:"modelid"`
	ManufacturerName string     `json:"manufacturername"`
	UniqueID         string     `json:"uniqueid"`
	SoftwareVersion  string     `json:"swversion"`
	State            LightState `json:"state"`

	Model *lightmodel.Model `json:"-"`
}

// Sensor represents a Hue sensor (v1 API) with its resolved model,
// config and state
type Sensor struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	ModelID          string `json:"modelid"`
	ManufacturerName string `json:"manufacturername"`
	UniqueID         string `json:"uniqueid"`
	SoftwareVersion  string `json:"swversion"`

	Model  *sensormodel.Model `json:"-"`
	Config sensortype.Config  `json:"-"`
	State  sensortype.State   `json:"-"`
}

// rawSensor is the wire shape of a sensor before its type is dispatched
type rawSensor struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	ModelID          string          `json:"modelid"`
	ManufacturerName string          `json:"manufacturername"`
	UniqueID         string          `json:"uniqueid"`
	SoftwareVersion  string          `json:"swversion"`
	Config           json.RawMessage `json:"config"`
	State            json.RawMessage `json:"state"`
}

// APIError is an error entry returned by the bridge instead of a resource map
type APIError struct {
	Type        int    `json:"type"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hue bridge error %d at %s: %s", e.Type, e.Address, e.Description)
}
