package modules

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/huecatalog/internal/bridge"
)

// InventoryModule exposes the resolved bridge devices to Lua
type InventoryModule struct {
	inventory *bridge.Inventory
}

// NewInventoryModule creates a new inventory module. inv may be nil, in
// which case the module reports no devices.
func NewInventoryModule(inv *bridge.Inventory) *InventoryModule {
	if inv == nil {
		inv = &bridge.Inventory{}
	}
	return &InventoryModule{inventory: inv}
}

// Loader is the module loader for Lua
func (m *InventoryModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "lights", L.NewFunction(m.lights))
	L.SetField(mod, "sensors", L.NewFunction(m.sensors))
	L.SetField(mod, "light", L.NewFunction(m.light))
	L.SetField(mod, "sensor", L.NewFunction(m.sensor))

	L.Push(mod)
	return 1
}

// lights() -> array of light tables
func (m *InventoryModule) lights(L *lua.LState) int {
	tbl := L.NewTable()
	for i := range m.inventory.Lights {
		tbl.Append(m.lightTable(L, &m.inventory.Lights[i]))
	}
	L.Push(tbl)
	return 1
}

// sensors() -> array of sensor tables
func (m *InventoryModule) sensors(L *lua.LState) int {
	tbl := L.NewTable()
	for i := range m.inventory.Sensors {
		tbl.Append(m.sensorTable(L, &m.inventory.Sensors[i]))
	}
	L.Push(tbl)
	return 1
}

// light(id) -> light table | nil
func (m *InventoryModule) light(L *lua.LState) int {
	light, ok := m.inventory.Light(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(m.lightTable(L, light))
	return 1
}

// sensor(id) -> sensor table | nil
func (m *InventoryModule) sensor(L *lua.LState) int {
	sensor, ok := m.inventory.Sensor(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(m.sensorTable(L, sensor))
	return 1
}

func (m *InventoryModule) lightTable(L *lua.LState, light *bridge.Light) *lua.LTable {
	tbl := tableOf(L, light)
	L.SetField(tbl, "model", LightModelTable(L, light.Model))
	return tbl
}

func (m *InventoryModule) sensorTable(L *lua.LState, sensor *bridge.Sensor) *lua.LTable {
	tbl := tableOf(L, sensor)
	L.SetField(tbl, "model", SensorModelTable(L, sensor.Model))
	L.SetField(tbl, "config", SensorConfigTable(L, sensor.Config))
	L.SetField(tbl, "state", SensorStateTable(L, sensor.State))
	return tbl
}
