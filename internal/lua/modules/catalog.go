package modules

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/huecatalog/internal/lightmodel"
	"github.com/dokzlo13/huecatalog/internal/sensormodel"
	"github.com/dokzlo13/huecatalog/internal/sensortype"
)

// CatalogModule exposes model and sensor type dispatch to Lua
type CatalogModule struct{}

// NewCatalogModule creates a new catalog module
func NewCatalogModule() *CatalogModule {
	return &CatalogModule{}
}

// Loader is the module loader for Lua
func (m *CatalogModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "light_model", L.NewFunction(m.lightModel))
	L.SetField(mod, "sensor_model", L.NewFunction(m.sensorModel))
	L.SetField(mod, "sensor_config", L.NewFunction(m.sensorConfig))
	L.SetField(mod, "sensor_state", L.NewFunction(m.sensorState))
	L.SetField(mod, "rgb_to_xy", L.NewFunction(m.rgbToXY))
	L.SetField(mod, "resolve", L.NewFunction(m.resolve))
	L.SetField(mod, "light_models", L.NewFunction(m.codes(lightmodel.Models.Codes)))
	L.SetField(mod, "sensor_models", L.NewFunction(m.codes(sensormodel.Models.Codes)))
	L.SetField(mod, "sensor_types", L.NewFunction(m.codes(sensortype.Types.Codes)))
	L.SetField(mod, "UNKNOWN", lua.LString(lightmodel.Unknown))

	L.Push(mod)
	return 1
}

// light_model(model_id) -> table
func (m *CatalogModule) lightModel(L *lua.LState) int {
	model := lightmodel.New(L.CheckString(1))
	L.Push(LightModelTable(L, model))
	return 1
}

// sensor_model(model_id) -> table
func (m *CatalogModule) sensorModel(L *lua.LState) int {
	model := sensormodel.New(L.CheckString(1))
	L.Push(SensorModelTable(L, model))
	return 1
}

// sensor_config(type, config?) -> table | nil, err
func (m *CatalogModule) sensorConfig(L *lua.LState) int {
	typ := L.CheckString(1)
	raw, err := tableToRaw(L, 2)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	config, err := sensortype.NewConfig(typ, raw)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(SensorConfigTable(L, config))
	return 1
}

// sensor_state(type, state?) -> table | nil, err
func (m *CatalogModule) sensorState(L *lua.LState) int {
	typ := L.CheckString(1)
	raw, err := tableToRaw(L, 2)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	state, err := sensortype.NewState(typ, raw)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(SensorStateTable(L, state))
	return 1
}

// rgb_to_xy(model_id, r, g, b) -> x, y | nil, err
func (m *CatalogModule) rgbToXY(L *lua.LState) int {
	model := lightmodel.New(L.CheckString(1))
	r := checkByte(L, 2)
	g := checkByte(L, 3)
	b := checkByte(L, 4)

	xy, err := model.RGBToXY(r, g, b)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(lua.LNumber(xy.X))
	L.Push(lua.LNumber(xy.Y))
	return 2
}

// resolve(domain, code) -> resolved code
// domain is one of "light", "sensor", "sensor_type"
func (m *CatalogModule) resolve(L *lua.LState) int {
	domain := L.CheckString(1)
	code := L.CheckString(2)

	switch domain {
	case "light":
		L.Push(lua.LString(lightmodel.Resolve(code)))
	case "sensor":
		L.Push(lua.LString(sensormodel.Resolve(code)))
	case "sensor_type":
		L.Push(lua.LString(sensortype.Resolve(code)))
	default:
		L.ArgError(1, "unknown domain: "+domain)
		return 0
	}
	return 1
}

func (m *CatalogModule) codes(list func() []string) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(GoToLuaValue(L, list()))
		return 1
	}
}

func checkByte(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 255 {
		L.ArgError(n, "value must be within 0..255")
	}
	return uint8(v)
}

// LightModelTable converts a light model to a Lua table
func LightModelTable(L *lua.LState, model *lightmodel.Model) *lua.LTable {
	tbl := tableOf(L, model)
	L.SetField(tbl, "color_based", lua.LBool(model.ColorBased()))
	L.SetField(tbl, "dimmable", lua.LBool(model.Dimmable()))
	return tbl
}

// SensorModelTable converts a sensor model to a Lua table
func SensorModelTable(L *lua.LState, model *sensormodel.Model) *lua.LTable {
	tbl := tableOf(L, model)
	L.SetField(tbl, "is_switch", lua.LBool(model.IsSwitch()))
	return tbl
}

// SensorConfigTable converts a sensor config variant to a Lua table
func SensorConfigTable(L *lua.LState, config sensortype.Config) *lua.LTable {
	tbl := tableOf(L, config)
	L.SetField(tbl, "sensor_type", lua.LString(config.SensorType()))
	return tbl
}

// SensorStateTable converts a sensor state variant to a Lua table
func SensorStateTable(L *lua.LState, state sensortype.State) *lua.LTable {
	tbl := tableOf(L, state)
	if updated, ok := state.Updated(); ok {
		L.SetField(tbl, "updated", lua.LNumber(updated.Unix()))
	}
	L.SetField(tbl, "sensor_type", lua.LString(state.SensorType()))
	return tbl
}

func tableOf(L *lua.LState, v any) *lua.LTable {
	m, err := toMap(v)
	if err != nil {
		L.RaiseError("failed to convert %T: %v", v, err)
	}
	return MapToLuaTable(L, m)
}
