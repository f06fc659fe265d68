package lua

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/huecatalog/internal/bridge"
)

func newTestRuntime(t *testing.T, timeout time.Duration) *Runtime {
	t.Helper()
	inv, err := bridge.LoadInventory(filepath.Join("..", "bridge", "testdata", "datastore.json"))
	require.NoError(t, err)

	r := NewRuntime(inv, timeout)
	t.Cleanup(r.Close)
	return r
}

func global(r *Runtime, name string) lua.LValue {
	return r.L.GetGlobal(name)
}

func TestCatalog_LightModel(t *testing.T) {
	r := newTestRuntime(t, time.Second)

	err := r.DoString(context.Background(), `
		local catalog = require("catalog")
		local known = catalog.light_model("LCT001")
		local unknown = catalog.light_model("XYZ999")
		known_id = known.model_id
		known_gamut = known.gamut.name
		known_color = known.color_based
		unknown_id = unknown.model_id
		unknown_color = unknown.color_based
	`)
	require.NoError(t, err)

	assert.Equal(t, lua.LString("LCT001"), global(r, "known_id"))
	assert.Equal(t, lua.LString("B"), global(r, "known_gamut"))
	assert.Equal(t, lua.LTrue, global(r, "known_color"))
	assert.Equal(t, lua.LString("Unknown"), global(r, "unknown_id"))
	assert.Equal(t, lua.LFalse, global(r, "unknown_color"))
}

func TestCatalog_SensorStateAndConfig(t *testing.T) {
	r := newTestRuntime(t, time.Second)

	err := r.DoString(context.Background(), `
		local catalog = require("catalog")
		local s = catalog.sensor_state("ZLLSwitch", {buttonevent = 34})
		state_type = s.sensor_type
		state_event = s.buttonevent

		local c = catalog.sensor_config("Bogus", {})
		local u = catalog.sensor_state("Bogus", {})
		bogus_config = c.sensor_type
		bogus_state = u.sensor_type

		local bad, err = catalog.sensor_state("ZLLSwitch", {buttonevent = "x"})
		bad_is_nil = bad == nil
		bad_err = err
	`)
	require.NoError(t, err)

	assert.Equal(t, lua.LString("ZLLSwitch"), global(r, "state_type"))
	assert.Equal(t, lua.LNumber(34), global(r, "state_event"))
	assert.Equal(t, lua.LString("Unknown"), global(r, "bogus_config"))
	assert.Equal(t, lua.LString("Unknown"), global(r, "bogus_state"))
	assert.Equal(t, lua.LTrue, global(r, "bad_is_nil"))
	assert.Contains(t, global(r, "bad_err").String(), "cannot unmarshal")
}

func TestCatalog_SparseAndNegativeKeys(t *testing.T) {
	r := newTestRuntime(t, time.Second)

	err := r.DoString(context.Background(), `
		local catalog = require("catalog")
		local s, err = catalog.sensor_state("Bogus", {[-1] = 1, [2] = 3})
		sparse_type = s.sensor_type
		sparse_err = err
		local f = catalog.sensor_state("Bogus", {[1.5] = "x", lastupdated = "none"})
		fraction_type = f.sensor_type
		local c = catalog.sensor_config("Bogus", {sensitivity = 2, battery = "low"})
		config_sensitivity = c.sensitivity
		config_battery = c.battery
	`)
	require.NoError(t, err)

	assert.Equal(t, lua.LString("Unknown"), global(r, "sparse_type"))
	assert.Equal(t, lua.LNil, global(r, "sparse_err"))
	assert.Equal(t, lua.LString("Unknown"), global(r, "fraction_type"))
	assert.Equal(t, lua.LNumber(2), global(r, "config_sensitivity"))
	assert.Equal(t, lua.LString("low"), global(r, "config_battery"))
}

func TestCatalog_ResolveAndLists(t *testing.T) {
	r := newTestRuntime(t, time.Second)

	err := r.DoString(context.Background(), `
		local catalog = require("catalog")
		resolved_light = catalog.resolve("light", "lct001")
		resolved_type = catalog.resolve("sensor_type", "Daylight")
		light_count = #catalog.light_models()
		type_count = #catalog.sensor_types()
		local x, y = catalog.rgb_to_xy("LCT001", 255, 255, 255)
		white_x = x
		local nx, nerr = catalog.rgb_to_xy("LWB004", 255, 0, 0)
		dimmable_err = nerr
	`)
	require.NoError(t, err)

	assert.Equal(t, lua.LString("Unknown"), global(r, "resolved_light"))
	assert.Equal(t, lua.LString("Daylight"), global(r, "resolved_type"))
	assert.Equal(t, lua.LNumber(21), global(r, "light_count"))
	assert.Equal(t, lua.LNumber(11), global(r, "type_count"))
	assert.InDelta(t, 0.3227, float64(global(r, "white_x").(lua.LNumber)), 0.001)
	assert.Contains(t, global(r, "dimmable_err").String(), "not color capable")
}

func TestCatalog_ResolveUnknownDomain(t *testing.T) {
	r := newTestRuntime(t, time.Second)
	err := r.DoString(context.Background(), `require("catalog").resolve("group", "x")`)
	require.Error(t, err)
}

func TestInventory_Module(t *testing.T) {
	r := newTestRuntime(t, time.Second)

	err := r.DoString(context.Background(), `
		local inventory = require("inventory")
		local lights = inventory.lights()
		light_count = #lights
		first_model = lights[1].model.model_id
		unknown_model = inventory.light("3").model.model_id
		missing = inventory.light("99") == nil

		local dimmer = inventory.sensor("4")
		dimmer_event = dimmer.state.buttonevent
		dimmer_battery = dimmer.config.battery
		motion_presence = inventory.sensor("5").state.presence
		sensor_count = #inventory.sensors()
	`)
	require.NoError(t, err)

	assert.Equal(t, lua.LNumber(3), global(r, "light_count"))
	assert.Equal(t, lua.LString("LCT001"), global(r, "first_model"))
	assert.Equal(t, lua.LString("Unknown"), global(r, "unknown_model"))
	assert.Equal(t, lua.LTrue, global(r, "missing"))
	assert.Equal(t, lua.LNumber(1002), global(r, "dimmer_event"))
	assert.Equal(t, lua.LNumber(100), global(r, "dimmer_battery"))
	assert.Equal(t, lua.LFalse, global(r, "motion_presence"))
	assert.Equal(t, lua.LNumber(4), global(r, "sensor_count"))
}

func TestInventory_NilInventory(t *testing.T) {
	r := NewRuntime(nil, 0)
	defer r.Close()

	err := r.DoString(context.Background(), `count = #require("inventory").lights()`)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(0), r.L.GetGlobal("count"))
}

func TestLog_Module(t *testing.T) {
	r := newTestRuntime(t, time.Second)
	err := r.DoString(context.Background(), `
		local log = require("log")
		log.info("hello", {model = "LCT001", n = 1})
		log.debug("quiet")
	`)
	require.NoError(t, err)
}

func TestRuntime_Timeout(t *testing.T) {
	r := newTestRuntime(t, 50*time.Millisecond)
	err := r.DoString(context.Background(), `while true do end`)
	require.Error(t, err)
}

func TestRuntime_LoadScript(t *testing.T) {
	r := newTestRuntime(t, time.Second)

	path := filepath.Join(t.TempDir(), "main.lua")
	require.NoError(t, os.WriteFile(path, []byte(`result = require("catalog").sensor_model("RWL021").name`), 0o600))

	require.NoError(t, r.LoadScript(context.Background(), path))
	assert.Equal(t, lua.LString("Hue Dimmer Switch"), global(r, "result"))

	err := r.LoadScript(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	require.Error(t, err)
}

func TestRuntime_Closed(t *testing.T) {
	r := NewRuntime(nil, 0)
	r.Close()
	r.Close()

	err := r.DoString(context.Background(), `x = 1`)
	require.ErrorIs(t, err, ErrRuntimeClosed)
}
