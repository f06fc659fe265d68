package lightmodel

import "github.com/dokzlo13/huecatalog/internal/dispatch"

// Supported light model IDs.
const (
	LCT001  = "LCT001"
	LCT002  = "LCT002"
	LCT003  = "LCT003"
	LCT007  = "LCT007"
	LLC006  = "LLC006"
	LLC007  = "LLC007"
	LLC010  = "LLC010"
	LLC011  = "LLC011"
	LLC012  = "LLC012"
	LLC013  = "LLC013"
	LLC020  = "LLC020"
	LLM001  = "LLM001"
	LLM010  = "LLM010"
	LLM011  = "LLM011"
	LLM012  = "LLM012"
	LST001  = "LST001"
	LST002  = "LST002"
	LWB004  = "LWB004"
	LWB006  = "LWB006"
	LWB007  = "LWB007"
	Unknown = dispatch.Unknown
)

const philips = "Philips"

// Constructor builds a new Model value.
type Constructor func() *Model

// Models is the canonical set of supported light model IDs.
var Models = dispatch.MustKeySet(
	LCT001, LCT002, LCT003, LCT007,
	LLC006, LLC007, LLC010, LLC011, LLC012, LLC013, LLC020,
	LLM001, LLM010, LLM011, LLM012,
	LST001, LST002,
	LWB004, LWB006, LWB007,
	Unknown,
)

var registry = dispatch.MustNew(Models, map[string]Constructor{
	LCT001: extendedColor(LCT001, "Hue A19", GamutB),
	LCT002: extendedColor(LCT002, "Hue BR30", GamutB),
	LCT003: extendedColor(LCT003, "Hue GU10", GamutB),
	LCT007: extendedColor(LCT007, "Hue A19", GamutB),

	LLC006: color(LLC006, "Living Colors Gen3 Iris", GamutA),
	LLC007: color(LLC007, "Living Colors Gen3 Bloom, Aura", GamutA),
	LLC010: color(LLC010, "Hue Living Colors Iris", GamutA),
	LLC011: color(LLC011, "Hue Living Colors Bloom", GamutA),
	LLC012: color(LLC012, "Hue Living Colors Bloom", GamutA),
	LLC013: color(LLC013, "Disney Living Colors", GamutA),
	LLC020: extendedColor(LLC020, "Hue Go", GamutC),

	LLM001: extendedColor(LLM001, "Color Light Module", GamutB),
	LLM010: colorTemperature(LLM010, "Color Temperature Module"),
	LLM011: colorTemperature(LLM011, "Color Temperature Module"),
	LLM012: colorTemperature(LLM012, "Color Temperature Module"),

	LST001: color(LST001, "Hue LightStrips", GamutA),
	LST002: extendedColor(LST002, "Hue LightStrips Plus", GamutC),

	LWB004: dimmable(LWB004, "Hue A19 Lux"),
	LWB006: dimmable(LWB006, "Hue A19 White"),
	LWB007: dimmable(LWB007, "Hue A19 White"),

	Unknown: func() *Model {
		return &Model{ID: Unknown, Manufacturer: Unknown, Name: Unknown, Type: TypeUnknown}
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

// 2000K..6500K
var whiteAmbiance = MiredRange{Min: 153, Max: 500}

func extendedColor(id, name string, gamut Gamut) Constructor {
	return func() *Model {
		g := gamut
		ct := whiteAmbiance
		return &Model{ID: id, Manufacturer: philips, Name: name, Type: TypeExtendedColor, Gamut: &g, ColorTemp: &ct}
	}
}

func color(id, name string, gamut Gamut) Constructor {
	return func() *Model {
		g := gamut
		return &Model{ID: id, Manufacturer: philips, Name: name, Type: TypeColor, Gamut: &g}
	}
}

func colorTemperature(id, name string) Constructor {
	return func() *Model {
		ct := whiteAmbiance
		return &Model{ID: id, Manufacturer: philips, Name: name, Type: TypeColorTemperature, ColorTemp: &ct}
	}
}

func dimmable(id, name string) Constructor {
	return func() *Model {
		return &Model{ID: id, Manufacturer: philips, Name: name, Type: TypeDimmable}
	}
}
