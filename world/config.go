// Package world builds a compiled set of ant behaviors into a running
// simulation: world construction, the per-tick engine, occupancy
// bookkeeping, and border-policy math (spec.md §3 "WorldConfig" /
// "WorldProperties" / "Ant" / "WorldState", §4.6 "Simulation core").
// Grounded on runtime/execution/plan/executor.go's single-owner mutable
// context threaded through a step loop, and on
// original_source/src/ant/world/ant_tick.rs for exact per-tick semantics.
package world

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/lexer"
	"github.com/cxrvus/antbyte/parser"
)

// BorderMode governs what happens when an ant's next position falls
// outside the grid (spec.md §4.6 "Border policy").
type BorderMode int

const (
	Collide BorderMode = iota
	Despawn
	Cycle
	Wrap
)

func (b BorderMode) String() string {
	switch b {
	case Collide:
		return "collide"
	case Despawn:
		return "despawn"
	case Cycle:
		return "cycle"
	case Wrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// StartingPos selects where the seed ant is placed at world construction
// (spec.md §3 "WorldConfig.starting_pos"). MiddleLeft is kept as a
// user-visible setting value — see DESIGN.md, Open Question (a).
type StartingPos int

const (
	TopLeft StartingPos = iota
	Center
	MiddleLeft
)

// ColorMode governs how a written Cell value is adjusted before storage
// (spec.md §4.6 step 4, "adjusted_color").
type ColorMode int

const (
	Binary ColorMode = iota
	RGBI
)

// Config is the interpreted form of a world file's `set` statements
// (spec.md §3 "WorldConfig"). The pointer fields are the settings whose
// zero value "clears the option" (spec.md §6): nil means unset.
type Config struct {
	Width, Height uint32
	FPS           *uint32
	Speed         *uint32
	Ticks         *uint32
	NoiseSeed     *uint32
	Looping       bool
	Border        BorderMode
	Start         StartingPos
	Colors        ColorMode
	Description   string
}

// DefaultConfig is the configuration a world file with no `set` statements
// at all produces (original_source/src/ant/world/mod.rs's
// `impl Default for WorldConfig`: width/height 32, Collide, Center).
func DefaultConfig() Config {
	return Config{
		Width:  32,
		Height: 32,
		Border: Collide,
		Start:  Center,
		Colors: Binary,
	}
}

// configSchemaJSON declares the value ranges and enumerations spec.md §6
// documents for each recognized setting key; ConfigFromSettings compiles
// and validates against it once the raw tokens have been narrowed into
// JSON-shaped values (numbers, booleans, and strings).
const configSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"width": {"type": "integer", "minimum": 0},
		"height": {"type": "integer", "minimum": 0},
		"fps": {"type": "integer", "minimum": 0, "maximum": 60},
		"speed": {"type": "integer", "minimum": 0, "maximum": 8192},
		"ticks": {"type": "integer", "minimum": 0},
		"seed": {"type": "integer", "minimum": 0},
		"loop": {"type": "boolean"},
		"border": {"enum": ["obs", "collide", "die", "despawn", "cycle", "wrap"]},
		"start": {"enum": ["top_left", "center", "mid_left"]},
		"colors": {"enum": ["bin", "rgb", "rgbi"]},
		"description": {"type": "string"}
	},
	"additionalProperties": false
}`

var configSchema = mustCompileConfigSchema()

func mustCompileConfigSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.json", strings.NewReader(configSchemaJSON)); err != nil {
		panic("world: invalid embedded config schema: " + err.Error())
	}
	schema, err := c.Compile("config.json")
	if err != nil {
		panic("world: config schema failed to compile: " + err.Error())
	}
	return schema
}

// ConfigFromSettings interprets a world file's parsed `set` statements into
// a Config, first narrowing each raw token to the JSON-shaped value its key
// expects, then declaratively range/enum-checking the whole document
// against configSchema. A later setting of the same key overwrites an
// earlier one.
func ConfigFromSettings(settings []parser.Setting) (Config, error) {
	doc := map[string]any{}

	for _, s := range settings {
		key := strings.ToLower(s.Key)
		switch key {
		case "width", "height", "fps", "speed", "ticks", "seed":
			n, err := wantNumber(s)
			if err != nil {
				return Config{}, err
			}
			doc[key] = n
		case "size":
			n, err := wantNumber(s)
			if err != nil {
				return Config{}, err
			}
			doc["width"] = n
			doc["height"] = n
		case "loop":
			n, err := wantNumber(s)
			if err != nil {
				return Config{}, err
			}
			if n != 0 && n != 1 {
				return Config{}, errors.New(errors.WorldConfig,
					"setting 'loop' requires a bit value (0 or 1)").In("setting loop")
			}
			doc["loop"] = n != 0
		case "border", "start", "colors":
			if s.Value.Kind != lexer.Ident {
				return Config{}, errors.New(errors.WorldConfig,
					"setting '"+s.Key+"' requires an identifier value").In("setting " + s.Key)
			}
			doc[key] = s.Value.Text
		case "desc", "description":
			if s.Value.Kind != lexer.String {
				return Config{}, errors.New(errors.WorldConfig,
					"setting '"+s.Key+"' requires a string value").In("setting " + s.Key)
			}
			doc["description"] = s.Value.Text
		default:
			return Config{}, errors.New(errors.WorldConfig,
				"unrecognized setting key '"+s.Key+"'").In("setting " + s.Key)
		}
	}

	if err := configSchema.Validate(doc); err != nil {
		return Config{}, errors.Wrap(errors.WorldConfig, "world settings failed validation", err)
	}

	return applyConfigDoc(doc)
}

func wantNumber(s parser.Setting) (float64, error) {
	if s.Value.Kind != lexer.Number {
		return 0, errors.New(errors.WorldConfig,
			"setting '"+s.Key+"' requires a number value").In("setting " + s.Key)
	}
	return float64(s.Value.Number), nil
}

func applyConfigDoc(doc map[string]any) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := doc["width"].(float64); ok {
		cfg.Width = uint32(v)
	}
	if v, ok := doc["height"].(float64); ok {
		cfg.Height = uint32(v)
	}
	cfg.FPS = optU32(doc, "fps")
	cfg.Speed = optU32(doc, "speed")
	cfg.Ticks = optU32(doc, "ticks")
	cfg.NoiseSeed = optU32(doc, "seed")

	if v, ok := doc["loop"].(bool); ok {
		cfg.Looping = v
	}

	if v, ok := doc["border"].(string); ok {
		b, err := parseBorder(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Border = b
	}
	if v, ok := doc["start"].(string); ok {
		s, err := parseStartingPos(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Start = s
	}
	if v, ok := doc["colors"].(string); ok {
		c, err := parseColorMode(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Colors = c
	}
	if v, ok := doc["description"].(string); ok {
		cfg.Description = v
	}

	return cfg, nil
}

// optU32 returns nil for an absent or zero-valued numeric setting — "Zero
// numeric values clear the option" (spec.md §6) — and a pointer to the
// value otherwise.
func optU32(doc map[string]any, key string) *uint32 {
	v, ok := doc[key].(float64)
	if !ok || v == 0 {
		return nil
	}
	n := uint32(v)
	return &n
}

func parseBorder(s string) (BorderMode, error) {
	switch s {
	case "obs", "collide":
		return Collide, nil
	case "die", "despawn":
		return Despawn, nil
	case "cycle":
		return Cycle, nil
	case "wrap":
		return Wrap, nil
	default:
		return 0, errors.New(errors.WorldConfig, "unrecognized border mode '"+s+"'")
	}
}

func parseStartingPos(s string) (StartingPos, error) {
	switch s {
	case "top_left":
		return TopLeft, nil
	case "center":
		return Center, nil
	case "mid_left":
		return MiddleLeft, nil
	default:
		return 0, errors.New(errors.WorldConfig, "unrecognized starting position '"+s+"'")
	}
}

func parseColorMode(s string) (ColorMode, error) {
	switch s {
	case "bin":
		return Binary, nil
	case "rgb", "rgbi":
		return RGBI, nil
	default:
		return 0, errors.New(errors.WorldConfig, "unrecognized color mode '"+s+"'")
	}
}
