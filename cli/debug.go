package cli

import (
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/cxrvus/antbyte/assembler"
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/peripheral"
	"github.com/cxrvus/antbyte/world"
)

// DumpFormat selects --debug's output encoding (spec.md §6.3).
type DumpFormat string

const (
	DumpText DumpFormat = "text"
	DumpYAML DumpFormat = "yaml"
	DumpCBOR DumpFormat = "cbor"
)

// Dump writes props to w in the requested format instead of running the
// world: for each bound behavior, its peripheral wiring and truth table
// (text), its wiring plus the world config (yaml), or the whole Properties
// (cbor). The compiled functions' composite statements are not printed in
// any format.
func Dump(w io.Writer, props *world.Properties, format DumpFormat) error {
	switch format {
	case DumpYAML:
		return dumpYAML(w, props)
	case DumpCBOR:
		return dumpCBOR(w, props)
	default:
		return dumpText(w, props)
	}
}

// dumpText is original_source/src/truth_table.rs's own Display format
// (adopted verbatim by truthtable.Table.String), preceded by the behavior's
// name and peripheral wiring, one behavior per populated id.
func dumpText(w io.Writer, props *world.Properties) error {
	for id, b := range props.Behaviors {
		if b == nil {
			continue
		}
		if _, err := io.WriteString(w, behaviorHeader(uint8(id), b)); err != nil {
			return errors.Wrap(errors.CliIO, "failed to write debug dump", err)
		}
		if _, err := io.WriteString(w, b.Logic.String()); err != nil {
			return errors.Wrap(errors.CliIO, "failed to write debug dump", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return errors.Wrap(errors.CliIO, "failed to write debug dump", err)
		}
	}
	return nil
}

func behaviorHeader(id uint8, b *assembler.Behavior) string {
	s := "=== behavior " + strconv.Itoa(int(id)) + ": " + b.Name + " ===\n"
	s += "inputs:  " + bitsString(b.Inputs) + "\n"
	s += "outputs: " + bitsString(b.Outputs) + "\n"
	return s
}

func bitsString(bits []peripheral.Bit) string {
	s := ""
	for i, bit := range bits {
		if i > 0 {
			s += ", "
		}
		s += bit.Kind.String() + "[" + strconv.Itoa(int(bit.BitIndex)) + "]"
	}
	if s == "" {
		return "(none)"
	}
	return s
}

// peripheralDump and behaviorDump are the human-diffable YAML shape for one
// bound behavior's peripheral wiring (spec.md §6.3: "a human-diffable
// snapshot, useful for golden-file tests").
type peripheralDump struct {
	Kind string `yaml:"kind"`
	Bit  uint8  `yaml:"bit"`
}

type behaviorDump struct {
	ID      uint8            `yaml:"id"`
	Name    string           `yaml:"name"`
	Inputs  []peripheralDump `yaml:"inputs"`
	Outputs []peripheralDump `yaml:"outputs"`
}

type configDump struct {
	Config    world.Config   `yaml:"config"`
	Behaviors []behaviorDump `yaml:"behaviors"`
}

func toDump(props *world.Properties) configDump {
	d := configDump{Config: props.Config}
	for id, b := range props.Behaviors {
		if b == nil {
			continue
		}
		d.Behaviors = append(d.Behaviors, behaviorDump{
			ID:      uint8(id),
			Name:    b.Name,
			Inputs:  toPeripheralDumps(b.Inputs),
			Outputs: toPeripheralDumps(b.Outputs),
		})
	}
	return d
}

func toPeripheralDumps(bits []peripheral.Bit) []peripheralDump {
	out := make([]peripheralDump, len(bits))
	for i, b := range bits {
		out[i] = peripheralDump{Kind: b.Kind.String(), Bit: b.BitIndex}
	}
	return out
}

func dumpYAML(w io.Writer, props *world.Properties) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(toDump(props)); err != nil {
		return errors.Wrap(errors.CliIO, "failed to encode YAML debug dump", err)
	}
	return nil
}

// dumpCBOR encodes the full world.Properties (all 256 behavior slots, each
// truth table's entries) in deterministic CBOR, for byte-stable regression
// snapshots across compiler changes (spec.md §6.3). Grounded on
// core/planfmt/canonical.go's MarshalBinary: the same
// `cbor.CanonicalEncOptions().EncMode()` deterministic encoder.
func dumpCBOR(w io.Writer, props *world.Properties) error {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return errors.Wrap(errors.CliIO, "failed to create CBOR encoder", err)
	}
	data, err := encMode.Marshal(props)
	if err != nil {
		return errors.Wrap(errors.CliIO, "CBOR encoding failed", err)
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.CliIO, "failed to write debug dump", err)
	}
	return nil
}
