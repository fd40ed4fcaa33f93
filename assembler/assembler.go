// Package assembler turns one compiled ant function into a Behavior: the
// peripheral wiring its body reads and writes, and the flat combinational
// TruthTable that wiring drives (spec.md §4.5 "Assembler"). Grounded on
// original_source/src/ant/world/parser/compiler/assembler.rs's
// extract_peripherals/simulate/tick, adapted from a single CompFunc
// receiver into a standalone pass over compiler.Function.
package assembler

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/cxrvus/antbyte/compiler"
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/parser"
	"github.com/cxrvus/antbyte/peripheral"
	"github.com/cxrvus/antbyte/truthtable"
)

const (
	maxInputBits  = 8
	maxOutputBits = 32
)

// Behavior is one ant-bound function's assembled form: the peripheral
// wiring discovered from its body plus the logic that wiring drives
// (spec.md §3 "Behavior").
type Behavior struct {
	Name    string
	Logic   *truthtable.Table
	Inputs  []peripheral.Bit
	Outputs []peripheral.Bit
}

// Assemble extracts peripheral wiring from fn's residual statements,
// validates direction/capacity/forbidden-kind rules, and simulates the
// result over every input combination.
func Assemble(fn compiler.Function) (*Behavior, error) {
	stmts := make([]compiler.CompositeStatement, len(fn.Statements))
	for i, cs := range fn.Statements {
		args := make([]parser.ParamValue, len(cs.Args))
		copy(args, cs.Args)
		stmts[i] = compiler.CompositeStatement{Assignee: cs.Assignee, Args: args}
	}

	d := newDiscovery()
	for i := range stmts {
		for j := range stmts[i].Args {
			if err := d.resolve(&stmts[i].Args[j], false); err != nil {
				return nil, err.In("function " + fn.Signature.Name)
			}
		}
		if err := d.resolve(&stmts[i].Assignee, true); err != nil {
			return nil, err.In("function " + fn.Signature.Name)
		}
	}

	if len(d.inputs) > maxInputBits {
		return nil, errors.New(errors.AsmCapacity,
			fmt.Sprintf("function reads %d input peripheral bits, at most %d allowed", len(d.inputs), maxInputBits)).
			In("function " + fn.Signature.Name)
	}
	if len(d.outputs) > maxOutputBits {
		return nil, errors.New(errors.AsmCapacity,
			fmt.Sprintf("function writes %d output peripheral bits, at most %d allowed", len(d.outputs), maxOutputBits)).
			In("function " + fn.Signature.Name)
	}

	if err := checkForbidden(d.outputs); err != nil {
		return nil, err.In("function " + fn.Signature.Name)
	}

	table, err := simulate(stmts, d.inputNames, d.outputNames)
	if err != nil {
		if ae, ok := err.(*errors.Error); ok {
			return nil, ae.In("function " + fn.Signature.Name)
		}
		return nil, err
	}

	// Inputs are discovered in textual first-appearance order, and simulate
	// binds the i-th discovered input to bit i of the table index. They are
	// reported (and bound to the world tick's input-gather loop) in reverse:
	// that loop shifts each bit in from the low end, so Inputs[0] (the
	// last-discovered peripheral) lands on the most significant bit and the
	// first-discovered on bit 0, matching the table (spec.md §4.5
	// "Peripheral discovery").
	inputs := make([]peripheral.Bit, len(d.inputs))
	for i, b := range d.inputs {
		inputs[len(d.inputs)-1-i] = b
	}

	glog.V(1).Infof("assembler: %s -> %d input bit(s), %d output bit(s)",
		fn.Signature.Name, len(inputs), len(d.outputs))

	return &Behavior{
		Name:    fn.Signature.Name,
		Logic:   table,
		Inputs:  inputs,
		Outputs: d.outputs,
	}, nil
}

// discovery accumulates the peripheral bits a function's body refers to, in
// first-appearance order, and renames each occurrence to its internal
// `_i_name_bit` / `_o_name_bit` variable as it goes.
type discovery struct {
	inputs       []peripheral.Bit
	inputNames   []string
	inputRename  map[peripheral.Bit]string
	outputs      []peripheral.Bit
	outputNames  []string
	outputRename map[peripheral.Bit]string
}

func newDiscovery() *discovery {
	return &discovery{
		inputRename:  map[peripheral.Bit]string{},
		outputRename: map[peripheral.Bit]string{},
	}
}

// resolve rewrites one statement occurrence (a call argument if
// isAssignee is false, the statement's assignee if true) in place, parsing
// it as a peripheral if its target is upper-case and leaving ordinary
// variable/temporary targets untouched.
func (d *discovery) resolve(pv *parser.ParamValue, isAssignee bool) *errors.Error {
	if !peripheral.IsIdent(pv.Target) {
		return nil
	}

	bit, perr := peripheral.Parse(pv.Target)

	if !isAssignee {
		// A read of a name that parses as a peripheral already written
		// earlier in this function reuses that output binding, regardless
		// of the peripheral's own declared role (spec.md §4.5: "unless the
		// output peripheral was previously assigned in the same function").
		if perr == nil {
			if name, ok := d.outputRename[bit]; ok {
				pv.Target = name
				return nil
			}
		}
	}

	if perr != nil {
		return perr.(*errors.Error)
	}

	role := peripheral.Role(bit.Kind)

	if isAssignee {
		if role == peripheral.InputOnly {
			return errors.New(errors.AsmPeriphDir,
				"cannot assign to input-only peripheral '"+pv.Target+"'")
		}
		if name, ok := d.outputRename[bit]; ok {
			pv.Target = name
			return nil
		}
		name := internalName(pv.Target, "o")
		d.outputRename[bit] = name
		d.outputs = append(d.outputs, bit)
		d.outputNames = append(d.outputNames, name)
		pv.Target = name
		return nil
	}

	if role == peripheral.OutputOnly {
		return errors.New(errors.AsmPeriphDir,
			"cannot read output-only peripheral '"+pv.Target+"' (it must be assigned earlier in the same function)")
	}
	if name, ok := d.inputRename[bit]; ok {
		pv.Target = name
		return nil
	}
	name := internalName(pv.Target, "i")
	d.inputRename[bit] = name
	d.inputs = append(d.inputs, bit)
	d.inputNames = append(d.inputNames, name)
	pv.Target = name
	return nil
}

func internalName(ident, io string) string {
	return "_" + io + "_" + lower(ident)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// checkForbidden rejects a function whose discovered outputs mix the
// queen-only channels (Hatch, Kill) with the worker-only ones (a written
// Cell, CellClear) — see DESIGN.md: peripheral, "Ant kind ... has no
// DSL-level declaration".
func checkForbidden(outputs []peripheral.Bit) *errors.Error {
	var queenOnly, workerOnly peripheral.Kind
	var sawQueenOnly, sawWorkerOnly bool

	for _, b := range outputs {
		if peripheral.Forbidden(b.Kind, true, peripheral.Worker) {
			queenOnly, sawQueenOnly = b.Kind, true
		}
		if peripheral.Forbidden(b.Kind, true, peripheral.Queen) {
			workerOnly, sawWorkerOnly = b.Kind, true
		}
	}

	if sawQueenOnly && sawWorkerOnly {
		return errors.New(errors.AsmForbidden,
			fmt.Sprintf("function writes both a queen-only peripheral (%s) and a worker-only peripheral (%s); no single ant may use both",
				queenOnly, workerOnly))
	}
	return nil
}
