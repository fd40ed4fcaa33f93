package compiler

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/parser"
	"github.com/cxrvus/antbyte/peripheral"
)

// Compile expands a link-ordered function list into fully-residual compiled
// functions. Each function is compiled against the functions compiled
// before it (spec.md §4.4: "resolves an overload by matching ... against
// previously compiled functions").
func Compile(fns []parser.Function) ([]Function, error) {
	compiled := make([]Function, 0, len(fns))

	for _, fn := range fns {
		out, err := compileFunction(fn, compiled)
		if err != nil {
			return nil, err.In("function " + fn.Signature.Name).In("file " + fn.File)
		}
		glog.V(1).Infof("compiler: %s/%s -> %d residual statements", fn.File, fn.Signature.Name, len(out.Statements))
		compiled = append(compiled, out)
	}

	return compiled, nil
}

func compileFunction(fn parser.Function, compiled []Function) (Function, *errors.Error) {
	state := &compileState{compiled: compiled}

	var residual []CompositeStatement
	for _, stmt := range fn.Statements {
		stmts, err := state.flattenStatement(stmt)
		if err != nil {
			return Function{}, err
		}
		residual = append(residual, stmts...)
	}

	seen := map[string]bool{}
	final := residual[:0]
	for _, cs := range residual {
		if cs.Assignee.Target == "_" {
			continue
		}
		if seen[cs.Assignee.Target] {
			return Function{}, errors.New(errors.CompDupeAssignee,
				"'"+cs.Assignee.Target+"' is assigned more than once")
		}
		seen[cs.Assignee.Target] = true
		final = append(final, cs)
	}

	return Function{Signature: fn.Signature, Statements: final, File: fn.File}, nil
}

// compileState threads the fresh-temporary and call-site counters through
// one source function's compilation.
type compileState struct {
	compiled  []Function
	tempSeq   int
	inlineSeq int
}

func (s *compileState) freshTemp() string {
	s.tempSeq++
	return fmt.Sprintf("_%d", s.tempSeq)
}

func (s *compileState) knownFuncNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, fn := range s.compiled {
		if !seen[fn.Signature.Name] {
			seen[fn.Signature.Name] = true
			names = append(names, fn.Signature.Name)
		}
	}
	return names
}

// flattenStatement performs the post-order expression-tree walk of spec.md
// §4.4, then feeds the resulting three-address statements through AND->OR
// normalization and call expansion.
func (s *compileState) flattenStatement(stmt parser.Statement) ([]CompositeStatement, *errors.Error) {
	root := stmt.Expression

	if !root.IsCall() {
		ta := threeAddr{
			FuncName:  "or",
			Args:      []parser.ParamValue{{Sign: root.Sign, Target: root.Ident}},
			Assignees: xorSign(stmt.Assignees, false),
		}
		return s.expand(ta)
	}

	var pending []threeAddr
	args := make([]parser.ParamValue, len(root.Params))
	for i, p := range root.Params {
		args[i] = s.flattenArg(p, &pending)
	}

	var out []CompositeStatement
	for _, ta := range pending {
		expanded, err := s.expand(ta)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}

	rootTA := threeAddr{FuncName: root.Ident, Args: args, Assignees: xorSign(stmt.Assignees, root.Sign)}
	expanded, err := s.expand(rootTA)
	if err != nil {
		return nil, err
	}
	return append(out, expanded...), nil
}

// flattenArg recursively flattens a call-argument sub-expression, emitting
// a fresh-temp three-address statement for every non-leaf and returning a
// signed reference usable by the parent.
func (s *compileState) flattenArg(expr parser.Expression, pending *[]threeAddr) parser.ParamValue {
	if !expr.IsCall() {
		return parser.ParamValue{Sign: expr.Sign, Target: expr.Ident}
	}

	args := make([]parser.ParamValue, len(expr.Params))
	for i, p := range expr.Params {
		args[i] = s.flattenArg(p, pending)
	}

	temp := s.freshTemp()
	*pending = append(*pending, threeAddr{
		FuncName:  expr.Ident,
		Args:      args,
		Assignees: []parser.ParamValue{{Sign: false, Target: temp}},
	})
	return parser.ParamValue{Sign: expr.Sign, Target: temp}
}

func xorSign(assignees []parser.ParamValue, extra bool) []parser.ParamValue {
	out := make([]parser.ParamValue, len(assignees))
	for i, a := range assignees {
		out[i] = parser.ParamValue{Sign: a.Sign != extra, Target: a.Target}
	}
	return out
}

// expand dispatches a three-address statement: "or" is already residual,
// "and" is rewritten via De Morgan (spec.md §4.4 "AND->OR normalization"),
// and anything else is resolved by overload and inlined.
func (s *compileState) expand(ta threeAddr) ([]CompositeStatement, *errors.Error) {
	switch ta.FuncName {
	case "or":
		return orStatements(ta), nil
	case "and":
		return s.expand(deMorgan(ta))
	default:
		return s.inline(ta)
	}
}

func orStatements(ta threeAddr) []CompositeStatement {
	out := make([]CompositeStatement, len(ta.Assignees))
	for i, a := range ta.Assignees {
		out[i] = CompositeStatement{Assignee: a, Args: ta.Args}
	}
	return out
}

func deMorgan(ta threeAddr) threeAddr {
	args := make([]parser.ParamValue, len(ta.Args))
	for i, a := range ta.Args {
		args[i] = parser.ParamValue{Sign: !a.Sign, Target: a.Target}
	}
	assignees := make([]parser.ParamValue, len(ta.Assignees))
	for i, a := range ta.Assignees {
		assignees[i] = parser.ParamValue{Sign: !a.Sign, Target: a.Target}
	}
	return threeAddr{FuncName: "or", Args: args, Assignees: assignees}
}

// inline resolves an overload by (name, param count, assignee count) among
// functions already compiled, then substitutes the caller's arguments and
// assignees into a renamed copy of the callee's residual statements.
func (s *compileState) inline(ta threeAddr) ([]CompositeStatement, *errors.Error) {
	var callee *Function
	nameFound := false
	for i := range s.compiled {
		fn := &s.compiled[i]
		if fn.Signature.Name != ta.FuncName {
			continue
		}
		nameFound = true
		if len(fn.Signature.Params) == len(ta.Args) && len(fn.Signature.Assignees) == len(ta.Assignees) {
			callee = fn
			break
		}
	}

	if callee == nil {
		if nameFound {
			return nil, errors.New(errors.CompOverload,
				fmt.Sprintf("no overload of '%s' accepts %d argument(s) and %d assignee(s)",
					ta.FuncName, len(ta.Args), len(ta.Assignees)))
		}
		return nil, errors.New(errors.CompUnknownFn, "call to undefined function '"+ta.FuncName+"'").
			WithSuggestion(ta.FuncName, s.knownFuncNames())
	}

	s.inlineSeq++
	prefix := fmt.Sprintf("_%s_%d_", ta.FuncName, s.inlineSeq)

	paramSub := map[string]parser.ParamValue{}
	for i, p := range callee.Signature.Params {
		paramSub[p] = ta.Args[i]
	}
	assigneeSub := map[string]parser.ParamValue{}
	for i, a := range callee.Signature.Assignees {
		assigneeSub[a] = ta.Assignees[i]
	}

	resolve := func(ref parser.ParamValue) parser.ParamValue {
		if isPeripheralName(ref.Target) {
			return ref
		}
		if sub, ok := paramSub[ref.Target]; ok {
			return parser.ParamValue{Sign: ref.Sign != sub.Sign, Target: sub.Target}
		}
		if sub, ok := assigneeSub[ref.Target]; ok {
			return parser.ParamValue{Sign: ref.Sign != sub.Sign, Target: sub.Target}
		}
		if ref.Target == "_" {
			return ref
		}
		return parser.ParamValue{Sign: ref.Sign, Target: prefix + ref.Target}
	}

	out := make([]CompositeStatement, len(callee.Statements))
	for i, cs := range callee.Statements {
		args := make([]parser.ParamValue, len(cs.Args))
		for j, a := range cs.Args {
			args[j] = resolve(a)
		}
		out[i] = CompositeStatement{Assignee: resolve(cs.Assignee), Args: args}
	}
	return out, nil
}

// isPeripheralName reports whether a target name is an upper-case
// peripheral identifier rather than a local variable (spec.md §4.4
// "Peripheral references ... are preserved verbatim across inlining").
func isPeripheralName(name string) bool {
	return peripheral.IsIdent(name)
}
