// Package errors implements antbyte's structured error type: every stage of
// the compiler and the simulation core returns one of these instead of a
// bare error, so failures can be decorated with context as they unwind and
// rendered in the "<!> message / in ..." form spec.md §7 mandates.
package errors

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind identifies a class of failure. These are the error kinds named in
// spec.md §7, plus CompInvalidSig, WorldConfig and CliIO.
type Kind string

const (
	LexInvalid Kind = "lex-invalid"

	ParseUnexpected     Kind = "parse-unexpected"
	ParseUnmatchedParen Kind = "parse-unmatched-paren"

	LinkExtension   Kind = "link-extension"
	LinkName        Kind = "link-name"
	LinkMissingFile Kind = "link-missing-file"
	LinkCycle       Kind = "link-cycle"

	CompUnknownFn     Kind = "comp-unknown-fn"
	CompOverload      Kind = "comp-overload"
	CompDupeAssignee  Kind = "comp-dupe-assignee"
	CompInvalidSig    Kind = "comp-invalid-signature"

	AsmPeriphUnknown Kind = "asm-periph-unknown"
	AsmBitRange      Kind = "asm-bit-range"
	AsmPeriphDir     Kind = "asm-periph-dir"
	AsmForbidden     Kind = "asm-forbidden"
	AsmCapacity      Kind = "asm-capacity"

	WorldNoEntry   Kind = "world-no-entry"
	WorldOccupancy Kind = "world-occupancy"
	WorldConfig    Kind = "world-config"

	RuntimeTickCap Kind = "runtime-tick-cap"

	// CliIO is not one of spec.md §7's pipeline Kinds: it marks a cmd/antbyte
	// I/O failure (can't read the input file, can't write --gif output) so
	// cli.exitCodeFor can tell it apart from a compile failure and return
	// exit code 2 rather than 3 (spec.md §6.1).
	CliIO Kind = "cli-io"
)

// Frame is one link in the context chain decorating an Error as it unwinds
// ("in file X", "in function Y", "in statement N").
type Frame struct {
	Label string
}

// Error is antbyte's structured error. It is grounded on the teacher's
// DevCmdError (see DESIGN.md: errors) extended with an explicit context
// Chain and a fuzzy-matched Suggest field for unknown-identifier errors.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
	Chain   []Frame
	Suggest string
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Context: map[string]any{}}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause, Context: map[string]any{}}
}

// WithContext attaches a key/value pair for structured inspection (tests,
// glog.V(2) dumps) without affecting the rendered message.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// In appends a context frame, so frames render in the order they were
// added: err.In("function main").In("file foo.ant") prints the function
// line before the file line, matching the "first the error, then the chain
// of containing contexts" order spec.md §7 describes.
func (e *Error) In(label string) *Error {
	e.Chain = append(e.Chain, Frame{Label: label})
	return e
}

// WithSuggestion sets a "did you mean" hint by fuzzy-ranking candidates
// against the unresolved name. If no candidate is close enough, Suggest is
// left empty and the rendered message carries no hint.
func (e *Error) WithSuggestion(name string, candidates []string) *Error {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return e
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	e.Suggest = best.Target
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("<!> ")
	b.WriteString(e.Message)
	if e.Suggest != "" {
		fmt.Fprintf(&b, " (did you mean '%s'?)", e.Suggest)
	}
	for _, frame := range e.Chain {
		b.WriteString("\n    in ")
		b.WriteString(frame.Label)
	}
	if e.Cause != nil {
		b.WriteString("\n    caused by: ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
