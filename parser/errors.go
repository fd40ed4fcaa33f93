package parser

import (
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/lexer"
)

// unexpected builds a parse-unexpected error naming what was actually found
// versus what the grammar expected at this point (spec.md §7).
func (p *Parser) unexpected(got lexer.Token, want string) error {
	return errors.New(errors.ParseUnexpected,
		"unexpected "+got.Kind.String()+" at "+got.Position.String()+", expected "+want).
		In("file " + p.file)
}

// unmatchedParen is raised when a statement terminator is reached with a
// nonzero open-paren depth (spec.md §4.2: "unmatched parentheses at a
// terminator (;) fail with parse-unmatched-paren"). Grounded on the
// teacher's BracketTracker (runtime/parser/errors.go), simplified from a
// bracket-kind stack to a single depth counter since antbyte expressions
// nest only parentheses, never braces, inside a statement.
func (p *Parser) unmatchedParen(at lexer.Token) error {
	return errors.New(errors.ParseUnmatchedParen,
		"unmatched parenthesis before "+at.Kind.String()+" at "+at.Position.String()).
		In("file " + p.file)
}
