package parser

import (
	"strings"

	"github.com/golang/glog"

	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/lexer"
)

// Parser consumes a flat token stream and builds a ParsedWorld. It tracks a
// single paren-depth counter across expression parsing, grounded on the
// teacher's BracketTracker (runtime/parser/errors.go) — see errors.go.
type Parser struct {
	file       string
	tokens     []lexer.Token
	pos        int
	parenDepth int
}

// Parse tokenizes and parses a single source file into a ParsedWorld. file
// is the logical file name used for import-stem resolution and error
// decoration.
func Parse(file, source string) (*ParsedWorld, error) {
	tokens, err := lexer.Tokenize(file, source)
	if err != nil {
		return nil, err
	}
	p := &Parser{file: file, tokens: tokens}
	world, err := p.parseWorld()
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("parser: %s -> %d settings, %d functions, %d ant bindings, %d imports",
		file, len(world.Settings), len(world.Functions), len(world.AntBindings), len(world.Imports))
	return world, nil
}

func (p *Parser) peek() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) atEnd() bool        { return p.peek().Kind == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return lexer.Token{}, p.unexpected(tok, kind.String())
	}
	return p.advance(), nil
}

func (p *Parser) expectSemicolon() (lexer.Token, error) {
	tok := p.peek()
	if tok.Kind != lexer.Semicolon {
		if p.parenDepth != 0 {
			return lexer.Token{}, p.unmatchedParen(tok)
		}
		return lexer.Token{}, p.unexpected(tok, "';'")
	}
	p.parenDepth = 0
	return p.advance(), nil
}

func (p *Parser) parseWorld() (*ParsedWorld, error) {
	world := &ParsedWorld{File: p.file}

	for !p.atEnd() {
		tok := p.peek()
		var err error

		switch tok.Kind {
		case lexer.KeywordSet:
			p.advance()
			err = p.parseSet(world)
		case lexer.KeywordUse:
			p.advance()
			err = p.parseUse(world)
		case lexer.KeywordNoStd:
			p.advance()
			if _, err = p.expectSemicolon(); err == nil {
				world.NoStd = true
			}
		case lexer.KeywordFn:
			p.advance()
			var fn Function
			if fn, err = p.parseFunction(); err == nil {
				world.Functions = append(world.Functions, fn)
			}
		case lexer.KeywordAnt:
			p.advance()
			var fn Function
			var binding AntBinding
			if fn, binding, err = p.parseAntBinding(); err == nil {
				world.Functions = append(world.Functions, fn)
				world.AntBindings = append(world.AntBindings, binding)
			}
		default:
			err = p.unexpected(tok, "'set', 'use', 'no_std', 'fn', or 'ant'")
		}

		if err != nil {
			return nil, err
		}
	}

	return world, nil
}

func (p *Parser) parseSet(world *ParsedWorld) error {
	keyTok, err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return err
	}

	value := p.advance()
	switch value.Kind {
	case lexer.Number, lexer.Ident, lexer.String:
		// accepted value kinds (spec.md §6); bit-typed settings are
		// narrowed from Number later by the settings interpreter.
	default:
		return p.unexpected(value, "a number, identifier, bit, or string")
	}

	if _, err := p.expectSemicolon(); err != nil {
		return err
	}

	world.Settings = append(world.Settings, Setting{Key: keyTok.Text, Value: value})
	return nil
}

func (p *Parser) parseUse(world *ParsedWorld) error {
	pathTok, err := p.expect(lexer.String)
	if err != nil {
		return err
	}
	if _, err := p.expectSemicolon(); err != nil {
		return err
	}
	world.Imports = append(world.Imports, Import{Path: pathTok.Text})
	return nil
}

// parseNameList parses either a single lower-case identifier or a
// parenthesized comma-separated list of them, per spec.md §4.2's "tuples
// (a, b, c) vs. singletons a are both accepted".
func (p *Parser) parseNameList() ([]string, error) {
	if p.peek().Kind != lexer.LParen {
		tok, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		return []string{tok.Text}, nil
	}

	p.advance() // (
	p.parenDepth++
	var names []string
	for {
		tok, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Text)
		if p.peek().Kind == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	p.parenDepth--
	return names, nil
}

// parseAssigneeList parses either a single signed assignee or a
// parenthesized comma-separated list of them.
func (p *Parser) parseAssigneeList() ([]ParamValue, error) {
	if p.peek().Kind != lexer.LParen {
		pv, err := p.parseParamValue()
		if err != nil {
			return nil, err
		}
		return []ParamValue{pv}, nil
	}

	p.advance()
	p.parenDepth++
	var values []ParamValue
	for {
		pv, err := p.parseParamValue()
		if err != nil {
			return nil, err
		}
		values = append(values, pv)
		if p.peek().Kind == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	p.parenDepth--
	return values, nil
}

func (p *Parser) parseParamValue() (ParamValue, error) {
	sign := false
	if p.peek().Kind == lexer.Sign {
		sign = p.advance().Negate
	}
	tok, err := p.expect(lexer.Ident)
	if err != nil {
		return ParamValue{}, err
	}
	return ParamValue{Sign: sign, Target: tok.Text}, nil
}

func (p *Parser) parseFunction() (Function, error) {
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return Function{}, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return Function{}, err
	}

	params, err := p.parseNameList()
	if err != nil {
		return Function{}, err
	}

	if _, err := p.expect(lexer.Arrow); err != nil {
		return Function{}, err
	}

	assignees, err := p.parseNameList()
	if err != nil {
		return Function{}, err
	}

	sig := Signature{Name: nameTok.Text, Params: params, Assignees: assignees}
	if err := validateSignature(sig); err != nil {
		return Function{}, err.In("function " + sig.Name).In("file " + p.file)
	}

	stmts, err := p.parseBody()
	if err != nil {
		return Function{}, err
	}

	return Function{Signature: sig, Statements: stmts, File: p.file}, nil
}

func (p *Parser) parseAntBinding() (Function, AntBinding, error) {
	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return Function{}, AntBinding{}, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return Function{}, AntBinding{}, err
	}
	idTok, err := p.expect(lexer.Number)
	if err != nil {
		return Function{}, AntBinding{}, err
	}
	if idTok.Number > 255 {
		return Function{}, AntBinding{}, errors.New(errors.ParseUnexpected,
			"ant id must be in 0..255, found "+idTok.Text).In("file " + p.file)
	}

	stmts, err := p.parseBody()
	if err != nil {
		return Function{}, AntBinding{}, err
	}

	fn := Function{
		Signature:  Signature{Name: nameTok.Text},
		Statements: stmts,
		File:       p.file,
	}
	binding := AntBinding{FunctionName: nameTok.Text, ID: uint8(idTok.Number)}
	return fn, binding, nil
}

func (p *Parser) parseBody() ([]Statement, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}

	var stmts []Statement
	for p.peek().Kind != lexer.RBrace {
		if p.atEnd() {
			return nil, p.unexpected(p.peek(), "'}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // }

	return stmts, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	assignees, err := p.parseAssigneeList()
	if err != nil {
		return Statement{}, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return Statement{}, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return Statement{}, err
	}
	if _, err := p.expectSemicolon(); err != nil {
		return Statement{}, err
	}
	return Statement{Assignees: assignees, Expression: expr}, nil
}

// parseExpression parses the operator-free prefix call grammar: an
// optionally-signed identifier, optionally followed by a parenthesized
// comma-separated argument list (spec.md §4.2).
func (p *Parser) parseExpression() (Expression, error) {
	sign := false
	if p.peek().Kind == lexer.Sign {
		sign = p.advance().Negate
	}

	nameTok, err := p.expect(lexer.Ident)
	if err != nil {
		return Expression{}, err
	}

	if p.peek().Kind != lexer.LParen {
		return Expression{Ident: nameTok.Text, Sign: sign}, nil
	}

	p.advance() // (
	p.parenDepth++

	var args []Expression
	if p.peek().Kind != lexer.RParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return Expression{}, err
			}
			args = append(args, arg)
			if p.peek().Kind == lexer.Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if args == nil {
		args = []Expression{}
	}

	if p.peek().Kind == lexer.Semicolon {
		return Expression{}, p.unmatchedParen(p.peek())
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return Expression{}, err
	}
	p.parenDepth--

	return Expression{Ident: nameTok.Text, Sign: sign, Params: args}, nil
}

// validateSignature enforces spec.md §4.2's "Signature validation": name,
// params, and assignees must all be lower-case identifiers, pairwise
// distinct, disjoint from each other and from the function name.
func validateSignature(sig Signature) *errors.Error {
	if sig.Name != strings.ToLower(sig.Name) {
		return errors.New(errors.CompInvalidSig,
			"function name '"+sig.Name+"' must be lower-case")
	}
	seen := map[string]bool{sig.Name: true}
	check := func(group string, names []string) *errors.Error {
		for _, n := range names {
			if n == "_" {
				continue
			}
			if n != strings.ToLower(n) {
				return errors.New(errors.CompInvalidSig,
					"identifier '"+n+"' in "+group+" must be lower-case")
			}
			if seen[n] {
				return errors.New(errors.CompInvalidSig,
					"duplicate or conflicting identifier '"+n+"' in "+group)
			}
			seen[n] = true
		}
		return nil
	}
	if err := check("parameters", sig.Params); err != nil {
		return err
	}
	if err := check("assignees", sig.Assignees); err != nil {
		return err
	}
	return nil
}

// Stem returns the snake_case base name (without directory or extension)
// used when the linker renames an imported file's main function, per
// spec.md §4.3.
func Stem(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}
