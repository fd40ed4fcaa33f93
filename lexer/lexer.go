package lexer

import (
	"unicode/utf8"

	"github.com/golang/glog"

	antbyteerrors "github.com/cxrvus/antbyte/errors"
)

// ASCII classification tables, built once in init, mirroring the teacher's
// fast-path lookup tables (runtime/lexer/lexer.go).
var (
	isDigit      [128]bool
	isIdentPart  [128]bool
	isIdentStart [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigit[i] = ch >= '0' && ch <= '9'
		isIdentStart[i] = (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}
}

// Lexer scans antbyte DSL source text into a token stream. It consumes
// comments (# to end of line) as a no-op and fails closed on unrecognized
// characters or casing violations (spec.md §4.1).
type Lexer struct {
	file     string
	input    string
	position int
	readPos  int
	ch       rune
	line     int
	column   int
}

// New constructs a Lexer over source text. file is used only for error
// decoration (the "in file X" context chain, spec.md §7).
func New(file, source string) *Lexer {
	l := &Lexer{file: file, input: source, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	l.position = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
		if r == utf8.RuneError && size <= 1 {
			r = rune(l.input[l.readPos])
			size = 1
		}
		l.ch = r
		l.readPos += size
	}

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// Tokenize scans the full input and returns its token stream, terminated by
// a single EOF token. The first lexical error aborts the scan (spec.md §4.1
// — lexer/parser errors are not recovered).
func Tokenize(file, source string) ([]Token, error) {
	l := New(file, source)
	var tokens []Token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		default:
			return
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()
	start := l.pos()

	if l.ch == 0 {
		return Token{Kind: EOF, Position: start}, nil
	}

	switch {
	case l.ch == '=' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return Token{Kind: Arrow, Position: start}, nil
	case l.ch == '=':
		l.readChar()
		return Token{Kind: Assign, Position: start}, nil
	case l.ch == ';':
		l.readChar()
		return Token{Kind: Semicolon, Position: start}, nil
	case l.ch == ',':
		l.readChar()
		return Token{Kind: Comma, Position: start}, nil
	case l.ch == '(':
		l.readChar()
		return Token{Kind: LParen, Position: start}, nil
	case l.ch == ')':
		l.readChar()
		return Token{Kind: RParen, Position: start}, nil
	case l.ch == '{':
		l.readChar()
		return Token{Kind: LBrace, Position: start}, nil
	case l.ch == '}':
		l.readChar()
		return Token{Kind: RBrace, Position: start}, nil
	case l.ch == '+':
		l.readChar()
		return Token{Kind: Sign, Negate: false, Position: start}, nil
	case l.ch == '-':
		l.readChar()
		return Token{Kind: Sign, Negate: true, Position: start}, nil
	case l.ch == '"':
		return l.lexString(start)
	case l.ch < 128 && isDigit[l.ch]:
		return l.lexNumber(start)
	case l.ch < 128 && isIdentStart[l.ch]:
		return l.lexIdent(start)
	default:
		ch := l.ch
		l.readChar()
		return Token{}, antbyteerrors.New(antbyteerrors.LexInvalid,
			"unrecognized character '"+string(ch)+"'").
			WithContext("position", start).In("file " + l.file)
	}
}

// lexString reads a double-quoted string with no escape processing, per
// spec.md §4.2 ("use" paths have no escape processing either, and the
// string literal form is shared).
func (l *Lexer) lexString(start Position) (Token, error) {
	l.readChar() // consume opening quote
	var text []rune
	for l.ch != '"' {
		if l.ch == 0 {
			return Token{}, antbyteerrors.New(antbyteerrors.LexInvalid,
				"unterminated string literal").In("file " + l.file)
		}
		text = append(text, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return Token{Kind: String, Text: string(text), Position: start}, nil
}

// lexNumber reads up to three decimal digits. The caller (parser) is
// responsible for any further range clamp documented per setting key
// (spec.md §6).
func (l *Lexer) lexNumber(start Position) (Token, error) {
	var digits []byte
	for l.ch < 128 && isDigit[l.ch] {
		digits = append(digits, byte(l.ch))
		l.readChar()
		if len(digits) > 3 {
			return Token{}, antbyteerrors.New(antbyteerrors.LexInvalid,
				"numeric literal exceeds three digits").In("file " + l.file)
		}
	}

	var value uint32
	for _, d := range digits {
		value = value*10 + uint32(d-'0')
	}

	return Token{Kind: Number, Number: value, Text: string(digits), Position: start}, nil
}

// lexIdent reads an identifier or keyword and enforces the casing rule:
// entirely upper-case-and-digits-and-underscore, entirely
// lower-case-and-digits-and-underscore, or the single discard "_".
func (l *Lexer) lexIdent(start Position) (Token, error) {
	var text []byte
	for l.ch < 128 && isIdentPart[l.ch] {
		text = append(text, byte(l.ch))
		l.readChar()
	}
	ident := string(text)

	if kw, ok := keywords[ident]; ok {
		return Token{Kind: kw, Text: ident, Position: start}, nil
	}

	if ident == "_" {
		return Token{Kind: Ident, Text: ident, Position: start}, nil
	}

	if isHexBitPeripheral(ident) {
		return Token{Kind: Ident, Text: ident, Position: start}, nil
	}

	hasUpper, hasLower := false, false
	for _, r := range ident {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		}
	}

	if hasUpper && hasLower {
		glog.V(2).Infof("lex: rejecting mixed-case identifier %q at %s", ident, start)
		return Token{}, antbyteerrors.New(antbyteerrors.LexInvalid,
			"identifiers must be either all upper-case or all lower-case, found '"+ident+"'").
			In("file " + l.file)
	}

	return Token{Kind: Ident, Text: ident, Position: start}, nil
}

// isHexBitPeripheral recognizes the one carve-out in the otherwise strict
// all-upper/all-lower casing rule: a peripheral identifier whose trailing
// bit index digit falls in a..f (spec.md §6 "trailing hex bit index"). The
// name portion preceding that digit must still be entirely upper-case,
// digits, or underscores.
func isHexBitPeripheral(ident string) bool {
	if ident == "" {
		return false
	}
	last := ident[len(ident)-1]
	if last < 'a' || last > 'f' {
		return false
	}
	name := ident[:len(ident)-1]
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		isUpper := c >= 'A' && c <= 'Z'
		isDigitChar := c >= '0' && c <= '9'
		if !isUpper && !isDigitChar && c != '_' {
			return false
		}
	}
	hasUpper := false
	for i := 0; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	return hasUpper
}
