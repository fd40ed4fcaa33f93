package lexer

import "fmt"

// Kind identifies the lexical category of a Token (spec.md §3).
type Kind int

const (
	EOF Kind = iota
	Invalid

	Ident  // lower_snake or UPPER_SNAKE identifier, or a single "_"
	Number // up to three decimal digits
	String // "..." with no escape processing
	Bit    // a 0/1 setting value; no stage emits this kind: a bit-typed
	       // setting (e.g. "set loop = 1;") arrives as a Number token and
	       // world.ConfigFromSettings narrows it to 0 or 1
	Sign   // '+' (buffer) or '-' (negate)

	Assign    // =
	Arrow     // =>
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }

	KeywordSet
	KeywordFn
	KeywordAnt
	KeywordUse
	KeywordNoStd
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Invalid:
		return "invalid token"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Bit:
		return "bit literal"
	case Sign:
		return "sign"
	case Assign:
		return "'='"
	case Arrow:
		return "'=>'"
	case Semicolon:
		return "';'"
	case Comma:
		return "','"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case KeywordSet:
		return "'set'"
	case KeywordFn:
		return "'fn'"
	case KeywordAnt:
		return "'ant'"
	case KeywordUse:
		return "'use'"
	case KeywordNoStd:
		return "'no_std'"
	default:
		return "unknown token"
	}
}

// Position is a 1-based line/column plus a 0-based byte offset, matching
// the teacher's lexer.Position shape (runtime/lexer/tokens.go).
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical unit. Text carries the literal payload for Ident,
// Number, String, and Bit; Negate carries the polarity for Sign tokens
// (false = '+', true = '-').
type Token struct {
	Kind     Kind
	Text     string
	Number   uint32
	Negate   bool
	Position Position
}

func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}

var keywords = map[string]Kind{
	"set":    KeywordSet,
	"fn":     KeywordFn,
	"ant":    KeywordAnt,
	"use":    KeywordUse,
	"no_std": KeywordNoStd,
}
