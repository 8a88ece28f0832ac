package xlformula

import "fmt"

// TokenType is the coarse classification of a formula token.
type TokenType int

// Token types
const (
	TokenNoop TokenType = iota
	TokenOperand
	TokenFunction
	TokenSubexpression
	TokenArgument
	TokenOperatorPrefix
	TokenOperatorInfix
	TokenOperatorPostfix
	TokenWhitespace
	TokenUnknown
)

var tokenTypeNames = map[TokenType]string{
	TokenNoop:            "noop",
	TokenOperand:         "operand",
	TokenFunction:        "function",
	TokenSubexpression:   "subexpression",
	TokenArgument:        "argument",
	TokenOperatorPrefix:  "operator-prefix",
	TokenOperatorInfix:   "operator-infix",
	TokenOperatorPostfix: "operator-postfix",
	TokenWhitespace:      "white-space",
	TokenUnknown:         "unknown",
}

// String returns the canonical name of the token type, e.g. "operator-infix".
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// TokenSubtype refines a TokenType. The zero value means no subtype.
type TokenSubtype int

// Token subtypes
const (
	SubtypeNone TokenSubtype = iota
	SubtypeStart
	SubtypeStop
	SubtypeText
	SubtypeNumber
	SubtypeLogical
	SubtypeError
	SubtypeRange
	SubtypeMath
	SubtypeConcatenate
	SubtypeIntersect
	SubtypeUnion
)

var tokenSubtypeNames = map[TokenSubtype]string{
	SubtypeNone:        "",
	SubtypeStart:       "start",
	SubtypeStop:        "stop",
	SubtypeText:        "text",
	SubtypeNumber:      "number",
	SubtypeLogical:     "logical",
	SubtypeError:       "error",
	SubtypeRange:       "range",
	SubtypeMath:        "math",
	SubtypeConcatenate: "concatenate",
	SubtypeIntersect:   "intersect",
	SubtypeUnion:       "union",
}

// String returns the canonical name of the subtype. SubtypeNone is "".
func (s TokenSubtype) String() string {
	if name, ok := tokenSubtypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TokenSubtype(%d)", int(s))
}

// Names used for the synthetic scopes an array literal desugars into.
const (
	ArrayName        = "ARRAY"
	ArrayRowName     = "ARRAYROW"
	ArrayStopName    = "ARRAYSTOP"
	ArrayRowStopName = "ARRAYROWSTOP"
)

// Token is a single lexical unit of a formula.
//
// Value is the literal text captured for the token. It is empty for
// anonymous subexpressions, for stop tokens closed by ")" and for
// white-space runs.
type Token struct {
	Value   string
	Type    TokenType
	Subtype TokenSubtype
}

// IsStart reports whether the token opens a function or subexpression scope.
func (t Token) IsStart() bool {
	return t.Subtype == SubtypeStart
}

// IsStop reports whether the token closes a function or subexpression scope.
func (t Token) IsStop() bool {
	return t.Subtype == SubtypeStop
}

// String returns a compact debug representation.
func (t Token) String() string {
	if t.Subtype == SubtypeNone {
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	}
	return fmt.Sprintf("%s/%s(%q)", t.Type, t.Subtype, t.Value)
}

// closesScope reports whether t is a function or subexpression stop token.
func (t Token) closesScope() bool {
	return (t.Type == TokenFunction || t.Type == TokenSubexpression) && t.Subtype == SubtypeStop
}

// opensScope reports whether t is a function or subexpression start token.
func (t Token) opensScope() bool {
	return (t.Type == TokenFunction || t.Type == TokenSubexpression) && t.Subtype == SubtypeStart
}

// MarshalText encodes the type by its canonical name.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalText encodes the subtype by its canonical name.
func (s TokenSubtype) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
