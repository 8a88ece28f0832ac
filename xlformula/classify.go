package xlformula

import (
	"errors"
	"strconv"
	"strings"
)

// resolveWhitespace drops white-space tokens, except that a white-space
// token at either end of the stream which sits between two operand-like
// tokens becomes an intersection operator.
//
// The edge test mirrors the Cursor's BOF/EOF semantics. A missing
// neighbour fails its half of the test.
func resolveWhitespace(in *Tokens) *Tokens {
	out := newTokens(in.Len())
	c := in.Cursor()
	for c.MoveNext() {
		tok, _ := c.Current()
		if tok.Type != TokenWhitespace {
			out.addRef(tok)
			continue
		}
		keep := c.BOF() || c.EOF()
		if keep {
			prev, ok := c.Previous()
			keep = ok && (prev.closesScope() || prev.Type == TokenOperand)
		}
		if keep {
			next, ok := c.Next()
			keep = ok && (next.opensScope() || next.Type == TokenOperand)
		}
		if keep {
			out.add(tok.Value, TokenOperatorInfix, SubtypeIntersect)
		}
	}
	return out
}

// classify turns infix "-" into a prefix operator and infix "+" into a
// noop where they are unary, assigns operator and operand subtypes, and
// strips the "@" marker from function names.
func classify(in *Tokens) *Tokens {
	out := newTokens(in.Len())
	c := in.Cursor()
	for c.MoveNext() {
		tok, _ := c.Current()
		switch {
		case tok.Type == TokenOperatorInfix && tok.Value == "-":
			if followsValue(c) {
				tok.Subtype = SubtypeMath
			} else {
				tok.Type = TokenOperatorPrefix
			}
		case tok.Type == TokenOperatorInfix && tok.Value == "+":
			if followsValue(c) {
				tok.Subtype = SubtypeMath
			} else {
				tok.Type = TokenNoop
			}
		case tok.Type == TokenOperatorInfix && tok.Subtype == SubtypeNone:
			tok.Subtype = infixSubtype(tok.Value)
		case tok.Type == TokenOperand && tok.Subtype == SubtypeNone:
			tok.Subtype = operandSubtype(tok.Value)
		case tok.Type == TokenFunction:
			tok.Value = strings.TrimPrefix(tok.Value, "@")
		}
		out.addRef(tok)
	}
	return out
}

// followsValue reports whether the token under c comes after something
// that yields a value, making a "+" or "-" there binary.
func followsValue(c *Cursor) bool {
	if c.BOF() {
		return false
	}
	prev, ok := c.Previous()
	if !ok {
		return false
	}
	return prev.closesScope() || prev.Type == TokenOperatorPostfix || prev.Type == TokenOperand
}

func infixSubtype(value string) TokenSubtype {
	switch {
	case strings.HasPrefix(value, "<"), strings.HasPrefix(value, ">"), strings.HasPrefix(value, "="):
		return SubtypeLogical
	case value == "&":
		return SubtypeConcatenate
	default:
		return SubtypeMath
	}
}

func operandSubtype(value string) TokenSubtype {
	switch {
	case isNumber(value):
		return SubtypeNumber
	case value == "TRUE", value == "FALSE":
		return SubtypeLogical
	default:
		return SubtypeRange
	}
}

// isNumber reports whether value is a plain decimal number such as "12",
// ".5" or "1.5E+3". Spellings strconv would also accept, like "Inf",
// "NaN" or hexadecimal floats, are not numbers here. Values too large for
// a float64 still count. The whole value must parse, so a value with a
// numeric prefix such as the row range "1:3" is not a number.
func isNumber(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E', c == '+', c == '-':
		default:
			return false
		}
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// dropNoops copies every token except noops.
func dropNoops(in *Tokens) *Tokens {
	out := newTokens(in.Len())
	c := in.Cursor()
	for c.MoveNext() {
		if tok, _ := c.Current(); tok.Type != TokenNoop {
			out.addRef(tok)
		}
	}
	return out
}
