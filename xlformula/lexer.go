package xlformula

import (
	"regexp"
	"strings"
)

// Tokenize splits a formula into classified tokens.
//
// A single leading "=" is ignored, as are spaces before it. Tokenize never
// fails: text it cannot make sense of comes back as TokenUnknown tokens.
func Tokenize(formula string) *Tokens {
	raw := scan(formula)
	return dropNoops(classify(resolveWhitespace(raw)))
}

type lexMode int

const (
	modeNone lexMode = iota
	modeString
	modePath
	modeRange
	modeError
)

// scientificPending matches a mantissa waiting for its exponent sign, e.g. "1.5E".
var scientificPending = regexp.MustCompile(`^[1-9](\.[0-9]+)?E$`)

type lexer struct {
	formula string
	offset  int
	mode    lexMode
	buf     strings.Builder
	tokens  *Tokens
	scopes  scopeStack
}

func trimFormula(formula string) string {
	formula = strings.TrimLeft(formula, " ")
	return strings.TrimPrefix(formula, "=")
}

// scan produces the raw token stream, before white-space resolution and
// subtype assignment.
func scan(formula string) *Tokens {
	l := &lexer{
		formula: trimFormula(formula),
		tokens:  newTokens(len(formula) / 2),
	}
	for l.offset < len(l.formula) {
		switch l.mode {
		case modeString:
			l.scanString()
		case modePath:
			l.scanPath()
		case modeRange:
			l.scanRange()
		case modeError:
			l.scanError()
		default:
			l.scanChar()
		}
	}
	l.flush(TokenOperand)
	return l.tokens
}

func (l *lexer) currentChar() byte {
	return l.formula[l.offset]
}

func (l *lexer) nextChar() (byte, bool) {
	if l.offset+1 >= len(l.formula) {
		return 0, false
	}
	return l.formula[l.offset+1], true
}

func (l *lexer) doubleChar() string {
	return l.formula[l.offset:min(l.offset+2, len(l.formula))]
}

// flush emits the pending text, if any, as a token of the given type.
func (l *lexer) flush(typ TokenType) {
	if l.buf.Len() == 0 {
		return
	}
	l.tokens.add(l.buf.String(), typ, SubtypeNone)
	l.buf.Reset()
}

// Double-quoted text. A doubled quote is a literal quote; a lone quote
// ends the text and emits it.
func (l *lexer) scanString() {
	ch := l.currentChar()
	if ch != '"' {
		l.buf.WriteByte(ch)
		l.offset++
		return
	}
	if next, ok := l.nextChar(); ok && next == '"' {
		l.buf.WriteByte('"')
		l.offset += 2
		return
	}
	l.mode = modeNone
	l.tokens.add(l.buf.String(), TokenOperand, SubtypeText)
	l.buf.Reset()
	l.offset++
}

// Single-quoted workbook or sheet names. The closing quote does not emit a
// token; the name stays pending and joins whatever follows it.
func (l *lexer) scanPath() {
	ch := l.currentChar()
	if ch != '\'' {
		l.buf.WriteByte(ch)
		l.offset++
		return
	}
	if next, ok := l.nextChar(); ok && next == '\'' {
		l.buf.WriteByte('\'')
		l.offset += 2
		return
	}
	l.mode = modeNone
	l.offset++
}

// Bracketed range offsets or linked workbook names, kept verbatim
// including the closing bracket.
func (l *lexer) scanRange() {
	ch := l.currentChar()
	if ch == ']' {
		l.mode = modeNone
	}
	l.buf.WriteByte(ch)
	l.offset++
}

func (l *lexer) scanError() {
	l.buf.WriteByte(l.currentChar())
	l.offset++
	if IsErrorLiteral(l.buf.String()) {
		l.mode = modeNone
		l.tokens.add(l.buf.String(), TokenOperand, SubtypeError)
		l.buf.Reset()
	}
}

func (l *lexer) scanChar() {
	ch := l.currentChar()

	if (ch == '+' || ch == '-') && l.buf.Len() > 1 && scientificPending.MatchString(l.buf.String()) {
		l.buf.WriteByte(ch)
		l.offset++
		return
	}

	switch ch {
	case '"':
		l.flush(TokenUnknown)
		l.mode = modeString
		l.offset++
		return
	case '\'':
		l.flush(TokenUnknown)
		l.mode = modePath
		l.offset++
		return
	case '[':
		l.mode = modeRange
		l.buf.WriteByte(ch)
		l.offset++
		return
	case '#':
		l.flush(TokenUnknown)
		l.mode = modeError
		l.buf.WriteByte(ch)
		l.offset++
		return
	case '{':
		l.flush(TokenUnknown)
		l.openScope(ArrayName, scopeArray)
		l.openScope(ArrayRowName, scopeArrayRow)
		l.offset++
		return
	case ';':
		l.flush(TokenOperand)
		l.breakArrayRow()
		l.offset++
		return
	case '}':
		l.flush(TokenOperand)
		l.closeArray()
		l.offset++
		return
	case ' ':
		l.flush(TokenOperand)
		l.tokens.add("", TokenWhitespace, SubtypeNone)
		for l.offset < len(l.formula) && l.formula[l.offset] == ' ' {
			l.offset++
		}
		return
	}

	switch op := l.doubleChar(); op {
	case ">=", "<=", "<>":
		l.flush(TokenOperand)
		l.tokens.add(op, TokenOperatorInfix, SubtypeLogical)
		l.offset += 2
		return
	}

	switch ch {
	case '+', '-', '*', '/', '^', '&', '=', '>', '<':
		l.flush(TokenOperand)
		l.tokens.add(string(ch), TokenOperatorInfix, SubtypeNone)
	case '%':
		l.flush(TokenOperand)
		l.tokens.add(string(ch), TokenOperatorPostfix, SubtypeNone)
	case '(':
		if l.buf.Len() > 0 {
			name := l.buf.String()
			l.buf.Reset()
			l.openScope(name, scopeFunction)
		} else {
			l.openScope("", scopeSubexpression)
		}
	case ',':
		l.flush(TokenOperand)
		if top, ok := l.scopes.top(); ok && top.tokenType() == TokenFunction {
			l.tokens.add(",", TokenArgument, SubtypeNone)
		} else {
			l.tokens.add(",", TokenOperatorInfix, SubtypeUnion)
		}
	case ')':
		l.flush(TokenOperand)
		l.closeScope("", ")")
	default:
		l.buf.WriteByte(ch)
	}
	l.offset++
}

// openScope emits a start token and records the scope it opens.
func (l *lexer) openScope(name string, kind scopeKind) {
	s := scope{kind: kind, name: name}
	l.tokens.add(name, s.tokenType(), SubtypeStart)
	l.scopes.push(s)
}

// closeScope emits the stop token of the innermost scope. With no scope
// open, the delimiter is emitted as an unknown token instead. It reports
// whether a scope was closed.
func (l *lexer) closeScope(name, delim string) bool {
	tok, ok := l.scopes.pop(name)
	if !ok {
		l.tokens.add(delim, TokenUnknown, SubtypeNone)
		return false
	}
	l.tokens.addRef(tok)
	return true
}

// breakArrayRow closes the current array row and opens the next one.
func (l *lexer) breakArrayRow() {
	if !l.closeScope("", ";") {
		return
	}
	l.tokens.add(",", TokenArgument, SubtypeNone)
	l.openScope(ArrayRowName, scopeArrayRow)
}

// closeArray closes the current array row and then the array itself.
func (l *lexer) closeArray() {
	if !l.closeScope(ArrayRowStopName, "}") {
		return
	}
	l.closeScope(ArrayStopName, "}")
}
