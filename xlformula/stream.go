package xlformula

// Tokens is an ordered sequence of tokens.
//
// A pass builds a new Tokens with add and never modifies a sequence it
// did not build. Callers treat a returned Tokens as read-only and walk
// it with a Cursor.
type Tokens struct {
	items []Token
}

func newTokens(capacity int) *Tokens {
	return &Tokens{items: make([]Token, 0, capacity)}
}

// add appends a token and returns it.
func (ts *Tokens) add(value string, typ TokenType, subtype TokenSubtype) Token {
	tok := Token{Value: value, Type: typ, Subtype: subtype}
	ts.items = append(ts.items, tok)
	return tok
}

func (ts *Tokens) addRef(tok Token) {
	ts.items = append(ts.items, tok)
}

// Len returns the number of tokens.
func (ts *Tokens) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.items)
}

// At returns the token at index i. It panics if i is out of range.
func (ts *Tokens) At(i int) Token {
	return ts.items[i]
}

// Items returns a copy of the tokens as a slice.
func (ts *Tokens) Items() []Token {
	if ts == nil {
		return nil
	}
	out := make([]Token, len(ts.items))
	copy(out, ts.items)
	return out
}

// Cursor returns a new cursor positioned before the first token.
func (ts *Tokens) Cursor() *Cursor {
	return &Cursor{tokens: ts, index: -1}
}

// Cursor is a position within a Tokens sequence.
//
// BOF and EOF are deliberately loose: BOF holds at index <= 0 and EOF at
// index >= Len()-1, so both are true on the first and last token
// respectively and not only past the ends.
type Cursor struct {
	tokens *Tokens
	index  int
}

// Index returns the current position, or -1 before the first MoveNext.
func (c *Cursor) Index() int {
	return c.index
}

// Reset moves the cursor back before the first token.
func (c *Cursor) Reset() {
	c.index = -1
}

// Clone returns an independent cursor at the same position.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{tokens: c.tokens, index: c.index}
}

// BOF reports whether the cursor is at or before the first token.
func (c *Cursor) BOF() bool {
	return c.index <= 0
}

// EOF reports whether the cursor is at or past the last token.
func (c *Cursor) EOF() bool {
	return c.index >= c.tokens.Len()-1
}

// MoveNext advances to the next token unless already at the last one.
func (c *Cursor) MoveNext() bool {
	if c.EOF() {
		return false
	}
	c.index++
	return true
}

// Current returns the token under the cursor. ok is false before the
// first MoveNext.
func (c *Cursor) Current() (tok Token, ok bool) {
	if c.index < 0 || c.index >= c.tokens.Len() {
		return Token{}, false
	}
	return c.tokens.items[c.index], true
}

// Next returns the token after the cursor without moving it.
func (c *Cursor) Next() (tok Token, ok bool) {
	if c.EOF() {
		return Token{}, false
	}
	return c.tokens.items[c.index+1], true
}

// Previous returns the token before the cursor without moving it.
func (c *Cursor) Previous() (tok Token, ok bool) {
	if c.index < 1 || c.index > c.tokens.Len() {
		return Token{}, false
	}
	return c.tokens.items[c.index-1], true
}
