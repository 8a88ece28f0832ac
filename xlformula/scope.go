package xlformula

type scopeKind int

const (
	scopeFunction scopeKind = iota
	scopeSubexpression
	scopeArray
	scopeArrayRow
)

// scope is an open function, subexpression, array or array row.
type scope struct {
	kind scopeKind
	name string
}

func (s scope) tokenType() TokenType {
	if s.kind == scopeSubexpression {
		return TokenSubexpression
	}
	return TokenFunction
}

// scopeStack tracks the scopes opened so far while scanning.
type scopeStack struct {
	items []scope
}

func (st *scopeStack) push(s scope) {
	st.items = append(st.items, s)
}

// pop removes the innermost scope and returns its stop token carrying
// name. ok is false if no scope is open.
func (st *scopeStack) pop(name string) (Token, bool) {
	if len(st.items) == 0 {
		return Token{}, false
	}
	s := st.items[len(st.items)-1]
	st.items = st.items[:len(st.items)-1]
	return Token{Value: name, Type: s.tokenType(), Subtype: SubtypeStop}, true
}

// top returns the innermost scope. ok is false if no scope is open.
func (st *scopeStack) top() (scope, bool) {
	if len(st.items) == 0 {
		return scope{}, false
	}
	return st.items[len(st.items)-1], true
}

