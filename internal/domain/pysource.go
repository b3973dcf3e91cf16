package domain

import "fmt"

// ValueKind is a coarse classification of a Python expression, enough
// for the structural checks to tell literals from dynamic values.
type ValueKind string

const (
	KindString  ValueKind = "string"
	KindFString ValueKind = "fstring"
	KindNumber  ValueKind = "number"
	KindBool    ValueKind = "bool"
	KindNone    ValueKind = "none"
	KindName    ValueKind = "name"
	KindCall    ValueKind = "call"
	KindOther   ValueKind = "other"
)

// Literal reports whether the kind is a plain literal value.
func (k ValueKind) Literal() bool {
	switch k {
	case KindString, KindNumber, KindBool, KindNone:
		return true
	default:
		return false
	}
}

// PyImport is one imported module. "from x import y" records module x.
type PyImport struct {
	Module string
	Line   int
}

// PyKeyword is a keyword argument at a call site. Str carries the value
// for string literals, and the dotted name for name references, so a
// check can match both Loader="safe" and Loader=yaml.SafeLoader.
type PyKeyword struct {
	Name string
	Kind ValueKind
	Bool bool
	Str  string
}

// PyCall is one call site. Name is the dotted callee when it resolves
// to names ("os.system"); Attr is the final attribute for method calls
// on arbitrary receivers ("format" in template.format(x)).
type PyCall struct {
	Name     string
	Attr     string
	Line     int
	Args     []ValueKind
	Keywords []PyKeyword
	HasStar  bool
}

// Keyword returns the keyword argument with the given name.
func (c PyCall) Keyword(name string) (PyKeyword, bool) {
	for _, kw := range c.Keywords {
		if kw.Name == name {
			return kw, true
		}
	}
	return PyKeyword{}, false
}

// PyAssign is one simple-name assignment. Str and Bool carry the value
// when Kind is a matching literal.
type PyAssign struct {
	Target string
	Line   int
	Kind   ValueKind
	Str    string
	Bool   bool
}

// PythonSource is the flattened view of a parsed Python file that the
// structural checks walk.
type PythonSource struct {
	Imports []PyImport
	Calls   []PyCall
	Assigns []PyAssign
}

// SyntaxFailure reports that a Python file could not be parsed. The
// analyzer records it as a quality issue and skips structural checks
// for the file.
type SyntaxFailure struct {
	Line   int
	Reason string
}

func (e *SyntaxFailure) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Reason)
}
