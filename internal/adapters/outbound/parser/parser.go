package parser

import (
	"strings"

	"github.com/codewarden/codewarden/internal/domain"
)

// Parser implements domain.PythonParser with a lenient, token-level
// parse. It extracts imports, call sites and simple assignments and
// skips every construct it does not recognize; only structural damage
// (unterminated strings, unbalanced brackets) fails the parse.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) ParsePython(src string) (*domain.PythonSource, error) {
	toks, fail := lex(src)
	if fail != nil {
		return nil, fail
	}

	out := &domain.PythonSource{}
	for _, stmt := range statements(toks) {
		switch {
		case isKeyword(stmt[0], "import"):
			out.Imports = append(out.Imports, plainImports(stmt)...)
		case isKeyword(stmt[0], "from"):
			if imp, ok := fromImport(stmt); ok {
				out.Imports = append(out.Imports, imp)
			}
		default:
			out.Assigns = append(out.Assigns, assignments(stmt)...)
		}
	}
	out.Calls = callSites(toks)
	return out, nil
}

// Keywords that introduce an indented suite. A suite inlined after the
// colon ("if debug: x = 1") is split off as its own statement.
var compoundKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"try": true, "except": true, "finally": true, "with": true,
	"def": true, "class": true, "async": true,
}

// statements splits the token stream into logical statements on
// newlines and semicolons.
func statements(toks []token) [][]token {
	var out [][]token
	var cur []token
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, t := range toks {
		switch {
		case t.kind == tokNewline || t.kind == tokEOF:
			flush()
		case t.kind == tokOp && t.text == ";":
			flush()
		default:
			cur = append(cur, t)
		}
	}
	flush()

	for i := 0; i < len(out); i++ {
		stmt := out[i]
		if !isName(stmt[0]) || !compoundKeywords[stmt[0].text] {
			continue
		}
		if colon := depthZeroIndex(stmt, ":"); colon >= 0 && colon+1 < len(stmt) {
			out = append(out, stmt[colon+1:])
		}
	}
	return out
}

func plainImports(stmt []token) []domain.PyImport {
	var imports []domain.PyImport
	i := 1
	for i < len(stmt) {
		name, next := dottedName(stmt, i)
		if name != "" {
			imports = append(imports, domain.PyImport{Module: name, Line: stmt[0].line})
		}
		// Skip any "as alias" and move past the separating comma.
		for i = next; i < len(stmt) && !isOp(stmt[i], ","); i++ {
		}
		i++
	}
	return imports
}

// fromImport records the source module of a from-import. Leading dots
// of a relative import are dropped; "from . import x" has no module
// name and is skipped.
func fromImport(stmt []token) (domain.PyImport, bool) {
	i := 1
	for i < len(stmt) && isOp(stmt[i], ".") {
		i++
	}
	name, _ := dottedName(stmt, i)
	if name == "" || name == "import" {
		return domain.PyImport{}, false
	}
	return domain.PyImport{Module: name, Line: stmt[0].line}, true
}

// assignments extracts simple name targets: chained "a = b = value" and
// annotated "a: T = value" forms. Attribute, subscript and tuple
// targets are ignored, as are augmented assignments.
func assignments(stmt []token) []domain.PyAssign {
	var targets []token
	i := 0
	for i+1 < len(stmt) && isName(stmt[i]) && isOp(stmt[i+1], "=") {
		targets = append(targets, stmt[i])
		i += 2
	}
	if len(targets) == 0 && len(stmt) >= 2 && isName(stmt[0]) && isOp(stmt[1], ":") {
		if eq := depthZeroIndex(stmt, "="); eq > 0 {
			targets = append(targets, stmt[0])
			i = eq + 1
		}
	}
	if len(targets) == 0 || i >= len(stmt) {
		return nil
	}

	kind, str, b := classifyValue(stmt[i:])
	assigns := make([]domain.PyAssign, 0, len(targets))
	for _, t := range targets {
		assigns = append(assigns, domain.PyAssign{Target: t.text, Line: t.line, Kind: kind, Str: str, Bool: b})
	}
	return assigns
}

// callSites scans the whole stream for name tokens followed by an
// opening parenthesis. The callee name is the longest dotted chain
// ending there, so nested calls and chained receivers each register at
// their own site.
func callSites(toks []token) []domain.PyCall {
	var out []domain.PyCall
	for i := 0; i+1 < len(toks); i++ {
		if !isName(toks[i]) || !isOp(toks[i+1], "(") {
			continue
		}
		start := i
		for start >= 2 && isOp(toks[start-1], ".") && isName(toks[start-2]) {
			start -= 2
		}
		if start >= 1 && (isKeyword(toks[start-1], "def") || isKeyword(toks[start-1], "class")) {
			continue
		}

		name, _ := dottedName(toks[start:i+1], 0)
		call := domain.PyCall{Name: name, Line: toks[start].line}
		if i > 0 && isOp(toks[i-1], ".") {
			call.Attr = toks[i].text
		}
		call.Args, call.Keywords, call.HasStar = callArgs(toks, i+1)
		out = append(out, call)
	}
	return out
}

// callArgs classifies the top-level argument segments of a call.
func callArgs(toks []token, open int) ([]domain.ValueKind, []domain.PyKeyword, bool) {
	depth := 0
	var segs [][]token
	var cur []token
scan:
	for i := open; i < len(toks); i++ {
		t := toks[i]
		if t.kind == tokOp {
			switch t.text {
			case "(", "[", "{":
				depth++
				if depth == 1 {
					continue
				}
			case ")", "]", "}":
				if depth == 1 {
					break scan
				}
				depth--
			case ",":
				if depth == 1 {
					segs = append(segs, cur)
					cur = nil
					continue
				}
			}
		}
		cur = append(cur, t)
	}
	segs = append(segs, cur)

	var kinds []domain.ValueKind
	var kws []domain.PyKeyword
	hasStar := false
	for _, seg := range segs {
		switch {
		case len(seg) == 0:
		case isOp(seg[0], "*") || isOp(seg[0], "**"):
			hasStar = true
		case len(seg) >= 2 && isName(seg[0]) && isOp(seg[1], "="):
			kind, str, b := classifyValue(seg[2:])
			kws = append(kws, domain.PyKeyword{Name: seg[0].text, Kind: kind, Bool: b, Str: str})
		default:
			kind, _, _ := classifyValue(seg)
			kinds = append(kinds, kind)
		}
	}
	return kinds, kws, hasStar
}

// classifyValue reduces a value expression to its coarse kind. Adjacent
// string literals concatenate; anything beyond a single literal, name
// chain or call collapses to KindOther.
func classifyValue(toks []token) (domain.ValueKind, string, bool) {
	if len(toks) == 0 {
		return domain.KindOther, "", false
	}
	if isOp(toks[0], "(") && closesAt(toks, 0) == len(toks)-1 {
		return classifyValue(toks[1 : len(toks)-1])
	}

	switch toks[0].kind {
	case tokString, tokFString:
		kind := domain.KindString
		var sb strings.Builder
		for _, t := range toks {
			if t.kind != tokString && t.kind != tokFString {
				return domain.KindOther, "", false
			}
			if t.kind == tokFString {
				kind = domain.KindFString
			}
			sb.WriteString(t.text)
		}
		return kind, sb.String(), false
	case tokNumber:
		if len(toks) == 1 {
			return domain.KindNumber, toks[0].text, false
		}
	case tokName:
		if len(toks) == 1 {
			switch toks[0].text {
			case "True":
				return domain.KindBool, "", true
			case "False":
				return domain.KindBool, "", false
			case "None":
				return domain.KindNone, "", false
			}
		}
		name, next := dottedName(toks, 0)
		if name == "" {
			return domain.KindOther, "", false
		}
		if next == len(toks) {
			return domain.KindName, name, false
		}
		if isOp(toks[next], "(") {
			return domain.KindCall, name, false
		}
	}
	return domain.KindOther, "", false
}

// dottedName consumes NAME ("." NAME)* starting at i and returns the
// joined name with the index after the last consumed token.
func dottedName(toks []token, i int) (string, int) {
	if i >= len(toks) || !isName(toks[i]) {
		return "", i + 1
	}
	parts := []string{toks[i].text}
	i++
	for i+1 < len(toks) && isOp(toks[i], ".") && isName(toks[i+1]) {
		parts = append(parts, toks[i+1].text)
		i += 2
	}
	return strings.Join(parts, "."), i
}

// depthZeroIndex finds the first occurrence of op outside any brackets.
func depthZeroIndex(toks []token, op string) int {
	depth := 0
	for i, t := range toks {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		default:
			if t.text == op && depth == 0 {
				return i
			}
		}
	}
	return -1
}

func closesAt(toks []token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		if toks[i].kind != tokOp {
			continue
		}
		switch toks[i].text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isName(t token) bool {
	return t.kind == tokName
}

func isOp(t token, text string) bool {
	return t.kind == tokOp && t.text == text
}

func isKeyword(t token, word string) bool {
	return t.kind == tokName && t.text == word
}
