package parser

import (
	"fmt"

	"github.com/codewarden/codewarden/internal/domain"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokName
	tokNumber
	tokString
	tokFString
	tokOp
)

// token is one lexical element. String tokens carry their content
// without quotes or prefix; everything else carries its source text.
type token struct {
	kind tokenKind
	text string
	line int
}

type openBracket struct {
	ch   byte
	line int
}

// lexer splits Python source into tokens, tracking logical lines: a
// newline inside brackets or after a backslash continuation does not
// terminate a statement. Indentation is not tracked.
type lexer struct {
	src  string
	pos  int
	line int
	open []openBracket
	toks []token
}

// Operators lexed as a single token. Everything here must be atomic so
// that a bare "=" token always means assignment or keyword argument.
var multiOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "//": true, "**": true,
	"->": true, ":=": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "&=": true, "|=": true, "^=": true, "@=": true, "<<": true,
	">>": true, "//=": true, "**=": true, "<<=": true, ">>=": true,
}

func lex(src string) ([]token, *domain.SyntaxFailure) {
	lx := &lexer{src: src, line: 1}
	if fail := lx.run(); fail != nil {
		return nil, fail
	}
	return lx.toks, nil
}

func (lx *lexer) run() *domain.SyntaxFailure {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			lx.pos++
			lx.line++
			if len(lx.open) == 0 {
				lx.newline()
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			lx.pos++
		case c == '\\':
			// Line continuation; a stray backslash is skipped.
			lx.pos++
			if lx.pos < len(lx.src) && lx.src[lx.pos] == '\n' {
				lx.pos++
				lx.line++
			}
		case c == '#':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == '\'' || c == '"':
			if fail := lx.scanString(false); fail != nil {
				return fail
			}
		case isNameStart(c):
			if fail := lx.scanName(); fail != nil {
				return fail
			}
		case c >= '0' && c <= '9':
			lx.scanNumber()
		default:
			if fail := lx.scanOp(); fail != nil {
				return fail
			}
		}
	}
	if len(lx.open) > 0 {
		first := lx.open[0]
		return &domain.SyntaxFailure{Line: first.line, Reason: fmt.Sprintf("unclosed %q", string(first.ch))}
	}
	lx.newline()
	lx.toks = append(lx.toks, token{kind: tokEOF, line: lx.line})
	return nil
}

// newline emits a logical line break, collapsing consecutive blanks.
func (lx *lexer) newline() {
	if n := len(lx.toks); n == 0 || lx.toks[n-1].kind == tokNewline {
		return
	}
	lx.toks = append(lx.toks, token{kind: tokNewline, line: lx.line})
}

// scanName reads an identifier. A short identifier made of string
// prefix letters directly followed by a quote starts a string instead,
// so r"\d+", b'..' and f"{x}" lex as single string tokens.
func (lx *lexer) scanName() *domain.SyntaxFailure {
	start := lx.pos
	for lx.pos < len(lx.src) && isNameChar(lx.src[lx.pos]) {
		lx.pos++
	}
	name := lx.src[start:lx.pos]
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == '\'' || lx.src[lx.pos] == '"') && isStringPrefix(name) {
		return lx.scanString(hasFormatPrefix(name))
	}
	lx.toks = append(lx.toks, token{kind: tokName, text: name, line: lx.line})
	return nil
}

func (lx *lexer) scanString(formatted bool) *domain.SyntaxFailure {
	quote := lx.src[lx.pos]
	startLine := lx.line
	lx.pos++
	triple := false
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == quote && lx.src[lx.pos+1] == quote {
		triple = true
		lx.pos += 2
	}

	start := lx.pos
	for lx.pos < len(lx.src) {
		switch c := lx.src[lx.pos]; {
		case c == '\\' && lx.pos+1 < len(lx.src):
			if lx.src[lx.pos+1] == '\n' {
				lx.line++
			}
			lx.pos += 2
		case c == '\n':
			if !triple {
				return &domain.SyntaxFailure{Line: startLine, Reason: "unterminated string literal"}
			}
			lx.line++
			lx.pos++
		case c == quote && !triple:
			lx.emitString(lx.src[start:lx.pos], formatted, startLine)
			lx.pos++
			return nil
		case c == quote && lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == quote && lx.src[lx.pos+2] == quote:
			lx.emitString(lx.src[start:lx.pos], formatted, startLine)
			lx.pos += 3
			return nil
		default:
			lx.pos++
		}
	}
	if triple {
		return &domain.SyntaxFailure{Line: startLine, Reason: "unterminated triple-quoted string"}
	}
	return &domain.SyntaxFailure{Line: startLine, Reason: "unterminated string literal"}
}

func (lx *lexer) emitString(content string, formatted bool, line int) {
	kind := tokString
	if formatted {
		kind = tokFString
	}
	lx.toks = append(lx.toks, token{kind: kind, text: content, line: line})
}

func (lx *lexer) scanNumber() {
	start := lx.pos
	for lx.pos < len(lx.src) && isNumberChar(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.toks = append(lx.toks, token{kind: tokNumber, text: lx.src[start:lx.pos], line: lx.line})
}

func (lx *lexer) scanOp() *domain.SyntaxFailure {
	c := lx.src[lx.pos]
	switch c {
	case '(', '[', '{':
		lx.open = append(lx.open, openBracket{ch: c, line: lx.line})
	case ')', ']', '}':
		if len(lx.open) == 0 {
			return &domain.SyntaxFailure{Line: lx.line, Reason: fmt.Sprintf("unmatched %q", string(c))}
		}
		top := lx.open[len(lx.open)-1]
		if closerFor(top.ch) != c {
			return &domain.SyntaxFailure{Line: lx.line, Reason: fmt.Sprintf("%q does not close %q", string(c), string(top.ch))}
		}
		lx.open = lx.open[:len(lx.open)-1]
	}

	text := string(c)
	if s := lx.peek(3); multiOps[s] {
		text = s
	} else if s := lx.peek(2); multiOps[s] {
		text = s
	}
	lx.pos += len(text)
	lx.toks = append(lx.toks, token{kind: tokOp, text: text, line: lx.line})
	return nil
}

func (lx *lexer) peek(n int) string {
	if lx.pos+n > len(lx.src) {
		return ""
	}
	return lx.src[lx.pos : lx.pos+n]
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// Bytes above 0x7F count as name characters so unicode identifiers pass
// through without choking the scan.
func isNameStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9'
}

func isNumberChar(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '.' || c == '_'
}

func isStringPrefix(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}

func hasFormatPrefix(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 'f' || s[i] == 'F' {
			return true
		}
	}
	return false
}
