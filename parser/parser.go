// Package parser implements the surface grammar for the embedded
// Lisp-like expression language: numbers, strings, symbols, keywords, and
// parenthesized lists.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcauchois/go-spreadsheet/ast"
)

// ParseError reports a surface-grammar failure, including the remaining
// unparsed input for diagnosis.
type ParseError struct {
	Message   string
	Remaining string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (remaining input: %q)", e.Message, e.Remaining)
}

// Parse parses src as a single top-level expression. Callers that want to
// evaluate several forms in sequence wrap them in an outer list and use the
// `begin` special form.
func Parse(src string) (*ast.Expr, error) {
	p := &parser{input: src}
	p.skipWhitespace()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

type parser struct {
	input string // remaining unparsed input
}

func (p *parser) fail(message string) error {
	return &ParseError{Message: message, Remaining: p.input}
}

func (p *parser) skipWhitespace() {
	p.input = strings.TrimLeft(p.input, " \t\r\n")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (p *parser) parseExpr() (*ast.Expr, error) {
	p.skipWhitespace()
	if p.input == "" {
		return nil, p.fail("unexpected end of input")
	}

	if expr, ok, err := p.tryParseNumber(); ok || err != nil {
		return expr, err
	}
	if p.input[0] == '"' {
		return p.parseString()
	}
	if p.input[0] == ':' {
		return p.parseKeyword()
	}
	if p.input[0] == '(' {
		return p.parseList()
	}
	if isIdentChar(p.input[0]) {
		return p.parseSymbol()
	}
	return nil, p.fail(fmt.Sprintf("unexpected character %q", p.input[0]))
}

// tryParseNumber attempts a numeric literal. Number must be tried before
// symbol, since the identifier character class otherwise absorbs digits.
func (p *parser) tryParseNumber() (*ast.Expr, bool, error) {
	i := 0
	n := len(p.input)
	if i < n && (p.input[i] == '+' || p.input[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < n && isDigit(p.input[i]) {
		i++
		digitsBefore++
	}
	sawDot := false
	digitsAfter := 0
	if i < n && p.input[i] == '.' {
		sawDot = true
		i++
		for i < n && isDigit(p.input[i]) {
			i++
			digitsAfter++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return nil, false, nil
	}
	// optional exponent
	j := i
	if j < n && (p.input[j] == 'e' || p.input[j] == 'E') {
		k := j + 1
		if k < n && (p.input[k] == '+' || p.input[k] == '-') {
			k++
		}
		expDigits := 0
		for k < n && isDigit(p.input[k]) {
			k++
			expDigits++
		}
		if expDigits > 0 {
			j = k
		}
	}
	_ = sawDot
	literal := p.input[:j]
	// A bare literal immediately followed by an identifier character (e.g.
	// "1x") is not a number; let symbol parsing absorb it instead.
	if j < n && isIdentChar(p.input[j]) && !isDigit(p.input[j]) {
		return nil, false, nil
	}
	value, err := strconv.ParseFloat(literal, 32)
	if err != nil {
		return nil, false, nil
	}
	p.input = p.input[j:]
	return ast.Number(float32(value)), true, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *parser) parseString() (*ast.Expr, error) {
	// p.input[0] == '"'
	i := 1
	var sb strings.Builder
	for {
		if i >= len(p.input) {
			return nil, p.fail("unterminated string literal")
		}
		c := p.input[i]
		if c == '"' {
			i++
			break
		}
		if c == '\\' {
			if i+1 >= len(p.input) {
				return nil, p.fail("unterminated escape sequence")
			}
			switch p.input[i+1] {
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			default:
				return nil, p.fail(fmt.Sprintf("invalid escape sequence \\%c", p.input[i+1]))
			}
			i += 2
			continue
		}
		sb.WriteByte(c)
		i++
	}
	p.input = p.input[i:]
	return ast.String(sb.String()), nil
}

func isIdentChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '+', '-', '/', '_', '*', '>', '<', '|', '&', '.', '=', '?':
		return true
	}
	return false
}

func (p *parser) parseIdent() (string, error) {
	i := 0
	for i < len(p.input) && isIdentChar(p.input[i]) {
		i++
	}
	if i == 0 {
		return "", p.fail("expected identifier")
	}
	ident := p.input[:i]
	p.input = p.input[i:]
	return ident, nil
}

func (p *parser) parseSymbol() (*ast.Expr, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.Symbol(ident), nil
}

func (p *parser) parseKeyword() (*ast.Expr, error) {
	p.input = p.input[1:] // consume ':'
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.Keyword(ident), nil
}

func (p *parser) parseList() (*ast.Expr, error) {
	p.input = p.input[1:] // consume '('
	elems := []*ast.Expr{}
	for {
		p.skipWhitespace()
		if p.input == "" {
			return nil, p.fail("unterminated list, expected ')'")
		}
		if p.input[0] == ')' {
			p.input = p.input[1:]
			return ast.List(elems), nil
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.input == "" {
			return nil, p.fail("unterminated list, expected ')'")
		}
		if p.input[0] != ')' && !isSpace(p.input[0]) {
			return nil, p.fail(fmt.Sprintf("expected whitespace or ')', got %q", p.input[0]))
		}
	}
}
