// Package ast defines the expression tree produced by the surface parser and
// consumed by the compiler.
package ast

import "fmt"

// Kind tags the variant of an Expr.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindSymbol
	KindKeyword
	KindList
)

// Expr is the tagged union for the Lisp-like surface grammar: a number,
// string, symbol, keyword, or list of sub-expressions. It is immutable once
// parsed.
type Expr struct {
	Kind Kind

	Number float32
	Text   string // String, Symbol, or Keyword payload
	List   []*Expr
}

func Number(n float32) *Expr { return &Expr{Kind: KindNumber, Number: n} }
func String(s string) *Expr  { return &Expr{Kind: KindString, Text: s} }
func Symbol(s string) *Expr  { return &Expr{Kind: KindSymbol, Text: s} }
func Keyword(s string) *Expr { return &Expr{Kind: KindKeyword, Text: s} }
func List(elems []*Expr) *Expr {
	if elems == nil {
		elems = []*Expr{}
	}
	return &Expr{Kind: KindList, List: elems}
}

func (e *Expr) String() string {
	switch e.Kind {
	case KindNumber:
		return fmt.Sprintf("%g", e.Number)
	case KindString:
		return fmt.Sprintf("%q", e.Text)
	case KindSymbol:
		return e.Text
	case KindKeyword:
		return ":" + e.Text
	case KindList:
		out := "("
		for i, el := range e.List {
			if i > 0 {
				out += " "
			}
			out += el.String()
		}
		return out + ")"
	default:
		return "<invalid expr>"
	}
}

// IsSymbol reports whether e is a Symbol with the given name, the pattern
// used throughout the compiler to dispatch on special forms.
func (e *Expr) IsSymbol(name string) bool {
	return e.Kind == KindSymbol && e.Text == name
}

// Visitor receives callbacks for the leaf variants while List nodes are
// recursed into automatically; List itself never invokes a callback.
type Visitor interface {
	VisitNumber(n float32)
	VisitString(s string)
	VisitSymbol(s string)
	VisitKeyword(s string)
}

// Walk traverses e depth-first, invoking the matching Visitor callback for
// every leaf node.
func (e *Expr) Walk(v Visitor) {
	switch e.Kind {
	case KindNumber:
		v.VisitNumber(e.Number)
	case KindString:
		v.VisitString(e.Text)
	case KindSymbol:
		v.VisitSymbol(e.Text)
	case KindKeyword:
		v.VisitKeyword(e.Text)
	case KindList:
		for _, child := range e.List {
			child.Walk(v)
		}
	}
}

// Rewriter lets a caller replace a List node wholesale by pattern-matching
// its children. MaybeRewrite returns (replacement, true) to substitute the
// whole node, or (nil, false) to decline, in which case Rewrite recurses into
// the node's children instead.
type Rewriter interface {
	MaybeRewrite(elems []*Expr) (*Expr, bool)
}

// Rewrite applies r to every List node in e, recursing into children of any
// node the rewriter declines to replace. Non-list nodes are returned as-is.
func (e *Expr) Rewrite(r Rewriter) *Expr {
	if e.Kind != KindList {
		return e
	}
	if replacement, ok := r.MaybeRewrite(e.List); ok {
		return replacement
	}
	rewritten := make([]*Expr, len(e.List))
	for i, child := range e.List {
		rewritten[i] = child.Rewrite(r)
	}
	return List(rewritten)
}
