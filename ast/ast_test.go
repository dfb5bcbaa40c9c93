package ast

import "testing"

type recordingVisitor struct {
	numbers  []float32
	strings  []string
	symbols  []string
	keywords []string
}

func (r *recordingVisitor) VisitNumber(n float32)  { r.numbers = append(r.numbers, n) }
func (r *recordingVisitor) VisitString(s string)   { r.strings = append(r.strings, s) }
func (r *recordingVisitor) VisitSymbol(s string)   { r.symbols = append(r.symbols, s) }
func (r *recordingVisitor) VisitKeyword(s string)  { r.keywords = append(r.keywords, s) }

func TestWalkVisitsLeavesOnly(t *testing.T) {
	expr := List([]*Expr{
		List([]*Expr{Number(42), String("hello")}),
		List([]*Expr{String("world"), Symbol("baz")}),
		String("blah"),
		Keyword("a1"),
	})

	v := &recordingVisitor{}
	expr.Walk(v)

	if len(v.numbers) != 1 || v.numbers[0] != 42 {
		t.Fatalf("expected one visited number 42, got %v", v.numbers)
	}
	if len(v.strings) != 3 {
		t.Fatalf("expected 3 visited strings, got %v", v.strings)
	}
	if len(v.symbols) != 1 || v.symbols[0] != "baz" {
		t.Fatalf("expected one visited symbol baz, got %v", v.symbols)
	}
	if len(v.keywords) != 1 || v.keywords[0] != "a1" {
		t.Fatalf("expected one visited keyword a1, got %v", v.keywords)
	}
}

type defunToLambdaRewriter struct{}

func (defunToLambdaRewriter) MaybeRewrite(elems []*Expr) (*Expr, bool) {
	if len(elems) == 4 && elems[0].IsSymbol("defun") {
		name, params, body := elems[1], elems[2], elems[3]
		lambda := List([]*Expr{Symbol("lambda"), params, body})
		return List([]*Expr{Symbol("def"), name, lambda}), true
	}
	return nil, false
}

func TestRewriteReplacesMatchingForm(t *testing.T) {
	expr := List([]*Expr{
		Symbol("defun"),
		Symbol("inc"),
		List([]*Expr{Symbol("x")}),
		List([]*Expr{Symbol("+"), Symbol("x"), Number(1)}),
	})

	rewritten := expr.Rewrite(defunToLambdaRewriter{})

	if got, want := rewritten.String(), "(def inc (lambda (x) (+ x 1)))"; got != want {
		t.Fatalf("rewrite mismatch: got %q want %q", got, want)
	}
}

func TestRewriteRecursesWhenDeclined(t *testing.T) {
	expr := List([]*Expr{
		Symbol("begin"),
		List([]*Expr{
			Symbol("defun"),
			Symbol("inc"),
			List([]*Expr{Symbol("x")}),
			List([]*Expr{Symbol("+"), Symbol("x"), Number(1)}),
		}),
	})

	rewritten := expr.Rewrite(defunToLambdaRewriter{})
	if got, want := rewritten.String(), "(begin (def inc (lambda (x) (+ x 1))))"; got != want {
		t.Fatalf("rewrite mismatch: got %q want %q", got, want)
	}
}
