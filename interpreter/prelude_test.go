package interpreter

import (
	"testing"

	"github.com/wcauchois/go-spreadsheet/parser"
)

func evalWithPrelude(t *testing.T, src string) Value {
	t.Helper()
	expr, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	program, err := CompileWithPrelude(expr)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	v, err := Eval(program, WithBuiltins(), EmptyResolver{})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v
}

func TestPreludeMapAppliesFunctionToEachElement(t *testing.T) {
	v := evalWithPrelude(t, `
		(map (lambda (x) (+ x 1)) (cons 1 (cons 2 (cons 3 nil))))
	`)
	l, ok := v.(List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("expected a 3-element list, got %s", v.Inspect())
	}
	want := []float32{2, 3, 4}
	for i, el := range l.Elements {
		n, ok := el.(Number)
		if !ok || n.Value != want[i] {
			t.Fatalf("element %d: expected %v, got %s", i, want[i], el.Inspect())
		}
	}
}

func TestPreludeFilterDropsNonMatchingElements(t *testing.T) {
	v := evalWithPrelude(t, `
		(filter (lambda (x) (nil? (type x)))
		        (cons 1 (cons nil (cons 2 nil))))
	`)
	// no element has a nil type name, so filtering by that predicate keeps
	// nothing and returns nil; this exercises the false branch of filter's
	// recursion.
	if v != Nil {
		t.Fatalf("expected nil, got %s", v.Inspect())
	}
}

func TestPreludeReduceSumsAList(t *testing.T) {
	v := evalWithPrelude(t, `
		(reduce + 0 (cons 1 (cons 2 (cons 3 nil))))
	`)
	n, ok := v.(Number)
	if !ok || n.Value != 6 {
		t.Fatalf("expected Number(6), got %s", v.Inspect())
	}
}
