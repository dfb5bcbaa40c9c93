package interpreter

import (
	"testing"

	"github.com/wcauchois/go-spreadsheet/parser"
)

func evalSource(t *testing.T, src string) Value {
	t.Helper()
	expr, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	program, err := Compile(expr)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	v, err := Eval(program, WithBuiltins(), EmptyResolver{})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v
}

func TestEvalArithmetic(t *testing.T) {
	v := evalSource(t, "(+ 1 2)")
	n, ok := v.(Number)
	if !ok || n.Value != 3 {
		t.Fatalf("expected Number(3), got %s", v.Inspect())
	}
}

func TestEvalNestedArithmetic(t *testing.T) {
	v := evalSource(t, "(* (+ 1 2) (+ 3 4))")
	n, ok := v.(Number)
	if !ok || n.Value != 21 {
		t.Fatalf("expected Number(21), got %s", v.Inspect())
	}
}

func TestEvalClosure(t *testing.T) {
	v := evalSource(t, "((lambda (x) (+ x 1)) 41)")
	n, ok := v.(Number)
	if !ok || n.Value != 42 {
		t.Fatalf("expected Number(42), got %s", v.Inspect())
	}
}

func TestEvalClosureCapturesDefiningScope(t *testing.T) {
	v := evalSource(t, `
		(begin
			(def y 10)
			(def add-y (lambda (x) (+ x y)))
			(add-y 5))
	`)
	n, ok := v.(Number)
	if !ok || n.Value != 15 {
		t.Fatalf("expected Number(15), got %s", v.Inspect())
	}
}

func TestEvalIfTrueBranch(t *testing.T) {
	v := evalSource(t, "(if (nil? nil) 1 2)")
	n, ok := v.(Number)
	if !ok || n.Value != 1 {
		t.Fatalf("expected Number(1), got %s", v.Inspect())
	}
}

func TestEvalIfFalseBranch(t *testing.T) {
	v := evalSource(t, "(if (nil? 0) 1 2)")
	n, ok := v.(Number)
	if !ok || n.Value != 2 {
		t.Fatalf("expected Number(2), got %s", v.Inspect())
	}
}

func TestEvalRecursiveDefun(t *testing.T) {
	v := evalSource(t, `
		(begin
			(defun sum-list (lst)
				(if (nil? lst)
					0
					(+ (car lst) (sum-list (cdr lst)))))
			(sum-list (cons 2 (cons 3 nil))))
	`)
	n, ok := v.(Number)
	if !ok || n.Value != 5 {
		t.Fatalf("expected Number(5), got %s", v.Inspect())
	}
}

func TestEvalApply(t *testing.T) {
	v := evalSource(t, "(apply + (cons 1 (cons 2 (cons 3 nil))))")
	n, ok := v.(Number)
	if !ok || n.Value != 6 {
		t.Fatalf("expected Number(6), got %s", v.Inspect())
	}
}

func TestEvalQuoteReturnsUnevaluatedForm(t *testing.T) {
	v := evalSource(t, "(quote (+ 1 2))")
	l, ok := v.(List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("expected a 3-element list, got %s", v.Inspect())
	}
	if sym, ok := l.Elements[0].(Symbol); !ok || sym.Value != "+" {
		t.Fatalf("expected first element to be symbol +, got %s", l.Elements[0].Inspect())
	}
}

func TestEvalBeginDiscardsAllButLast(t *testing.T) {
	v := evalSource(t, "(begin 1 2 3)")
	n, ok := v.(Number)
	if !ok || n.Value != 3 {
		t.Fatalf("expected Number(3), got %s", v.Inspect())
	}
}

func TestEvalUndefinedNameError(t *testing.T) {
	expr, err := parser.Parse("undefined-name")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	program, err := Compile(expr)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	_, err = Eval(program, WithBuiltins(), EmptyResolver{})
	if _, ok := err.(*UndefinedNameError); !ok {
		t.Fatalf("expected UndefinedNameError, got %v", err)
	}
}

func TestEvalNotCallableError(t *testing.T) {
	v, err := func() (Value, error) {
		expr, err := parser.Parse("(1 2)")
		if err != nil {
			return nil, err
		}
		program, err := Compile(expr)
		if err != nil {
			return nil, err
		}
		return Eval(program, WithBuiltins(), EmptyResolver{})
	}()
	if err == nil {
		t.Fatalf("expected error, got value %v", v)
	}
	if _, ok := err.(*NotCallableError); !ok {
		t.Fatalf("expected NotCallableError, got %v", err)
	}
}

type constResolver struct{ value Value }

func (r constResolver) ResolveKeyword(name string) (Value, error) {
	return r.value, nil
}

func TestEvalKeywordResolution(t *testing.T) {
	expr, err := parser.Parse(":a1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	program, err := Compile(expr)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	v, err := Eval(program, WithBuiltins(), constResolver{value: Number{Value: 99}})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if n, ok := v.(Number); !ok || n.Value != 99 {
		t.Fatalf("expected Number(99), got %s", v.Inspect())
	}
}
