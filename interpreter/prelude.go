package interpreter

import (
	"fmt"
	"sync"

	"github.com/wcauchois/go-spreadsheet/ast"
	"github.com/wcauchois/go-spreadsheet/parser"
)

// preludeSource defines library functions in terms of the required builtins
// and special forms, rather than as Go code, so that the evaluator's core
// stays small. map and filter are written recursively over cons lists using
// car/cdr/nil?/apply.
const preludeSource = `
(begin
  (defun map (f lst)
    (if (nil? lst)
        nil
        (cons (apply f (cons (car lst) nil)) (map f (cdr lst)))))
  (defun filter (f lst)
    (if (nil? lst)
        nil
        (if (apply f (cons (car lst) nil))
            (cons (car lst) (filter f (cdr lst)))
            (filter f (cdr lst)))))
  (defun reduce (f acc lst)
    (if (nil? lst)
        acc
        (reduce f (apply f (cons acc (cons (car lst) nil))) (cdr lst)))))
`

var (
	preludeOnce sync.Once
	preludeExpr *ast.Expr
	preludeErr  error
)

func parsedPrelude() (*ast.Expr, error) {
	preludeOnce.Do(func() {
		preludeExpr, preludeErr = parser.Parse(preludeSource)
	})
	return preludeExpr, preludeErr
}

// CompileWithPrelude compiles expr as the final form of an implicit
// (begin <prelude> expr), so that programs can call map/filter/reduce
// without redefining them.
func CompileWithPrelude(expr *ast.Expr) (*Program, error) {
	prelude, err := parsedPrelude()
	if err != nil {
		return nil, fmt.Errorf("interpreter: malformed prelude: %w", err)
	}
	combined := ast.List([]*ast.Expr{ast.Symbol("begin"), prelude, expr})
	return Compile(combined)
}
