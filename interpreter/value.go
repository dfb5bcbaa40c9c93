// Package interpreter implements the runtime value model, the lexical
// environment, the builtin table, the AST-to-bytecode compiler, and the
// stack-machine evaluator for the embedded expression language.
package interpreter

import (
	"fmt"
	"strings"

	"github.com/wcauchois/go-spreadsheet/ast"
)

// ValueKind is the type tag reported by the `type` builtin and used for
// dispatch within the evaluator.
type ValueKind string

const (
	KindNumber   ValueKind = "number"
	KindString   ValueKind = "string"
	KindBoolean  ValueKind = "bool"
	KindSymbol   ValueKind = "symbol"
	KindKeyword  ValueKind = "keyword"
	KindList     ValueKind = "list"
	KindCode     ValueKind = "code"
	KindFunction ValueKind = "function"
	KindBuiltin  ValueKind = "builtin"
	KindNil      ValueKind = "nil"
)

// Value is the runtime value interface; every variant is cheap to clone by
// Go value/pointer semantics since the evaluator treats values as immutable.
type Value interface {
	Kind() ValueKind
	Inspect() string
}

type Number struct{ Value float32 }

func (n Number) Kind() ValueKind { return KindNumber }
func (n Number) Inspect() string { return fmt.Sprintf("%g", n.Value) }

type String struct{ Value string }

func (s String) Kind() ValueKind { return KindString }
func (s String) Inspect() string { return fmt.Sprintf("%q", s.Value) }

type Boolean struct{ Value bool }

func (b Boolean) Kind() ValueKind { return KindBoolean }
func (b Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Symbol struct{ Value string }

func (s Symbol) Kind() ValueKind { return KindSymbol }
func (s Symbol) Inspect() string { return s.Value }

type Keyword struct{ Value string }

func (k Keyword) Kind() ValueKind { return KindKeyword }
func (k Keyword) Inspect() string { return ":" + k.Value }

type List struct{ Elements []Value }

func (l List) Kind() ValueKind { return KindList }
func (l List) Inspect() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, el := range l.Elements {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(el.Inspect())
	}
	sb.WriteString(")")
	return sb.String()
}

type CompiledCode struct{ Instructions []Instruction }

func (c CompiledCode) Kind() ValueKind { return KindCode }
func (c CompiledCode) Inspect() string { return fmt.Sprintf("<code %d instructions>", len(c.Instructions)) }

// UserFunction is a closure: a parameter list, a compiled body, and the
// environment frame active when `fn`/`lambda` was evaluated. Captured by
// pointer so that recursive definitions bound via `def`/`defun`, which
// require the function to see itself in its own captured scope, work
// without needing backpatching.
type UserFunction struct {
	Params []string
	Body   []Instruction
	Env    *Env
}

func (f *UserFunction) Kind() ValueKind { return KindFunction }
func (f *UserFunction) Inspect() string {
	return fmt.Sprintf("<function (%s)>", strings.Join(f.Params, " "))
}

// BuiltinFunction wraps a host-provided callable. Equality between two
// builtin values is by identity (pointer equality).
type BuiltinFunction struct {
	Name string
	Call func(args []Value) (Value, error)
}

func (b *BuiltinFunction) Kind() ValueKind { return KindBuiltin }
func (b *BuiltinFunction) Inspect() string { return fmt.Sprintf("<builtin %s>", b.Name) }

type nilValue struct{}

func (nilValue) Kind() ValueKind { return KindNil }
func (nilValue) Inspect() string { return "nil" }

// Nil is the singleton value bound to the name "nil" in the builtins
// environment and produced by an absent cell or an empty keyword resolver.
var Nil Value = nilValue{}

// IsNil reports whether v is Nil or an empty List — the two representations
// `nil?` treats as equivalent. Everywhere else the two remain distinct
// values; callers that need to distinguish them should compare against the
// Nil singleton directly instead of calling IsNil.
func IsNil(v Value) bool {
	if _, ok := v.(nilValue); ok {
		return true
	}
	if l, ok := v.(List); ok {
		return len(l.Elements) == 0
	}
	return false
}

// FromExpr converts a parsed expression into the runtime value it denotes as
// a literal constant: used for LoadConst of numbers/strings and for `quote`,
// which needs every AST shape including nested symbols and keywords as data.
func FromExpr(e *ast.Expr) Value {
	switch e.Kind {
	case ast.KindNumber:
		return Number{Value: e.Number}
	case ast.KindString:
		return String{Value: e.Text}
	case ast.KindSymbol:
		return Symbol{Value: e.Text}
	case ast.KindKeyword:
		return Keyword{Value: e.Text}
	case ast.KindList:
		elems := make([]Value, len(e.List))
		for i, el := range e.List {
			elems[i] = FromExpr(el)
		}
		return List{Elements: elems}
	default:
		panic("unreachable expr kind")
	}
}

// Op tags the ten bytecode opcodes.
type Op int

const (
	OpLoadConst Op = iota
	OpStoreName
	OpLoadName
	OpLoadKeyword
	OpCallFunction
	OpApplyFunction
	OpRelativeJumpIfTrue
	OpRelativeJump
	OpMakeFunction
	OpDiscardValue
)

// Instruction is a single bytecode instruction. Jump offsets are measured in
// instructions, relative to the position immediately after the jump
// instruction itself.
type Instruction struct {
	Op     Op
	Const  Value  // OpLoadConst
	Name   string // OpStoreName, OpLoadName, OpLoadKeyword
	NArgs  int    // OpCallFunction
	Offset int    // OpRelativeJump, OpRelativeJumpIfTrue
}

// Program is a compiled, flat sequence of instructions ready for the
// evaluator.
type Program struct {
	Instructions []Instruction
}
