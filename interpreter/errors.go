package interpreter

import "fmt"

// CompileError reports a failure to lower an expression to bytecode: an
// empty list, a malformed special form, or a non-symbol in a lambda's
// parameter list.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string { return e.Message }

func compileErrorf(format string, args ...interface{}) error {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}

// UndefinedNameError reports a LoadName against an unbound symbol.
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("undefined name: %s", e.Name)
}

// BadArgumentsError reports a builtin called with the wrong arity or
// argument types.
type BadArgumentsError struct {
	Message string
}

func (e *BadArgumentsError) Error() string { return e.Message }

func badArgumentsf(format string, args ...interface{}) error {
	return &BadArgumentsError{Message: fmt.Sprintf(format, args...)}
}

// NotCallableError reports an attempt to call or apply a non-function
// value.
type NotCallableError struct {
	Value Value
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("value is not callable: %s", e.Value.Inspect())
}

// ApplyNotAListError reports that apply's second operand did not evaluate
// to a List.
type ApplyNotAListError struct {
	Value Value
}

func (e *ApplyNotAListError) Error() string {
	return fmt.Sprintf("apply requires a list argument, got: %s", e.Value.Inspect())
}

// ResolverError reports that a keyword could not be resolved (typically
// because it did not parse as a valid range).
type ResolverError struct {
	Keyword string
	Cause   error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("could not resolve keyword %q: %v", e.Keyword, e.Cause)
}

func (e *ResolverError) Unwrap() error { return e.Cause }
