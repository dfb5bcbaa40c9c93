package interpreter

// builtinFunctions is the table of host-provided functions installed into
// the builtins environment. A builtin is a (name, callable) pair; equality
// between two builtin Values is by pointer identity since each entry here is
// constructed exactly once.
var builtinFunctions = []*BuiltinFunction{
	{Name: "+", Call: builtinPlus},
	{Name: "*", Call: builtinTimes},
	{Name: "show", Call: builtinShow},
	{Name: "type", Call: builtinType},
	{Name: "cons", Call: builtinCons},
	{Name: "car", Call: builtinCar},
	{Name: "cdr", Call: builtinCdr},
	{Name: "nil?", Call: builtinNilP},
}

func builtinPlus(args []Value) (Value, error) {
	var accum float32
	for _, arg := range args {
		n, ok := arg.(Number)
		if !ok {
			return nil, badArgumentsf("`+` requires number arguments, got %s", arg.Inspect())
		}
		accum += n.Value
	}
	return Number{Value: accum}, nil
}

func builtinTimes(args []Value) (Value, error) {
	accum := float32(1)
	for _, arg := range args {
		n, ok := arg.(Number)
		if !ok {
			return nil, badArgumentsf("`*` requires number arguments, got %s", arg.Inspect())
		}
		accum *= n.Value
	}
	return Number{Value: accum}, nil
}

func builtinShow(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, badArgumentsf("`show` requires exactly 1 argument, got %d", len(args))
	}
	return String{Value: args[0].Inspect()}, nil
}

func builtinType(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, badArgumentsf("`type` requires exactly 1 argument, got %d", len(args))
	}
	return String{Value: string(args[0].Kind())}, nil
}

func builtinCons(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, badArgumentsf("`cons` requires exactly 2 arguments, got %d", len(args))
	}
	head, tail := args[0], args[1]
	switch t := tail.(type) {
	case List:
		elems := make([]Value, 0, len(t.Elements)+1)
		elems = append(elems, head)
		elems = append(elems, t.Elements...)
		return List{Elements: elems}, nil
	case nilValue:
		return List{Elements: []Value{head}}, nil
	default:
		return nil, badArgumentsf("`cons` requires a list or nil tail, got %s", tail.Inspect())
	}
}

func builtinCar(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, badArgumentsf("`car` requires exactly 1 argument, got %d", len(args))
	}
	l, ok := args[0].(List)
	if !ok || len(l.Elements) == 0 {
		return nil, badArgumentsf("`car` requires a non-empty list, got %s", args[0].Inspect())
	}
	return l.Elements[0], nil
}

func builtinCdr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, badArgumentsf("`cdr` requires exactly 1 argument, got %d", len(args))
	}
	l, ok := args[0].(List)
	if !ok || len(l.Elements) == 0 {
		return nil, badArgumentsf("`cdr` requires a non-empty list, got %s", args[0].Inspect())
	}
	return List{Elements: l.Elements[1:]}, nil
}

func builtinNilP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, badArgumentsf("`nil?` requires exactly 1 argument, got %d", len(args))
	}
	return Boolean{Value: IsNil(args[0])}, nil
}
