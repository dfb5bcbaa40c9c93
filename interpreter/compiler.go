package interpreter

import "github.com/wcauchois/go-spreadsheet/ast"

// Compile lowers a single expression to a flat bytecode program.
func Compile(expr *ast.Expr) (*Program, error) {
	instructions, err := compileToInstructions(expr)
	if err != nil {
		return nil, err
	}
	return &Program{Instructions: instructions}, nil
}

func compileToInstructions(expr *ast.Expr) ([]Instruction, error) {
	switch expr.Kind {
	case ast.KindNumber, ast.KindString:
		return []Instruction{{Op: OpLoadConst, Const: FromExpr(expr)}}, nil
	case ast.KindKeyword:
		return []Instruction{{Op: OpLoadKeyword, Name: expr.Text}}, nil
	case ast.KindSymbol:
		return []Instruction{{Op: OpLoadName, Name: expr.Text}}, nil
	case ast.KindList:
		return compileList(expr.List)
	default:
		return nil, compileErrorf("unrecognized expression kind")
	}
}

func compileList(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) == 0 {
		return nil, compileErrorf("cannot evaluate empty list")
	}
	head := elems[0]
	if head.Kind == ast.KindSymbol {
		switch head.Text {
		case "def":
			return compileDef(elems)
		case "defun":
			return compileDefun(elems)
		case "begin":
			return compileBegin(elems[1:])
		case "quote":
			return compileQuote(elems)
		case "lambda", "fn":
			return compileLambda(elems)
		case "if":
			return compileIf(elems)
		case "apply":
			return compileApply(elems)
		}
	}
	return compileCall(elems)
}

func compileDef(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) != 3 || elems[1].Kind != ast.KindSymbol {
		return nil, compileErrorf("malformed def, expected (def name body)")
	}
	name := elems[1].Text
	body, err := compileToInstructions(elems[2])
	if err != nil {
		return nil, err
	}
	instructions := append(body, Instruction{Op: OpStoreName, Name: name})
	instructions = append(instructions, Instruction{Op: OpLoadConst, Const: Nil})
	return instructions, nil
}

func compileDefun(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) != 4 || elems[1].Kind != ast.KindSymbol || elems[2].Kind != ast.KindList {
		return nil, compileErrorf("malformed defun, expected (defun name (params...) body)")
	}
	name := elems[1]
	params := elems[2]
	body := elems[3]
	lambda := ast.List([]*ast.Expr{ast.Symbol("lambda"), params, body})
	desugared := ast.List([]*ast.Expr{ast.Symbol("def"), name, lambda})
	return compileList(desugared.List)
}

func compileBegin(body []*ast.Expr) ([]Instruction, error) {
	if len(body) == 0 {
		return nil, compileErrorf("malformed begin, expected at least one form")
	}
	var instructions []Instruction
	for i, form := range body {
		formInstructions, err := compileToInstructions(form)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, formInstructions...)
		if i != len(body)-1 {
			instructions = append(instructions, Instruction{Op: OpDiscardValue})
		}
	}
	return instructions, nil
}

func compileQuote(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) != 2 {
		return nil, compileErrorf("malformed quote, expected (quote v)")
	}
	return []Instruction{{Op: OpLoadConst, Const: FromExpr(elems[1])}}, nil
}

func compileLambda(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) != 3 || elems[1].Kind != ast.KindList {
		return nil, compileErrorf("malformed lambda, expected (lambda (params...) body)")
	}
	paramExprs := elems[1].List
	paramValues := make([]Value, len(paramExprs))
	for i, p := range paramExprs {
		if p.Kind != ast.KindSymbol {
			return nil, compileErrorf("lambda parameter list must contain only symbols")
		}
		paramValues[i] = Symbol{Value: p.Text}
	}
	bodyInstructions, err := compileToInstructions(elems[2])
	if err != nil {
		return nil, err
	}
	return []Instruction{
		{Op: OpLoadConst, Const: List{Elements: paramValues}},
		{Op: OpLoadConst, Const: CompiledCode{Instructions: bodyInstructions}},
		{Op: OpMakeFunction},
	}, nil
}

func compileIf(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) != 4 {
		return nil, compileErrorf("malformed if, expected (if cond a b)")
	}
	cond, ifTrue, ifFalse := elems[1], elems[2], elems[3]

	condInstructions, err := compileToInstructions(cond)
	if err != nil {
		return nil, err
	}
	trueInstructions, err := compileToInstructions(ifTrue)
	if err != nil {
		return nil, err
	}
	falseInstructions, err := compileToInstructions(ifFalse)
	if err != nil {
		return nil, err
	}

	var instructions []Instruction
	instructions = append(instructions, condInstructions...)
	instructions = append(instructions, Instruction{Op: OpRelativeJumpIfTrue, Offset: len(falseInstructions) + 1})
	instructions = append(instructions, falseInstructions...)
	instructions = append(instructions, Instruction{Op: OpRelativeJump, Offset: len(trueInstructions)})
	instructions = append(instructions, trueInstructions...)
	return instructions, nil
}

func compileApply(elems []*ast.Expr) ([]Instruction, error) {
	if len(elems) != 3 {
		return nil, compileErrorf("malformed apply, expected (apply f args)")
	}
	fnInstructions, err := compileToInstructions(elems[1])
	if err != nil {
		return nil, err
	}
	argsInstructions, err := compileToInstructions(elems[2])
	if err != nil {
		return nil, err
	}
	var instructions []Instruction
	instructions = append(instructions, fnInstructions...)
	instructions = append(instructions, argsInstructions...)
	instructions = append(instructions, Instruction{Op: OpApplyFunction})
	return instructions, nil
}

func compileCall(elems []*ast.Expr) ([]Instruction, error) {
	fnInstructions, err := compileToInstructions(elems[0])
	if err != nil {
		return nil, err
	}
	instructions := append([]Instruction{}, fnInstructions...)
	for _, arg := range elems[1:] {
		argInstructions, err := compileToInstructions(arg)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, argInstructions...)
	}
	instructions = append(instructions, Instruction{Op: OpCallFunction, NArgs: len(elems) - 1})
	return instructions, nil
}
