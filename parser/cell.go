package parser

import (
	"strconv"
	"strings"

	"github.com/wcauchois/go-spreadsheet/ast"
)

// CellKind tags the classification a raw cell source falls into.
type CellKind int

const (
	CellNumber CellKind = iota
	CellText
	CellExpr
)

// InterpretedCell is the classification of a cell's raw text, produced by
// InterpretCell.
type InterpretedCell struct {
	Kind   CellKind
	Number float32
	Text   string
	Expr   *ast.Expr
}

// InterpretCell classifies a cell's raw source text: a leading '=' marks a
// formula whose remainder is parsed as an expression; otherwise the full
// text is tried as a float literal; failing that, it is plain text.
func InterpretCell(source string) (InterpretedCell, error) {
	if strings.HasPrefix(source, "=") {
		expr, err := Parse(source[1:])
		if err != nil {
			return InterpretedCell{}, err
		}
		return InterpretedCell{Kind: CellExpr, Expr: expr}, nil
	}
	if n, err := strconv.ParseFloat(source, 32); err == nil {
		return InterpretedCell{Kind: CellNumber, Number: float32(n)}, nil
	}
	return InterpretedCell{Kind: CellText, Text: source}, nil
}
