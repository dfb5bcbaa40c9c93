// Package sheet implements the cell store, the reverse-dependency graph,
// change propagation, and the keyword-to-cell-value resolver that bridges
// the interpreter to a grid of cells.
package sheet

import (
	"fmt"
	"strconv"
)

// Address is a zero-based row/column coordinate. The zero value is A1.
type Address struct {
	Row int
	Col int
}

// Transpose swaps row and column.
func (a Address) Transpose() Address {
	return Address{Row: a.Col, Col: a.Row}
}

func (a Address) String() string {
	return fmt.Sprintf("%s%d", string(rune('A'+a.Col)), a.Row+1)
}

// ParseAddress consumes a leading column letter and row number from input
// and returns the parsed Address along with whatever input remains, so that
// range parsing can continue past a "-" separator.
func ParseAddress(input string) (Address, string, error) {
	if len(input) == 0 {
		return Address{}, input, fmt.Errorf("sheet: expected a column letter, got empty input")
	}

	var col int
	switch c := input[0]; {
	case c >= 'a' && c <= 'z':
		col = int(c - 'a')
	case c >= 'A' && c <= 'Z':
		col = int(c - 'A')
	default:
		return Address{}, input, fmt.Errorf("sheet: expected a column letter A-Z, got %q", input)
	}
	rest := input[1:]

	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return Address{}, input, fmt.Errorf("sheet: expected a row number, got %q", rest)
	}
	rowNumber, err := strconv.Atoi(rest[:i])
	if err != nil {
		return Address{}, input, fmt.Errorf("sheet: invalid row number: %w", err)
	}

	return Address{Row: rowNumber - 1, Col: col}, rest[i:], nil
}
