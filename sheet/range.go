package sheet

import "fmt"

// InvalidRangeError reports a range that failed to parse or whose end
// address is not bottom-right of its start address.
type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string { return e.Message }

// Shape classifies how a range's addresses should be grouped for iteration.
type Shape int

const (
	ShapeSingle Shape = iota
	ShapeRow
	ShapeColumn
	ShapeGrid
)

// Range is an inclusive rectangle of addresses; End must be bottom-right of
// (or equal to) Start.
type Range struct {
	Start Address
	End   Address
}

func (r Range) isValid() bool {
	return r.End.Row >= r.Start.Row && r.End.Col >= r.Start.Col
}

// ParseRange parses "A1" or "A1-C3" style range text. A single address
// yields Start == End.
func ParseRange(input string) (Range, error) {
	start, rest, err := ParseAddress(input)
	if err != nil {
		return Range{}, &InvalidRangeError{Message: err.Error()}
	}

	var r Range
	if len(rest) > 0 && rest[0] == '-' {
		end, rest2, err := ParseAddress(rest[1:])
		if err != nil {
			return Range{}, &InvalidRangeError{Message: err.Error()}
		}
		if len(rest2) != 0 {
			return Range{}, &InvalidRangeError{Message: fmt.Sprintf("sheet: unexpected trailing input %q", rest2)}
		}
		r = Range{Start: start, End: end}
	} else {
		if len(rest) != 0 {
			return Range{}, &InvalidRangeError{Message: fmt.Sprintf("sheet: unexpected trailing input %q", rest)}
		}
		r = Range{Start: start, End: start}
	}

	if !r.isValid() {
		return Range{}, &InvalidRangeError{Message: "sheet: invalid range, end must be bottom-right of start"}
	}
	return r, nil
}

// Shape classifies the range per the iteration rules: Single when start and
// end coincide, 1D (Row or Column) when exactly one axis is fixed, Grid
// otherwise.
func (r Range) Shape() Shape {
	switch {
	case r.Start == r.End:
		return ShapeSingle
	case r.Start.Row == r.End.Row:
		return ShapeRow
	case r.Start.Col == r.End.Col:
		return ShapeColumn
	default:
		return ShapeGrid
	}
}

// AddressesFlat yields every address in the range in row-major order,
// regardless of shape.
func (r Range) AddressesFlat() []Address {
	out := make([]Address, 0, (r.End.Row-r.Start.Row+1)*(r.End.Col-r.Start.Col+1))
	for row := r.Start.Row; row <= r.End.Row; row++ {
		for col := r.Start.Col; col <= r.End.Col; col++ {
			out = append(out, Address{Row: row, Col: col})
		}
	}
	return out
}

// AddressesShaped groups addresses according to Shape: Single yields one row
// of one address; Row yields one row of every column, column-ascending;
// Column yields one row per address, row-ascending; Grid yields one row per
// sheet row, each column-ascending, rows row-ascending.
func (r Range) AddressesShaped() [][]Address {
	switch r.Shape() {
	case ShapeSingle:
		return [][]Address{{r.Start}}

	case ShapeRow:
		row := make([]Address, 0, r.End.Col-r.Start.Col+1)
		for col := r.Start.Col; col <= r.End.Col; col++ {
			row = append(row, Address{Row: r.Start.Row, Col: col})
		}
		return [][]Address{row}

	case ShapeColumn:
		rows := make([][]Address, 0, r.End.Row-r.Start.Row+1)
		for row := r.Start.Row; row <= r.End.Row; row++ {
			rows = append(rows, []Address{{Row: row, Col: r.Start.Col}})
		}
		return rows

	default: // ShapeGrid
		rows := make([][]Address, 0, r.End.Row-r.Start.Row+1)
		for row := r.Start.Row; row <= r.End.Row; row++ {
			cols := make([]Address, 0, r.End.Col-r.Start.Col+1)
			for col := r.Start.Col; col <= r.End.Col; col++ {
				cols = append(cols, Address{Row: row, Col: col})
			}
			rows = append(rows, cols)
		}
		return rows
	}
}
