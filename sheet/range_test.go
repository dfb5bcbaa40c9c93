package sheet

import "testing"

func TestParseRangeSingleAddress(t *testing.T) {
	r, err := ParseRange("a2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Range{Start: Address{Row: 1, Col: 0}, End: Address{Row: 1, Col: 0}}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
	if r.Shape() != ShapeSingle {
		t.Fatalf("expected ShapeSingle, got %v", r.Shape())
	}
}

func TestParseRangeComposite(t *testing.T) {
	r, err := ParseRange("a2-c6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Range{Start: Address{Row: 1, Col: 0}, End: Address{Row: 5, Col: 2}}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestParseRangeInverted(t *testing.T) {
	_, err := ParseRange("c6-a2")
	if _, ok := err.(*InvalidRangeError); !ok {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}

func TestParseRangeTrailingGarbage(t *testing.T) {
	_, err := ParseRange("a2x")
	if _, ok := err.(*InvalidRangeError); !ok {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}

func TestShapeClassification(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		shape Shape
	}{
		{"single", Range{Start: Address{0, 0}, End: Address{0, 0}}, ShapeSingle},
		{"row", Range{Start: Address{0, 0}, End: Address{0, 2}}, ShapeRow},
		{"column", Range{Start: Address{0, 0}, End: Address{2, 0}}, ShapeColumn},
		{"grid", Range{Start: Address{0, 0}, End: Address{2, 2}}, ShapeGrid},
	}
	for _, c := range cases {
		if got := c.r.Shape(); got != c.shape {
			t.Errorf("%s: expected shape %v, got %v", c.name, c.shape, got)
		}
	}
}

func TestAddressesFlatCoversCartesianProduct(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 1, Col: 1}}
	addrs := r.AddressesFlat()
	want := []Address{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(addrs) != len(want) {
		t.Fatalf("expected %d addresses, got %d", len(want), len(addrs))
	}
	for i := range want {
		if addrs[i] != want[i] {
			t.Fatalf("index %d: expected %+v, got %+v", i, want[i], addrs[i])
		}
	}
}

func TestAddressesShapedRow(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 0, Col: 2}}
	shaped := r.AddressesShaped()
	if len(shaped) != 1 || len(shaped[0]) != 3 {
		t.Fatalf("expected a single row of 3, got %+v", shaped)
	}
}

func TestAddressesShapedColumn(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 2, Col: 0}}
	shaped := r.AddressesShaped()
	if len(shaped) != 3 {
		t.Fatalf("expected 3 rows of 1, got %+v", shaped)
	}
	for _, row := range shaped {
		if len(row) != 1 {
			t.Fatalf("expected each row to have 1 address, got %+v", row)
		}
	}
}

func TestAddressesShapedGrid(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 1, Col: 1}}
	shaped := r.AddressesShaped()
	if len(shaped) != 2 || len(shaped[0]) != 2 || len(shaped[1]) != 2 {
		t.Fatalf("expected a 2x2 grid, got %+v", shaped)
	}
}
