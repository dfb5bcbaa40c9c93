package sheet

import (
	"fmt"
	"sync"

	"github.com/wcauchois/go-spreadsheet/ast"
	"github.com/wcauchois/go-spreadsheet/interpreter"
	"github.com/wcauchois/go-spreadsheet/parser"
)

// MaxIters bounds the propagation walk so a cyclic dependency graph cannot
// loop forever; excess work is silently dropped.
const MaxIters = 10_000

// CellValueKind tags the storable variants of a cell's computed value.
type CellValueKind int

const (
	CellNumber CellValueKind = iota
	CellText
	CellInvalid
)

// CellValue is the value actually stored and displayed for a cell, distinct
// from the richer interpreter.Value a formula evaluates to.
type CellValue struct {
	Kind    CellValueKind
	Number  float32
	Text    string
	Message string // only set when Kind == CellInvalid
}

func numberCellValue(n float32) CellValue   { return CellValue{Kind: CellNumber, Number: n} }
func textCellValue(s string) CellValue      { return CellValue{Kind: CellText, Text: s} }
func invalidCellValue(msg string) CellValue { return CellValue{Kind: CellInvalid, Message: msg} }
func emptyCellValue() CellValue             { return CellValue{Kind: CellText, Text: ""} }

// String renders the display form: numbers in their default text form, text
// verbatim, invalid values prefixed with "!INVALID: ".
func (v CellValue) String() string {
	switch v.Kind {
	case CellNumber:
		return fmt.Sprintf("%g", v.Number)
	case CellText:
		return v.Text
	case CellInvalid:
		return "!INVALID: " + v.Message
	default:
		return ""
	}
}

// Formula is a compiled cell body plus the addresses it reads, and is the
// Node the dependency graph tracks.
type Formula struct {
	Address    Address
	Program    *interpreter.Program
	References []Address
}

func (f *Formula) ID() Address    { return f.Address }
func (f *Formula) Deps() []Address { return f.References }

// Cell is one entry in the sheet's cell store.
type Cell struct {
	ComputedValue CellValue
	Formula       *Formula
	Source        string
}

type subscription struct {
	id       int
	callback func(CellValue)
}

// Subscription is an opaque token returned by Subscribe, passed back to
// Unsubscribe.
type Subscription struct {
	address Address
	id      int
}

// pendingNotification captures the callbacks to invoke for one change,
// snapshotted at notify time so dispatch can happen after the sheet's lock
// is released (callbacks must never run while the lock is held, or a
// callback that calls back into GetCell/Subscribe would deadlock on the
// same mutex).
type pendingNotification struct {
	callbacks []func(CellValue)
	value     CellValue
}

// Sheet is a grid of cells plus the machinery to recompute formula cells
// when one of their dependencies changes.
type Sheet struct {
	mu          sync.Mutex
	cells       map[Address]*Cell
	depGraph    *DepGraph[Address]
	subscribers map[Address][]*subscription
	nextSubID   int
	pending     []pendingNotification
}

// New returns an empty sheet.
func New() *Sheet {
	return &Sheet{
		cells:       make(map[Address]*Cell),
		depGraph:    NewDepGraph[Address](),
		subscribers: make(map[Address][]*subscription),
	}
}

// sheetResolver bridges the interpreter's keyword resolution to a Sheet.
// Every method assumes the sheet's mutex is already held by the caller.
type sheetResolver struct {
	sheet *Sheet
}

func (r sheetResolver) ResolveKeyword(name string) (interpreter.Value, error) {
	rng, err := ParseRange(name)
	if err != nil {
		return nil, err
	}
	shaped := rng.AddressesShaped()

	switch rng.Shape() {
	case ShapeSingle:
		return r.sheet.rowToValues(shaped[0])[0], nil

	case ShapeRow:
		return interpreter.List{Elements: r.sheet.rowToValues(shaped[0])}, nil

	case ShapeColumn:
		flat := make([]Address, len(shaped))
		for i, row := range shaped {
			flat[i] = row[0]
		}
		return interpreter.List{Elements: r.sheet.rowToValues(flat)}, nil

	default: // ShapeGrid
		rows := make([]interpreter.Value, len(shaped))
		for i, row := range shaped {
			rows[i] = interpreter.List{Elements: r.sheet.rowToValues(row)}
		}
		return interpreter.List{Elements: rows}, nil
	}
}

func (s *Sheet) rowToValues(addrs []Address) []interpreter.Value {
	out := make([]interpreter.Value, len(addrs))
	for i, a := range addrs {
		if _, ok := s.cells[a]; !ok {
			out[i] = interpreter.Nil
			continue
		}
		out[i] = cellValueToValue(s.getCellValueLocked(a))
	}
	return out
}

func (s *Sheet) getCellValueLocked(a Address) CellValue {
	cell, ok := s.cells[a]
	if !ok {
		return emptyCellValue()
	}
	return cell.ComputedValue
}

// cellValueToValue maps a stored cell value into the interpreter value an
// expression sees when it reads that cell through a keyword. Absent cells
// never reach it: rowToValues resolves them to Nil directly.
func cellValueToValue(v CellValue) interpreter.Value {
	switch v.Kind {
	case CellNumber:
		return interpreter.Number{Value: v.Number}
	case CellText:
		return interpreter.String{Value: v.Text}
	default: // CellInvalid
		return interpreter.Nil
	}
}

// valueToCellValue maps the result of evaluating a formula back into a
// storable cell value. A value this cell can't represent becomes Invalid
// data, not a control-flow error, per the error handling design.
func valueToCellValue(v interpreter.Value) CellValue {
	switch val := v.(type) {
	case interpreter.Number:
		return numberCellValue(val.Value)
	case interpreter.String:
		return textCellValue(val.Value)
	case interpreter.Boolean:
		if val.Value {
			return textCellValue("TRUE")
		}
		return textCellValue("FALSE")
	default:
		if v == interpreter.Nil {
			return textCellValue("<nil>")
		}
		return invalidCellValue(fmt.Sprintf("expression is not representable in a cell: %s", v.Inspect()))
	}
}

type referenceCollector struct {
	references []Address
	err        error
}

func (c *referenceCollector) VisitNumber(float32) {}
func (c *referenceCollector) VisitString(string)  {}
func (c *referenceCollector) VisitSymbol(string)  {}

func (c *referenceCollector) VisitKeyword(name string) {
	if c.err != nil {
		return
	}
	rng, err := ParseRange(name)
	if err != nil {
		c.err = err
		return
	}
	c.references = append(c.references, rng.AddressesFlat()...)
}

func collectReferences(expr *ast.Expr) ([]Address, error) {
	collector := &referenceCollector{}
	expr.Walk(collector)
	if collector.err != nil {
		return nil, collector.err
	}
	return collector.references, nil
}

// SetCell classifies source, compiles and evaluates it if it is a formula,
// installs the resulting cell, updates the dependency graph, and propagates
// the change to every cell that transitively reads this address.
func (s *Sheet) SetCell(address Address, source string) error {
	s.mu.Lock()

	interpreted, err := parser.InterpretCell(source)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var newCell *Cell
	switch interpreted.Kind {
	case parser.CellNumber:
		newCell = &Cell{ComputedValue: numberCellValue(interpreted.Number), Source: source}

	case parser.CellText:
		newCell = &Cell{ComputedValue: textCellValue(interpreted.Text), Source: source}

	case parser.CellExpr:
		program, err := interpreter.CompileWithPrelude(interpreted.Expr)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		references, err := collectReferences(interpreted.Expr)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		result, err := interpreter.Eval(program, interpreter.WithBuiltins(), sheetResolver{sheet: s})
		if err != nil {
			s.mu.Unlock()
			return err
		}
		newCell = &Cell{
			ComputedValue: valueToCellValue(result),
			Source:        source,
			Formula: &Formula{
				Address:    address,
				Program:    program,
				References: references,
			},
		}
	}

	if newCell.Formula != nil {
		s.depGraph.UpdateNode(newCell.Formula)
	} else {
		s.depGraph.ClearID(address)
	}

	s.cells[address] = newCell
	s.notifyLocked(address, newCell.ComputedValue)

	s.propagateLocked(address)
	pending := s.takePendingLocked()
	s.mu.Unlock()

	dispatchPending(pending)
	return nil
}

// propagateLocked re-evaluates address and every cell transitively
// downstream of it, breadth-first, bounded by MaxIters so a cyclic
// dependency graph cannot loop forever.
func (s *Sheet) propagateLocked(address Address) {
	work := []Address{address}
	seen := make(map[Address]bool)

	for iters := 0; len(work) > 0 && iters < MaxIters; iters++ {
		addr := work[0]
		work = work[1:]
		if seen[addr] {
			continue
		}
		seen[addr] = true

		cell, ok := s.cells[addr]
		if ok && cell.Formula != nil {
			result, err := interpreter.Eval(cell.Formula.Program, interpreter.WithBuiltins(), sheetResolver{sheet: s})
			var newValue CellValue
			if err != nil {
				newValue = invalidCellValue(err.Error())
			} else {
				newValue = valueToCellValue(result)
			}
			cell.ComputedValue = newValue
			s.notifyLocked(addr, newValue)
		}

		work = append(work, s.depGraph.GetDirectDependents(addr)...)
	}
}

// GetCell returns address's current value and source text. Absent cells
// report an empty-text value and empty source.
func (s *Sheet) GetCell(address Address) (CellValue, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cell, ok := s.cells[address]
	if !ok {
		return emptyCellValue(), ""
	}
	return cell.ComputedValue, cell.Source
}

// Subscribe registers callback to be invoked, with the cell's latest value,
// every time address changes.
func (s *Sheet) Subscribe(address Address, callback func(CellValue)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[address] = append(s.subscribers[address], &subscription{id: id, callback: callback})
	return Subscription{address: address, id: id}
}

// Unsubscribe disconnects a subscription previously returned by Subscribe.
func (s *Sheet) Unsubscribe(token Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.subscribers[token.address]
	for i, sub := range subs {
		if sub.id == token.id {
			s.subscribers[token.address] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(s.subscribers[token.address]) == 0 {
		delete(s.subscribers, token.address)
	}
}

// notifyLocked queues a notification rather than dispatching it immediately:
// callbacks run only after the mutating call that triggered them has
// finished touching sheet state, so a callback can't observe a half-updated
// propagation walk, and can safely call back into a read-only method like
// GetCell without deadlocking on s.mu.
func (s *Sheet) notifyLocked(address Address, value CellValue) {
	subs := s.subscribers[address]
	if len(subs) == 0 {
		return
	}
	callbacks := make([]func(CellValue), len(subs))
	for i, sub := range subs {
		callbacks[i] = sub.callback
	}
	s.pending = append(s.pending, pendingNotification{callbacks: callbacks, value: value})
}

// takePendingLocked detaches the queued notifications so the caller can
// dispatch them after releasing s.mu.
func (s *Sheet) takePendingLocked() []pendingNotification {
	pending := s.pending
	s.pending = nil
	return pending
}

func dispatchPending(pending []pendingNotification) {
	for _, note := range pending {
		for _, callback := range note.callbacks {
			callback(note.value)
		}
	}
}

// DebugParseExpr pretty-prints the AST for text, or describes the parse
// error.
func (s *Sheet) DebugParseExpr(text string) string {
	expr, err := parser.Parse(text)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	return expr.String()
}

// DebugEvalExpr compiles and evaluates text using the empty keyword
// resolver, independent of this sheet's cells.
func (s *Sheet) DebugEvalExpr(text string) (string, error) {
	expr, err := parser.Parse(text)
	if err != nil {
		return "", err
	}
	program, err := interpreter.CompileWithPrelude(expr)
	if err != nil {
		return "", err
	}
	value, err := interpreter.Eval(program, interpreter.WithBuiltins(), interpreter.EmptyResolver{})
	if err != nil {
		return "", err
	}
	return value.Inspect(), nil
}

// DebugGraphviz dumps the dependency graph as DOT.
func (s *Sheet) DebugGraphviz() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depGraph.ToGraphviz()
}
