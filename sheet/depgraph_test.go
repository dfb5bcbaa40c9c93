package sheet

import "testing"

type intNode struct {
	id   int
	deps []int
}

func (n intNode) ID() int      { return n.id }
func (n intNode) Deps() []int  { return n.deps }

func containsAll(t *testing.T, got []int, want []int) {
	t.Helper()
	set := make(map[int]bool, len(got))
	for _, v := range got {
		set[v] = true
	}
	if len(set) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, w := range want {
		if !set[w] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDepGraphDirectDependents(t *testing.T) {
	g := NewDepGraph[int]()
	nodes := []intNode{
		{id: 1, deps: nil},
		{id: 2, deps: []int{1, 3}},
		{id: 3, deps: []int{1}},
		{id: 4, deps: []int{3, 5}},
		{id: 5, deps: nil},
	}
	for _, n := range nodes {
		g.UpdateNode(n)
	}

	containsAll(t, g.GetDirectDependents(1), []int{2, 3})
	containsAll(t, g.GetDirectDependents(3), []int{2, 4})
	containsAll(t, g.GetDirectDependents(5), []int{4})
}

func TestDepGraphUpdateNodeDiffsEdges(t *testing.T) {
	g := NewDepGraph[int]()
	nodes := []intNode{
		{id: 1, deps: nil},
		{id: 2, deps: []int{1, 3}},
		{id: 3, deps: []int{1}},
		{id: 4, deps: []int{3, 5}},
		{id: 5, deps: nil},
	}
	for _, n := range nodes {
		g.UpdateNode(n)
	}

	g.UpdateNode(intNode{id: 4, deps: []int{1, 5}})

	containsAll(t, g.GetDirectDependents(1), []int{2, 3, 4})
	containsAll(t, g.GetDirectDependents(3), []int{2})
	containsAll(t, g.GetDirectDependents(5), []int{4})
}

func TestDepGraphClearID(t *testing.T) {
	g := NewDepGraph[int]()
	g.UpdateNode(intNode{id: 1, deps: nil})
	g.UpdateNode(intNode{id: 2, deps: []int{1}})

	g.ClearID(2)

	if deps := g.GetDirectDependents(1); len(deps) != 0 {
		t.Fatalf("expected no dependents after ClearID, got %v", deps)
	}
}

func TestDepGraphUnknownNodeHasNoDependents(t *testing.T) {
	g := NewDepGraph[int]()
	if deps := g.GetDirectDependents(99); deps != nil {
		t.Fatalf("expected nil, got %v", deps)
	}
}
