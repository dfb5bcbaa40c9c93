package sheet

import (
	"fmt"
	"sort"
	"strings"
)

// Node is anything that can sit in a DepGraph: it has a stable id and
// advertises the ids it reads.
type Node[I comparable] interface {
	ID() I
	Deps() []I
}

// DepGraph stores forward and reverse adjacency as plain mutable maps.
// Nothing in the propagation algorithm requires structural sharing, so a
// mutable adjacency list with whole-node replacement on update is simpler
// than a persistent map and observably equivalent.
type DepGraph[I comparable] struct {
	deps       map[I]map[I]struct{}
	rdeps      map[I]map[I]struct{}
	readyNodes map[I]struct{}
}

// NewDepGraph returns an empty graph.
func NewDepGraph[I comparable]() *DepGraph[I] {
	return &DepGraph[I]{
		deps:       make(map[I]map[I]struct{}),
		rdeps:      make(map[I]map[I]struct{}),
		readyNodes: make(map[I]struct{}),
	}
}

// UpdateNode logically replaces node's outgoing edges with node.Deps(),
// diffing against whatever edges it had before so only the added/removed
// reverse edges are touched.
func (g *DepGraph[I]) UpdateNode(node Node[I]) {
	id := node.ID()
	newSet := make(map[I]struct{}, len(node.Deps()))
	for _, d := range node.Deps() {
		newSet[d] = struct{}{}
	}
	oldSet := g.deps[id]

	for d := range newSet {
		if _, ok := oldSet[d]; !ok {
			g.addReverseEdge(d, id)
		}
	}
	for d := range oldSet {
		if _, ok := newSet[d]; !ok {
			g.removeReverseEdge(d, id)
		}
	}

	g.deps[id] = newSet
	if len(newSet) == 0 {
		g.readyNodes[id] = struct{}{}
	} else {
		delete(g.readyNodes, id)
	}
}

// ClearID removes id's outgoing edges and prunes the corresponding reverse
// edges, without removing id from anyone else's dependency list.
func (g *DepGraph[I]) ClearID(id I) {
	for d := range g.deps[id] {
		g.removeReverseEdge(d, id)
	}
	delete(g.deps, id)
	delete(g.readyNodes, id)
}

// GetDirectDependents returns the ids that directly depend on id. Order is
// unspecified.
func (g *DepGraph[I]) GetDirectDependents(id I) []I {
	set, ok := g.rdeps[id]
	if !ok {
		return nil
	}
	out := make([]I, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	return out
}

func (g *DepGraph[I]) addReverseEdge(dep, id I) {
	set, ok := g.rdeps[dep]
	if !ok {
		set = make(map[I]struct{})
		g.rdeps[dep] = set
	}
	set[id] = struct{}{}
}

func (g *DepGraph[I]) removeReverseEdge(dep, id I) {
	set, ok := g.rdeps[dep]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(g.rdeps, dep)
	}
}

// ToGraphviz renders the forward edges (id depends on d) as a DOT digraph,
// for debugging only.
func (g *DepGraph[I]) ToGraphviz() string {
	ids := make([]string, 0, len(g.deps))
	labelOf := make(map[string]I, len(g.deps))
	for id := range g.deps {
		label := fmt.Sprintf("%v", id)
		ids = append(ids, label)
		labelOf[label] = id
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString("digraph deps {\n")
	for _, label := range ids {
		id := labelOf[label]
		deps := make([]string, 0, len(g.deps[id]))
		for d := range g.deps[id] {
			deps = append(deps, fmt.Sprintf("%v", d))
		}
		sort.Strings(deps)
		for _, d := range deps {
			fmt.Fprintf(&sb, "  %q -> %q;\n", label, d)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
