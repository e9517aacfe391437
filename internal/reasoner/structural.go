// Package reasoner computes the class hierarchy of an ontology set from its
// told axioms.
//
// The structural reasoner understands named subclass and equivalence axioms,
// named operands of intersections, subclass cycles, told disjointness and
// owl:Nothing. It does no tableau reasoning: a class is unsatisfiable only when
// it is told to be below owl:Nothing, or two of its told ancestors (itself
// included) are told disjoint, or it is below its own complement.
package reasoner

import (
	"cmp"
	"slices"
	"strings"

	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/ontology"
)

// Node is a set of equivalent classes.
type Node struct {
	classes []ontology.IRI
	top     bool
	bottom  bool
}

func (n *Node) Key() string { return strings.Join(iriStrings(n.classes), " ") }

func (n *Node) Classes() []ontology.IRI { return n.classes }

func (n *Node) Representative() ontology.IRI { return n.classes[0] }

func (n *Node) Contains(iri ontology.IRI) bool { return slices.Contains(n.classes, iri) }

func (n *Node) IsTop() bool { return n.top }

func (n *Node) IsBottom() bool { return n.bottom }

// Structural is an ontology.Reasoner over told axioms.
type Structural struct {
	top      *Node
	bottom   *Node
	nodeOf   map[ontology.IRI]*Node
	children map[*Node][]*Node
	parents  map[*Node][]*Node
	unsat    map[ontology.IRI]bool
}

var _ ontology.Reasoner = (*Structural)(nil)

// New classifies every class of store.
func New(store ontology.Store) *Structural {
	classes := append([]ontology.IRI{ontology.Thing, ontology.Nothing}, store.Classes()...)

	edges := make(map[ontology.IRI][]ontology.IRI)
	addEdge := func(from, to ontology.IRI) {
		if from != to && !slices.Contains(edges[from], to) {
			edges[from] = append(edges[from], to)
		}
	}
	complements := make(map[ontology.IRI][]ontology.IRI)

	for _, c := range store.Classes() {
		addEdge(c, ontology.Thing)
		for _, e := range store.SuperClasses(c) {
			for _, named := range ontology.NamedOperands(e) {
				addEdge(c, named)
			}
			if comp, ok := e.(*ontology.Complement); ok {
				if n, ok := comp.Operand.(*ontology.NamedClass); ok {
					complements[c] = append(complements[c], n.IRI)
				}
			}
		}
		for _, e := range store.EquivalentClasses(c) {
			for _, named := range ontology.NamedOperands(e) {
				addEdge(c, named)
			}
			if n, ok := e.(*ontology.NamedClass); ok {
				addEdge(n.IRI, c)
			}
		}
	}

	reach := make(map[ontology.IRI]map[ontology.IRI]bool, len(classes))
	for _, c := range classes {
		reach[c] = reachable(c, edges)
	}

	r := &Structural{
		nodeOf:   make(map[ontology.IRI]*Node),
		children: make(map[*Node][]*Node),
		parents:  make(map[*Node][]*Node),
		unsat:    make(map[ontology.IRI]bool),
	}

	for _, c := range store.Classes() {
		if r.isUnsatisfiable(c, reach[c], store, complements) {
			r.unsat[c] = true
		}
	}

	r.bottom = &Node{classes: []ontology.IRI{ontology.Nothing}, bottom: true}
	r.nodeOf[ontology.Nothing] = r.bottom
	for _, c := range store.Classes() {
		if r.unsat[c] {
			r.bottom.classes = append(r.bottom.classes, c)
			r.nodeOf[c] = r.bottom
		}
	}
	sortNodeClasses(r.bottom, ontology.Nothing)

	// Mutually reachable classes are equivalent.
	var nodes []*Node
	for _, c := range classes {
		if _, done := r.nodeOf[c]; done {
			continue
		}
		n := &Node{classes: []ontology.IRI{c}}
		for _, other := range classes {
			if other == c || r.unsat[other] || other == ontology.Nothing {
				continue
			}
			if reach[c][other] && reach[other][c] {
				n.classes = append(n.classes, other)
			}
		}
		for _, member := range n.classes {
			r.nodeOf[member] = n
		}
		nodes = append(nodes, n)
	}

	r.top = r.nodeOf[ontology.Thing]
	r.top.top = true
	sortNodeClasses(r.top, ontology.Thing)
	for _, n := range nodes {
		if n != r.top {
			sortNodeClasses(n, "")
		}
	}

	for _, n := range nodes {
		if n == r.top {
			continue
		}
		r.parents[n] = r.directSupers(n, reach)
		for _, p := range r.parents[n] {
			r.children[p] = append(r.children[p], n)
		}
	}
	for p := range r.children {
		slices.SortFunc(r.children[p], func(a, b *Node) int {
			return cmp.Compare(a.Representative(), b.Representative())
		})
	}

	logger.Debugw("Classified ontology",
		"classes", len(store.Classes()),
		"nodes", len(nodes),
		"unsatisfiable", len(r.bottom.classes)-1)

	return r
}

func (r *Structural) isUnsatisfiable(c ontology.IRI, ancestors map[ontology.IRI]bool, store ontology.Store, complements map[ontology.IRI][]ontology.IRI) bool {
	if ancestors[ontology.Nothing] {
		return true
	}
	lineage := append([]ontology.IRI{c}, sortedKeys(ancestors)...)
	for _, a := range lineage {
		for _, d := range store.DisjointClasses(a) {
			if d == c || ancestors[d] {
				return true
			}
		}
		for _, neg := range complements[a] {
			if neg == c || ancestors[neg] {
				return true
			}
		}
	}
	return false
}

// directSupers returns the most specific satisfiable nodes above n.
func (r *Structural) directSupers(n *Node, reach map[ontology.IRI]map[ontology.IRI]bool) []*Node {
	rep := n.Representative()

	var candidates []*Node
	for a := range reach[rep] {
		an := r.nodeOf[a]
		if an == nil || an == n || an.bottom || slices.Contains(candidates, an) {
			continue
		}
		candidates = append(candidates, an)
	}
	if !slices.Contains(candidates, r.top) {
		candidates = append(candidates, r.top)
	}

	var direct []*Node
	for _, cand := range candidates {
		covered := false
		for _, other := range candidates {
			if other != cand && reach[other.Representative()][cand.Representative()] {
				covered = true
				break
			}
		}
		if !covered {
			direct = append(direct, cand)
		}
	}
	slices.SortFunc(direct, func(a, b *Node) int {
		return cmp.Compare(a.Representative(), b.Representative())
	})
	return direct
}

func (r *Structural) TopNode() ontology.Node { return r.top }

func (r *Structural) UnsatisfiableNode() ontology.Node { return r.bottom }

func (r *Structural) DirectSubNodes(n ontology.Node) []ontology.Node {
	node, ok := n.(*Node)
	if !ok || node.bottom {
		return nil
	}
	kids := r.children[node]
	if len(kids) == 0 {
		return []ontology.Node{r.bottom}
	}
	out := make([]ontology.Node, len(kids))
	for i, k := range kids {
		out[i] = k
	}
	return out
}

// DirectSuperNodes returns the most specific nodes above the node of iri.
func (r *Structural) DirectSuperNodes(iri ontology.IRI) []ontology.Node {
	n, ok := r.nodeOf[iri]
	if !ok {
		return nil
	}
	var out []ontology.Node
	for _, p := range r.parents[n] {
		out = append(out, p)
	}
	return out
}

func (r *Structural) IsSatisfiable(iri ontology.IRI) bool {
	return iri != ontology.Nothing && !r.unsat[iri]
}

// NodeOf returns the node containing iri.
func (r *Structural) NodeOf(iri ontology.IRI) (ontology.Node, bool) {
	n, ok := r.nodeOf[iri]
	return n, ok
}

func reachable(start ontology.IRI, edges map[ontology.IRI][]ontology.IRI) map[ontology.IRI]bool {
	seen := make(map[ontology.IRI]bool)
	stack := slices.Clone(edges[start])
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[c] {
			continue
		}
		seen[c] = true
		stack = append(stack, edges[c]...)
	}
	return seen
}

// sortNodeClasses orders members by IRI with first, when non-empty, leading.
func sortNodeClasses(n *Node, first ontology.IRI) {
	slices.SortFunc(n.classes, func(a, b ontology.IRI) int {
		switch {
		case a == b:
			return 0
		case a == first:
			return -1
		case b == first:
			return 1
		}
		return cmp.Compare(a, b)
	})
}

func sortedKeys(m map[ontology.IRI]bool) []ontology.IRI {
	keys := make([]ontology.IRI, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func iriStrings(iris []ontology.IRI) []string {
	out := make([]string, len(iris))
	for i, iri := range iris {
		out[i] = string(iri)
	}
	return out
}
