// Package hierarchy produces the ordered list of classes to generate.
package hierarchy

import (
	"github.com/conduit-lang/ontogen/internal/ontology"
)

// Walk visits the reasoner's class hierarchy depth-first from the top node
// and returns every satisfiable, non-built-in class once, in order of first
// discovery. Child nodes are visited in the order the reasoner returns
// them; the bottom node is never descended into.
func Walk(r ontology.Reasoner) []ontology.IRI {
	w := &walker{
		reasoner: r,
		seen:     make(map[string]bool),
		emitted:  make(map[ontology.IRI]bool),
		unsat:    r.UnsatisfiableNode(),
	}
	w.visit(r.TopNode())
	return w.classes
}

type walker struct {
	reasoner ontology.Reasoner
	seen     map[string]bool
	emitted  map[ontology.IRI]bool
	unsat    ontology.Node
	classes  []ontology.IRI
}

func (w *walker) visit(parent ontology.Node) {
	if parent.IsBottom() {
		return
	}
	for _, child := range w.reasoner.DirectSubNodes(parent) {
		if w.seen[child.Key()] {
			continue
		}
		w.seen[child.Key()] = true
		w.emit(child)
		w.visit(child)
	}
}

func (w *walker) emit(n ontology.Node) {
	for _, c := range n.Classes() {
		if c.IsBuiltIn() || w.unsat.Contains(c) || w.emitted[c] {
			continue
		}
		w.emitted[c] = true
		w.classes = append(w.classes, c)
	}
}
