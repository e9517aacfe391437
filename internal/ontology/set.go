package ontology

import (
	"cmp"
	"slices"
)

// Set is the merged view of a root ontology and its imports. Axioms about the
// same entity from different ontologies are concatenated in ontology order.
type Set struct {
	ontologies []*Ontology

	classes     []IRI
	classSet    map[IRI]bool
	supers      map[IRI][]ClassExpression
	equivalents map[IRI][]ClassExpression
	disjoint    map[IRI][]IRI

	objectProps []*ObjectProperty
	dataProps   []*DataProperty
	individuals []*Individual
}

// NewSet merges root and imports. imports should already be the transitive
// closure in discovery order; duplicates by IRI are dropped.
func NewSet(root *Ontology, imports ...*Ontology) *Set {
	s := &Set{
		classSet:    make(map[IRI]bool),
		supers:      make(map[IRI][]ClassExpression),
		equivalents: make(map[IRI][]ClassExpression),
		disjoint:    make(map[IRI][]IRI),
	}

	seen := make(map[IRI]bool)
	for _, o := range append([]*Ontology{root}, imports...) {
		if o == nil || seen[o.IRI] {
			continue
		}
		seen[o.IRI] = true
		s.ontologies = append(s.ontologies, o)
	}

	objects := make(map[IRI]*ObjectProperty)
	data := make(map[IRI]*DataProperty)
	individuals := make(map[IRI]*Individual)

	for _, o := range s.ontologies {
		for _, c := range o.Classes {
			s.addClass(c.IRI)
			s.supers[c.IRI] = append(s.supers[c.IRI], c.SuperClasses...)
			s.equivalents[c.IRI] = append(s.equivalents[c.IRI], c.EquivalentClasses...)
			for _, d := range c.DisjointWith {
				s.addClass(d)
				s.disjoint[c.IRI] = appendUnique(s.disjoint[c.IRI], d)
				s.disjoint[d] = appendUnique(s.disjoint[d], c.IRI)
			}
			for _, e := range append(slices.Clone(c.SuperClasses), c.EquivalentClasses...) {
				for _, named := range NamedOperands(e) {
					s.addClass(named)
				}
			}
		}

		for _, p := range o.ObjectProperties {
			merged, ok := objects[p.IRI]
			if !ok {
				merged = &ObjectProperty{IRI: p.IRI}
				objects[p.IRI] = merged
				s.objectProps = append(s.objectProps, merged)
			}
			merged.Functional = merged.Functional || p.Functional
			merged.Domains = append(merged.Domains, p.Domains...)
			merged.Ranges = append(merged.Ranges, p.Ranges...)
			s.addNamed(p.Domains)
			s.addNamed(p.Ranges)
		}

		for _, p := range o.DataProperties {
			merged, ok := data[p.IRI]
			if !ok {
				merged = &DataProperty{IRI: p.IRI}
				data[p.IRI] = merged
				s.dataProps = append(s.dataProps, merged)
			}
			merged.Functional = merged.Functional || p.Functional
			merged.Domains = append(merged.Domains, p.Domains...)
			merged.Ranges = append(merged.Ranges, p.Ranges...)
			s.addNamed(p.Domains)
		}

		for _, ind := range o.Individuals {
			merged, ok := individuals[ind.IRI]
			if !ok {
				merged = &Individual{IRI: ind.IRI}
				individuals[ind.IRI] = merged
				s.individuals = append(s.individuals, merged)
			}
			for _, t := range ind.Types {
				merged.Types = appendUnique(merged.Types, t)
			}
			merged.Objects = append(merged.Objects, ind.Objects...)
			merged.Data = append(merged.Data, ind.Data...)
		}
	}

	slices.Sort(s.classes)
	slices.SortFunc(s.objectProps, func(a, b *ObjectProperty) int { return cmp.Compare(a.IRI, b.IRI) })
	slices.SortFunc(s.dataProps, func(a, b *DataProperty) int { return cmp.Compare(a.IRI, b.IRI) })
	return s
}

func (s *Set) addClass(iri IRI) {
	if iri.IsBuiltIn() || s.classSet[iri] {
		return
	}
	s.classSet[iri] = true
	s.classes = append(s.classes, iri)
}

func (s *Set) addNamed(exprs []ClassExpression) {
	for _, e := range exprs {
		if n, ok := e.(*NamedClass); ok {
			s.addClass(n.IRI)
		}
	}
}

func (s *Set) Root() *Ontology { return s.ontologies[0] }

func (s *Set) Ontologies() []*Ontology { return s.ontologies }

// Imported returns every ontology except the root.
func (s *Set) Imported() []*Ontology { return s.ontologies[1:] }

func (s *Set) Classes() []IRI { return s.classes }

func (s *Set) HasClass(iri IRI) bool { return s.classSet[iri] }

func (s *Set) SuperClasses(iri IRI) []ClassExpression { return s.supers[iri] }

func (s *Set) EquivalentClasses(iri IRI) []ClassExpression { return s.equivalents[iri] }

func (s *Set) DisjointClasses(iri IRI) []IRI { return s.disjoint[iri] }

func (s *Set) ObjectProperties() []*ObjectProperty { return s.objectProps }

func (s *Set) DataProperties() []*DataProperty { return s.dataProps }

func (s *Set) Individuals() []*Individual { return s.individuals }

// NamedSuperClasses returns the told named superclasses of iri in
// declaration order, without duplicates.
func NamedSuperClasses(store Store, iri IRI) []IRI {
	var out []IRI
	for _, e := range store.SuperClasses(iri) {
		if n, ok := e.(*NamedClass); ok {
			out = appendUnique(out, n.IRI)
		}
	}
	return out
}

func appendUnique(list []IRI, iri IRI) []IRI {
	if slices.Contains(list, iri) {
		return list
	}
	return append(list, iri)
}
