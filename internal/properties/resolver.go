package properties

import (
	"cmp"
	"slices"

	"github.com/conduit-lang/ontogen/internal/ontology"
)

// Index is the read-only set of properties of an ontology set, each list
// sorted by IRI.
type Index struct {
	objects   []*ontology.ObjectProperty
	data      []*ontology.DataProperty
	objectSet map[ontology.IRI]*ontology.ObjectProperty
	dataSet   map[ontology.IRI]*ontology.DataProperty
}

// NewIndex snapshots the properties of store.
func NewIndex(store ontology.Store) *Index {
	idx := &Index{
		objects:   slices.Clone(store.ObjectProperties()),
		data:      slices.Clone(store.DataProperties()),
		objectSet: make(map[ontology.IRI]*ontology.ObjectProperty),
		dataSet:   make(map[ontology.IRI]*ontology.DataProperty),
	}
	slices.SortFunc(idx.objects, func(a, b *ontology.ObjectProperty) int { return cmp.Compare(a.IRI, b.IRI) })
	slices.SortFunc(idx.data, func(a, b *ontology.DataProperty) int { return cmp.Compare(a.IRI, b.IRI) })
	for _, p := range idx.objects {
		idx.objectSet[p.IRI] = p
	}
	for _, p := range idx.data {
		idx.dataSet[p.IRI] = p
	}
	return idx
}

func (idx *Index) ObjectProperties() []*ontology.ObjectProperty { return idx.objects }

func (idx *Index) DataProperties() []*ontology.DataProperty { return idx.data }

func (idx *Index) ObjectProperty(iri ontology.IRI) (*ontology.ObjectProperty, bool) {
	p, ok := idx.objectSet[iri]
	return p, ok
}

func (idx *Index) DataProperty(iri ontology.IRI) (*ontology.DataProperty, bool) {
	p, ok := idx.dataSet[iri]
	return p, ok
}

// ClassNamer names generated classes.
type ClassNamer interface {
	ClassName(iri ontology.IRI) string
}

// Options tunes value typing.
type Options struct {
	// Bounded marks multi-valued class-typed properties as accepting
	// subclasses of their range.
	Bounded bool
}

// Resolver computes the applicable properties of a class.
type Resolver struct {
	index     *Index
	store     ontology.Store
	generated map[ontology.IRI]bool
	names     ClassNamer
	opts      Options
}

// NewResolver creates a resolver. generated is the set of classes that get
// generated types; only those can be property value types.
func NewResolver(index *Index, store ontology.Store, generated []ontology.IRI, names ClassNamer, opts Options) *Resolver {
	set := make(map[ontology.IRI]bool, len(generated))
	for _, c := range generated {
		set[c] = true
	}
	return &Resolver{index: index, store: store, generated: set, names: names, opts: opts}
}

// Resolve returns the object and data properties applicable to class:
// properties whose domain names the class, in index order, followed by
// properties mentioned in the class's anonymous superclass and equivalent
// class expressions. Each property appears once.
func (r *Resolver) Resolve(class ontology.IRI) (objects, data []Resolved) {
	var objectIRIs, dataIRIs []ontology.IRI

	for _, p := range r.index.ObjectProperties() {
		if hasNamedDomain(p.Domains, class) {
			objectIRIs = append(objectIRIs, p.IRI)
		}
	}
	for _, p := range r.index.DataProperties() {
		if hasNamedDomain(p.Domains, class) {
			dataIRIs = append(dataIRIs, p.IRI)
		}
	}

	exprs := append(slices.Clone(r.store.SuperClasses(class)), r.store.EquivalentClasses(class)...)
	for _, e := range exprs {
		if !e.IsAnonymous() {
			continue
		}
		for _, iri := range ontology.ObjectPropertiesInSignature(e) {
			if _, ok := r.index.ObjectProperty(iri); ok && !slices.Contains(objectIRIs, iri) {
				objectIRIs = append(objectIRIs, iri)
			}
		}
		for _, iri := range ontology.DataPropertiesInSignature(e) {
			if _, ok := r.index.DataProperty(iri); ok && !slices.Contains(dataIRIs, iri) {
				dataIRIs = append(dataIRIs, iri)
			}
		}
	}

	for _, iri := range objectIRIs {
		p, _ := r.index.ObjectProperty(iri)
		objects = append(objects, r.ResolveObject(p))
	}
	for _, iri := range dataIRIs {
		p, _ := r.index.DataProperty(iri)
		data = append(data, r.ResolveData(p))
	}
	return objects, data
}

// ResolveObject types an object property.
func (r *Resolver) ResolveObject(p *ontology.ObjectProperty) Resolved {
	res := Resolved{IRI: p.IRI, Kind: Object, Cardinality: cardinality(p.Functional)}
	res.Value = r.objectValueType(p.Ranges, res.Cardinality)
	return res
}

// ResolveData types a data property.
func (r *Resolver) ResolveData(p *ontology.DataProperty) Resolved {
	res := Resolved{IRI: p.IRI, Kind: Data, Cardinality: cardinality(p.Functional)}
	res.Value = dataValueType(p.Ranges)
	return res
}

func (r *Resolver) objectValueType(ranges []ontology.ClassExpression, card Cardinality) ValueType {
	fallback := ValueType{Kind: Fallback, GoType: FallbackIndividual}

	var distinct []ontology.ClassExpression
	var namedSeen []ontology.IRI
	for _, e := range ranges {
		if n, ok := e.(*ontology.NamedClass); ok {
			if slices.Contains(namedSeen, n.IRI) {
				continue
			}
			namedSeen = append(namedSeen, n.IRI)
		}
		distinct = append(distinct, e)
	}
	if len(distinct) != 1 {
		return fallback
	}

	n, ok := distinct[0].(*ontology.NamedClass)
	if !ok || !r.generated[n.IRI] {
		return fallback
	}
	return ValueType{
		Kind:    ClassRef,
		GoType:  r.names.ClassName(n.IRI),
		Class:   n.IRI,
		Bounded: r.opts.Bounded && card == Multi,
	}
}

// datatypeRule maps a datatype to its Go type. Rules are checked in order.
type datatypeRule struct {
	matches func(ontology.IRI) bool
	goType  string
}

var datatypeRules = []datatypeRule{
	{func(dt ontology.IRI) bool { return dt == ontology.XSDBoolean }, "bool"},
	{func(dt ontology.IRI) bool { return dt == ontology.XSDDouble }, "float64"},
	{func(dt ontology.IRI) bool { return dt == ontology.XSDFloat }, "float32"},
	// Any datatype whose local name is exactly "int" is an integer too.
	{func(dt ontology.IRI) bool { return dt == ontology.XSDInteger || dt.Fragment() == "int" }, "int"},
	{func(dt ontology.IRI) bool { return dt == ontology.XSDString }, "string"},
}

func dataValueType(ranges []ontology.DataRange) ValueType {
	fallback := ValueType{Kind: Fallback, GoType: FallbackLiteral}

	var distinct []ontology.DataRange
	var seen []ontology.IRI
	for _, r := range ranges {
		if dt, ok := r.(*ontology.Datatype); ok {
			if slices.Contains(seen, dt.IRI) {
				continue
			}
			seen = append(seen, dt.IRI)
		}
		distinct = append(distinct, r)
	}
	if len(distinct) != 1 {
		return fallback
	}

	dt, ok := distinct[0].(*ontology.Datatype)
	if !ok {
		return fallback
	}
	for _, rule := range datatypeRules {
		if rule.matches(dt.IRI) {
			return ValueType{Kind: Primitive, GoType: rule.goType, Datatype: dt.IRI}
		}
	}
	return fallback
}

func hasNamedDomain(domains []ontology.ClassExpression, class ontology.IRI) bool {
	for _, d := range domains {
		if n, ok := d.(*ontology.NamedClass); ok && n.IRI == class {
			return true
		}
	}
	return false
}

func cardinality(functional bool) Cardinality {
	if functional {
		return Single
	}
	return Multi
}
