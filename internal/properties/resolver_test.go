package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/ontogen/internal/ontology"
)

const ns = "http://example.org/zoo#"

type localNamer struct{}

func (localNamer) ClassName(iri ontology.IRI) string { return iri.Fragment() }

func named(local string) *ontology.NamedClass {
	return &ontology.NamedClass{IRI: ontology.IRI(ns + local)}
}

func datatype(iri ontology.IRI) *ontology.Datatype {
	return &ontology.Datatype{IRI: iri}
}

func newResolver(o *ontology.Ontology, opts Options) *Resolver {
	set := ontology.NewSet(o)
	return NewResolver(NewIndex(set), set, set.Classes(), localNamer{}, opts)
}

func TestResolveDomainAndRestrictionProperties(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			{IRI: ns + "Person"},
			{IRI: ns + "Dog", SuperClasses: []ontology.ClassExpression{
				named("Animal"),
				&ontology.ObjectRestriction{Kind: ontology.SomeValuesFrom, Property: ns + "owner", Filler: named("Person")},
				&ontology.DataRestriction{Kind: ontology.MaxCardinality, Property: ns + "nickname", Cardinality: 2},
			}},
		},
		ObjectProperties: []*ontology.ObjectProperty{
			{IRI: ns + "owner", Functional: true, Domains: []ontology.ClassExpression{named("Dog")}, Ranges: []ontology.ClassExpression{named("Person")}},
			{IRI: ns + "friend", Ranges: []ontology.ClassExpression{named("Dog")}},
			{IRI: ns + "chases", Domains: []ontology.ClassExpression{named("Dog")}},
		},
		DataProperties: []*ontology.DataProperty{
			{IRI: ns + "nickname", Ranges: []ontology.DataRange{datatype(ontology.XSDString)}},
			{IRI: ns + "age", Functional: true, Domains: []ontology.ClassExpression{named("Dog")}, Ranges: []ontology.DataRange{datatype(ontology.XSDInteger)}},
		},
	}
	r := newResolver(o, Options{})

	objects, data := r.Resolve(ns + "Dog")

	require.Len(t, objects, 2)
	assert.Equal(t, ontology.IRI(ns+"chases"), objects[0].IRI)
	assert.Equal(t, ontology.IRI(ns+"owner"), objects[1].IRI)
	assert.Equal(t, Single, objects[1].Cardinality)
	assert.Equal(t, ValueType{Kind: ClassRef, GoType: "Person", Class: ns + "Person"}, objects[1].Value)
	assert.Equal(t, Fallback, objects[0].Value.Kind)
	assert.Equal(t, FallbackIndividual, objects[0].Value.GoType)

	require.Len(t, data, 2)
	assert.Equal(t, ontology.IRI(ns+"age"), data[0].IRI)
	assert.Equal(t, "int", data[0].Value.GoType)
	assert.Equal(t, ontology.IRI(ns+"nickname"), data[1].IRI)
	assert.Equal(t, Multi, data[1].Cardinality)
	assert.Equal(t, "string", data[1].Value.GoType)
}

func TestObjectRangeFallbacks(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			{IRI: ns + "Person"},
			{IRI: ns + "Dog"},
		},
	}
	r := newResolver(o, Options{Bounded: true})

	tests := []struct {
		name     string
		prop     *ontology.ObjectProperty
		expected ValueType
	}{
		{
			name:     "two ranges",
			prop:     &ontology.ObjectProperty{IRI: ns + "p", Ranges: []ontology.ClassExpression{named("Dog"), named("Person")}},
			expected: ValueType{Kind: Fallback, GoType: FallbackIndividual},
		},
		{
			name:     "no range",
			prop:     &ontology.ObjectProperty{IRI: ns + "p"},
			expected: ValueType{Kind: Fallback, GoType: FallbackIndividual},
		},
		{
			name:     "anonymous range",
			prop:     &ontology.ObjectProperty{IRI: ns + "p", Ranges: []ontology.ClassExpression{&ontology.Complement{Operand: named("Dog")}}},
			expected: ValueType{Kind: Fallback, GoType: FallbackIndividual},
		},
		{
			name:     "thing range",
			prop:     &ontology.ObjectProperty{IRI: ns + "p", Ranges: []ontology.ClassExpression{&ontology.NamedClass{IRI: ontology.Thing}}},
			expected: ValueType{Kind: Fallback, GoType: FallbackIndividual},
		},
		{
			name:     "duplicate range collapses",
			prop:     &ontology.ObjectProperty{IRI: ns + "p", Ranges: []ontology.ClassExpression{named("Dog"), named("Dog")}},
			expected: ValueType{Kind: ClassRef, GoType: "Dog", Class: ns + "Dog", Bounded: true},
		},
		{
			name:     "functional is never bounded",
			prop:     &ontology.ObjectProperty{IRI: ns + "p", Functional: true, Ranges: []ontology.ClassExpression{named("Dog")}},
			expected: ValueType{Kind: ClassRef, GoType: "Dog", Class: ns + "Dog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.ResolveObject(tt.prop).Value)
		})
	}
}

func TestDataRangePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		ranges   []ontology.DataRange
		expected string
	}{
		{"boolean", []ontology.DataRange{datatype(ontology.XSDBoolean)}, "bool"},
		{"double", []ontology.DataRange{datatype(ontology.XSDDouble)}, "float64"},
		{"float", []ontology.DataRange{datatype(ontology.XSDFloat)}, "float32"},
		{"integer", []ontology.DataRange{datatype(ontology.XSDInteger)}, "int"},
		{"xsd int", []ontology.DataRange{datatype(ontology.XSDInt)}, "int"},
		{"custom int", []ontology.DataRange{datatype("http://example.org/types#int")}, "int"},
		{"string", []ontology.DataRange{datatype(ontology.XSDString)}, "string"},
		{"date", []ontology.DataRange{datatype(ontology.XSDNamespace + "date")}, FallbackLiteral},
		{"two ranges", []ontology.DataRange{datatype(ontology.XSDString), datatype(ontology.XSDInteger)}, FallbackLiteral},
		{"enumeration", []ontology.DataRange{&ontology.DataOneOf{Values: []ontology.Literal{{Lexical: "a"}}}}, FallbackLiteral},
		{"none", nil, FallbackLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dataValueType(tt.ranges).GoType)
		})
	}
}

func TestIndexIsSorted(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		ObjectProperties: []*ontology.ObjectProperty{
			{IRI: ns + "zeta"}, {IRI: ns + "alpha"},
		},
	}
	idx := NewIndex(ontology.NewSet(o))

	require.Len(t, idx.ObjectProperties(), 2)
	assert.Equal(t, ontology.IRI(ns+"alpha"), idx.ObjectProperties()[0].IRI)
	_, ok := idx.DataProperty(ns + "alpha")
	assert.False(t, ok)
}
