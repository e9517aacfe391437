package ontology

import (
	"slices"
)

// ClassExpression is a named class or an anonymous class description.
type ClassExpression interface {
	// IsAnonymous reports whether the expression is not a named class.
	IsAnonymous() bool
	collect(sig *signature)
}

// DataRange is a datatype or an anonymous enumeration of literals.
type DataRange interface {
	IsAnonymous() bool
}

// Literal is a lexical value with an optional datatype.
type Literal struct {
	Lexical  string
	Datatype IRI
}

// NamedClass references a class by IRI.
type NamedClass struct {
	IRI IRI
}

func (c *NamedClass) IsAnonymous() bool    { return false }
func (c *NamedClass) collect(sig *signature) {}

// RestrictionKind enumerates property restriction forms.
type RestrictionKind int

const (
	SomeValuesFrom RestrictionKind = iota
	AllValuesFrom
	HasValue
	MinCardinality
	MaxCardinality
	ExactCardinality
)

var restrictionKindNames = map[RestrictionKind]string{
	SomeValuesFrom:   "some",
	AllValuesFrom:    "all",
	HasValue:         "value",
	MinCardinality:   "min",
	MaxCardinality:   "max",
	ExactCardinality: "exactly",
}

func (k RestrictionKind) String() string {
	return restrictionKindNames[k]
}

// ObjectRestriction restricts an object property. Filler is nil for
// unqualified cardinality restrictions; Value is set for HasValue.
type ObjectRestriction struct {
	Kind        RestrictionKind
	Property    IRI
	Filler      ClassExpression
	Cardinality int
	Value       IRI
}

func (r *ObjectRestriction) IsAnonymous() bool { return true }

func (r *ObjectRestriction) collect(sig *signature) {
	sig.objects = append(sig.objects, r.Property)
	if r.Filler != nil {
		r.Filler.collect(sig)
	}
}

// DataRestriction restricts a data property.
type DataRestriction struct {
	Kind        RestrictionKind
	Property    IRI
	Range       DataRange
	Cardinality int
	Value       Literal
}

func (r *DataRestriction) IsAnonymous() bool { return true }

func (r *DataRestriction) collect(sig *signature) {
	sig.data = append(sig.data, r.Property)
}

// JunctionOp selects intersection or union.
type JunctionOp int

const (
	IntersectionOf JunctionOp = iota
	UnionOf
)

// Junction is an intersection or union of class expressions.
type Junction struct {
	Op       JunctionOp
	Operands []ClassExpression
}

func (j *Junction) IsAnonymous() bool { return true }

func (j *Junction) collect(sig *signature) {
	for _, op := range j.Operands {
		op.collect(sig)
	}
}

// Complement is the complement of a class expression.
type Complement struct {
	Operand ClassExpression
}

func (c *Complement) IsAnonymous() bool { return true }

func (c *Complement) collect(sig *signature) {
	c.Operand.collect(sig)
}

// OneOf enumerates individuals.
type OneOf struct {
	Individuals []IRI
}

func (o *OneOf) IsAnonymous() bool      { return true }
func (o *OneOf) collect(sig *signature) {}

// Datatype references a datatype by IRI.
type Datatype struct {
	IRI IRI
}

func (d *Datatype) IsAnonymous() bool { return false }

// DataOneOf enumerates literals.
type DataOneOf struct {
	Values []Literal
}

func (d *DataOneOf) IsAnonymous() bool { return true }

type signature struct {
	objects []IRI
	data    []IRI
}

// ObjectPropertiesInSignature returns the object properties mentioned in e,
// sorted and deduplicated.
func ObjectPropertiesInSignature(e ClassExpression) []IRI {
	var sig signature
	e.collect(&sig)
	return sortedUnique(sig.objects)
}

// DataPropertiesInSignature returns the data properties mentioned in e,
// sorted and deduplicated.
func DataPropertiesInSignature(e ClassExpression) []IRI {
	var sig signature
	e.collect(&sig)
	return sortedUnique(sig.data)
}

// NamedOperands returns the named classes directly entailed as supers by e:
// e itself when named, or the named operands of an intersection.
func NamedOperands(e ClassExpression) []IRI {
	switch x := e.(type) {
	case *NamedClass:
		return []IRI{x.IRI}
	case *Junction:
		if x.Op != IntersectionOf {
			return nil
		}
		var out []IRI
		for _, op := range x.Operands {
			if n, ok := op.(*NamedClass); ok {
				out = append(out, n.IRI)
			}
		}
		return out
	}
	return nil
}

func sortedUnique(iris []IRI) []IRI {
	if len(iris) == 0 {
		return nil
	}
	out := slices.Clone(iris)
	slices.Sort(out)
	return slices.Compact(out)
}
