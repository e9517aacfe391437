// Package properties decides which properties apply to a class and how each
// one is typed in generated code.
package properties

import (
	"github.com/conduit-lang/ontogen/internal/ontology"
)

// Kind distinguishes object from data properties.
type Kind int

const (
	Object Kind = iota
	Data
)

func (k Kind) String() string {
	if k == Data {
		return "data"
	}
	return "object"
}

// Cardinality is Single for functional properties, Multi otherwise.
type Cardinality int

const (
	Multi Cardinality = iota
	Single
)

func (c Cardinality) String() string {
	if c == Single {
		return "single"
	}
	return "multi"
}

// TypeKind classifies a value type.
type TypeKind int

const (
	// Fallback is the generic individual or literal type.
	Fallback TypeKind = iota
	// Primitive is a native Go type for a known datatype.
	Primitive
	// ClassRef refers to a generated class.
	ClassRef
)

func (k TypeKind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case ClassRef:
		return "class"
	}
	return "fallback"
}

// Generic Go types used when a property's values cannot be typed more
// precisely.
const (
	FallbackIndividual = "runtime.Individual"
	FallbackLiteral    = "runtime.Literal"
)

// ValueType is the element type of a property's values.
type ValueType struct {
	Kind TypeKind
	// GoType is the Go spelling of the element type, e.g. "int",
	// "Person" or "runtime.Individual".
	GoType string
	// Class is set for ClassRef.
	Class ontology.IRI
	// Datatype is set for Primitive.
	Datatype ontology.IRI
	// Bounded marks a multi-valued class-typed property whose elements may
	// be any subclass of Class.
	Bounded bool
}

// Resolved is one property applicable to a class.
type Resolved struct {
	IRI         ontology.IRI
	Kind        Kind
	Cardinality Cardinality
	Value       ValueType
}
