// Package runtime is the support library imported by generated ontology code.
//
// Generated interfaces embed Individual, generated implementations embed
// *BaseIndividual (directly or through a superclass implementation), and all
// reads and writes go through a Store. Literal values cross the Store boundary
// as Literal and are converted with the fixed codec table in literal.go.
package runtime

import (
	"strings"

	"github.com/google/uuid"
)

// Class is the IRI of an ontology class.
type Class string

// ObjectProperty is the IRI of an object property.
type ObjectProperty string

// DataProperty is the IRI of a data property.
type DataProperty string

// String returns the IRI
func (c Class) String() string { return string(c) }

// String returns the IRI
func (p ObjectProperty) String() string { return string(p) }

// String returns the IRI
func (p DataProperty) String() string { return string(p) }

// LocalName returns the part of an IRI after the last '#', or after the last
// '/' when the IRI has no fragment.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// IndividualIRI builds the IRI of a new individual in namespace. An empty
// name yields a random UUID local name.
func IndividualIRI(namespace, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = uuid.NewString()
	}
	return namespace + name
}
