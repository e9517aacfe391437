// Package ontology holds the in-memory ontology model consumed by the
// generator: named classes and their told axioms, object and data
// properties, individuals, and the merged view over an ontology and its
// imports.
package ontology

import "strings"

// IRI identifies an ontology entity.
type IRI string

// Well-known vocabularies.
const (
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	Thing   IRI = OWLNamespace + "Thing"
	Nothing IRI = OWLNamespace + "Nothing"

	XSDString  IRI = XSDNamespace + "string"
	XSDBoolean IRI = XSDNamespace + "boolean"
	XSDDouble  IRI = XSDNamespace + "double"
	XSDFloat   IRI = XSDNamespace + "float"
	XSDInteger IRI = XSDNamespace + "integer"
	XSDInt     IRI = XSDNamespace + "int"
)

// WellKnownPrefixes are always available to documents.
var WellKnownPrefixes = map[string]string{
	"owl":  OWLNamespace,
	"rdfs": RDFSNamespace,
	"xsd":  XSDNamespace,
}

func (i IRI) String() string { return string(i) }

// Fragment returns the text after the last '#', or after the last '/' when
// there is no '#'.
func (i IRI) Fragment() string {
	s := string(i)
	if idx := strings.LastIndex(s, "#"); idx >= 0 {
		return s[idx+1:]
	}
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// IsBuiltIn reports whether the IRI is owl:Thing or owl:Nothing.
func (i IRI) IsBuiltIn() bool {
	return i == Thing || i == Nothing
}

// Namespace returns the hash namespace of an ontology IRI.
func Namespace(ontologyIRI IRI) string {
	return string(ontologyIRI) + "#"
}
