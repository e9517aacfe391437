// Package plan decides which artifacts a run produces and what each one
// contains. Plans are pure data; rendering happens in package codegen.
package plan

import (
	"github.com/conduit-lang/ontogen/internal/naming"
	"github.com/conduit-lang/ontogen/internal/ontology"
	"github.com/conduit-lang/ontogen/internal/properties"
)

// ArtifactKind enumerates generated artifacts.
type ArtifactKind int

const (
	Interface ArtifactKind = iota
	Implementation
	UserInterface
	UserImplementation
	Vocabulary
	Factory
)

var artifactKindNames = map[ArtifactKind]string{
	Interface:          "interface",
	Implementation:     "implementation",
	UserInterface:      "user-interface",
	UserImplementation: "user-implementation",
	Vocabulary:         "vocabulary",
	Factory:            "factory",
}

func (k ArtifactKind) String() string { return artifactKindNames[k] }

// UserOwned reports whether artifacts of this kind are written once and
// then left to the user.
func (k ArtifactKind) UserOwned() bool {
	return k == UserInterface || k == UserImplementation
}

// AccessorKind enumerates the methods generated per property.
type AccessorKind int

const (
	Getter AccessorKind = iota
	PropertyObject
	Presence
	Iterator
	Add
	Remove
	Setter
)

// Accessor is one generated method.
type Accessor struct {
	Kind   AccessorKind
	Method string
}

// PropertyPlan is a property as it appears on a generated type.
type PropertyPlan struct {
	properties.Resolved
	// Name is the resolved property identifier.
	Name string
	// Stem is the exported form of Name used in method names.
	Stem string
	// Constant is the vocabulary constant holding the property IRI.
	Constant  string
	Accessors []Accessor
}

// Method returns the method name for an accessor kind, or "" when the
// property has no such accessor.
func (p PropertyPlan) Method(kind AccessorKind) string {
	for _, a := range p.Accessors {
		if a.Kind == kind {
			return a.Method
		}
	}
	return ""
}

// Supertype is an embedded interface or implementation.
type Supertype struct {
	Name string
	// Generic marks runtime.Individual or runtime.BaseIndividual.
	Generic bool
}

// ClassPlan describes the generated surface of one class.
type ClassPlan struct {
	IRI ontology.IRI
	// Name is the plain class name used by references and user types.
	Name string
	// InterfaceName and ImplName are the generated type names; they carry
	// the abstract marker in abstract mode.
	InterfaceName string
	ImplName      string
	// UserImplName is the plain implementation name.
	UserImplName string
	Constant     string

	Interfaces []Supertype
	Base       Supertype

	ObjectProperties []PropertyPlan
	DataProperties   []PropertyPlan
	// Inherited holds accessors of ancestors the implementation cannot
	// reach through Base, so it still satisfies every embedded interface.
	Inherited []PropertyPlan
}

// Properties returns object then data properties.
func (c *ClassPlan) Properties() []PropertyPlan {
	out := make([]PropertyPlan, 0, len(c.ObjectProperties)+len(c.DataProperties))
	out = append(out, c.ObjectProperties...)
	return append(out, c.DataProperties...)
}

// Constructor is the name of the generated implementation constructor.
func (c *ClassPlan) Constructor() string { return "New" + c.ImplName }

// UserConstructor constructs the plain implementation, which is what
// getters and factories return.
func (c *ClassPlan) UserConstructor() string { return "New" + c.UserImplName }

// Artifact is one planned output.
type Artifact struct {
	Kind ArtifactKind
	// Name is the primary type name the artifact declares.
	Name  string
	Class *ClassPlan
}

// TermKind classifies vocabulary terms.
type TermKind int

const (
	ClassTerm TermKind = iota
	ObjectPropertyTerm
	DataPropertyTerm
)

// Term is one vocabulary constant.
type Term struct {
	Constant string
	Kind     TermKind
	IRI      ontology.IRI
}

// VocabularyPlan lists every constant of the vocabulary file.
type VocabularyPlan struct {
	Namespace string
	Terms     []Term
}

// FactoryEntry is the factory surface for one class.
type FactoryEntry struct {
	Class  *ClassPlan
	Create string
	Get    string
	GetAll string
}

// FactoryPlan describes the factory type.
type FactoryPlan struct {
	Name    string
	Entries []FactoryEntry
}

// Plan is everything one run generates.
type Plan struct {
	Package    string
	Namespace  string
	SetMode    bool
	Classes    []*ClassPlan
	Artifacts  []Artifact
	Vocabulary *VocabularyPlan
	Factory    *FactoryPlan
	Collisions []naming.Collision
}
