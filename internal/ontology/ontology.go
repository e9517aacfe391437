package ontology

// Ontology is one loaded ontology document.
type Ontology struct {
	IRI IRI
	// Prefixes maps alias (without the trailing ':') to namespace.
	Prefixes map[string]string
	// Imports lists the IRIs of directly imported ontologies.
	Imports []IRI

	Classes          []*ClassAxioms
	ObjectProperties []*ObjectProperty
	DataProperties   []*DataProperty
	Individuals      []*Individual
}

// ClassAxioms are the told axioms about one class within one ontology.
type ClassAxioms struct {
	IRI               IRI
	SuperClasses      []ClassExpression
	EquivalentClasses []ClassExpression
	DisjointWith      []IRI
}

// ObjectProperty is an object property declaration.
type ObjectProperty struct {
	IRI        IRI
	Functional bool
	Domains    []ClassExpression
	Ranges     []ClassExpression
}

// DataProperty is a data property declaration.
type DataProperty struct {
	IRI        IRI
	Functional bool
	Domains    []ClassExpression
	Ranges     []DataRange
}

// Individual is a named individual with its assertions.
type Individual struct {
	IRI     IRI
	Types   []IRI
	Objects []ObjectAssertion
	Data    []DataAssertion
}

// ObjectAssertion relates an individual to another through a property.
type ObjectAssertion struct {
	Property IRI
	Object   IRI
}

// DataAssertion attaches a literal to an individual through a property.
type DataAssertion struct {
	Property IRI
	Value    Literal
}

// Store is the read-only query surface over an ontology and its imports
// closure.
type Store interface {
	Root() *Ontology
	// Ontologies returns the root followed by its transitive imports.
	Ontologies() []*Ontology
	// Classes returns every named class in the signature, sorted by IRI.
	Classes() []IRI
	HasClass(iri IRI) bool
	SuperClasses(iri IRI) []ClassExpression
	EquivalentClasses(iri IRI) []ClassExpression
	DisjointClasses(iri IRI) []IRI
	ObjectProperties() []*ObjectProperty
	DataProperties() []*DataProperty
	Individuals() []*Individual
}

// Node is a set of mutually equivalent classes in a reasoner's hierarchy.
type Node interface {
	Key() string
	Classes() []IRI
	Representative() IRI
	Contains(iri IRI) bool
	IsTop() bool
	IsBottom() bool
}

// Reasoner answers hierarchy queries over a Store.
type Reasoner interface {
	TopNode() Node
	// UnsatisfiableNode is the bottom node: owl:Nothing and every
	// unsatisfiable class.
	UnsatisfiableNode() Node
	// DirectSubNodes returns the direct subclass nodes of n in a
	// deterministic order. Leaf nodes have the bottom node as only child.
	DirectSubNodes(n Node) []Node
	IsSatisfiable(iri IRI) bool
}
