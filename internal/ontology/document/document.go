// Package document reads ontology documents into the ontology model.
//
// A document is YAML, JSON or TOML with the same shape in every format:
//
//	ontology: http://example.org/zoo
//	prefixes:
//	  zoo: http://example.org/zoo#
//	imports: [people.yaml]
//	classes:
//	  Dog:
//	    subClassOf: [Animal, {some: {property: hasOwner, class: Person}}]
//	    disjointWith: [Cat]
//	objectProperties:
//	  hasOwner: {functional: true, domain: [Dog], range: [Person]}
//	dataProperties:
//	  age: {functional: true, domain: [Animal], range: ["xsd:integer"]}
//	individuals:
//	  rex: {types: [Dog], objects: {hasOwner: [alice]}, data: {age: [3]}}
//
// Names without a scheme resolve against the ontology namespace; "p:local"
// resolves through the document prefixes and the owl, rdfs and xsd prefixes.
package document

// rawDocument is the format-neutral decoding target.
type rawDocument struct {
	Ontology         string                   `yaml:"ontology" json:"ontology" toml:"ontology"`
	Prefixes         map[string]string        `yaml:"prefixes" json:"prefixes" toml:"prefixes"`
	Imports          []string                 `yaml:"imports" json:"imports" toml:"imports"`
	Classes          map[string]rawClass      `yaml:"classes" json:"classes" toml:"classes"`
	ObjectProperties map[string]rawProperty   `yaml:"objectProperties" json:"objectProperties" toml:"objectProperties"`
	DataProperties   map[string]rawProperty   `yaml:"dataProperties" json:"dataProperties" toml:"dataProperties"`
	Individuals      map[string]rawIndividual `yaml:"individuals" json:"individuals" toml:"individuals"`
}

type rawClass struct {
	SubClassOf   []any    `yaml:"subClassOf" json:"subClassOf" toml:"subClassOf"`
	EquivalentTo []any    `yaml:"equivalentTo" json:"equivalentTo" toml:"equivalentTo"`
	DisjointWith []string `yaml:"disjointWith" json:"disjointWith" toml:"disjointWith"`
}

type rawProperty struct {
	Functional bool  `yaml:"functional" json:"functional" toml:"functional"`
	Domain     []any `yaml:"domain" json:"domain" toml:"domain"`
	Range      []any `yaml:"range" json:"range" toml:"range"`
}

type rawIndividual struct {
	Types   []string            `yaml:"types" json:"types" toml:"types"`
	Objects map[string][]string `yaml:"objects" json:"objects" toml:"objects"`
	Data    map[string][]any    `yaml:"data" json:"data" toml:"data"`
}
