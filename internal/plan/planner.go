package plan

import (
	"fmt"
	"slices"

	"github.com/conduit-lang/ontogen/internal/naming"
	"github.com/conduit-lang/ontogen/internal/ontology"
	"github.com/conduit-lang/ontogen/internal/properties"
)

// DefaultFactoryName names the factory type when none is configured.
const DefaultFactoryName = "Factory"

// Existence reports whether an artifact is already present at its target.
type Existence interface {
	Exists(kind ArtifactKind, name string) bool
}

// Options controls planning.
type Options struct {
	Package      string
	AbstractMode bool
	SetMode      bool
	FactoryName  string
}

// Planner builds class, vocabulary and factory plans.
type Planner struct {
	store     ontology.Store
	names     *naming.Resolver
	props     *properties.Resolver
	index     *properties.Index
	classes   []ontology.IRI
	generated map[ontology.IRI]bool
	exists    Existence
	opts      Options

	constants map[ontology.IRI]string
	plans     map[ontology.IRI]*ClassPlan
	vocab     *VocabularyPlan
}

// NewPlanner creates a planner for classes, which must be the walker's
// output in generation order.
func NewPlanner(store ontology.Store, names *naming.Resolver, index *properties.Index, props *properties.Resolver, classes []ontology.IRI, exists Existence, opts Options) *Planner {
	if opts.FactoryName == "" {
		opts.FactoryName = DefaultFactoryName
	}
	p := &Planner{
		store:     store,
		names:     names,
		props:     props,
		index:     index,
		classes:   classes,
		generated: make(map[ontology.IRI]bool, len(classes)),
		exists:    exists,
		opts:      opts,
		constants: make(map[ontology.IRI]string),
		plans:     make(map[ontology.IRI]*ClassPlan),
	}
	for _, c := range classes {
		p.generated[c] = true
	}
	p.vocab = p.planVocabulary()
	return p
}

// Plan plans every class plus the vocabulary and factory.
func (p *Planner) Plan() *Plan {
	out := &Plan{
		Package:    p.opts.Package,
		Namespace:  ontology.Namespace(p.store.Root().IRI),
		SetMode:    p.opts.SetMode,
		Vocabulary: p.vocab,
	}

	for _, c := range p.classes {
		cp, artifacts := p.PlanClass(c)
		out.Classes = append(out.Classes, cp)
		out.Artifacts = append(out.Artifacts, artifacts...)
	}

	out.Artifacts = append(out.Artifacts, Artifact{Kind: Vocabulary, Name: "vocabulary"})

	out.Factory = p.planFactory(out.Classes)
	out.Artifacts = append(out.Artifacts, Artifact{Kind: Factory, Name: out.Factory.Name})

	var objectIRIs, dataIRIs []ontology.IRI
	for _, op := range p.index.ObjectProperties() {
		objectIRIs = append(objectIRIs, op.IRI)
	}
	for _, dp := range p.index.DataProperties() {
		dataIRIs = append(dataIRIs, dp.IRI)
	}
	out.Collisions = p.names.Collisions(p.classes, objectIRIs, dataIRIs)
	out.Collisions = append(out.Collisions, p.packageCollisions(out)...)

	return out
}

// PlanClass plans one class and returns the artifacts it needs.
func (p *Planner) PlanClass(iri ontology.IRI) (*ClassPlan, []Artifact) {
	cp := p.classPlan(iri)

	artifacts := []Artifact{
		{Kind: Interface, Name: cp.InterfaceName, Class: cp},
		{Kind: Implementation, Name: cp.ImplName, Class: cp},
	}
	if p.opts.AbstractMode {
		if !p.exists.Exists(UserInterface, cp.Name) {
			artifacts = append(artifacts, Artifact{Kind: UserInterface, Name: cp.Name, Class: cp})
		}
		if !p.exists.Exists(UserImplementation, cp.UserImplName) {
			artifacts = append(artifacts, Artifact{Kind: UserImplementation, Name: cp.UserImplName, Class: cp})
		}
	}
	return cp, artifacts
}

func (p *Planner) classPlan(iri ontology.IRI) *ClassPlan {
	if cp, ok := p.plans[iri]; ok {
		return cp
	}

	cp := &ClassPlan{
		IRI:           iri,
		Name:          p.names.ClassName(iri),
		InterfaceName: p.names.PossiblyAbstract(iri),
		ImplName:      p.names.PossiblyAbstractImplementation(iri),
		UserImplName:  p.names.Implementation(iri),
		Constant:      p.constants[iri],
	}
	p.plans[iri] = cp

	supers := p.supertypes(iri)
	for _, s := range supers {
		cp.Interfaces = append(cp.Interfaces, Supertype{Name: p.names.ClassName(s)})
	}
	if len(cp.Interfaces) == 0 {
		cp.Interfaces = []Supertype{{Name: "Individual", Generic: true}}
	}
	if len(supers) == 1 {
		cp.Base = Supertype{Name: p.names.Implementation(supers[0])}
	} else {
		cp.Base = Supertype{Name: "BaseIndividual", Generic: true}
	}

	objects, data := p.props.Resolve(iri)
	for _, r := range objects {
		cp.ObjectProperties = append(cp.ObjectProperties, p.propertyPlan(r))
	}
	for _, r := range data {
		cp.DataProperties = append(cp.DataProperties, p.propertyPlan(r))
	}

	if len(supers) > 1 {
		cp.Inherited = p.inherited(iri, cp)
	}
	return cp
}

// supertypes returns the told named superclasses of iri that get
// interfaces. A superclass in a subclass cycle with iri is equivalent to
// it and left out, so generated types never embed each other.
func (p *Planner) supertypes(iri ontology.IRI) []ontology.IRI {
	var out []ontology.IRI
	for _, s := range p.told(iri) {
		if p.reaches(s, iri) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// reaches reports whether to is from or one of its told generated
// ancestors.
func (p *Planner) reaches(from, to ontology.IRI) bool {
	seen := make(map[ontology.IRI]bool)
	queue := []ontology.IRI{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == to {
			return true
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		queue = append(queue, p.told(c)...)
	}
	return false
}

// told returns the generated named superclasses of iri, excluding
// owl:Thing.
func (p *Planner) told(iri ontology.IRI) []ontology.IRI {
	var out []ontology.IRI
	for _, s := range ontology.NamedSuperClasses(p.store, iri) {
		if s.IsBuiltIn() || s == iri || !p.generated[s] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// inherited collects the properties of every ancestor of iri, breadth
// first, skipping those cp already declares.
func (p *Planner) inherited(iri ontology.IRI, cp *ClassPlan) []PropertyPlan {
	var seen []ontology.IRI
	for _, prop := range cp.Properties() {
		seen = append(seen, prop.IRI)
	}

	var out []PropertyPlan
	visited := map[ontology.IRI]bool{iri: true}
	queue := p.supertypes(iri)
	for len(queue) > 0 {
		anc := queue[0]
		queue = queue[1:]
		if visited[anc] {
			continue
		}
		visited[anc] = true

		objects, data := p.props.Resolve(anc)
		for _, r := range append(objects, data...) {
			if slices.Contains(seen, r.IRI) {
				continue
			}
			seen = append(seen, r.IRI)
			out = append(out, p.propertyPlan(r))
		}
		queue = append(queue, p.supertypes(anc)...)
	}
	return out
}

func (p *Planner) propertyPlan(r properties.Resolved) PropertyPlan {
	name := p.names.ResolveProperty(r.IRI).Identifier
	stem := p.names.Accessor(r.IRI)

	pp := PropertyPlan{
		Resolved: r,
		Name:     name,
		Stem:     stem,
		Constant: p.constants[r.IRI],
	}
	pp.Accessors = []Accessor{
		{Kind: Getter, Method: "Get" + stem},
		{Kind: PropertyObject, Method: "Get" + stem + "Property"},
		{Kind: Presence, Method: "Has" + stem},
	}
	if r.Cardinality == properties.Multi {
		pp.Accessors = append(pp.Accessors,
			Accessor{Kind: Iterator, Method: "List" + stem},
			Accessor{Kind: Add, Method: "Add" + stem},
			Accessor{Kind: Remove, Method: "Remove" + stem},
		)
	}
	pp.Accessors = append(pp.Accessors, Accessor{Kind: Setter, Method: "Set" + stem})
	return pp
}

// planVocabulary assigns a constant to every class and property. Later
// duplicates of a constant name get the smallest numeric suffix that no
// earlier constant uses.
func (p *Planner) planVocabulary() *VocabularyPlan {
	v := &VocabularyPlan{Namespace: ontology.Namespace(p.store.Root().IRI)}
	taken := make(map[string]bool)

	add := func(kind TermKind, iri ontology.IRI, base string) {
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s%d", base, n)
		}
		taken[name] = true
		p.constants[iri] = name
		v.Terms = append(v.Terms, Term{Constant: name, Kind: kind, IRI: iri})
	}

	for _, c := range p.classes {
		add(ClassTerm, c, "Class"+naming.Capitalize(p.names.ClassName(c)))
	}
	for _, op := range p.index.ObjectProperties() {
		add(ObjectPropertyTerm, op.IRI, "ObjectProperty"+p.names.Accessor(op.IRI))
	}
	for _, dp := range p.index.DataProperties() {
		add(DataPropertyTerm, dp.IRI, "DataProperty"+p.names.Accessor(dp.IRI))
	}
	return v
}

func (p *Planner) planFactory(classes []*ClassPlan) *FactoryPlan {
	f := &FactoryPlan{Name: p.opts.FactoryName}
	for _, cp := range classes {
		stem := naming.Capitalize(cp.Name)
		f.Entries = append(f.Entries, FactoryEntry{
			Class:  cp,
			Create: "Create" + stem,
			Get:    "Get" + stem,
			GetAll: "GetAll" + stem + "Instances",
		})
	}
	return f
}

// reservedNames are package-level identifiers every generated package
// declares or imports.
var reservedNames = []string{"Namespace", "context", "fmt", "iter", "runtime", "strings"}

// packageCollisions reports package-level identifiers declared by more than
// one generated entity, or by an entity and the fixed vocabulary and
// factory declarations. Clashes between the same identifier role of two
// classes are already class collisions and are skipped.
func (p *Planner) packageCollisions(plan *Plan) []naming.Collision {
	type owner struct {
		iri  ontology.IRI
		role string
	}
	byName := make(map[string][]owner)
	var order []string
	declare := func(name string, o owner) {
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		if !slices.Contains(byName[name], o) {
			byName[name] = append(byName[name], o)
		}
	}

	for _, name := range reservedNames {
		declare(name, owner{role: "reserved"})
	}
	declare(plan.Factory.Name, owner{role: "reserved"})
	declare("New"+plan.Factory.Name, owner{role: "reserved"})

	for _, cp := range plan.Classes {
		declare(cp.InterfaceName, owner{cp.IRI, "interface"})
		declare(cp.ImplName, owner{cp.IRI, "implementation"})
		declare(cp.Constructor(), owner{cp.IRI, "constructor"})
		if p.opts.AbstractMode {
			declare(cp.Name, owner{cp.IRI, "interface"})
			declare(cp.UserImplName, owner{cp.IRI, "implementation"})
			declare(cp.UserConstructor(), owner{cp.IRI, "constructor"})
		}
	}
	for _, t := range plan.Vocabulary.Terms {
		declare(t.Constant, owner{t.IRI, "constant"})
	}

	var out []naming.Collision
	for _, name := range order {
		owners := byName[name]
		if len(owners) < 2 {
			continue
		}
		sameRole := true
		var iris []ontology.IRI
		for _, o := range owners {
			sameRole = sameRole && o.role == owners[0].role
			if o.iri != "" && !slices.Contains(iris, o.iri) {
				iris = append(iris, o.iri)
			}
		}
		if sameRole || len(iris) == 0 {
			continue
		}
		out = append(out, naming.Collision{Kind: "package", Name: name, IRIs: iris})
	}
	return out
}
