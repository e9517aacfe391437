// Package naming turns ontology IRIs into Go identifiers.
package naming

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/conduit-lang/ontogen/internal/ontology"
)

// AbstractMarker is appended to possibly-abstract names in abstract mode.
const AbstractMarker = "_"

// ImplementationPrefix prefixes implementation type names.
const ImplementationPrefix = "Default"

// Options controls name resolution.
type Options struct {
	// PrefixMode qualifies names of imported entities with their
	// ontology's prefix alias.
	PrefixMode bool
	// AbstractMode marks generated types so user-owned types can take the
	// plain names.
	AbstractMode bool
}

// Name is a resolved identifier.
type Name struct {
	Identifier string
	// Alias is the prefix alias applied, if any.
	Alias string
}

// Resolver maps IRIs to identifiers. It memoizes every resolution, so one
// Resolver should be used per run.
type Resolver struct {
	opts       Options
	root       ontology.IRI
	ontologies []ontology.IRI
	aliases    map[ontology.IRI]string

	classes    map[ontology.IRI]Name
	properties map[ontology.IRI]Name
}

// NewResolver builds a resolver for store.
func NewResolver(store ontology.Store, opts Options) *Resolver {
	r := &Resolver{
		opts:       opts,
		root:       store.Root().IRI,
		aliases:    make(map[ontology.IRI]string),
		classes:    make(map[ontology.IRI]Name),
		properties: make(map[ontology.IRI]Name),
	}

	all := store.Ontologies()
	for _, o := range all {
		r.ontologies = append(r.ontologies, o.IRI)
	}

	// Aliases are registered for imported ontologies only. The alias is the
	// prefix whose namespace is the imported ontology's hash namespace,
	// looked up across every document's prefix declarations.
	for _, imported := range all[1:] {
		ns := ontology.Namespace(imported.IRI)
		for _, o := range all {
			if alias := aliasFor(o.Prefixes, ns); alias != "" {
				r.aliases[imported.IRI] = alias
				break
			}
		}
	}

	return r
}

func aliasFor(prefixes map[string]string, ns string) string {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if prefixes[k] == ns {
			if alias := strings.ReplaceAll(k, ":", ""); alias != "" {
				return alias
			}
		}
	}
	return ""
}

// Owner returns the ontology an entity belongs to: the first ontology, root
// first, whose IRI is a prefix of iri. Entities matching none belong to the
// root.
func (r *Resolver) Owner(iri ontology.IRI) ontology.IRI {
	for _, o := range r.ontologies {
		if strings.HasPrefix(string(iri), string(o)) {
			return o
		}
	}
	return r.root
}

// ShortForm returns the identifier-safe local part of iri relative to its
// owning ontology.
func (r *Resolver) ShortForm(iri ontology.IRI) string {
	ns := ontology.Namespace(r.Owner(iri))
	local, ok := strings.CutPrefix(string(iri), ns)
	if !ok {
		local = iri.Fragment()
	}
	return Sanitize(local)
}

func (r *Resolver) resolve(iri ontology.IRI, memo map[ontology.IRI]Name, capitalizeBase bool) Name {
	if n, ok := memo[iri]; ok {
		return n
	}

	short := r.ShortForm(iri)
	n := Name{Identifier: short}
	if capitalizeBase {
		n.Identifier = Capitalize(short)
	}
	if r.opts.PrefixMode {
		if alias, ok := r.aliases[r.Owner(iri)]; ok {
			n = Name{
				Identifier: Capitalize(Sanitize(alias)) + "_" + Capitalize(short),
				Alias:      alias,
			}
		}
	}

	memo[iri] = n
	return n
}

// ResolveClass resolves a class IRI. Class names keep their native
// capitalization.
func (r *Resolver) ResolveClass(iri ontology.IRI) Name {
	return r.resolve(iri, r.classes, false)
}

// ResolveProperty resolves a property IRI.
func (r *Resolver) ResolveProperty(iri ontology.IRI) Name {
	return r.resolve(iri, r.properties, false)
}

// ClassName is the resolved class identifier.
func (r *Resolver) ClassName(iri ontology.IRI) string {
	return r.ResolveClass(iri).Identifier
}

// Accessor is the exported stem used in accessor method names of a
// property.
func (r *Resolver) Accessor(iri ontology.IRI) string {
	return Capitalize(r.ResolveProperty(iri).Identifier)
}

// PossiblyAbstract is the class name with the abstract marker in abstract
// mode.
func (r *Resolver) PossiblyAbstract(iri ontology.IRI) string {
	name := r.ClassName(iri)
	if r.opts.AbstractMode {
		return name + AbstractMarker
	}
	return name
}

// Implementation is the implementation type name for a class.
func (r *Resolver) Implementation(iri ontology.IRI) string {
	return ImplementationPrefix + r.ClassName(iri)
}

// PossiblyAbstractImplementation is the implementation name with the
// abstract marker in abstract mode.
func (r *Resolver) PossiblyAbstractImplementation(iri ontology.IRI) string {
	return ImplementationPrefix + r.PossiblyAbstract(iri)
}

// Collision is a generated identifier shared by distinct IRIs.
type Collision struct {
	Kind string
	Name string
	IRIs []ontology.IRI
}

func (c Collision) String() string {
	parts := make([]string, len(c.IRIs))
	for i, iri := range c.IRIs {
		parts[i] = string(iri)
	}
	return fmt.Sprintf("%s name %q is shared by %s", c.Kind, c.Name, strings.Join(parts, ", "))
}

// Collisions reports identifiers shared by more than one IRI among classes,
// object properties and data properties. Names are never changed to resolve
// a collision.
func (r *Resolver) Collisions(classes, objectProps, dataProps []ontology.IRI) []Collision {
	var out []Collision
	out = append(out, collisions("class", classes, r.ClassName)...)
	out = append(out, collisions("object property", objectProps, r.Accessor)...)
	out = append(out, collisions("data property", dataProps, r.Accessor)...)
	return out
}

func collisions(kind string, iris []ontology.IRI, name func(ontology.IRI) string) []Collision {
	byName := make(map[string][]ontology.IRI)
	var order []string
	for _, iri := range iris {
		n := name(iri)
		if _, ok := byName[n]; !ok {
			order = append(order, n)
		}
		if !slices.Contains(byName[n], iri) {
			byName[n] = append(byName[n], iri)
		}
	}

	var out []Collision
	for _, n := range order {
		if len(byName[n]) > 1 {
			out = append(out, Collision{Kind: kind, Name: n, IRIs: byName[n]})
		}
	}
	return out
}

// Capitalize upper-cases the first rune.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Sanitize drops runes that cannot appear in a Go identifier and guards a
// leading digit.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "Entity"
	}
	if unicode.IsDigit([]rune(out)[0]) {
		return "_" + out
	}
	return out
}
