package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/ontogen/internal/ontology"
)

const ns = "http://example.org/zoo#"

func named(local string) *ontology.NamedClass {
	return &ontology.NamedClass{IRI: ontology.IRI(ns + local)}
}

func class(local string, supers ...ontology.ClassExpression) *ontology.ClassAxioms {
	return &ontology.ClassAxioms{IRI: ontology.IRI(ns + local), SuperClasses: supers}
}

func representatives(nodes []ontology.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Representative().Fragment())
	}
	return out
}

func TestHierarchy(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			class("Animal"),
			class("Pet"),
			class("Dog", named("Animal"), named("Pet")),
			class("Puppy", named("Dog")),
			class("Person"),
		},
	}
	r := New(ontology.NewSet(o))

	top := r.TopNode()
	assert.True(t, top.IsTop())
	assert.Equal(t, []string{"Animal", "Person", "Pet"}, representatives(r.DirectSubNodes(top)))

	animal, ok := r.NodeOf(ns + "Animal")
	require.True(t, ok)
	assert.Equal(t, []string{"Dog"}, representatives(r.DirectSubNodes(animal)))

	dog, _ := r.NodeOf(ns + "Dog")
	assert.Equal(t, []string{"Animal", "Pet"}, representatives(r.DirectSuperNodes(ns+"Dog")))
	assert.Equal(t, []string{"Puppy"}, representatives(r.DirectSubNodes(dog)))

	puppy, _ := r.NodeOf(ns + "Puppy")
	leafKids := r.DirectSubNodes(puppy)
	require.Len(t, leafKids, 1)
	assert.True(t, leafKids[0].IsBottom())
	assert.Empty(t, r.DirectSubNodes(r.UnsatisfiableNode()))
}

func TestEquivalenceAndCycles(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			{IRI: ns + "Canine", EquivalentClasses: []ontology.ClassExpression{named("Dog")}},
			class("Dog"),
			class("Hound", named("Mutt")),
			class("Mutt", named("Hound")),
		},
	}
	r := New(ontology.NewSet(o))

	canine, _ := r.NodeOf(ns + "Canine")
	dog, _ := r.NodeOf(ns + "Dog")
	assert.Equal(t, canine, dog)
	assert.Equal(t, []ontology.IRI{ns + "Canine", ns + "Dog"}, dog.Classes())

	hound, _ := r.NodeOf(ns + "Hound")
	assert.True(t, hound.Contains(ns+"Mutt"))
	assert.Equal(t, []string{"Canine", "Hound"}, representatives(r.DirectSubNodes(r.TopNode())))
}

func TestUnsatisfiableClasses(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			{IRI: ns + "Cat", DisjointWith: []ontology.IRI{ns + "Dog"}},
			class("Dog"),
			class("CatDog", named("Cat"), named("Dog")),
			class("Kitten", named("CatDog")),
			class("Impossible", &ontology.NamedClass{IRI: ontology.Nothing}),
			class("Paradox", named("Cat"), &ontology.Complement{Operand: named("Cat")}),
		},
	}
	r := New(ontology.NewSet(o))

	bottom := r.UnsatisfiableNode()
	assert.True(t, bottom.IsBottom())
	for _, c := range []string{"CatDog", "Kitten", "Impossible", "Paradox"} {
		assert.True(t, bottom.Contains(ontology.IRI(ns+c)), c)
		assert.False(t, r.IsSatisfiable(ontology.IRI(ns+c)), c)
	}
	assert.True(t, r.IsSatisfiable(ns+"Cat"))
	assert.Equal(t, ontology.Nothing, bottom.Representative())

	cat, _ := r.NodeOf(ns + "Cat")
	kids := r.DirectSubNodes(cat)
	require.Len(t, kids, 1)
	assert.True(t, kids[0].IsBottom())
}
