package runtime

import (
	"context"
	"iter"
)

// Individual is implemented by every generated class implementation.
type Individual interface {
	IRI() string
	Store() Store
	Delete(ctx context.Context) error
}

// BaseIndividual is the root of every generated implementation. Its helpers
// are named so they never clash with generated accessors.
type BaseIndividual struct {
	iri   string
	store Store
}

// NewBaseIndividual wraps iri backed by store.
func NewBaseIndividual(store Store, iri string) *BaseIndividual {
	return &BaseIndividual{iri: iri, store: store}
}

// IRI returns the individual's IRI
func (b *BaseIndividual) IRI() string { return b.iri }

// Store returns the backing store
func (b *BaseIndividual) Store() Store { return b.store }

// Delete removes the individual and every reference to it.
func (b *BaseIndividual) Delete(ctx context.Context) error {
	return b.store.DeleteIndividual(ctx, b.iri)
}

// ObjectIRIs returns the IRIs asserted for p.
func (b *BaseIndividual) ObjectIRIs(ctx context.Context, p ObjectProperty) ([]string, error) {
	return b.store.ObjectValues(ctx, b.iri, p)
}

// AssertObject adds object as a value of p.
func (b *BaseIndividual) AssertObject(ctx context.Context, p ObjectProperty, object string) error {
	return b.store.AddObjectValue(ctx, b.iri, p, object)
}

// RetractObject removes object from the values of p.
func (b *BaseIndividual) RetractObject(ctx context.Context, p ObjectProperty, object string) error {
	return b.store.RemoveObjectValue(ctx, b.iri, p, object)
}

// ReplaceObjects makes objects the only values of p.
func (b *BaseIndividual) ReplaceObjects(ctx context.Context, p ObjectProperty, objects []string) error {
	current, err := b.ObjectIRIs(ctx, p)
	if err != nil {
		return err
	}
	for _, o := range current {
		if err := b.RetractObject(ctx, p, o); err != nil {
			return err
		}
	}
	for _, o := range objects {
		if err := b.AssertObject(ctx, p, o); err != nil {
			return err
		}
	}
	return nil
}

// Literals returns the literals asserted for p.
func (b *BaseIndividual) Literals(ctx context.Context, p DataProperty) ([]Literal, error) {
	return b.store.DataValues(ctx, b.iri, p)
}

// AssertLiteral adds value to p unless an equal literal is already present.
func (b *BaseIndividual) AssertLiteral(ctx context.Context, p DataProperty, value Literal) error {
	current, err := b.Literals(ctx, p)
	if err != nil {
		return err
	}
	for _, l := range current {
		if l == value {
			return nil
		}
	}
	return b.store.AddDataValue(ctx, b.iri, p, value)
}

// RetractLiteral removes value from p.
func (b *BaseIndividual) RetractLiteral(ctx context.Context, p DataProperty, value Literal) error {
	return b.store.RemoveDataValue(ctx, b.iri, p, value)
}

// ReplaceLiterals makes values the only literals of p.
func (b *BaseIndividual) ReplaceLiterals(ctx context.Context, p DataProperty, values []Literal) error {
	current, err := b.Literals(ctx, p)
	if err != nil {
		return err
	}
	for _, l := range current {
		if err := b.RetractLiteral(ctx, p, l); err != nil {
			return err
		}
	}
	for _, l := range values {
		if err := b.AssertLiteral(ctx, p, l); err != nil {
			return err
		}
	}
	return nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	var failure error
	seq(func(v T, err error) bool {
		if err != nil {
			failure = err
			return false
		}
		out = append(out, v)
		return true
	})
	return out, failure
}
