package codegen

import (
	"fmt"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/plan"
	"github.com/conduit-lang/ontogen/internal/properties"
)

// elementType is the Go type of one value of p.
func elementType(p plan.PropertyPlan) string {
	return p.Value.GoType
}

// containerType is what Get returns: the element for single-valued
// properties, a slice or a runtime.Set otherwise.
func (g *Generator) containerType(p plan.PropertyPlan) string {
	elem := elementType(p)
	if p.Cardinality == properties.Single {
		return elem
	}
	if g.plan.SetMode {
		return fmt.Sprintf("*runtime.Set[%s]", elem)
	}
	return "[]" + elem
}

// propertyType is the return type of the property-object accessor.
func propertyType(p plan.PropertyPlan) string {
	if p.Kind == properties.Data {
		return "runtime.DataProperty"
	}
	return "runtime.ObjectProperty"
}

// wrap returns the expression that turns iri into a value of p's element
// type.
func (g *Generator) wrap(p plan.PropertyPlan, iri string) (string, error) {
	if p.Value.Kind != properties.ClassRef {
		return fmt.Sprintf("runtime.NewBaseIndividual(d.Store(), %s)", iri), nil
	}
	target, ok := g.classes[p.Value.Class]
	if !ok {
		return "", errors.Newf("property %s refers to ungenerated class %s", p.IRI, p.Value.Class)
	}
	return fmt.Sprintf("%s(d.Store(), %s)", target.UserConstructor(), iri), nil
}

func usesIter(props []plan.PropertyPlan) bool {
	for _, p := range props {
		if p.Cardinality == properties.Multi {
			return true
		}
	}
	return false
}
