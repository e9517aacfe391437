package codegen

import (
	"fmt"

	"github.com/conduit-lang/ontogen/internal/plan"
	"github.com/conduit-lang/ontogen/internal/properties"
)

func (g *Generator) generateImplementation(cp *plan.ClassPlan) error {
	props := append(cp.Properties(), cp.Inherited...)
	g.use(RuntimeImport)
	if len(props) > 0 {
		g.use("context")
	}
	if usesIter(props) {
		g.use("iter")
	}

	base := cp.Base.Name
	baseCtor := "New" + cp.Base.Name
	if cp.Base.Generic {
		base = "runtime." + cp.Base.Name
		baseCtor = "runtime.New" + cp.Base.Name
	}

	g.writeLine("// %s implements %s.", cp.ImplName, cp.InterfaceName)
	g.writeLine("type %s struct {", cp.ImplName)
	g.indent++
	g.writeLine("*%s", base)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("var _ %s = (*%s)(nil)", cp.InterfaceName, cp.ImplName)
	g.writeLine("")
	g.writeLine("// %s returns a %s for iri backed by store.", cp.Constructor(), cp.ImplName)
	g.writeLine("func %s(store runtime.Store, iri string) *%s {", cp.Constructor(), cp.ImplName)
	g.indent++
	g.writeLine("return &%s{%s: %s(store, iri)}", cp.ImplName, cp.Base.Name, baseCtor)
	g.indent--
	g.writeLine("}")

	for _, p := range props {
		if err := g.writeAccessors(cp, p); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeAccessors(cp *plan.ClassPlan, p plan.PropertyPlan) error {
	for _, a := range p.Accessors {
		g.writeLine("")
		var err error
		switch a.Kind {
		case plan.Getter:
			err = g.writeGetter(cp, p, a.Method)
		case plan.PropertyObject:
			g.writeLine("func (d *%s) %s() %s {", cp.ImplName, a.Method, propertyType(p))
			g.indent++
			g.writeLine("return %s", p.Constant)
			g.indent--
			g.writeLine("}")
		case plan.Presence:
			g.writeLine("func (d *%s) %s(ctx context.Context) (bool, error) {", cp.ImplName, a.Method)
			g.indent++
			if p.Kind == properties.Data {
				g.writeLine("values, err := d.Literals(ctx, %s)", p.Constant)
			} else {
				g.writeLine("values, err := d.ObjectIRIs(ctx, %s)", p.Constant)
			}
			g.writeLine("return len(values) > 0, err")
			g.indent--
			g.writeLine("}")
		case plan.Iterator:
			err = g.writeIterator(cp, p, a.Method)
		case plan.Add, plan.Remove:
			g.writeUpdate(cp, p, a)
		case plan.Setter:
			g.writeSetter(cp, p, a.Method)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeGetter(cp *plan.ClassPlan, p plan.PropertyPlan, method string) error {
	elem := elementType(p)
	g.writeLine("func (d *%s) %s(ctx context.Context) (%s, error) {", cp.ImplName, method, g.containerType(p))
	g.indent++
	defer func() {
		g.indent--
		g.writeLine("}")
	}()

	if p.Cardinality == properties.Multi {
		list := p.Method(plan.Iterator)
		if !g.plan.SetMode {
			g.writeLine("return runtime.Collect(d.%s(ctx))", list)
			return nil
		}
		g.writeLine("values, err := runtime.Collect(d.%s(ctx))", list)
		g.writeLine("if err != nil {")
		g.indent++
		g.writeLine("return nil, err")
		g.indent--
		g.writeLine("}")
		if p.Kind == properties.Object {
			g.writeLine("return runtime.NewIndividualSet(values...), nil")
		} else {
			g.writeLine("return runtime.NewSet(values...), nil")
		}
		return nil
	}

	if p.Kind == properties.Data {
		g.writeLine("values, err := d.Literals(ctx, %s)", p.Constant)
		g.writeLine("if err != nil || len(values) == 0 {")
		g.indent++
		g.writeLine("var zero %s", elem)
		g.writeLine("return zero, err")
		g.indent--
		g.writeLine("}")
		g.writeLine("return runtime.Decode[%s](values[0])", elem)
		return nil
	}

	value, err := g.wrap(p, "values[0]")
	if err != nil {
		return err
	}
	g.writeLine("values, err := d.ObjectIRIs(ctx, %s)", p.Constant)
	g.writeLine("if err != nil || len(values) == 0 {")
	g.indent++
	g.writeLine("return nil, err")
	g.indent--
	g.writeLine("}")
	g.writeLine("return %s, nil", value)
	return nil
}

func (g *Generator) writeIterator(cp *plan.ClassPlan, p plan.PropertyPlan, method string) error {
	elem := elementType(p)
	value := "v"
	read := "d.Literals"
	if p.Kind == properties.Object {
		var err error
		if value, err = g.wrap(p, "v"); err != nil {
			return err
		}
		read = "d.ObjectIRIs"
	}

	g.writeLine("func (d *%s) %s(ctx context.Context) iter.Seq2[%s, error] {", cp.ImplName, method, elem)
	g.indent++
	g.writeLine("return func(yield func(%s, error) bool) {", elem)
	g.indent++
	g.writeLine("values, err := %s(ctx, %s)", read, p.Constant)
	g.writeLine("if err != nil {")
	g.indent++
	g.writeLine("var zero %s", elem)
	g.writeLine("yield(zero, err)")
	g.writeLine("return")
	g.indent--
	g.writeLine("}")
	g.writeLine("for _, v := range values {")
	g.indent++
	if p.Kind == properties.Data {
		g.writeLine("value, err := runtime.Decode[%s](v)", elem)
		g.writeLine("if !yield(value, err) || err != nil {")
	} else {
		g.writeLine("if !yield(%s, nil) {", value)
	}
	g.indent++
	g.writeLine("return")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	return nil
}

func (g *Generator) writeUpdate(cp *plan.ClassPlan, p plan.PropertyPlan, a plan.Accessor) {
	g.writeLine("func (d *%s) %s(ctx context.Context, value %s) error {", cp.ImplName, a.Method, elementType(p))
	g.indent++
	switch {
	case p.Kind == properties.Data && a.Kind == plan.Add:
		g.writeLine("return d.AssertLiteral(ctx, %s, %s)", p.Constant, encode(p, "value"))
	case p.Kind == properties.Data:
		g.writeLine("return d.RetractLiteral(ctx, %s, %s)", p.Constant, encode(p, "value"))
	case a.Kind == plan.Add:
		g.writeLine("return d.AssertObject(ctx, %s, value.IRI())", p.Constant)
	default:
		g.writeLine("return d.RetractObject(ctx, %s, value.IRI())", p.Constant)
	}
	g.indent--
	g.writeLine("}")
}

// encode is the expression converting value into a literal of p's declared
// datatype, matching what seeding stores for the same value.
func encode(p plan.PropertyPlan, value string) string {
	if p.Value.Kind == properties.Primitive && p.Value.Datatype != "" {
		return fmt.Sprintf("runtime.EncodeAs(%s, %q)", value, string(p.Value.Datatype))
	}
	return fmt.Sprintf("runtime.Encode(%s)", value)
}

func (g *Generator) writeSetter(cp *plan.ClassPlan, p plan.PropertyPlan, method string) {
	if p.Cardinality == properties.Single {
		g.writeLine("func (d *%s) %s(ctx context.Context, value %s) error {", cp.ImplName, method, elementType(p))
		g.indent++
		if p.Kind == properties.Data {
			g.writeLine("return d.ReplaceLiterals(ctx, %s, []runtime.Literal{%s})", p.Constant, encode(p, "value"))
		} else {
			g.writeLine("var values []string")
			g.writeLine("if value != nil {")
			g.indent++
			g.writeLine("values = []string{value.IRI()}")
			g.indent--
			g.writeLine("}")
			g.writeLine("return d.ReplaceObjects(ctx, %s, values)", p.Constant)
		}
		g.indent--
		g.writeLine("}")
		return
	}

	items := "values"
	if g.plan.SetMode {
		items = "values.Items()"
	}
	g.writeLine("func (d *%s) %s(ctx context.Context, values %s) error {", cp.ImplName, method, g.containerType(p))
	g.indent++
	if p.Kind == properties.Data {
		g.writeLine("var literals []runtime.Literal")
		g.writeLine("for _, v := range %s {", items)
		g.indent++
		g.writeLine("literals = append(literals, %s)", encode(p, "v"))
		g.indent--
		g.writeLine("}")
		g.writeLine("return d.ReplaceLiterals(ctx, %s, literals)", p.Constant)
	} else {
		g.writeLine("var iris []string")
		g.writeLine("for _, v := range %s {", items)
		g.indent++
		g.writeLine("iris = append(iris, v.IRI())")
		g.indent--
		g.writeLine("}")
		g.writeLine("return d.ReplaceObjects(ctx, %s, iris)", p.Constant)
	}
	g.indent--
	g.writeLine("}")
}

func (g *Generator) generateUserImplementation(cp *plan.ClassPlan) {
	g.use(RuntimeImport)

	g.writeLine("// %s extends the generated %s.", cp.UserImplName, cp.ImplName)
	g.writeLine("type %s struct {", cp.UserImplName)
	g.indent++
	g.writeLine("*%s", cp.ImplName)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("var _ %s = (*%s)(nil)", cp.Name, cp.UserImplName)
	g.writeLine("")
	g.writeLine("// %s returns a %s for iri backed by store.", cp.UserConstructor(), cp.UserImplName)
	g.writeLine("func %s(store runtime.Store, iri string) *%s {", cp.UserConstructor(), cp.UserImplName)
	g.indent++
	g.writeLine("return &%s{%s: %s(store, iri)}", cp.UserImplName, cp.ImplName, cp.Constructor())
	g.indent--
	g.writeLine("}")
}
