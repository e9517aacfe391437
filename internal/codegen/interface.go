package codegen

import (
	"github.com/conduit-lang/ontogen/internal/plan"
	"github.com/conduit-lang/ontogen/internal/properties"
)

func (g *Generator) generateInterface(cp *plan.ClassPlan) error {
	props := cp.Properties()
	if len(props) > 0 {
		g.use("context", RuntimeImport)
	}
	if usesIter(props) {
		g.use("iter")
	}

	g.writeLine("// %s is generated from %s.", cp.InterfaceName, cp.IRI)
	g.writeLine("type %s interface {", cp.InterfaceName)
	g.indent++
	for _, s := range cp.Interfaces {
		if s.Generic {
			g.use(RuntimeImport)
			g.writeLine("runtime.%s", s.Name)
		} else {
			g.writeLine("%s", s.Name)
		}
	}
	for _, p := range props {
		g.writeLine("")
		g.writeInterfaceMethods(p)
	}
	g.indent--
	g.writeLine("}")
	return nil
}

func (g *Generator) writeInterfaceMethods(p plan.PropertyPlan) {
	elem := elementType(p)
	for _, a := range p.Accessors {
		switch a.Kind {
		case plan.Getter:
			if p.Cardinality == properties.Single {
				g.writeLine("// %s returns the value of %s, or the zero value when unset.", a.Method, p.Name)
			} else {
				g.writeLine("// %s returns every value of %s.", a.Method, p.Name)
			}
			if p.Value.Bounded {
				g.writeLine("// Values may be any subclass of %s.", elem)
			}
			g.writeLine("%s(ctx context.Context) (%s, error)", a.Method, g.containerType(p))
		case plan.PropertyObject:
			g.writeLine("%s() %s", a.Method, propertyType(p))
		case plan.Presence:
			g.writeLine("%s(ctx context.Context) (bool, error)", a.Method)
		case plan.Iterator:
			g.writeLine("%s(ctx context.Context) iter.Seq2[%s, error]", a.Method, elem)
		case plan.Add:
			g.writeLine("%s(ctx context.Context, value %s) error", a.Method, elem)
		case plan.Remove:
			g.writeLine("%s(ctx context.Context, value %s) error", a.Method, elem)
		case plan.Setter:
			if p.Cardinality == properties.Single {
				g.writeLine("%s(ctx context.Context, value %s) error", a.Method, elem)
			} else {
				g.writeLine("%s(ctx context.Context, values %s) error", a.Method, g.containerType(p))
			}
		}
	}
}

func (g *Generator) generateUserInterface(cp *plan.ClassPlan) {
	g.writeLine("// %s extends the generated %s.", cp.Name, cp.InterfaceName)
	g.writeLine("type %s interface {", cp.Name)
	g.indent++
	g.writeLine("%s", cp.InterfaceName)
	g.indent--
	g.writeLine("}")
}
