package codegen

import (
	"strings"

	"github.com/conduit-lang/ontogen/internal/plan"
)

var termGroups = []struct {
	kind    plan.TermKind
	goType  string
	comment string
}{
	{plan.ClassTerm, "runtime.Class", "Classes."},
	{plan.ObjectPropertyTerm, "runtime.ObjectProperty", "Object properties."},
	{plan.DataPropertyTerm, "runtime.DataProperty", "Data properties."},
}

func (g *Generator) generateVocabulary(v *plan.VocabularyPlan) {
	g.writeLine("// Namespace is the IRI prefix of individuals created by the factory.")
	g.writeLine("const Namespace = %q", v.Namespace)

	for _, group := range termGroups {
		var terms []plan.Term
		for _, t := range v.Terms {
			if t.Kind == group.kind {
				terms = append(terms, t)
			}
		}
		if len(terms) == 0 {
			continue
		}
		g.use(RuntimeImport)

		g.writeLine("")
		g.writeLine("// %s", group.comment)
		g.writeLine("const (")
		g.indent++
		for _, t := range terms {
			g.writeLine("%s %s = %q", t.Constant, group.goType, string(t.IRI))
		}
		g.indent--
		g.writeLine(")")
	}
}

func (g *Generator) generateFactory(f *plan.FactoryPlan) {
	g.use(RuntimeImport)
	if len(f.Entries) > 0 {
		g.use("context", "fmt", "strings")
	}

	g.writeLine("// %s creates and looks up individuals of the %s package.", f.Name, g.plan.Package)
	g.writeLine("type %s struct {", f.Name)
	g.indent++
	g.writeLine("store runtime.Store")
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("// New%s returns a %s backed by store.", f.Name, f.Name)
	g.writeLine("func New%s(store runtime.Store) *%s {", f.Name, f.Name)
	g.indent++
	g.writeLine("return &%s{store: store}", f.Name)
	g.indent--
	g.writeLine("}")

	for _, e := range f.Entries {
		g.writeFactoryEntry(f, e)
	}
}

func (g *Generator) writeFactoryEntry(f *plan.FactoryPlan, e plan.FactoryEntry) {
	cp := e.Class
	recv := strings.ToLower(f.Name[:1])

	g.writeLine("")
	g.writeLine("// %s asserts a new %s named name. An empty name gets a generated one.", e.Create, cp.Name)
	g.writeLine("func (%s *%s) %s(ctx context.Context, name string) (%s, error) {", recv, f.Name, e.Create, cp.Name)
	g.indent++
	g.writeLine("iri := runtime.IndividualIRI(Namespace, name)")
	g.writeLine("if err := %s.store.AssertClass(ctx, iri, %s); err != nil {", recv, cp.Constant)
	g.indent++
	g.writeLine("return nil, err")
	g.indent--
	g.writeLine("}")
	g.writeLine("return %s(%s.store, iri), nil", cp.UserConstructor(), recv)
	g.indent--
	g.writeLine("}")

	g.writeLine("")
	g.writeLine("// %s returns the %s whose local name is name.", e.Get, cp.Name)
	g.writeLine("func (%s *%s) %s(ctx context.Context, name string) (%s, error) {", recv, f.Name, e.Get, cp.Name)
	g.indent++
	g.writeLine("iris, err := %s.store.Individuals(ctx, %s)", recv, cp.Constant)
	g.writeLine("if err != nil {")
	g.indent++
	g.writeLine("return nil, err")
	g.indent--
	g.writeLine("}")
	g.writeLine("name = strings.TrimSpace(name)")
	g.writeLine("for _, iri := range iris {")
	g.indent++
	g.writeLine("if strings.TrimSpace(runtime.LocalName(iri)) == name {")
	g.indent++
	g.writeLine("return %s(%s.store, iri), nil", cp.UserConstructor(), recv)
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.writeLine("return nil, fmt.Errorf(\"%%w: %s %%q\", runtime.ErrNotFound, name)", cp.Name)
	g.indent--
	g.writeLine("}")

	g.writeLine("")
	g.writeLine("// %s returns every asserted %s.", e.GetAll, cp.Name)
	g.writeLine("func (%s *%s) %s(ctx context.Context) ([]%s, error) {", recv, f.Name, e.GetAll, cp.Name)
	g.indent++
	g.writeLine("iris, err := %s.store.Individuals(ctx, %s)", recv, cp.Constant)
	g.writeLine("if err != nil {")
	g.indent++
	g.writeLine("return nil, err")
	g.indent--
	g.writeLine("}")
	g.writeLine("out := make([]%s, 0, len(iris))", cp.Name)
	g.writeLine("for _, iri := range iris {")
	g.indent++
	g.writeLine("out = append(out, %s(%s.store, iri))", cp.UserConstructor(), recv)
	g.indent--
	g.writeLine("}")
	g.writeLine("return out, nil")
	g.indent--
	g.writeLine("}")
}
