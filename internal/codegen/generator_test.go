package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/ontogen/internal/hierarchy"
	"github.com/conduit-lang/ontogen/internal/naming"
	"github.com/conduit-lang/ontogen/internal/ontology"
	"github.com/conduit-lang/ontogen/internal/output"
	"github.com/conduit-lang/ontogen/internal/plan"
	"github.com/conduit-lang/ontogen/internal/properties"
	"github.com/conduit-lang/ontogen/internal/reasoner"
)

const ns = "http://example.org/zoo#"

func named(local string) *ontology.NamedClass {
	return &ontology.NamedClass{IRI: ontology.IRI(ns + local)}
}

func zoo() *ontology.Ontology {
	return &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			{IRI: ns + "Animal"},
			{IRI: ns + "Dog", SuperClasses: []ontology.ClassExpression{named("Animal")}},
			{IRI: ns + "Person"},
		},
		ObjectProperties: []*ontology.ObjectProperty{
			{IRI: ns + "hasOwner", Domains: []ontology.ClassExpression{named("Dog")}, Ranges: []ontology.ClassExpression{named("Person")}},
			{IRI: ns + "relatedTo", Functional: true, Domains: []ontology.ClassExpression{named("Dog")}, Ranges: []ontology.ClassExpression{named("Dog"), named("Person")}},
		},
		DataProperties: []*ontology.DataProperty{
			{IRI: ns + "name", Functional: true, Domains: []ontology.ClassExpression{named("Animal")}, Ranges: []ontology.DataRange{&ontology.Datatype{IRI: ontology.XSDString}}},
			{IRI: ns + "age", Domains: []ontology.ClassExpression{named("Animal")}, Ranges: []ontology.DataRange{&ontology.Datatype{IRI: ontology.XSDInteger}}},
			{IRI: ns + "weight", Domains: []ontology.ClassExpression{named("Dog")}, Ranges: []ontology.DataRange{&ontology.Datatype{IRI: ontology.XSDDouble}}},
			{IRI: ns + "note", Domains: []ontology.ClassExpression{named("Person")}, Ranges: []ontology.DataRange{&ontology.Datatype{IRI: ontology.XSDNamespace + "dateTime"}}},
		},
	}
}

type noFiles struct{}

func (noFiles) Exists(plan.ArtifactKind, string) bool { return false }

func buildPlan(t *testing.T, opts plan.Options) *plan.Plan {
	t.Helper()
	return planOntology(t, zoo(), opts)
}

func planOntology(t *testing.T, o *ontology.Ontology, opts plan.Options) *plan.Plan {
	t.Helper()
	set := ontology.NewSet(o)
	classes := hierarchy.Walk(reasoner.New(set))
	names := naming.NewResolver(set, naming.Options{AbstractMode: opts.AbstractMode})
	index := properties.NewIndex(set)
	props := properties.NewResolver(index, set, classes, names, properties.Options{})
	return plan.NewPlanner(set, names, index, props, classes, noFiles{}, opts).Plan()
}

func generate(t *testing.T, opts plan.Options) map[string]string {
	t.Helper()
	p := buildPlan(t, opts)
	files, err := NewGenerator(p).GenerateFiles(output.Layout{Package: p.Package})
	require.NoError(t, err)
	return files
}

func assertParses(t *testing.T, files map[string]string) {
	t.Helper()
	for path, code := range files {
		_, err := parser.ParseFile(token.NewFileSet(), path, code, parser.ParseComments)
		assert.NoError(t, err, "file %s does not parse", path)
	}
}

func TestGenerateFilesLayout(t *testing.T) {
	files := generate(t, plan.Options{Package: "zoo"})

	var paths []string
	for p := range files {
		paths = append(paths, p)
	}
	assert.ElementsMatch(t, []string{
		"zoo/animal_gen.go", "zoo/default_animal_gen.go",
		"zoo/dog_gen.go", "zoo/default_dog_gen.go",
		"zoo/person_gen.go", "zoo/default_person_gen.go",
		"zoo/vocabulary_gen.go", "zoo/factory_gen.go",
	}, paths)
	assertParses(t, files)

	for path, code := range files {
		assert.True(t, strings.HasPrefix(code, Header+"\n"), "%s lacks header", path)
		assert.Contains(t, code, "package zoo")
	}
}

func TestGenerateInterface(t *testing.T) {
	files := generate(t, plan.Options{Package: "zoo"})

	animal := files["zoo/animal_gen.go"]
	assert.Contains(t, animal, "type Animal interface {")
	assert.Contains(t, animal, "runtime.Individual")
	assert.Contains(t, animal, "GetName(ctx context.Context) (string, error)")
	assert.Contains(t, animal, "SetName(ctx context.Context, value string) error")
	assert.Contains(t, animal, "GetAge(ctx context.Context) ([]int, error)")
	assert.Contains(t, animal, "ListAge(ctx context.Context) iter.Seq2[int, error]")
	assert.Contains(t, animal, "GetAgeProperty() runtime.DataProperty")
	assert.Contains(t, animal, `"github.com/conduit-lang/ontogen/pkg/runtime"`)

	dog := files["zoo/dog_gen.go"]
	assert.Contains(t, dog, "type Dog interface {")
	assert.Contains(t, dog, "\tAnimal\n")
	assert.NotContains(t, dog, "runtime.Individual\n")
	assert.Contains(t, dog, "GetHasOwner(ctx context.Context) ([]Person, error)")
	assert.Contains(t, dog, "AddHasOwner(ctx context.Context, value Person) error")
	assert.Contains(t, dog, "GetRelatedTo(ctx context.Context) (runtime.Individual, error)")
	assert.NotContains(t, dog, "ListRelatedTo")

	person := files["zoo/person_gen.go"]
	assert.Contains(t, person, "GetNote(ctx context.Context) ([]runtime.Literal, error)")
}

func TestGenerateImplementation(t *testing.T) {
	files := generate(t, plan.Options{Package: "zoo"})

	animal := files["zoo/default_animal_gen.go"]
	assert.Contains(t, animal, "*runtime.BaseIndividual")
	assert.Contains(t, animal, "var _ Animal = (*DefaultAnimal)(nil)")
	assert.Contains(t, animal, "return &DefaultAnimal{BaseIndividual: runtime.NewBaseIndividual(store, iri)}")
	assert.Contains(t, animal, "return runtime.Decode[string](values[0])")
	assert.Contains(t, animal, `return d.AssertLiteral(ctx, DataPropertyAge, runtime.EncodeAs(value, "http://www.w3.org/2001/XMLSchema#integer"))`)
	assert.Contains(t, animal, `[]runtime.Literal{runtime.EncodeAs(value, "http://www.w3.org/2001/XMLSchema#string")}`)

	dog := files["zoo/default_dog_gen.go"]
	assert.Contains(t, dog, "\t*DefaultAnimal\n")
	assert.Contains(t, dog, "return &DefaultDog{DefaultAnimal: NewDefaultAnimal(store, iri)}")
	assert.Contains(t, dog, "func (d *DefaultDog) ListHasOwner(ctx context.Context) iter.Seq2[Person, error] {")
	assert.Contains(t, dog, "NewDefaultPerson(d.Store(), v)")
	assert.Contains(t, dog, "return runtime.Collect(d.ListHasOwner(ctx))")
	assert.Contains(t, dog, "return runtime.NewBaseIndividual(d.Store(), values[0]), nil")
	assert.Contains(t, dog, "return d.ReplaceObjects(ctx, ObjectPropertyRelatedTo, values)")
	assert.Contains(t, dog, "return d.AssertObject(ctx, ObjectPropertyHasOwner, value.IRI())")
}

func TestGenerateDatatypedLiterals(t *testing.T) {
	impl := generate(t, plan.Options{Package: "zoo"})["zoo/default_dog_gen.go"]
	assert.Contains(t, impl, `return d.AssertLiteral(ctx, DataPropertyWeight, runtime.EncodeAs(value, "http://www.w3.org/2001/XMLSchema#double"))`)
	assert.Contains(t, impl, `return d.RetractLiteral(ctx, DataPropertyWeight, runtime.EncodeAs(value, "http://www.w3.org/2001/XMLSchema#double"))`)
	assert.Contains(t, impl, `literals = append(literals, runtime.EncodeAs(v, "http://www.w3.org/2001/XMLSchema#double"))`)

	person := generate(t, plan.Options{Package: "zoo"})["zoo/default_person_gen.go"]
	assert.Contains(t, person, "runtime.Encode(value)")
	assert.NotContains(t, person, "runtime.EncodeAs")
}

func TestGenerateSubclassCycle(t *testing.T) {
	o := &ontology.Ontology{
		IRI: "http://example.org/zoo",
		Classes: []*ontology.ClassAxioms{
			{IRI: ns + "Animal", SuperClasses: []ontology.ClassExpression{named("Creature")}},
			{IRI: ns + "Creature", SuperClasses: []ontology.ClassExpression{named("Beast")}},
			{IRI: ns + "Beast", SuperClasses: []ontology.ClassExpression{named("Animal")}},
			{IRI: ns + "Dog", SuperClasses: []ontology.ClassExpression{named("Animal")}},
		},
		DataProperties: []*ontology.DataProperty{
			{IRI: ns + "name", Functional: true, Domains: []ontology.ClassExpression{named("Animal")}, Ranges: []ontology.DataRange{&ontology.Datatype{IRI: ontology.XSDString}}},
		},
	}
	p := planOntology(t, o, plan.Options{Package: "zoo"})
	files, err := NewGenerator(p).GenerateFiles(output.Layout{Package: p.Package})
	require.NoError(t, err)
	assertParses(t, files)

	embeds := embeddedTypes(t, files)
	for name := range embeds {
		assert.False(t, embedsItself(embeds, name), "%s embeds itself", name)
	}
	assert.Equal(t, []string{"Animal"}, embeds["Dog"])
	assert.Equal(t, []string{"DefaultAnimal"}, embeds["DefaultDog"])

	for _, err := range typeErrors(t, files) {
		assert.NotContains(t, err.Error(), "invalid recursive type")
	}
}

// typeErrors type-checks files as one package. Imports resolve to empty
// packages, so only errors about the generated declarations themselves are
// meaningful.
func typeErrors(t *testing.T, files map[string]string) []error {
	t.Helper()
	fset := token.NewFileSet()
	var parsed []*ast.File
	for path, code := range files {
		f, err := parser.ParseFile(fset, path, code, 0)
		require.NoError(t, err)
		parsed = append(parsed, f)
	}

	var errs []error
	conf := types.Config{
		Importer: emptyImporter{},
		Error:    func(err error) { errs = append(errs, err) },
	}
	_, _ = conf.Check("zoo", fset, parsed, nil)
	return errs
}

type emptyImporter struct{}

func (emptyImporter) Import(path string) (*types.Package, error) {
	pkg := types.NewPackage(path, path[strings.LastIndex(path, "/")+1:])
	pkg.MarkComplete()
	return pkg, nil
}

// embeddedTypes maps each declared type to the package-local types it embeds.
func embeddedTypes(t *testing.T, files map[string]string) map[string][]string {
	t.Helper()
	out := make(map[string][]string)
	for path, code := range files {
		f, err := parser.ParseFile(token.NewFileSet(), path, code, 0)
		require.NoError(t, err)
		ast.Inspect(f, func(n ast.Node) bool {
			spec, ok := n.(*ast.TypeSpec)
			if !ok {
				return true
			}
			var fields *ast.FieldList
			switch typ := spec.Type.(type) {
			case *ast.InterfaceType:
				fields = typ.Methods
			case *ast.StructType:
				fields = typ.Fields
			}
			out[spec.Name.Name] = nil
			if fields == nil {
				return false
			}
			for _, field := range fields.List {
				if len(field.Names) > 0 {
					continue
				}
				expr := field.Type
				if star, ok := expr.(*ast.StarExpr); ok {
					expr = star.X
				}
				if ident, ok := expr.(*ast.Ident); ok {
					out[spec.Name.Name] = append(out[spec.Name.Name], ident.Name)
				}
			}
			return false
		})
	}
	return out
}

func embedsItself(embeds map[string][]string, start string) bool {
	seen := make(map[string]bool)
	queue := append([]string(nil), embeds[start]...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if name == start {
			return true
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		queue = append(queue, embeds[name]...)
	}
	return false
}

func TestGenerateSetMode(t *testing.T) {
	files := generate(t, plan.Options{Package: "zoo", SetMode: true})
	assertParses(t, files)

	dog := files["zoo/dog_gen.go"]
	assert.Contains(t, dog, "GetHasOwner(ctx context.Context) (*runtime.Set[Person], error)")
	assert.Contains(t, dog, "SetHasOwner(ctx context.Context, values *runtime.Set[Person]) error")

	impl := files["zoo/default_dog_gen.go"]
	assert.Contains(t, impl, "return runtime.NewIndividualSet(values...), nil")
	assert.Contains(t, impl, "for _, v := range values.Items() {")
	assert.Contains(t, files["zoo/default_animal_gen.go"], "return runtime.NewSet(values...), nil")
}

func TestGenerateVocabularyAndFactory(t *testing.T) {
	files := generate(t, plan.Options{Package: "zoo", FactoryName: "ZooFactory"})

	vocab := files["zoo/vocabulary_gen.go"]
	assert.Contains(t, vocab, `const Namespace = "http://example.org/zoo#"`)
	assert.Contains(t, vocab, `"http://example.org/zoo#Dog"`)
	assert.Contains(t, vocab, "ObjectPropertyHasOwner")
	assert.Contains(t, vocab, "DataPropertyName")

	factory, ok := files["zoo/zoo_factory_gen.go"]
	require.True(t, ok)
	assert.Contains(t, factory, "type ZooFactory struct {")
	assert.Contains(t, factory, "func NewZooFactory(store runtime.Store) *ZooFactory {")
	assert.Contains(t, factory, "func (z *ZooFactory) CreateDog(ctx context.Context, name string) (Dog, error) {")
	assert.Contains(t, factory, "iri := runtime.IndividualIRI(Namespace, name)")
	assert.Contains(t, factory, `return nil, fmt.Errorf("%w: Dog %q", runtime.ErrNotFound, name)`)
	assert.Contains(t, factory, "func (z *ZooFactory) GetAllPersonInstances(ctx context.Context) ([]Person, error) {")
}

func TestGenerateAbstractMode(t *testing.T) {
	files := generate(t, plan.Options{Package: "zoo", AbstractMode: true})
	assertParses(t, files)

	assert.Contains(t, files["zoo/dog_gen.go"], "type Dog_ interface {")
	assert.Contains(t, files["zoo/default_dog_gen.go"], "return &DefaultDog_{DefaultAnimal: NewDefaultAnimal(store, iri)}")

	userIface, ok := files["zoo/dog_ext.go"]
	require.True(t, ok)
	assert.False(t, strings.HasPrefix(userIface, Header))
	assert.Contains(t, userIface, "type Dog interface {\n\tDog_\n}")

	userImpl := files["zoo/default_dog_ext.go"]
	assert.Contains(t, userImpl, "type DefaultDog struct {\n\t*DefaultDog_\n}")
	assert.Contains(t, userImpl, "return &DefaultDog{DefaultDog_: NewDefaultDog_(store, iri)}")

	assert.Contains(t, files["zoo/default_dog_gen.go"], "NewDefaultPerson(d.Store(), v)")
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := generate(t, plan.Options{Package: "zoo"})
	second := generate(t, plan.Options{Package: "zoo"})
	assert.Equal(t, first, second)
}
