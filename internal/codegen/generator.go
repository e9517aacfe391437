// Package codegen renders plans as Go source.
// Each artifact becomes one file; generated files carry the standard
// "Code generated" header, user files do not.
package codegen

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/ontology"
	"github.com/conduit-lang/ontogen/internal/output"
	"github.com/conduit-lang/ontogen/internal/plan"
)

// RuntimeImport is the import path of the support package generated code
// depends on.
const RuntimeImport = "github.com/conduit-lang/ontogen/pkg/runtime"

// Header marks generated files.
const Header = "// Code generated by ontogen. DO NOT EDIT."

// Generator transforms plans into Go code
type Generator struct {
	buf     *bytes.Buffer
	indent  int
	imports map[string]bool

	plan    *plan.Plan
	classes map[ontology.IRI]*plan.ClassPlan
}

// NewGenerator creates a generator for one plan.
func NewGenerator(p *plan.Plan) *Generator {
	g := &Generator{
		buf:     &bytes.Buffer{},
		imports: make(map[string]bool),
		plan:    p,
		classes: make(map[ontology.IRI]*plan.ClassPlan, len(p.Classes)),
	}
	for _, cp := range p.Classes {
		g.classes[cp.IRI] = cp
	}
	return g
}

// GenerateFiles renders every artifact of the plan, keyed by the path the
// layout assigns it.
func (g *Generator) GenerateFiles(layout output.Layout) (map[string]string, error) {
	files := make(map[string]string, len(g.plan.Artifacts))
	for _, a := range g.plan.Artifacts {
		code, err := g.GenerateArtifact(a)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s %s", a.Kind, a.Name)
		}
		files[layout.Path(a.Kind, a.Name)] = code
	}
	return files, nil
}

// GenerateArtifact renders a single artifact as formatted Go source.
func (g *Generator) GenerateArtifact(a plan.Artifact) (string, error) {
	g.reset()

	var err error
	switch a.Kind {
	case plan.Interface:
		err = g.generateInterface(a.Class)
	case plan.Implementation:
		err = g.generateImplementation(a.Class)
	case plan.UserInterface:
		g.generateUserInterface(a.Class)
	case plan.UserImplementation:
		g.generateUserImplementation(a.Class)
	case plan.Vocabulary:
		g.generateVocabulary(g.plan.Vocabulary)
	case plan.Factory:
		g.generateFactory(g.plan.Factory)
	default:
		err = errors.Newf("unknown artifact kind %d", a.Kind)
	}
	if err != nil {
		return "", err
	}

	return g.format(a.Name, !a.Kind.UserOwned())
}

// reset clears the generator state
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
	g.imports = make(map[string]bool)
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// format assembles header, package clause and imports around the body and
// runs the result through goimports' formatter.
func (g *Generator) format(name string, generated bool) (string, error) {
	body := g.buf.String()
	g.buf.Reset()
	g.indent = 0

	if generated {
		g.writeLine(Header)
		g.writeLine("")
	}
	g.writeLine("package %s", g.plan.Package)
	g.writeLine("")
	if len(g.imports) > 0 {
		g.writeImports()
		g.writeLine("")
	}
	g.buf.WriteString(body)

	src, err := imports.Process(name+".go", g.buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return "", errors.Wrapf(err, "formatting %s", name)
	}
	return string(src), nil
}

// writeImports writes the import block
func (g *Generator) writeImports() {
	g.writeLine("import (")
	g.indent++

	// Sort imports: stdlib first, then external
	var stdlibImports []string
	var externalImports []string
	for imp := range g.imports {
		if strings.Contains(imp, ".") {
			externalImports = append(externalImports, imp)
		} else {
			stdlibImports = append(stdlibImports, imp)
		}
	}
	slices.Sort(stdlibImports)
	slices.Sort(externalImports)

	for _, imp := range stdlibImports {
		g.writeLine("%q", imp)
	}
	if len(stdlibImports) > 0 && len(externalImports) > 0 {
		g.writeLine("")
	}
	for _, imp := range externalImports {
		g.writeLine("%q", imp)
	}

	g.indent--
	g.writeLine(")")
}

func (g *Generator) use(paths ...string) {
	for _, p := range paths {
		g.imports[p] = true
	}
}
