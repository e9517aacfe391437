// Package engine runs one generation: load, classify, walk, plan, render
// and write.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/conduit-lang/ontogen/internal/codegen"
	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/hierarchy"
	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/naming"
	"github.com/conduit-lang/ontogen/internal/ontology"
	"github.com/conduit-lang/ontogen/internal/ontology/document"
	"github.com/conduit-lang/ontogen/internal/output"
	"github.com/conduit-lang/ontogen/internal/plan"
	"github.com/conduit-lang/ontogen/internal/properties"
	"github.com/conduit-lang/ontogen/internal/reasoner"
)

// Options configures a run.
type Options struct {
	// Ontology is the path of the root ontology document.
	Ontology string
	// Output is the directory the package directory is created in.
	Output       string
	Package      string
	PrefixMode   bool
	SetMode      bool
	AbstractMode bool
	FactoryName  string
	// Strict fails the run when generated names collide.
	Strict bool
	// DryRun renders everything but writes nothing.
	DryRun bool
}

// Result describes a finished run.
type Result struct {
	RunID      string
	Plan       *plan.Plan
	Files      map[string]string
	Written    []string
	Collisions []naming.Collision
	Duration   time.Duration
}

// Analysis is the classified ontology before planning.
type Analysis struct {
	Set      *ontology.Set
	Reasoner *reasoner.Structural
	Classes  []ontology.IRI
	Names    *naming.Resolver
	Index    *properties.Index
	Props    *properties.Resolver
}

// Analyze loads the ontology at path and computes the class list and
// property view used by planning.
func Analyze(fs afero.Fs, path string, names naming.Options) (*Analysis, error) {
	set, err := document.NewLoader(fs).Load(path)
	if err != nil {
		return nil, err
	}

	r := reasoner.New(set)
	classes := hierarchy.Walk(r)
	resolver := naming.NewResolver(set, names)
	index := properties.NewIndex(set)

	return &Analysis{
		Set:      set,
		Reasoner: r,
		Classes:  classes,
		Names:    resolver,
		Index:    index,
		Props:    properties.NewResolver(index, set, classes, resolver, properties.Options{Bounded: true}),
	}, nil
}

// Run performs a full generation.
func Run(ctx context.Context, fs afero.Fs, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger.Infow("Starting generation", "run_id", runID, "ontology", opts.Ontology, "output", opts.Output)

	a, err := Analyze(fs, opts.Ontology, naming.Options{PrefixMode: opts.PrefixMode, AbstractMode: opts.AbstractMode})
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", opts.Ontology)
	}
	logger.Debugw("Classified ontology", "run_id", runID, "classes", len(a.Classes), "imports", len(a.Set.Imported()))

	sink := output.NewSink(fs, opts.Output, output.Layout{Package: opts.Package})
	planner := plan.NewPlanner(a.Set, a.Names, a.Index, a.Props, a.Classes, sink, plan.Options{
		Package:      opts.Package,
		AbstractMode: opts.AbstractMode,
		SetMode:      opts.SetMode,
		FactoryName:  opts.FactoryName,
	})
	p := planner.Plan()

	for _, c := range p.Collisions {
		logger.Warnw("Name collision", "run_id", runID, "kind", c.Kind, "name", c.Name, "iris", c.IRIs)
	}
	if opts.Strict && len(p.Collisions) > 0 {
		err := errors.Newf("%d generated names collide, first: %s", len(p.Collisions), p.Collisions[0])
		return nil, errors.WithHint(errors.Mark(err, errors.ErrNameCollision),
			"enable prefix mode or rename the clashing entities")
	}

	gen := codegen.NewGenerator(p)
	files := make(map[string]string, len(p.Artifacts))
	for _, artifact := range p.Artifacts {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}
		code, err := gen.GenerateArtifact(artifact)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s %s", artifact.Kind, artifact.Name)
		}
		files[sink.Layout().Path(artifact.Kind, artifact.Name)] = code
	}

	result := &Result{
		RunID:      runID,
		Plan:       p,
		Files:      files,
		Collisions: p.Collisions,
	}

	if !opts.DryRun {
		written, err := sink.Write(files)
		result.Written = written
		if err != nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	logger.Infow("Generation finished",
		"run_id", runID,
		"classes", len(p.Classes),
		"files", len(files),
		"written", len(result.Written),
		"dry_run", opts.DryRun,
		"duration", result.Duration,
	)
	return result, nil
}
