package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/ontogen/internal/cli/config"
	"github.com/conduit-lang/ontogen/internal/cli/ui"
	"github.com/conduit-lang/ontogen/internal/engine"
)

// generateSummary is the --json output of generate.
type generateSummary struct {
	RunID      string   `json:"run_id"`
	Ontology   string   `json:"ontology"`
	Directory  string   `json:"directory"`
	Classes    int      `json:"classes"`
	Files      int      `json:"files"`
	Written    []string `json:"written"`
	Collisions []string `json:"collisions"`
	DryRun     bool     `json:"dry_run"`
	Duration   string   `json:"duration"`
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		jsonOutput bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:     "generate [ontology]",
		Aliases: []string{"g", "gen"},
		Short:   "Generate Go code from an ontology",
		Long: `Load an ontology document and its imports, then write the generated
package to <output>/<package>.

Per class, ontogen writes an interface file (<class>_gen.go) and an
implementation file (default_<class>_gen.go). The package also gets
vocabulary_gen.go with IRI constants and a factory file.

With --abstract, the generated types are named <Class>_ and
DefaultClass_, and editable <class>_ext.go files are created once and
never overwritten.`,
		Example: `  # Generate from ontogen.yml settings
  ontogen generate

  # Generate a specific document into ./model
  ontogen generate zoo.yaml -o . --package model

  # Preview without writing, as JSON
  ontogen generate zoo.yaml --dry-run --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			opts := engineOptions(cfg)
			opts.DryRun = dryRun
			result, err := engine.Run(cmd.Context(), afero.NewOsFs(), opts)
			if err != nil {
				return err
			}

			summary := summarize(cfg, result, dryRun)
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	addGenerationFlags(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render everything but write nothing")

	return cmd
}

func engineOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		Ontology:     cfg.Ontology,
		Output:       cfg.Output,
		Package:      cfg.Package,
		PrefixMode:   cfg.PrefixMode,
		SetMode:      cfg.SetMode,
		AbstractMode: cfg.AbstractMode,
		FactoryName:  cfg.FactoryName,
		Strict:       cfg.Strict,
	}
}

func summarize(cfg *config.Config, result *engine.Result, dryRun bool) generateSummary {
	collisions := make([]string, len(result.Collisions))
	for i, c := range result.Collisions {
		collisions[i] = c.String()
	}
	written := result.Written
	if written == nil {
		written = []string{}
	}
	return generateSummary{
		RunID:      result.RunID,
		Ontology:   cfg.Ontology,
		Directory:  filepath.Join(cfg.Output, cfg.Package),
		Classes:    len(result.Plan.Classes),
		Files:      len(result.Files),
		Written:    written,
		Collisions: collisions,
		DryRun:     dryRun,
		Duration:   result.Duration.Round(time.Millisecond).String(),
	}
}

func printSummary(cmd *cobra.Command, s generateSummary) {
	out := cmd.OutOrStdout()
	nc := noColor(cmd)

	kv := ui.NewKeyValueTable(out, nc)
	kv.AddRow("Ontology", s.Ontology)
	kv.AddRow("Package", s.Directory)
	kv.AddRow("Classes", fmt.Sprint(s.Classes))
	kv.AddRow("Files", fmt.Sprint(s.Files))
	if !s.DryRun {
		kv.AddRow("Written", fmt.Sprint(len(s.Written)))
	}
	kv.AddRow("Run", s.RunID)
	kv.Render()

	if len(s.Collisions) > 0 {
		fmt.Fprintln(out)
		for _, c := range s.Collisions {
			fmt.Fprint(out, ui.Warning(c, nc))
		}
	}

	fmt.Fprintln(out)
	if s.DryRun {
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Rendered %d files in %s (dry run)", s.Files, s.Duration), nc))
		return
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Generated %s in %s", s.Directory, s.Duration), nc))
}
