package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/ontogen/internal/cli/ui"
	"github.com/conduit-lang/ontogen/internal/engine"
	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/plan"
)

type classInfo struct {
	Name       string         `json:"name"`
	IRI        string         `json:"iri"`
	Supertypes []string       `json:"supertypes"`
	Properties []propertyInfo `json:"properties"`
}

type propertyInfo struct {
	Name        string `json:"name"`
	IRI         string `json:"iri"`
	Kind        string `json:"kind"`
	Cardinality string `json:"cardinality"`
	Type        string `json:"type"`
	Inherited   bool   `json:"inherited,omitempty"`
}

// NewClassesCommand creates the classes command
func NewClassesCommand() *cobra.Command {
	var (
		jsonOutput bool
		show       string
	)

	cmd := &cobra.Command{
		Use:   "classes [ontology]",
		Short: "List the classes ontogen would generate",
		Long: `List every generated class in hierarchy order with its supertypes and
property counts. Unsatisfiable and built-in classes are not listed.

Use --show to print the properties of one class.`,
		Example: `  ontogen classes zoo.yaml
  ontogen classes zoo.yaml --show Dog
  ontogen classes --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			opts := engineOptions(cfg)
			opts.DryRun = true
			result, err := engine.Run(cmd.Context(), afero.NewOsFs(), opts)
			if err != nil {
				return err
			}

			classes := describeClasses(result.Plan)
			if show != "" {
				c, err := findClass(classes, show)
				if err != nil {
					return err
				}
				classes = []classInfo{c}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(classes)
			}
			if show != "" {
				printClass(cmd, classes[0])
				return nil
			}
			printClasses(cmd, classes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print classes as JSON")
	cmd.Flags().StringVar(&show, "show", "", "Show the properties of one class")
	cmd.Flags().Bool("prefix-mode", false, "Prefix names from imported ontologies with their alias")

	return cmd
}

func describeClasses(p *plan.Plan) []classInfo {
	out := make([]classInfo, 0, len(p.Classes))
	for _, c := range p.Classes {
		info := classInfo{Name: c.Name, IRI: string(c.IRI), Supertypes: []string{}}
		for _, s := range c.Interfaces {
			info.Supertypes = append(info.Supertypes, s.Name)
		}
		for _, prop := range c.Properties() {
			info.Properties = append(info.Properties, describeProperty(prop, false))
		}
		for _, prop := range c.Inherited {
			info.Properties = append(info.Properties, describeProperty(prop, true))
		}
		out = append(out, info)
	}
	return out
}

func describeProperty(p plan.PropertyPlan, inherited bool) propertyInfo {
	return propertyInfo{
		Name:        p.Name,
		IRI:         string(p.IRI),
		Kind:        p.Kind.String(),
		Cardinality: p.Cardinality.String(),
		Type:        p.Value.GoType,
		Inherited:   inherited,
	}
}

func findClass(classes []classInfo, name string) (classInfo, error) {
	names := make([]string, len(classes))
	for i, c := range classes {
		if c.Name == name || c.IRI == name {
			return c, nil
		}
		names[i] = c.Name
	}

	err := errors.Newf("class not found: %s", name)
	if similar := ui.FindSimilar(name, names, 3); len(similar) > 0 {
		err = errors.WithHintf(err, "did you mean %s?", strings.Join(similar, ", "))
	}
	return classInfo{}, errors.WithHint(err, "run ontogen classes to list every class")
}

func printClasses(cmd *cobra.Command, classes []classInfo) {
	table := ui.NewTable(cmd.OutOrStdout(), noColor(cmd), "Class", "Supertypes", "Object", "Data")
	for _, c := range classes {
		var object, data int
		for _, p := range c.Properties {
			if p.Inherited {
				continue
			}
			if p.Kind == "data" {
				data++
			} else {
				object++
			}
		}
		table.AddRow(c.Name, strings.Join(c.Supertypes, ", "), fmt.Sprint(object), fmt.Sprint(data))
	}
	table.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d classes\n", table.Len())
}

func printClass(cmd *cobra.Command, c classInfo) {
	out := cmd.OutOrStdout()
	nc := noColor(cmd)

	ui.Header(out, c.Name, nc)
	kv := ui.NewKeyValueTable(out, nc)
	kv.AddRow("IRI", c.IRI)
	kv.AddRow("Supertypes", strings.Join(c.Supertypes, ", "))
	kv.Render()
	fmt.Fprintln(out)

	table := ui.NewTable(out, nc, "Property", "Kind", "Cardinality", "Type")
	for _, p := range c.Properties {
		name := p.Name
		if p.Inherited {
			name += " (inherited)"
		}
		table.AddRow(name, p.Kind, p.Cardinality, p.Type)
	}
	table.Render()
}
