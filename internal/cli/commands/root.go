package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/ontogen/internal/cli/config"
	"github.com/conduit-lang/ontogen/internal/cli/ui"
	"github.com/conduit-lang/ontogen/internal/logger"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ontogen",
		Short: "Generate typed Go APIs from OWL ontologies",
		Long: color.CyanString(`ontogen - OWL ontology to Go code generator

ontogen reads an ontology document and its imports, classifies the class
hierarchy and writes one Go interface and implementation per class, a
vocabulary of IRI constants and a factory for creating individuals.

Generated code talks to a runtime store (memory, SQL or Redis), so the
same API works in tests and in production.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor(cmd) {
			color.NoColor = true
		}
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewClassesCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the ontogen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(out, "ontogen version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	defer logger.Cleanup()

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		ui.WriteError(rootCmd.ErrOrStderr(), err, color.NoColor)
		return err
	}
	return nil
}

func noColor(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("no-color")
	return v || color.NoColor
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// loadConfig reads ontogen.yml, applies the ontology argument and any
// flags the user set, then starts logging.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Ontology = args[0]
	}

	flags := cmd.Flags()
	stringFlag := func(name string, dst *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	boolFlag := func(name string, dst *bool) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}
	stringFlag("output", &cfg.Output)
	stringFlag("package", &cfg.Package)
	stringFlag("factory", &cfg.FactoryName)
	stringFlag("driver", &cfg.Seed.Driver)
	stringFlag("dsn", &cfg.Seed.DSN)
	boolFlag("prefix-mode", &cfg.PrefixMode)
	boolFlag("set-mode", &cfg.SetMode)
	boolFlag("abstract", &cfg.AbstractMode)
	boolFlag("strict", &cfg.Strict)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose(cmd) {
		level = "debug"
	}
	if err := logger.Initialize(cfg.Log.JSON, level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addGenerationFlags registers the flags shared by generate and watch.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output directory (default from config: generated)")
	cmd.Flags().String("package", "", "Go package name of the generated code")
	cmd.Flags().String("factory", "", "Name of the generated factory type")
	cmd.Flags().Bool("prefix-mode", false, "Prefix names from imported ontologies with their alias")
	cmd.Flags().Bool("set-mode", false, "Use runtime.Set for multi-valued properties")
	cmd.Flags().Bool("abstract", false, "Generate abstract types plus user-editable extensions")
	cmd.Flags().Bool("strict", false, "Fail when generated names collide")
}
