package commands

import (
	"fmt"
	"go/token"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/ontogen/internal/cli/config"
	"github.com/conduit-lang/ontogen/internal/cli/ui"
	"github.com/conduit-lang/ontogen/internal/errors"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an ontogen.yml configuration file",
		Long: `Write ontogen.yml in the current directory with default settings, or
with answers to a few questions when --interactive is set.`,
		Example: `  ontogen init
  ontogen init --interactive
  ontogen init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if interactive {
				if err := askConfig(cfg); err != nil {
					return err
				}
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			if err := config.Write(config.FileName, cfg, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Created "+config.FileName, noColor(cmd)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for each setting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing ontogen.yml")

	return cmd
}

func askConfig(cfg *config.Config) error {
	identifier := func(ans interface{}) error {
		if s, ok := ans.(string); ok && !token.IsIdentifier(s) {
			return errors.Newf("%q is not a Go identifier", s)
		}
		return nil
	}

	questions := []*survey.Question{
		{
			Name:     "ontology",
			Prompt:   &survey.Input{Message: "Ontology document:", Default: cfg.Ontology},
			Validate: survey.Required,
		},
		{
			Name:     "output",
			Prompt:   &survey.Input{Message: "Output directory:", Default: cfg.Output},
			Validate: survey.Required,
		},
		{
			Name:     "package",
			Prompt:   &survey.Input{Message: "Go package name:", Default: cfg.Package},
			Validate: survey.ComposeValidators(survey.Required, identifier),
		},
		{
			Name:     "factory",
			Prompt:   &survey.Input{Message: "Factory type name:", Default: cfg.FactoryName},
			Validate: survey.ComposeValidators(survey.Required, identifier),
		},
		{
			Name:   "abstract",
			Prompt: &survey.Confirm{Message: "Generate editable extension files (abstract mode)?", Default: cfg.AbstractMode},
		},
		{
			Name:   "driver",
			Prompt: &survey.Select{Message: "Seed store:", Options: config.SeedDrivers, Default: cfg.Seed.Driver},
		},
	}

	answers := struct {
		Ontology string
		Output   string
		Package  string
		Factory  string
		Abstract bool
		Driver   string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return errors.Wrap(err, "prompt aborted")
	}

	cfg.Ontology = answers.Ontology
	cfg.Output = answers.Output
	cfg.Package = answers.Package
	cfg.FactoryName = answers.Factory
	cfg.AbstractMode = answers.Abstract
	cfg.Seed.Driver = answers.Driver

	if cfg.Seed.Driver != "memory" {
		dsn := &survey.Input{Message: "Data source name:"}
		if err := survey.AskOne(dsn, &cfg.Seed.DSN, survey.WithValidator(survey.Required)); err != nil {
			return errors.Wrap(err, "prompt aborted")
		}
	}
	return nil
}
