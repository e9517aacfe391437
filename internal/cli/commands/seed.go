package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/ontogen/internal/cli/config"
	"github.com/conduit-lang/ontogen/internal/cli/ui"
	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/ontology/document"
	"github.com/conduit-lang/ontogen/internal/seed"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "seed [ontology]",
		Short: "Load the ontology's individuals into a runtime store",
		Long: `Assert every individual declared in the ontology documents, with its
classes and property values, into the store generated code reads from.

Seeding is idempotent: values already present are left alone.

Drivers: ` + strings.Join(config.SeedDrivers, ", "),
		Example: `  ontogen seed zoo.yaml --driver sqlite3 --dsn zoo.db
  ontogen seed --driver postgres --dsn "postgres://localhost/zoo?sslmode=disable"
  ontogen seed --driver redis --dsn redis://localhost:6379/0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			set, err := document.NewLoader(afero.NewOsFs()).Load(cfg.Ontology)
			if err != nil {
				return err
			}

			store, closeStore, err := seed.Open(cmd.Context(), cfg.Seed.Driver, cfg.Seed.DSN)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warnw("Closing store failed", "driver", cfg.Seed.Driver, "error", err)
				}
			}()

			stats, err := seed.Load(cmd.Context(), set, store)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			out := cmd.OutOrStdout()
			nc := noColor(cmd)
			kv := ui.NewKeyValueTable(out, nc)
			kv.AddRow("Driver", cfg.Seed.Driver)
			kv.AddRow("Individuals", fmt.Sprint(stats.Individuals))
			kv.AddRow("Class assertions", fmt.Sprint(stats.Types))
			kv.AddRow("Object values", fmt.Sprint(stats.Objects))
			kv.AddRow("Data values", fmt.Sprint(stats.Data))
			kv.Render()
			if cfg.Seed.Driver == "memory" {
				fmt.Fprint(out, "\n"+ui.Warning("the memory store is discarded when ontogen exits", nc))
			}
			return nil
		},
	}

	cmd.Flags().String("driver", "", "Store driver (default from config: memory)")
	cmd.Flags().String("dsn", "", "Data source name for the driver")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print counts as JSON")

	return cmd
}
