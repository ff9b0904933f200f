// Package cli provides the vocdata command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/vocdata/internal/config"
	"github.com/JonMunkholm/vocdata/internal/loader"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// app carries the configuration shared by all commands.
type app struct {
	cfg    *config.Config
	output string
}

// NewRootCmd creates the root command. Persistent flags override cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "vocdata",
		Short: "Clean and export the VOC maritime records",
		Long: `vocdata loads the VOC pay-ledger, contract and reference tables,
corrects known voyage number errors, normalizes dates and exports the
cleaned tables to SQLite or PostgreSQL.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (table, json, yaml)", a.output)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}} (" + GitCommit + ")\n")

	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().StringVar(&cfg.Data.BaseDir, "data-dir", cfg.Data.BaseDir, "Directory the dataset paths are resolved against")
	rootCmd.PersistentFlags().StringVar(&cfg.Data.Encoding, "encoding", cfg.Data.Encoding, "Encoding of the CSV files (utf-8|latin1|cp1252)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{outputTable, outputJSON, outputYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(a.newDatasetsCommand())
	rootCmd.AddCommand(a.newPathCommand())
	rootCmd.AddCommand(a.newVoyageNumberCommand())
	rootCmd.AddCommand(a.newCorrectionsCommand())
	rootCmd.AddCommand(a.newCleanCommand())
	rootCmd.AddCommand(a.newExportCommand())
	rootCmd.AddCommand(a.newServeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, cfg *config.Config, args []string) error {
	cmd := NewRootCmd(cfg)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *app) loader() *loader.Loader {
	return loader.New(a.cfg.Data.BaseDir, a.cfg.Data.Encoding)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "vocdata v%s (%s)\n", Version, GitCommit)
		},
	}
}
