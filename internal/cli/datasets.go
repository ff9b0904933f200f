package cli

import (
	"fmt"
	"path/filepath"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (a *app) newDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the registered datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := dataset.All()
			rows := make([]table.Row, len(all))
			for i, d := range all {
				rows[i] = table.Row{d.Label, d.File, d.Format}
			}
			return a.render(cmd.OutOrStdout(), all, table.Row{"Label", "File", "Format"}, rows)
		},
	}
}

func (a *app) newPathCommand() *cobra.Command {
	var resolve bool

	cmd := &cobra.Command{
		Use:   "path <label>",
		Short: "Print the file path of a dataset",
		Example: `  vocdata path voyages
  vocdata path das --resolve --data-dir notebooks`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return dataset.Labels(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dataset.FilePath(args[0])
			if err != nil {
				return err
			}
			if resolve && !filepath.IsAbs(path) {
				path = filepath.Join(a.cfg.Data.BaseDir, path)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, "Resolve the path against --data-dir")
	return cmd
}
