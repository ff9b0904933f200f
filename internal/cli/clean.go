package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/JonMunkholm/vocdata/internal/normalize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
)

func (a *app) newCleanCommand() *cobra.Command {
	var (
		out        string
		showIssues bool
	)

	cmd := &cobra.Command{
		Use:   "clean <label>",
		Short: "Load a dataset, clean it and write it as CSV",
		Long: `Load a dataset, run its cleaning pass and write the result as CSV with a
header row. Files ending in .gz are gzip-compressed. Without --out the CSV
goes to stdout and the summary to stderr.`,
		Example: `  vocdata clean voyages --out voyages.csv
  vocdata clean contracts --out contracts.csv.gz --issues`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return dataset.Labels(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			label := args[0]
			ctx := cmd.Context()

			f, err := a.loader().Read(ctx, label)
			if err != nil {
				return err
			}
			cleaned, rep, err := normalize.Dataset(label, f)
			if err != nil {
				return err
			}

			summary := cmd.ErrOrStderr()
			if out == "" || out == "-" {
				if err := writeCSV(cmd.OutOrStdout(), cleaned); err != nil {
					return err
				}
			} else {
				if err := writeCSVFile(out, cleaned); err != nil {
					return err
				}
				summary = cmd.OutOrStdout()
			}

			logging.FromContext(ctx).Info("dataset cleaned",
				"label", label,
				"rows", rep.Rows,
				"issues", len(rep.Issues),
			)

			if err := a.render(summary, rep, table.Row{"Rows", "Padded", "Corrected", "EDTF fixed", "IDs filled", "Issues"},
				[]table.Row{{rep.Rows, rep.Padded, rep.Corrected, rep.EDTFFixed, rep.IDsFilled, len(rep.Issues)}}); err != nil {
				return err
			}
			if showIssues && a.output == outputTable {
				rows := make([]table.Row, len(rep.Issues))
				for i, is := range rep.Issues {
					rows[i] = table.Row{is.Row, is.Column, is.Value, is.Message}
				}
				renderTable(summary, table.Row{"Row", "Column", "Value", "Problem"}, rows)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&showIssues, "issues", false, "List every cell that could not be cleaned")
	return cmd
}

func writeCSVFile(path string, f *frame.Frame) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(file)
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}
	return writeCSV(w, f)
}

func writeCSV(w io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(f.Rows); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	return nil
}
