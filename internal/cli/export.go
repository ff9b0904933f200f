package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/vocdata/internal/dataset"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/JonMunkholm/vocdata/internal/normalize"
	"github.com/JonMunkholm/vocdata/internal/store"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exportResult is the outcome for one dataset of an export run.
type exportResult struct {
	Label  string `json:"label" yaml:"label"`
	Rows   int64  `json:"rows" yaml:"rows"`
	Issues int    `json:"issues" yaml:"issues"`
}

type exportReport struct {
	LoadID   string         `json:"load_id" yaml:"load_id"`
	Sink     string         `json:"sink" yaml:"sink"`
	Datasets []exportResult `json:"datasets" yaml:"datasets"`
}

func (a *app) newExportCommand() *cobra.Command {
	var sinkName string

	cmd := &cobra.Command{
		Use:   "export [label]...",
		Short: "Clean datasets and write them to a database",
		Long: `Load, clean and write datasets to SQLite or PostgreSQL. Without labels every
registered dataset is exported. Each dataset becomes a table of the same
name; all rows written by one run share a load_id.`,
		Example: `  vocdata export
  vocdata export voyages contracts --sink postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := args
			if len(labels) == 0 {
				labels = dataset.Labels()
			}
			for _, label := range labels {
				if _, err := dataset.FilePath(label); err != nil {
					return err
				}
			}

			rep, err := a.export(cmd.Context(), sinkName, labels)
			if err != nil {
				return err
			}

			rows := make([]table.Row, len(rep.Datasets))
			for i, r := range rep.Datasets {
				rows[i] = table.Row{r.Label, r.Rows, r.Issues}
			}
			return a.render(cmd.OutOrStdout(), rep, table.Row{"Dataset", "Rows", "Issues"}, rows)
		},
	}

	cmd.Flags().StringVar(&sinkName, "sink", a.cfg.Export.Sink, "Export sink (sqlite|postgres)")
	return cmd
}

// export loads the datasets concurrently and writes each to the sink.
// The first failure cancels the remaining work.
func (a *app) export(ctx context.Context, sinkName string, labels []string) (*exportReport, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Export.Timeout)
	defer cancel()

	sink, err := a.openSink(ctx, sinkName)
	if err != nil {
		return nil, err
	}
	defer sink.Close()

	loadID := uuid.New()
	logger := logging.WithFields(ctx, "load_id", loadID, "sink", sinkName)
	logger.Info("export started", "datasets", len(labels))
	start := time.Now()

	ld := a.loader()
	results := make([]exportResult, len(labels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Export.Concurrency)
	for i, label := range labels {
		g.Go(func() error {
			f, err := ld.Read(gctx, label)
			if err != nil {
				return fmt.Errorf("load %s: %w", label, err)
			}
			cleaned, rep, err := normalize.Dataset(label, f)
			if err != nil {
				return fmt.Errorf("clean %s: %w", label, err)
			}
			n, err := sink.Write(gctx, label, cleaned, loadID)
			if err != nil {
				return fmt.Errorf("write %s: %w", label, err)
			}
			results[i] = exportResult{Label: label, Rows: n, Issues: len(rep.Issues)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("export failed", "error", err)
		return nil, err
	}

	logger.Info("export finished", "duration_ms", time.Since(start).Milliseconds())
	return &exportReport{LoadID: loadID.String(), Sink: sinkName, Datasets: results}, nil
}

func (a *app) openSink(ctx context.Context, name string) (store.Sink, error) {
	switch name {
	case "sqlite":
		return store.OpenSQLite(a.cfg.Export.SQLitePath)
	case "postgres":
		if a.cfg.Database.URL == "" {
			return nil, fmt.Errorf("postgres sink requires DATABASE_URL")
		}
		return store.OpenPostgres(ctx, a.cfg.Database)
	default:
		return nil, fmt.Errorf("unknown sink %q (sqlite, postgres)", name)
	}
}
