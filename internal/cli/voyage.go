package cli

import (
	"sort"

	"github.com/JonMunkholm/vocdata/internal/voyage"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// numberResult is one canonicalized voyage number.
type numberResult struct {
	Input     string `json:"input" yaml:"input"`
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Corrected bool   `json:"corrected" yaml:"corrected"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) newVoyageNumberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voyage-number <number>...",
		Short: "Pad and correct voyage numbers",
		Example: `  vocdata voyage-number 12.3 496.2
  vocdata voyage-number 4572.1 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]numberResult, len(args))
			rows := make([]table.Row, len(args))
			for i, arg := range args {
				res := canonicalNumber(arg)
				results[i] = res
				rows[i] = table.Row{res.Input, res.Canonical, res.Corrected, res.Error}
			}
			return a.render(cmd.OutOrStdout(), results, table.Row{"Input", "Canonical", "Corrected", "Error"}, rows)
		},
	}
}

func canonicalNumber(s string) numberResult {
	res := numberResult{Input: s}
	padded, err := voyage.AddLeadingZeros(voyage.ParseNumber(s))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Canonical = voyage.Correct(padded.String)
	res.Corrected = res.Canonical != padded.String
	return res
}

// correction is one entry of the string correction table.
type correction struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

type correctionsReport struct {
	Corrections   []correction         `json:"corrections" yaml:"corrections"`
	Discrepancies []voyage.Discrepancy `json:"discrepancies" yaml:"discrepancies"`
}

func (a *app) newCorrectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "corrections",
		Short: "Show the voyage number correction table and its discrepancies",
		Long: `Show the string correction table applied to voyage numbers, followed by
the entries of the numeric table that the string table does not apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep := correctionsReport{Discrepancies: voyage.Discrepancies()}
			for from, to := range voyage.StringCorrections {
				rep.Corrections = append(rep.Corrections, correction{From: from, To: to})
			}
			sort.Slice(rep.Corrections, func(i, j int) bool {
				return rep.Corrections[i].From < rep.Corrections[j].From
			})

			rows := make([]table.Row, 0, len(rep.Corrections)+len(rep.Discrepancies))
			for _, c := range rep.Corrections {
				rows = append(rows, table.Row{c.From, c.To, "applied"})
			}
			for _, d := range rep.Discrepancies {
				status := "numeric table only"
				if d.Disabled {
					status = "disabled"
				}
				rows = append(rows, table.Row{d.Key, d.Numeric, status})
			}
			return a.render(cmd.OutOrStdout(), rep, table.Row{"From", "To", "Status"}, rows)
		},
	}
}
