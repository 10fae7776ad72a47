package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/ticketscan/internal/report"
	"github.com/shinji-kodama/ticketscan/internal/rules"
)

// newScanCommand creates the "scan" command.
func newScanCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Report nearby ticket values that match no field",
		Long: `Sum every nearby ticket value that is not valid for any field rule and
list where each one was found.

Tickets are not discarded as a whole: every invalid value counts, and the
valid values of an invalid ticket are ignored.

Examples:
  ticketscan scan
  ticketscan scan --input notes.txt --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.OutOrStdout(), e)
		},
	}
}

func runScan(w io.Writer, e *env) error {
	n, err := e.loadNotes()
	if err != nil {
		return err
	}

	rate := rules.ScanningErrorRate(n.Fields, n.Nearby)
	invalid := rules.InvalidValues(n.Fields, n.Nearby)
	e.logger.Info("Scanning error", zap.Int("value", rate), zap.Int("invalidValues", len(invalid)))

	return report.Write(w, e.format, &report.Report{
		Input:             e.cfg.Input,
		ScanningErrorRate: &rate,
		InvalidValues:     invalid,
	})
}
