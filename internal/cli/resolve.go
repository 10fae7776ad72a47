package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/ticketscan/internal/report"
)

// newResolveCommand creates the "resolve" command.
func newResolveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Deduce which column holds which field",
		Long: `Discard invalid nearby tickets, deduce the column of every field by
constraint elimination and multiply the values of your ticket whose field
name contains the match string.

With --strict, a column that still has several candidate fields when its
turn comes is reported as an error instead of taking the first one.

Examples:
  ticketscan resolve
  ticketscan resolve --match arrival --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.OutOrStdout(), e)
		},
	}
}

func runResolve(w io.Writer, e *env) error {
	n, err := e.loadNotes()
	if err != nil {
		return err
	}

	res, err := e.resolveNotes(n)
	if err != nil {
		return err
	}
	e.logger.Info("Multiplied field values", zap.Int64("value", res.Product), zap.String("match", res.Match))

	return report.Write(w, e.format, &report.Report{
		Input:      e.cfg.Input,
		Resolution: res,
	})
}
