package cli

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/shinji-kodama/ticketscan/internal/model"
	"github.com/shinji-kodama/ticketscan/internal/notes"
	"github.com/shinji-kodama/ticketscan/internal/report"
	"github.com/shinji-kodama/ticketscan/internal/resolve"
	"github.com/shinji-kodama/ticketscan/internal/rules"
)

// loadNotes reads the configured notes file.
func (e *env) loadNotes() (*model.Notes, error) {
	n, err := notes.LoadFile(e.cfg.Input)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("parsed notes",
		zap.String("input", e.cfg.Input),
		zap.Int("fields", len(n.Fields)),
		zap.Int("nearby", len(n.Nearby)))
	return n, nil
}

// resolveNotes runs the resolver and maps its failures to CLI errors.
func (e *env) resolveNotes(n *model.Notes) (*resolve.Resolution, error) {
	r := resolve.NewResolver(e.logger,
		resolve.WithMatch(e.cfg.Match),
		resolve.WithStrict(e.cfg.Strict))

	res, err := r.Resolve(n)
	if err != nil {
		switch {
		case errors.Is(err, resolve.ErrNoValidTickets),
			errors.Is(err, resolve.ErrRaggedRows),
			errors.Is(err, resolve.ErrUnassignable),
			errors.Is(err, resolve.ErrAmbiguous):
			return nil, model.WrapCLIError(model.ExitStructuralError, "cannot resolve ticket fields", err)
		default:
			return nil, err
		}
	}
	return res, nil
}

// runAll runs both computations. Nothing is logged or printed unless both
// succeed.
func runAll(w io.Writer, e *env) error {
	n, err := e.loadNotes()
	if err != nil {
		return err
	}

	rate := rules.ScanningErrorRate(n.Fields, n.Nearby)
	res, err := e.resolveNotes(n)
	if err != nil {
		return err
	}

	e.logger.Info("Scanning error", zap.Int("value", rate))
	e.logger.Info("Multiplied field values", zap.Int64("value", res.Product), zap.String("match", res.Match))

	return report.Write(w, e.format, &report.Report{
		Input:             e.cfg.Input,
		ScanningErrorRate: &rate,
		Resolution:        res,
	})
}
