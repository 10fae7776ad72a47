package notes

import (
	"errors"
	"fmt"
	"os"

	"github.com/shinji-kodama/ticketscan/internal/model"
)

// DefaultPath is the notes file read when no path is configured.
const DefaultPath = "inputData.txt"

// LoadFile opens the notes file at path, parses it to completion and
// closes it before returning.
//
// Errors are returned as *model.CLIError so the CLI can map them to exit
// codes: ExitInputNotFound when the file is missing, ExitStructuralError
// for inconsistent notes and ExitParseError for everything else.
func LoadFile(path string) (*model.Notes, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitInputNotFound,
				fmt.Sprintf("notes file not found: %s", path),
				err,
			)
		}
		return nil, model.WrapCLIError(model.ExitParseError, "failed to open notes file", err)
	}
	defer func() { _ = f.Close() }()

	n, err := Parse(f)
	if err != nil {
		var structErr *StructuralError
		if errors.As(err, &structErr) {
			return nil, model.WrapCLIError(model.ExitStructuralError, fmt.Sprintf("invalid notes in %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitParseError, fmt.Sprintf("failed to parse %s", path), err)
	}
	return n, nil
}
