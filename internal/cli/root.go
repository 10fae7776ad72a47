// Package cli implements the cobra-based CLI commands for ticketscan.
//
// The root command runs both computations over the notes file. The scan and
// resolve subcommands each run one of them with a more detailed report.
// Settings come from an optional config file, overridden by explicit flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/ticketscan/internal/config"
	"github.com/shinji-kodama/ticketscan/internal/logging"
	"github.com/shinji-kodama/ticketscan/internal/model"
	"github.com/shinji-kodama/ticketscan/internal/report"
)

// Version, Commit and Date are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootFlags holds the persistent flag values shared by every command.
type rootFlags struct {
	input      string
	configPath string
	match      string
	strict     bool
	format     string
	verbose    bool
}

// env is the per-invocation state prepared by the root command's
// PersistentPreRunE and consumed by the RunE functions.
type env struct {
	flags  rootFlags
	cfg    *config.Config
	format report.Format
	logger *zap.Logger
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "ticketscan",
		Short: "Validate ticket notes and resolve ticket field positions",
		Long: `ticketscan reads a ticket notes file (field rules, your ticket and
nearby tickets) and reports:

  - the scanning error rate: the sum of nearby values that match no field;
  - the column of every field, deduced by constraint elimination, and the
    product of your ticket's values for fields whose name contains a match
    string ("departure" by default).

Examples:
  ticketscan
  ticketscan --input notes.txt --format json
  ticketscan resolve --strict --match arrival`,
		Args: cobra.NoArgs,

		// Errors are printed by Execute, in text or JSON.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd.OutOrStdout(), e)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&e.flags.input, "input", "i", "", "Path to the notes file (default \"inputData.txt\")")
	pf.StringVarP(&e.flags.configPath, "config", "c", "", "Path to a config file (.yaml, .jsonc, .json or .toml)")
	pf.StringVar(&e.flags.match, "match", "", "Substring selecting the fields multiplied into the product (default \"departure\")")
	pf.BoolVar(&e.flags.strict, "strict", false, "Fail when a column has more than one candidate field left")
	pf.StringVar(&e.flags.format, "format", "", "Output format: text, json, yaml (default \"text\")")
	pf.BoolVarP(&e.flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newScanCommand(e))
	rootCmd.AddCommand(newResolveCommand(e))

	return rootCmd
}

// setup loads the config, applies explicitly set flags on top of it and
// builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if e.flags.configPath != "" {
		path = e.flags.configPath
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadDir(".")
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = e.flags.input
	}
	if flags.Changed("match") {
		cfg.Match = e.flags.match
	}
	if flags.Changed("strict") {
		cfg.Strict = e.flags.strict
	}
	if flags.Changed("format") {
		cfg.Format = e.flags.format
	}
	if flags.Changed("verbose") {
		cfg.Verbose = e.flags.verbose
	}
	if err := cfg.Validate(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid options", err)
	}

	// Validate already checked the format, so the error cannot occur.
	e.format, _ = report.ParseFormat(cfg.Format)
	e.cfg = cfg
	e.logger = logging.New(logging.Options{
		Verbose: cfg.Verbose,
		JSON:    e.format == report.FormatJSON,
		Writer:  cmd.ErrOrStderr(),
	})
	if path != "" {
		e.logger.Debug("loaded config", zap.String("path", path))
	}
	return nil
}

// Execute runs the root command and exits the process with the code carried
// by the returned error, if any.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		jsonOutput := format == string(report.FormatJSON)

		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, jsonOutput, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, jsonOutput, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error message as "Error: ..." text or as a JSON
// object, depending on the requested output format.
func printError(w io.Writer, jsonOutput bool, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}
