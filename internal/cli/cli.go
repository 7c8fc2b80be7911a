// Package cli implements the quill command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/quill/pkg/config"
	"github.com/thomasrohde/quill/pkg/diagnostics"
	"github.com/thomasrohde/quill/pkg/frontend"
	"github.com/thomasrohde/quill/pkg/logging"
	"github.com/thomasrohde/quill/pkg/parser"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitDiagnostics = 2
)

// exitError carries an exit code out of a command. A nil err means the
// command already reported the failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// app holds the state shared by all commands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgFile  string
	verbose  bool
	recovery string

	cfg    *config.Config
	logger *slog.Logger
}

// Run executes the quill command line and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return ExitUsage
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quill",
		Short: "quill - scanner, parser and formatter for the quill language",
		Long: `quill reads quill source files and reports every syntax error in them.

Commands:
  tokens   - print the token stream
  parse    - print the syntax tree as JSON or YAML
  check    - report diagnostics
  fmt      - rewrite a file in canonical layout
  watch    - re-check a file whenever it changes`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $QUILL_CONFIG, ./quill.toml, ~/.config/quill/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().StringVar(&a.recovery, "recovery", "", "parser recovery mode: resync or minimal")

	root.AddCommand(
		a.tokensCmd(),
		a.parseCmd(),
		a.checkCmd(),
		a.fmtCmd(),
		a.watchCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFile(a.cfgFile)
	if err != nil {
		report := diagnostics.MakeReport(diagnostics.EConfig, err.Error(), nil, "check the configuration file and QUILL_* variables")
		fmt.Fprintln(a.stderr, diagnostics.FormatReport(report, true))
		return &exitError{code: ExitUsage}
	}

	if cmd.Flags().Changed("recovery") {
		if _, err := parser.ParseRecoveryMode(a.recovery); err != nil {
			return &exitError{code: ExitUsage, err: err}
		}
		cfg.Parser.Recovery = a.recovery
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	lc := cfg.LoggerConfig("quill")
	lc.Output = a.stderr
	a.cfg = cfg
	a.logger = logging.NewLogger(lc)
	a.logger.Debug("configuration loaded", "path", cfg.Path(), "recovery", cfg.Parser.Recovery)
	return nil
}

func (a *app) frontend() *frontend.Frontend {
	return frontend.New(
		frontend.WithLogger(a.logger),
		frontend.WithRecovery(a.cfg.RecoveryMode()),
		frontend.WithMaxErrors(a.cfg.Parser.MaxErrors),
	)
}

// readSource reads file, or standard input when file is "-".
func (a *app) readSource(file string, pretty bool) (string, string, error) {
	if file == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", "", &exitError{code: ExitUsage, err: fmt.Errorf("reading stdin: %w", err)}
		}
		return string(data), "<stdin>", nil
	}

	source, err := os.ReadFile(file)
	if err != nil {
		report := diagnostics.MakeReport(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		fmt.Fprintln(a.stderr, diagnostics.FormatReports([]diagnostics.Report{report}, pretty))
		return "", "", &exitError{code: ExitUsage}
	}
	return string(source), file, nil
}

// reportDiagnostics prints d for source and returns the diagnostics exit error.
func (a *app) reportDiagnostics(d *diagnostics.Diagnostic, file, source string, pretty bool) error {
	reports := d.Reports(file, source)
	if pretty {
		fmt.Fprintln(a.stderr, diagnostics.NewRenderer(a.stderr).Render(source, reports))
	} else {
		fmt.Fprintln(a.stderr, diagnostics.FormatReports(reports, false))
	}
	return &exitError{code: ExitDiagnostics}
}

// asDiagnostic extracts the Diagnostic from err, or wraps err as a usage failure.
func asDiagnostic(err error) (*diagnostics.Diagnostic, error) {
	var d *diagnostics.Diagnostic
	if errors.As(err, &d) {
		return d, nil
	}
	return nil, &exitError{code: ExitUsage, err: err}
}
