package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/quill/internal/watcher"
	"github.com/thomasrohde/quill/pkg/frontend"
)

// Build information, set with -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

func (a *app) tokensCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := a.readSource(args[0], false)
			if err != nil {
				return err
			}

			tokens, ctx, scanErr := a.frontend().Tokens(source, filename)
			views := frontend.TokenViews(ctx, tokens)

			if format == "" {
				for _, v := range views {
					fmt.Fprintf(a.stdout, "%s %s %s\n", v.Kind.Ident(), v.Span, strconv.Quote(v.Text))
				}
			} else {
				out, err := frontend.Encode(views, format)
				if err != nil {
					return &exitError{code: ExitUsage, err: err}
				}
				a.stdout.Write(out)
			}

			if scanErr != nil {
				d, err := asDiagnostic(scanErr)
				if err != nil {
					return err
				}
				return a.reportDiagnostics(d, filename, source, false)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: json or yaml (default: one token per line)")
	return cmd
}

func (a *app) parseCmd() *cobra.Command {
	var format string
	var pretty bool
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Print the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			source, filename, err := a.readSource(args[0], pretty)
			if err != nil {
				return err
			}

			out, err := a.frontend().Dump(source, filename, format)
			if err != nil {
				d, err := asDiagnostic(err)
				if err != nil {
					return err
				}
				return a.reportDiagnostics(d, filename, source, pretty)
			}
			a.stdout.Write(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: json or yaml (default from config)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "styled diagnostics")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "check <file|->",
		Short: "Report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("pretty") {
				pretty = a.cfg.Output.Pretty
			}
			source, filename, err := a.readSource(args[0], pretty)
			if err != nil {
				return err
			}
			return a.check(source, filename, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "styled diagnostics with source excerpts")
	return cmd
}

// check reports the diagnostics of source. A clean file prints "[]", or a
// short confirmation in pretty mode.
func (a *app) check(source, filename string, pretty bool) error {
	if d := a.frontend().Check(source, filename); d != nil {
		return a.reportDiagnostics(d, filename, source, pretty)
	}
	if pretty {
		fmt.Fprintln(a.stdout, "No errors found.")
	} else {
		fmt.Fprintln(a.stdout, "[]")
	}
	return nil
}

func (a *app) fmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Print a file in canonical layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && args[0] == "-" {
				return &exitError{code: ExitUsage, err: fmt.Errorf("--write needs a file, not stdin")}
			}
			source, filename, err := a.readSource(args[0], false)
			if err != nil {
				return err
			}

			formatted, err := a.frontend().Format(source, filename)
			if err != nil {
				d, err := asDiagnostic(err)
				if err != nil {
					return err
				}
				return a.reportDiagnostics(d, filename, source, false)
			}

			if write {
				if err := os.WriteFile(filename, []byte(formatted), 0o644); err != nil {
					return &exitError{code: ExitUsage, err: fmt.Errorf("writing %s: %w", filename, err)}
				}
				a.logger.Debug("formatted file", "path", filename)
				return nil
			}
			fmt.Fprint(a.stdout, formatted)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-check a file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return &exitError{code: ExitUsage, err: fmt.Errorf("watch needs a file, not stdin")}
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = a.cfg.Output.Pretty
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, args[0], pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "styled diagnostics with source excerpts")
	return cmd
}

// watch checks file once and then again after every change until ctx ends.
func (a *app) watch(ctx context.Context, file string, pretty bool) error {
	recheck := func(path string) {
		source, filename, err := a.readSource(path, pretty)
		if err != nil {
			return
		}
		// Diagnostics are printed by check; the watch keeps going.
		_ = a.check(source, filename, pretty)
	}

	recheck(file)
	w := watcher.New(file, recheck,
		watcher.WithDebounce(a.cfg.Watch.Debounce.Duration),
		watcher.WithLogger(a.logger),
	)
	if err := w.Run(ctx); err != nil {
		return &exitError{code: ExitUsage, err: err}
	}
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "quill v%s\n", Version)
			fmt.Fprintf(a.stdout, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build Date: %s\n", BuildDate)
			fmt.Fprintf(a.stdout, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(a.stdout, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
