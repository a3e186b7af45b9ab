// Package commands provides the CLI commands for the lama tool.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"martianoff/lama/internal/build"
	"martianoff/lama/internal/evaluate"
	"martianoff/lama/internal/fetch"
	"martianoff/lama/internal/report"
	"martianoff/lama/internal/runner"
	"martianoff/lama/lamaerr"
)

var (
	evalQuiet    int
	evalTimeout  time.Duration
	evalCompiler string
	evalWorkdir  string
	evalSubdir   string
	evalColor    string
	evalRefresh  bool
	debugLogging bool
)

var rootCmd = &cobra.Command{
	Use:   "lama <source-file> <test-directory>",
	Short: "Compile a program and evaluate it against input/output fixtures",
	Long: `lama compiles a single source file in judge mode and runs the binary
against every input.K / output.K pair found in the test directory.

The program reads <name>.in and writes <name>.out in the working directory,
where <name> is the directory containing the source file. Existing files at
those paths are preserved and restored after the run.

The test directory may also be:
  - a .txtar archive containing the fixture files
  - a git remote (https://, ssh://, git@, file:// or *.git), optionally
    suffixed with #ref to select a tag, branch or commit

Examples:
  lama sum/main.cpp sum/tests           # Evaluate all tests
  lama -q sum/main.cpp sum/tests        # Hide the program's stderr
  lama -qq sum/main.cpp sum/tests       # Only print the total
  lama sum/main.cpp https://example.com/judge.git#v2 --subdir sum`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Help()
			return lamaerr.NewInvalidArguments("missing <source-file> and <test-directory>")
		}
		if len(args) != 2 {
			return lamaerr.NewInvalidArguments(fmt.Sprintf("expected <source-file> <test-directory>, got %d argument(s)", len(args)))
		}
		return runEvaluate(cmd.Context(), args[0], args[1], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute runs the root command and exits with the code of its outcome.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(rootCmd.OutOrStdout(), err)
	}
	os.Exit(lamaerr.ExitCode(err))
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(compareCmd)

	rootCmd.Flags().CountVarP(&evalQuiet, "quiet", "q", "Hide the program's stderr; -qq also hides per-test lines")
	rootCmd.Flags().DurationVarP(&evalTimeout, "timeout", "t", envDuration("LAMA_TIMEOUT", runner.DefaultTimeout), "Wall-clock limit per test")
	rootCmd.Flags().StringVar(&evalCompiler, "compiler", build.DefaultConfig().Compiler, "Compiler executable")
	rootCmd.Flags().StringVar(&evalWorkdir, "workdir", "", "Directory holding the channel files (default: current directory)")
	rootCmd.Flags().StringVar(&evalSubdir, "subdir", "", "Directory inside the test source holding the fixtures")
	rootCmd.Flags().StringVar(&evalColor, "color", string(report.ColorAuto), "Colorize output: auto, always or never")
	rootCmd.Flags().BoolVar(&evalRefresh, "refresh", false, "Clone git test sources again instead of using the cache")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Log diagnostic events to stderr")
}

func runEvaluate(ctx context.Context, source, testArg string, stdout, stderr io.Writer) error {
	mode, err := report.ParseColorMode(evalColor)
	if err != nil {
		return lamaerr.NewInvalidArguments(err.Error())
	}

	if err := evaluate.ValidateSource(source); err != nil {
		return err
	}

	logger := newLogger(stderr, debugLogging)
	defer func() { _ = logger.Sync() }()

	resolver := fetch.NewResolver(fetch.NewGitFetcher(fetch.DefaultConfig(), logger), logger)
	resolver.Refresh = evalRefresh
	fixtures, err := resolver.Resolve(ctx, testArg, evalSubdir)
	if err != nil {
		return err
	}
	defer fixtures.Cleanup()

	config := build.DefaultConfig()
	config.Compiler = evalCompiler
	config.Stdout = stdout
	config.Stderr = stderr

	reporter := report.NewReporter(stdout, report.Options{
		Color:   report.UseColor(mode, stdout),
		Concise: evalQuiet >= 2,
	})

	opts := evaluate.Options{
		Source:  source,
		TestDir: fixtures.Dir,
		Workdir: evalWorkdir,
		Timeout: evalTimeout,
	}
	if evalQuiet == 0 {
		opts.ProgramStderr = stderr
	}

	_, err = evaluate.New(build.NewCompiler(config, logger), reporter, logger).Evaluate(ctx, opts)
	return err
}

// printError renders a run-fatal error the way the report does.
func printError(out io.Writer, err error) {
	mode, perr := report.ParseColorMode(evalColor)
	if perr != nil {
		mode = report.ColorNever
	}
	reporter := report.NewReporter(out, report.Options{Color: report.UseColor(mode, out)})
	reporter.Error(errorMessage(err))
}

// errorMessage returns the user-facing text for err.
func errorMessage(err error) string {
	var le lamaerr.LamaError
	if !errors.As(err, &le) {
		return "ERROR: " + err.Error()
	}
	if le.Type() == lamaerr.TypeCompilation {
		return le.Message()
	}
	return "ERROR: " + le.Message()
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
