package main

import (
	"errors"
	"fmt"

	"github.com/luno-testing/luno/framework"
	"github.com/luno-testing/luno/selftest"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errTestsFailed makes the command exit with a nonzero status after the summary has already
// been printed.
var errTestsFailed = errors.New("some tests failed")

func newRootCommand() *cobra.Command {
	var params commandParams

	cmd := &cobra.Command{
		Use:   commandName,
		Short: "Run the fixture and predicate self-test suite",
		Long: `Runs the built-in suite that checks fixtures (lazy setup, shared values,
teardown) and predicates (evaluation, rendering, failure messages) through the
test framework.

Tests can be selected with --run and --skip, which take regular expressions matched
against the full test name, for instance "fixture/clone is independent".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, &params)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.configFile, "config", "", "YAML file with run/skip patterns and debug settings")
	flags.Var(&params.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	flags.Var(&params.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	flags.BoolVar(&params.debug, "debug", false, "show debug output for failed tests")
	flags.BoolVar(&params.debugAll, "debug-all", false, "show debug output for all tests")
	flags.BoolVar(&params.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runSuite(cmd *cobra.Command, params *commandParams) error {
	if params.configFile != "" {
		config, err := loadConfigFile(params.configFile)
		if err != nil {
			return err
		}
		if err := params.applyConfig(config); err != nil {
			return err
		}
	}
	if params.noColor {
		color.NoColor = true
	}

	out := cmd.OutOrStdout()
	params.filters.Describe(out)

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := selftest.RunSuite(params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	PrintResults(out, results)
	if results.OK() {
		return nil
	}

	var failed []framework.TestID
	for _, f := range results.Failures {
		if len(f.TestID.Path) > 0 {
			failed = append(failed, f.TestID)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(out, "\nTo run only the failed tests:\n  %s\n", params.rerunCommand(failed))
	}
	return errTestsFailed
}
