// Package cmd provides the root command and CLI setup for trojanscope.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"trojanscope.dev/pkg/trojanscope/internal/adapter"
	"trojanscope.dev/pkg/trojanscope/internal/controller"
	"trojanscope.dev/pkg/trojanscope/internal/domain"
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

var traceSource adapter.TraceSource
var reportStore adapter.ReportStore
var renderer adapter.Renderer
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag naming the directory artifacts are written to.
var outputDirFlag string

// traceFlag is a root-level flag naming the VCD trace to read.
var traceFlag string

var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	traceSource = adapter.NewLocalTraceSource()
	reportStore = adapter.NewReportStore()
	renderer = adapter.NewChartRenderer()
	workflow = domain.NewWorkflow(traceSource, reportStore, renderer, ui)
}

const rootLongDescription = `trojanscope detects hardware trojans by comparing the switching activity of a
trusted ("clean") circuit against a suspect ("trojan") circuit simulated side by
side and recorded into one VCD trace.

Signals are paired by the part of their hierarchical name that follows the
variant marker (e.g. tb.UUT_clean.result and tb.UUT_trojan.result), their toggle
counts are compared, and pairs whose relative deviation exceeds the threshold
are flagged as suspicious.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trojanscope",
		Short: "Toggle-count side-channel analysis for hardware trojan detection",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a fresh root command with its persistent flags bound to the config.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			defaultOutputDir,
			"directory for the report and chart images",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().StringVarP(&traceFlag, traceFlagName, "t", defaultTrace, "VCD trace to analyze")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(traceFlagName), traceConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// tracePath returns the positional trace argument, falling back to --trace / config.
func tracePath(args []string) m.Path {
	if len(args) > 0 && args[0] != "" {
		return m.Path(args[0])
	}

	return m.Path(viper.GetString(traceConfigKey))
}
