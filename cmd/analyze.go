package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trojanscope.dev/pkg/trojanscope/internal/domain"
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

const analyzeLongDescription = `Compare the toggle counts of every baseline/candidate signal pair in a VCD
trace and report the pairs whose deviation exceeds the threshold.

Signals only present in the candidate are always flagged. Signals that vanished
from the candidate are reported, and flagged only with --flag-baseline-only.

The report is saved as report.yaml (or .json) and the comparison chart as
comparison_plot.png in the output directory.`

var (
	thresholdFlag        float64
	baselineMarkerFlag   string
	candidateMarkerFlag  string
	flagBaselineOnlyFlag bool
	showAllFlag          bool
	showDiffFlag         bool
	noPlotFlag           bool
)

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [trace.vcd]",
		Short: "Flag signals whose switching activity deviates between the variants",
		Long:  analyzeLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := workflow.Analyze(cmd.Context(), domain.AnalyzeArgs{
				Trace:            tracePath(args),
				Output:           m.Path(viper.GetString(outputConfigKey)),
				BaselineMarker:   viper.GetString(baselineMarkerConfigKey),
				CandidateMarker:  viper.GetString(candidateMarkerConfigKey),
				ThresholdPct:     viper.GetFloat64(thresholdConfigKey),
				FlagBaselineOnly: viper.GetBool(flagBaselineOnlyConfigKey),
				ShowAll:          showAllFlag,
				ShowDiff:         showDiffFlag,
				NoPlot:           noPlotFlag,
			})

			return err
		},
	}

	configureAnalyzeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func configureAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&thresholdFlag, thresholdFlagName, domain.DefaultThresholdPct, "deviation percentage above which a signal pair is flagged")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), thresholdConfigKey)

	cmd.Flags().StringVar(&baselineMarkerFlag, baselineMarkerFlagName, defaultBaselineMarker, "name fragment identifying the trusted circuit")
	bindFlagToConfig(cmd.Flags().Lookup(baselineMarkerFlagName), baselineMarkerConfigKey)

	cmd.Flags().StringVar(&candidateMarkerFlag, candidateMarkerFlagName, defaultCandidateMarker, "name fragment identifying the suspect circuit")
	bindFlagToConfig(cmd.Flags().Lookup(candidateMarkerFlagName), candidateMarkerConfigKey)

	cmd.Flags().BoolVar(&flagBaselineOnlyFlag, flagBaselineOnlyFlagName, defaultFlagBaselineOnly, "also flag signals missing from the candidate")
	bindFlagToConfig(cmd.Flags().Lookup(flagBaselineOnlyFlagName), flagBaselineOnlyConfigKey)

	cmd.Flags().BoolVarP(&showAllFlag, allFlagName, "a", false, "list every compared signal, not only flagged ones")
	cmd.Flags().BoolVar(&showDiffFlag, diffFlagName, false, "print a diff of the baseline and candidate signal names")
	cmd.Flags().BoolVar(&noPlotFlag, noPlotFlagName, false, "skip rendering the comparison chart")
}
