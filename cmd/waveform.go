package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trojanscope.dev/pkg/trojanscope/internal/domain"
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

const waveformLongDescription = `Render the waveforms of a bounded set of signals as stacked panels into
waveform_view.png in the output directory.

Without --signal, signals are picked by keyword in priority order (case
insensitive) and topped up in name order until --min signals are shown.
Unknown (x/z) values are drawn below zero.`

var (
	maxSignalsFlag int
	minSignalsFlag int
	keywordsFlag   []string
	signalsFlag    []string
	horizonFlag    uint64
)

// waveformCmd represents the waveform command.
var waveformCmd = newWaveformCmd()

func newWaveformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waveform [trace.vcd]",
		Short: "Plot the waveforms of the most relevant signals",
		Long:  waveformLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Waveform(cmd.Context(), domain.WaveformArgs{
				Trace:    tracePath(args),
				Output:   m.Path(viper.GetString(outputConfigKey)),
				Keywords: viper.GetStringSlice(keywordsConfigKey),
				Signals:  signalsFlag,
				MinCount: viper.GetInt(minSignalsConfigKey),
				MaxCount: viper.GetInt(maxSignalsConfigKey),
				Horizon:  viper.GetUint64(horizonConfigKey),
			})
		},
	}

	configureWaveformFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(waveformCmd)
}

func configureWaveformFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&maxSignalsFlag, maxSignalsFlagName, defaultMaxSignals, "maximum number of plotted signals")
	bindFlagToConfig(cmd.Flags().Lookup(maxSignalsFlagName), maxSignalsConfigKey)

	cmd.Flags().IntVar(&minSignalsFlag, minSignalsFlagName, defaultMinSignals, "minimum number of plotted signals")
	bindFlagToConfig(cmd.Flags().Lookup(minSignalsFlagName), minSignalsConfigKey)

	cmd.Flags().StringSliceVarP(&keywordsFlag, keywordsFlagName, "k", defaultKeywords, "signal name keywords in priority order")
	bindFlagToConfig(cmd.Flags().Lookup(keywordsFlagName), keywordsConfigKey)

	cmd.Flags().Uint64Var(&horizonFlag, horizonFlagName, defaultHorizon, "cut the waveforms at this time (0 plots the whole trace)")
	bindFlagToConfig(cmd.Flags().Lookup(horizonFlagName), horizonConfigKey)

	cmd.Flags().StringArrayVarP(&signalsFlag, signalFlagName, "s", nil, "plot this signal path instead of selecting by keyword (can be repeated)")
}
