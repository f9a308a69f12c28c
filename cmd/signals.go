package cmd

import (
	"github.com/spf13/cobra"

	"trojanscope.dev/pkg/trojanscope/internal/domain"
)

// signalsCmd represents the signals command.
var signalsCmd = newSignalsCmd()

func newSignalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signals [trace.vcd]",
		Short: "List the signals recorded in a trace",
		Long:  "List every signal of a VCD trace in name order together with its toggle count.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Signals(cmd.Context(), domain.SignalsArgs{Trace: tracePath(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}
