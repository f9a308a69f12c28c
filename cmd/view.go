package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trojanscope.dev/pkg/trojanscope/internal/domain"
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

var viewAllFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [report]",
		Short: "View a previously saved analysis report",
		Long: `View a report written by analyze. Without an argument the report.yaml in the
output directory is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportPath := m.Path(filepath.Join(viper.GetString(outputConfigKey), domain.ReportFileName))
			if len(args) > 0 {
				reportPath = m.Path(args[0])
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Report: reportPath, ShowAll: viewAllFlag})
		},
	}

	cmd.Flags().BoolVarP(&viewAllFlag, allFlagName, "a", false, "list every compared signal, not only flagged ones")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
