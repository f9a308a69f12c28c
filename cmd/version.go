package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildSetting returns the value of a build setting such as vcs.revision.
func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}

	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the trojanscope build version, VCS revision and the Go version used to build it.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("trojanscope version: unknown")
				return
			}

			cmd.Println("trojanscope\t", info.Main.Version)

			if rev := buildSetting(info, "vcs.revision"); rev != "" {
				cmd.Println("revision\t", rev)
			}

			cmd.Println("go\t\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
