package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/build"
)

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := util.NewTabbedStringBuilder(1, 1, 1, ' ', 0)
			w.Writef("Version:\t%s\n", build.ReleaseVersion)
			w.Writef("Commit:\t%s\n", build.GitCommit)
			w.Writef("Go version:\t%s\n", build.GoVersion)
			w.Writef("Built:\t%s\n", build.BuildTime)
			fmt.Fprint(cmd.OutOrStdout(), w.String())
			return nil
		},
	}
	return cmd
}
