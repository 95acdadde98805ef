package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/qdbblast/qdbblast/internal/common"
	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/blaster"
	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and table schemas without connecting to anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			common.ConfigureCommandLineLogging()
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			names := maps.Keys(config.Tables)
			slices.Sort(names)

			w := util.NewTabbedStringBuilder(1, 1, 2, ' ', 0)
			w.Writef("TABLE\tCOLUMNS\tSYMBOLS\tFIELDS\tDESIGNATED\tROWS\tSENDERS\n")
			for _, name := range names {
				table := config.Tables[name]
				if err := blaster.ValidateNames(name, table); err != nil {
					return err
				}
				symbols, fields := schema.Classify(table.Schema, table.DesignatedTS)
				w.Writef("%s\t%d\t%d\t%d\t%s\t%d\t%d\n",
					name, len(table.Schema), len(symbols), len(fields),
					table.DesignatedTS, table.Send.TotRows, table.Send.ParallelSenders)
			}
			fmt.Fprint(cmd.OutOrStdout(), w.String())
			fmt.Fprintln(cmd.OutOrStdout(), "configuration ok")
			return nil
		},
	}
	return cmd
}
