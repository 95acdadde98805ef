package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qdbblast/qdbblast/internal/common"
	"github.com/qdbblast/qdbblast/internal/common/logging"
	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/blaster"
)

func blastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blast",
		Short: "Drop, recreate and fill the configured tables with synthetic rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log.AddHook(logging.RunIDHook{RunID: util.NewRunID()})

			if config.Metrics.Port > 0 {
				shutdownMetrics := common.ServeMetrics(config.Metrics.Port)
				defer shutdownMetrics()
			}

			return blaster.New(config).Run(cmd.Context())
		},
	}
	return cmd
}
