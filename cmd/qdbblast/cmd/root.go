package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qdbblast/qdbblast/internal/common"
	commonconfig "github.com/qdbblast/qdbblast/internal/common/config"
	"github.com/qdbblast/qdbblast/internal/qdbblast/configuration"
)

const (
	customConfigLocation = "config"
	defaultConfigPath    = "config/qdbblast"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qdbblast",
		Short: "qdbblast blasts synthetic time series data into QuestDB.",
	}

	cmd.PersistentFlags().StringSlice(
		customConfigLocation, nil,
		"Fully qualified path to additional configuration files, merged in order over the defaults")

	cmd.AddCommand(
		blastCmd(),
		checkCmd(),
		genConfigCmd(),
		versionCmd(),
	)

	return cmd
}

// loadConfig reads the default configuration plus any files given with
// --config, then validates the result.
func loadConfig(cmd *cobra.Command) (configuration.BlastConfig, error) {
	var config configuration.BlastConfig

	userConfigs, err := cmd.Root().PersistentFlags().GetStringSlice(customConfigLocation)
	if err != nil {
		return config, errors.WithStack(err)
	}
	if err := common.LoadConfig(&config, defaultConfigPath, userConfigs, commonconfig.CustomHooks...); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	if config.Debug {
		log.SetLevel(log.DebugLevel)
		log.Debugf("effective configuration: %+v", config)
	}
	return config, nil
}
