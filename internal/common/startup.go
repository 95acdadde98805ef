package common

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/weaveworks/promrus"

	"github.com/qdbblast/qdbblast/internal/common/logging"
)

// LoadConfig reads TOML configuration into config. The bundled defaults under
// defaultPath are read first, then every file in userSpecifiedConfigs is
// merged on top in order, so an override file only needs the keys it changes.
// Environment variables prefixed QDBBLAST_ override both. A missing defaults
// file is tolerated when at least one override file is given.
func LoadConfig(config interface{}, defaultPath string, userSpecifiedConfigs []string, opts ...viper.DecoderConfigOption) error {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(defaultPath)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || len(userSpecifiedConfigs) == 0 {
			return errors.WithMessagef(err, "reading config from %s", defaultPath)
		}
	}

	for _, userConfig := range userSpecifiedConfigs {
		v.SetConfigFile(userConfig)
		if err := v.MergeInConfig(); err != nil {
			return errors.WithMessagef(err, "reading config file %s", userConfig)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("QDBBLAST")
	v.AutomaticEnv()

	if err := v.Unmarshal(config, opts...); err != nil {
		return errors.WithMessage(err, "unmarshalling config")
	}
	return nil
}

func ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.AddHook(promrus.MustNewPrometheusHook())
	log.SetOutput(os.Stdout)
}

func ConfigureCommandLineLogging() {
	commandLineFormatter := new(logging.CommandLineFormatter)
	log.SetFormatter(commandLineFormatter)
	log.SetOutput(os.Stdout)
}
