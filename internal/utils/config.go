package utils

import (
	"strings"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every configuration key when looking it up in
// the environment, e.g. host is read from RADIANCE_HOST.
const EnvPrefix = "radiance"

// SetupConfigFile defines the settings for the configuration file support.
// Values are resolved in the order: flag set on the command line,
// environment, config file, flag default. If configFile is empty, an
// optional config.yaml in the working directory is used.
func SetupConfigFile(fs *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// Ignore error if config file not found.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return v, nil
}
