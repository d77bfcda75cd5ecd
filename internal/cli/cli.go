/*
Copyright 2024 Tim St. Pierre
Flag, environment and config file handling shared by the commands
*/
// Package cli holds the flag, environment and config file handling shared by
// the commands.
package cli

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Bind adds the common --config and --log-level flags to cmd and returns a
// viper instance that resolves every flag of cmd from, in order, the command
// line, <PREFIX>_<FLAG> environment variables and the config file.
//
// Flags must be defined before Bind is called.
func Bind(cmd *cobra.Command, envPrefix string) (*viper.Viper, error) {
	f := cmd.Flags()
	f.String("config", "", "config file (yaml, toml or json)")
	f.String("log-level", "info", "log level: trace, debug, info, warn, error")

	v := viper.New()
	if err := v.BindPFlags(f); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the config file named by --config, if any, and applies the log
// level.
func Load(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debugf("loaded config %s", v.ConfigFileUsed())
	}
	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
