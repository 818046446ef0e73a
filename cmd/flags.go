package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlag exposes a flag under a config key. Flags set on the command line
// take precedence over the config file and the environment.
func bindFlag(key string, flag *pflag.Flag) {
	cobra.CheckErr(viper.BindPFlag(key, flag))
}
