/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mikesmitty/hygrometry/pkg/cli"
	"github.com/mikesmitty/hygrometry/pkg/env"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hygrometry",
	Short: "Psychrometric calculations from temperature and humidity",
	Long: `Derives dew point, wet-bulb temperature, absolute humidity, mixing ratio
and heat index from dry-bulb temperature (°C), relative humidity (%) and
barometric pressure (hPa).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetupLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hygrometry.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "print results as JSON")
	rootCmd.PersistentFlags().Float64("pressure", env.StandardPressure, "barometric pressure in hPa")
	rootCmd.PersistentFlags().Int("max-iterations", 0, "wet bulb search step limit, 0 for no limit")
	rootCmd.PersistentFlags().String("mqtt-broker", "", "mqtt broker url")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".hygrometry" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hygrometry")
	}

	viper.SetEnvPrefix("hygrometry")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
