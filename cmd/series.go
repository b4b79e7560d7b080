package cmd

import (
	"github.com/mikesmitty/hygrometry/pkg/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Derive quantities for a stream of readings",
	Long: `Reads "temp humidity [pressure]" lines from stdin or --file, prints the
derived quantities for each reading and a summary at the end.`,
	Args: cobra.NoArgs,
	Run:  cli.Series(),
}

func init() {
	rootCmd.AddCommand(seriesCmd)

	seriesCmd.Flags().StringP("file", "f", "", "read readings from file instead of stdin")
	seriesCmd.Flags().Int("window", 1, "moving average window for dew point and wet bulb")
	seriesCmd.Flags().Int("mqtt-sample-interval", 1, "publish every nth reading")

	viper.BindPFlags(seriesCmd.Flags())
}
