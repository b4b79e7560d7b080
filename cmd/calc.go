package cmd

import (
	"github.com/mikesmitty/hygrometry/pkg/cli"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:     "calc TEMP HUMIDITY",
	Short:   "Print every derived quantity for one reading",
	Example: "  hygrometry calc 25 60 --pressure 980",
	Args:    cobra.ExactArgs(2),
	Run:     cli.Calc(),
}

var convertCmd = &cobra.Command{
	Use:       "convert f2c|c2f VALUE",
	Short:     "Convert between Fahrenheit and Celsius",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"f2c", "c2f"},
	Run:       cli.Convert(),
}

var adjustCmd = &cobra.Command{
	Use:   "adjust HUMIDITY FROM TO",
	Short: "Re-derive a reading after heating or cooling the air",
	Args:  cobra.ExactArgs(3),
	Run:   cli.Adjust(),
}

var publishCmd = &cobra.Command{
	Use:   "publish TEMP HUMIDITY",
	Short: "Publish one reading to Home Assistant over mqtt",
	Args:  cobra.ExactArgs(2),
	Run:   cli.Publish(),
}

func init() {
	rootCmd.AddCommand(calcCmd, convertCmd, adjustCmd, publishCmd)
}
