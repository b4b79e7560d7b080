package cli

import (
	"fmt"
	"io"

	"github.com/mikesmitty/hygrometry/pkg/env"
	"github.com/mikesmitty/hygrometry/pkg/hygrometry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Calc() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		errChk(calc(cmd.OutOrStdout(), args))
	}
}

func calc(w io.Writer, args []string) error {
	v, err := parseFloats(args, "temperature", "humidity")
	if err != nil {
		return fmt.Errorf("calc: %w", err)
	}
	e := solve(v[0], v[1], viper.GetFloat64("pressure"), viper.GetInt("max-iterations"))
	return writeEnv(w, e, viper.GetBool("json"))
}

func Convert() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		errChk(convert(cmd.OutOrStdout(), args[0], args[1:]))
	}
}

func convert(w io.Writer, direction string, args []string) error {
	v, err := parseFloats(args, "temperature")
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	var out float64
	switch direction {
	case "f2c":
		out = hygrometry.FahrenheitToCelsius(v[0])
	case "c2f":
		out = hygrometry.CelsiusToFahrenheit(v[0])
	default:
		return fmt.Errorf("convert: unknown direction %q, want f2c or c2f", direction)
	}
	if viper.GetBool("json") {
		return writeJSON(w, map[string]any{"input": v[0], "output": out})
	}
	_, err = fmt.Fprintln(w, formatValue(out))
	return err
}

func Adjust() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		errChk(adjust(cmd.OutOrStdout(), args))
	}
}

// adjust re-derives a reading after the air is heated or cooled from one
// temperature to another without gaining or losing moisture.
func adjust(w io.Writer, args []string) error {
	v, err := parseFloats(args, "humidity", "from", "to")
	if err != nil {
		return fmt.Errorf("adjust: %w", err)
	}
	from := env.New(v[1], v[0], viper.GetFloat64("pressure"))
	return writeEnv(w, from.AdjustTemperature(v[2]), viper.GetBool("json"))
}
