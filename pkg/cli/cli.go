package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mikesmitty/hygrometry/pkg/env"
	"github.com/spf13/viper"
)

var errBadValue = errors.New("not a number")

// SetupLogging installs the default logger. Debug output is enabled by the
// debug setting.
func SetupLogging() {
	slogOpts := slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if viper.GetBool("debug") {
		slogOpts.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slogOpts))
	slog.SetDefault(log)
}

func errChk(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func parseFloats(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil || math.IsNaN(v) {
			name := a
			if i < len(names) {
				name = names[i]
			}
			return nil, fmt.Errorf("%s %q: %w", name, a, errBadValue)
		}
		out[i] = v
	}
	return out, nil
}

// solve computes a reading, warning when the wet-bulb search gives up.
func solve(temp, humidity, pressure float64, maxIter int) env.Env {
	e, n, ok := env.Solve(temp, humidity, pressure, maxIter)
	if !ok {
		slog.Warn("wet bulb did not converge", "temp", temp, "humidity", humidity, "pressure", pressure, "iterations", n)
	} else {
		slog.Debug("wet bulb converged", "temp", temp, "humidity", humidity, "pressure", pressure, "iterations", n)
	}
	return e
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// jsonValue maps NaN and Inf to null, which encoding/json cannot represent.
func jsonValue(v float64) any {
	if !finite(v) {
		return nil
	}
	return v
}

func envMap(e env.Env) map[string]any {
	m := make(map[string]any)
	for _, f := range e.Fields() {
		m[f.Name] = jsonValue(f.Value)
	}
	return m
}

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeEnv(w io.Writer, e env.Env, asJSON bool) error {
	if asJSON {
		return writeJSON(w, envMap(e))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range e.Fields() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Label, formatValue(f.Value), f.Unit)
	}
	return tw.Flush()
}
