package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mikesmitty/hygrometry/pkg/env"
	"github.com/mikesmitty/hygrometry/pkg/mqtt"
	"github.com/mikesmitty/hygrometry/pkg/stats"
	"github.com/mikesmitty/hygrometry/pkg/swma"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/physic"
)

// Summaries cover the most recent readings only.
const statsSize = 10000

type seriesOptions struct {
	pressure float64
	maxIter  int
	window   int
	asJSON   bool
}

func Series() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		errChk(runSeries(cmd.InOrStdin(), cmd.OutOrStdout()))
	}
}

func runSeries(in io.Reader, out io.Writer) error {
	if path := viper.GetString("file"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("series: %w", err)
		}
		defer f.Close()
		in = f
	}

	var publish func(env.Env) error
	if broker := viper.GetString("mqtt-broker"); broker != "" {
		mqttUrl, err := url.Parse(broker)
		if err != nil {
			return fmt.Errorf("series: %w", err)
		}
		mc := mqtt.NewClient(mqttUrl)
		if err := mc.Connect(); err != nil {
			return err
		}
		defer mc.Close()
		if err := mc.HomeAssistant(); err != nil {
			return err
		}

		sample := mqtt.NewSample(viper.GetInt("mqtt-sample-interval"))
		publish = func(e env.Env) error {
			if !sample.Ready() {
				return nil
			}
			return mc.PublishEnv(e)
		}
	}

	return series(in, out, seriesOptions{
		pressure: viper.GetFloat64("pressure"),
		maxIter:  viper.GetInt("max-iterations"),
		window:   viper.GetInt("window"),
		asJSON:   viper.GetBool("json"),
	}, publish)
}

// parseLine reads "temp humidity [pressure]" separated by whitespace or
// commas into a periph reading. Blank lines and # comments yield ok == false.
func parseLine(line string, pressure float64) (reading physic.Env, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return reading, false, nil
	}
	if len(fields) < 2 || len(fields) > 3 {
		return reading, false, fmt.Errorf("want 2 or 3 fields, got %d", len(fields))
	}
	v, err := parseFloats(fields, "temperature", "humidity", "pressure")
	if err != nil {
		return reading, false, err
	}
	if len(v) == 3 {
		pressure = v[2]
	}
	return env.ToPhysic(v[0], v[1], pressure), true, nil
}

// smooth feeds finite values to the moving average. Undefined values pass
// through for their own reading only.
func smooth(w *swma.SlidingWindow, v float64) float64 {
	if !finite(v) {
		return v
	}
	return w.Add(v)
}

func series(in io.Reader, out io.Writer, opts seriesOptions, publish func(env.Env) error) error {
	var fieldNames []string
	var fieldLabels []string
	quantities := make(map[string]*stats.Stats)

	var dewpointAvg, wetBulbAvg *swma.SlidingWindow
	if opts.window > 1 {
		dewpointAvg = swma.NewSlidingWindow(opts.window)
		wetBulbAvg = swma.NewSlidingWindow(opts.window)
	}

	scanner := bufio.NewScanner(in)
	lineNo := 0
	readings := 0
	for scanner.Scan() {
		lineNo++
		reading, ok, err := parseLine(scanner.Text(), opts.pressure)
		if err != nil {
			return fmt.Errorf("series: line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}

		readings++
		temp, humidity, pressure := env.Units(reading)
		e := solve(temp, humidity, pressure, opts.maxIter)
		if dewpointAvg != nil {
			e.Dewpoint = smooth(dewpointAvg, e.Dewpoint)
			e.WetBulb = smooth(wetBulbAvg, e.WetBulb)
		}

		if publish != nil {
			if err := publish(e); err != nil {
				return fmt.Errorf("series: line %d: %w", lineNo, err)
			}
		}

		for _, f := range e.Fields() {
			s, ok := quantities[f.Name]
			if !ok {
				s = stats.NewStats(statsSize)
				quantities[f.Name] = s
				fieldNames = append(fieldNames, f.Name)
				fieldLabels = append(fieldLabels, f.Label)
			}
			if finite(f.Value) {
				s.Add(f.Value)
			}
		}

		if err := writeReading(out, e, opts.asJSON); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("series: %w", err)
	}
	slog.Debug("series complete", "lines", lineNo, "readings", readings)

	if opts.asJSON {
		summary := make(map[string]map[string]any)
		for _, name := range fieldNames {
			sum := quantities[name].Summary()
			summary[name] = map[string]any{
				"count":  sum.Count,
				"mean":   jsonValue(sum.Mean),
				"stddev": jsonValue(sum.StdDev),
				"min":    jsonValue(sum.Min),
				"max":    jsonValue(sum.Max),
				"trend":  jsonValue(sum.Trend),
			}
		}
		return writeJSON(out, map[string]any{"summary": summary})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nQuantity\tCount\tMean\tStdDev\tMin\tMax\tTrend")
	for i, name := range fieldNames {
		sum := quantities[name].Summary()
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", fieldLabels[i], sum.Count,
			formatValue(sum.Mean), formatValue(sum.StdDev), formatValue(sum.Min), formatValue(sum.Max), formatValue(sum.Trend))
	}
	return tw.Flush()
}

func writeReading(w io.Writer, e env.Env, asJSON bool) error {
	if asJSON {
		return writeJSON(w, envMap(e))
	}
	fields := e.Fields()
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = formatValue(f.Value)
	}
	_, err := fmt.Fprintln(w, strings.Join(values, "\t"))
	return err
}
