package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikesmitty/hygrometry/pkg/env"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setViper(t *testing.T, kv map[string]any) {
	t.Helper()
	viper.Reset()
	viper.Set("pressure", env.StandardPressure)
	for k, v := range kv {
		viper.Set(k, v)
	}
	t.Cleanup(viper.Reset)
}

func TestParseFloats(t *testing.T) {
	v, err := parseFloats([]string{"20.5", "-3", "1e2"})
	require.NoError(t, err)
	assert.Equal(t, []float64{20.5, -3, 100}, v)

	_, err = parseFloats([]string{"20", "wet"}, "temperature", "humidity")
	assert.ErrorIs(t, err, errBadValue)
	assert.ErrorContains(t, err, `humidity "wet"`)

	_, err = parseFloats([]string{"NaN"})
	assert.ErrorIs(t, err, errBadValue)
}

func TestCalc(t *testing.T) {
	setViper(t, map[string]any{"pressure": 980.0})

	var buf bytes.Buffer
	require.NoError(t, calc(&buf, []string{"30", "80"}))
	out := buf.String()
	assert.Contains(t, out, "Mixing ratio")
	assert.Contains(t, out, "22.2665")
	assert.Contains(t, out, "980.0000")

	assert.Error(t, calc(&buf, []string{"thirty", "80"}))
}

func TestCalcJSON(t *testing.T) {
	setViper(t, map[string]any{"json": true})

	var buf bytes.Buffer
	require.NoError(t, calc(&buf, []string{"25", "60"}))

	var m map[string]*float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	require.NotNil(t, m["dewpoint"])
	assert.InDelta(t, 16.693149006198954, *m["dewpoint"], 1e-9)
	require.NotNil(t, m["absolute_humidity"])
	assert.InDelta(t, 13.780667458722558, *m["absolute_humidity"], 1e-9)
}

func TestCalcJSONUndefined(t *testing.T) {
	setViper(t, map[string]any{"json": true})

	var buf bytes.Buffer
	require.NoError(t, calc(&buf, []string{"25", "0"}))

	var m map[string]*float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Contains(t, m, "dewpoint")
	assert.Nil(t, m["dewpoint"])
	assert.NotNil(t, m["wet_bulb"])
}

func TestConvert(t *testing.T) {
	setViper(t, nil)

	var buf bytes.Buffer
	require.NoError(t, convert(&buf, "f2c", []string{"70"}))
	assert.Equal(t, "21.1111\n", buf.String())

	buf.Reset()
	require.NoError(t, convert(&buf, "c2f", []string{"100"}))
	assert.Equal(t, "212.0000\n", buf.String())

	assert.ErrorContains(t, convert(&buf, "k2c", []string{"1"}), "unknown direction")
}

func TestAdjust(t *testing.T) {
	setViper(t, map[string]any{"json": true, "pressure": 990.0})

	var buf bytes.Buffer
	require.NoError(t, adjust(&buf, []string{"60", "25", "30"}))

	var m map[string]*float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	require.NotNil(t, m["humidity"])
	assert.InDelta(t, 44.784059201238314, *m["humidity"], 1e-9)
	assert.Equal(t, 30.0, *m["temperature"])
	assert.Equal(t, 990.0, *m["pressure"])

	// Same air, same moisture: the dew point barely moves.
	before := env.New(25, 60, 990)
	assert.InDelta(t, before.Dewpoint, *m["dewpoint"], 1e-3)
	assert.InDelta(t, before.MixingRatio, *m["mixing_ratio"], 1e-3)
	assert.Less(t, *m["wet_bulb"], 30.0)
}

func TestAdjustText(t *testing.T) {
	setViper(t, nil)

	var buf bytes.Buffer
	require.NoError(t, adjust(&buf, []string{"60", "25", "30"}))
	assert.Regexp(t, `Humidity\s+44\.7841\s+%`, buf.String())
	assert.Contains(t, buf.String(), "Wet bulb")

	assert.Error(t, adjust(&buf, []string{"60", "25x", "30"}))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		temp     float64
		humidity float64
		pressure float64
		ok       bool
		err      bool
	}{
		{line: "20 50", temp: 20, humidity: 50, pressure: 1000, ok: true},
		{line: "20,50,980", temp: 20, humidity: 50, pressure: 980, ok: true},
		{line: "  21.5\t40  # shed", temp: 21.5, humidity: 40, pressure: 1000, ok: true},
		{line: "-5 0", temp: -5, humidity: 0, pressure: 1000, ok: true},
		{line: ""},
		{line: "# header"},
		{line: "20", err: true},
		{line: "20 50 980 1", err: true},
		{line: "20 x", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reading, ok, err := parseLine(tt.line, 1000)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			if ok {
				temp, humidity, pressure := env.Units(reading)
				assert.InDelta(t, tt.temp, temp, 1e-9)
				assert.InDelta(t, tt.humidity, humidity, 1e-9)
				assert.InDelta(t, tt.pressure, pressure, 1e-9)
			}
		})
	}
}

func TestSeries(t *testing.T) {
	in := strings.NewReader("# temp rh\n20 50\n22 55\n\n24,60,990\n")
	var out bytes.Buffer
	var published []env.Env
	err := series(in, &out, seriesOptions{pressure: env.StandardPressure}, func(e env.Env) error {
		published = append(published, e)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, published, 3)
	assert.Equal(t, 990.0, published[2].Pressure)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "20.0000\t50.0000\t1013.2500"), lines[0])
	assert.Contains(t, out.String(), "Quantity")
	assert.Regexp(t, `Temperature\s+3\s+22\.0000\s+2\.0000\s+20\.0000\s+24\.0000\s+2\.0000`, out.String())
}

func TestSeriesSmoothing(t *testing.T) {
	in := strings.NewReader("20 50\n30 50\n")
	var out bytes.Buffer
	var published []env.Env
	err := series(in, &out, seriesOptions{pressure: env.StandardPressure, window: 2, asJSON: true}, func(e env.Env) error {
		published = append(published, e)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, published, 2)
	first := env.New(20, 50, env.StandardPressure)
	second := env.New(30, 50, env.StandardPressure)
	assert.Equal(t, first.Dewpoint, published[0].Dewpoint)
	assert.InDelta(t, (first.Dewpoint+second.Dewpoint)/2, published[1].Dewpoint, 1e-9)
	assert.InDelta(t, (first.WetBulb+second.WetBulb)/2, published[1].WetBulb, 1e-9)

	dec := json.NewDecoder(&out)
	var reading map[string]*float64
	require.NoError(t, dec.Decode(&reading))
	require.NoError(t, dec.Decode(&reading))
	var summary struct {
		Summary map[string]struct {
			Count int      `json:"count"`
			Mean  *float64 `json:"mean"`
		} `json:"summary"`
	}
	require.NoError(t, dec.Decode(&summary))
	assert.Equal(t, 2, summary.Summary["temperature"].Count)
	require.NotNil(t, summary.Summary["temperature"].Mean)
	assert.InDelta(t, 25.0, *summary.Summary["temperature"].Mean, 1e-12)
}

func TestSeriesSmoothingUndefined(t *testing.T) {
	in := strings.NewReader("20 50\n20 0\n20 50\n20 50\n20 50\n20 50\n")
	var out bytes.Buffer
	var published []env.Env
	err := series(in, &out, seriesOptions{pressure: env.StandardPressure, window: 2}, func(e env.Env) error {
		published = append(published, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, published, 6)

	want := env.New(20, 50, env.StandardPressure).Dewpoint
	assert.InDelta(t, want, published[0].Dewpoint, 1e-9)
	assert.True(t, math.IsNaN(published[1].Dewpoint))
	for i, e := range published[2:] {
		assert.InDelta(t, want, e.Dewpoint, 1e-9, "reading %d", i+3)
	}
	assert.False(t, math.IsNaN(published[1].WetBulb))

	// The summary only counts defined dew points.
	assert.Regexp(t, `Dew point\s+5\s+`, out.String())
}

func TestRunSeriesReturnsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.txt")
	require.NoError(t, os.WriteFile(path, []byte("20 50\nbogus\n"), 0o644))
	setViper(t, map[string]any{"file": path})

	var out bytes.Buffer
	assert.ErrorContains(t, runSeries(strings.NewReader(""), &out), "line 2")
	assert.Contains(t, out.String(), "20.0000")

	viper.Set("file", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, runSeries(strings.NewReader(""), &out), os.ErrNotExist)
}

func TestSeriesBadLine(t *testing.T) {
	var out bytes.Buffer
	err := series(strings.NewReader("20 50\nbogus\n"), &out, seriesOptions{pressure: 1000}, nil)
	assert.ErrorContains(t, err, "line 2")
}

func TestPublishNeedsBroker(t *testing.T) {
	setViper(t, nil)
	assert.ErrorIs(t, publish([]string{"20", "50"}), errNoBroker)
}
