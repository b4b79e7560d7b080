package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats keeps the last size values of a series. Calculations only see the
// values added so far.
type Stats struct {
	count  int
	size   int
	values []float64
	x      []float64
}

func NewStats(size int) *Stats {
	if size < 1 {
		size = 1
	}
	x := make([]float64, size)
	for i := range x {
		x[i] = float64(i + 1)
	}
	return &Stats{
		size:   size,
		values: make([]float64, size),
		x:      x,
	}
}

func (p *Stats) getValues() []float64 {
	return p.values[p.size-p.count:]
}

func (p *Stats) Add(value float64) {
	p.values = append(p.values[1:], value)
	if p.count < p.size {
		p.count++
	}
}

func (p *Stats) Len() int {
	return p.count
}

func (p *Stats) Mean() float64 {
	if p.count == 0 {
		return math.NaN()
	}
	return stat.Mean(p.getValues(), nil)
}

// StdDev is the sample standard deviation, NaN with fewer than two values.
func (p *Stats) StdDev() float64 {
	if p.count < 2 {
		return math.NaN()
	}
	return stat.StdDev(p.getValues(), nil)
}

func (p *Stats) Min() float64 {
	if p.count == 0 {
		return math.NaN()
	}
	return floats.Min(p.getValues())
}

func (p *Stats) Max() float64 {
	if p.count == 0 {
		return math.NaN()
	}
	return floats.Max(p.getValues())
}

// LinearRegression returns the intercept and the change per sample.
func (p *Stats) LinearRegression() (float64, float64) {
	if p.count < 2 {
		return math.NaN(), math.NaN()
	}
	return stat.LinearRegression(p.x[:p.count], p.getValues(), nil, false)
}

// Summary collects the aggregate figures of one series.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Trend  float64 `json:"trend"`
}

func (p *Stats) Summary() Summary {
	_, trend := p.LinearRegression()
	return Summary{
		Count:  p.count,
		Mean:   p.Mean(),
		StdDev: p.StdDev(),
		Min:    p.Min(),
		Max:    p.Max(),
		Trend:  trend,
	}
}
