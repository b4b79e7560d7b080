package env

import (
	"math"

	"github.com/mikesmitty/hygrometry/pkg/hygrometry"
	"periph.io/x/conn/v3/physic"
)

// StandardPressure is used when a reading carries no pressure.
const StandardPressure = 1013.25 // hPa

// Env is a single reading and the quantities derived from it.
type Env struct {
	Temperature float64
	Humidity    float64
	Pressure    float64

	SaturationVaporPressure float64
	VaporPressure           float64
	Dewpoint                float64
	WetBulb                 float64
	AbsoluteHumidity        float64
	MixingRatio             float64
	HeatIndex               float64
}

type Field struct {
	Name  string
	Label string
	Unit  string
	Value float64
}

func New(temp, humidity, pressure float64) Env {
	e, _, _ := Solve(temp, humidity, pressure, 0)
	return e
}

// Solve is New with a ceiling on the wet-bulb search. It reports how many
// steps the search took and whether it converged; see
// hygrometry.SolveWetBulb.
func Solve(temp, humidity, pressure float64, maxIter int) (Env, int, bool) {
	es, e, _ := hygrometry.VaporPressure(temp, humidity)
	tw, n, ok := hygrometry.SolveWetBulb(temp, humidity, pressure, maxIter)
	return Env{
		Temperature:             temp,
		Humidity:                humidity,
		Pressure:                pressure,
		SaturationVaporPressure: es,
		VaporPressure:           e,
		Dewpoint:                hygrometry.DewPoint(temp, humidity),
		WetBulb:                 tw,
		AbsoluteHumidity:        hygrometry.AbsoluteHumidity(temp, humidity),
		MixingRatio:             hygrometry.MixingRatio(temp, humidity, pressure),
		HeatIndex:               hygrometry.HeatIndex(temp, humidity),
	}, n, ok
}

// ToPhysic quantizes a reading to periph units, as a sensor driver would
// report it.
func ToPhysic(temp, humidity, pressure float64) physic.Env {
	return physic.Env{
		Temperature: physic.ZeroCelsius + physic.Temperature(math.Round(temp*float64(physic.Celsius))),
		Humidity:    physic.RelativeHumidity(math.Round(humidity * float64(physic.PercentRH))),
		Pressure:    physic.Pressure(math.Round(pressure * 100 * float64(physic.Pascal))),
	}
}

// Units converts a periph reading to °C, % and hPa. Readings without a
// pressure get StandardPressure.
func Units(e physic.Env) (temp, humidity, pressure float64) {
	pressure = StandardPressure
	if e.Pressure > 0 {
		pressure = float64(e.Pressure) / float64(physic.Pascal) / 100
	}
	return e.Temperature.Celsius(), float64(e.Humidity) / float64(physic.PercentRH), pressure
}

func FromPhysic(e physic.Env) Env {
	return New(Units(e))
}

// AdjustTemperature returns the reading the same air mass would give at
// temperature temp.
func (e Env) AdjustTemperature(temp float64) Env {
	return New(temp, hygrometry.HumidityAdjustTemp(e.Humidity, e.Temperature, temp), e.Pressure)
}

func (e Env) Fields() []Field {
	return []Field{
		{"temperature", "Temperature", "°C", e.Temperature},
		{"humidity", "Humidity", "%", e.Humidity},
		{"pressure", "Pressure", "hPa", e.Pressure},
		{"saturation_vapor_pressure", "Saturation vapor pressure", "hPa", e.SaturationVaporPressure},
		{"vapor_pressure", "Vapor pressure", "hPa", e.VaporPressure},
		{"dewpoint", "Dew point", "°C", e.Dewpoint},
		{"wet_bulb", "Wet bulb", "°C", e.WetBulb},
		{"absolute_humidity", "Absolute humidity", "g/m³", e.AbsoluteHumidity},
		{"mixing_ratio", "Mixing ratio", "g/kg", e.MixingRatio},
		{"heat_index", "Heat index", "°C", e.HeatIndex},
	}
}
