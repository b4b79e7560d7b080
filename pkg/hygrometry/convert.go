// Package hygrometry computes psychrometric quantities from dry-bulb
// temperature, relative humidity and barometric pressure.
//
// Temperatures are in Celsius unless a function name says otherwise,
// relative humidity is in percent (0-100) and pressure is in hPa. Undefined
// results are returned as NaN or Inf rather than as errors.
package hygrometry

// FahrenheitToCelsius uses 0.555556 rather than 5/9, so 70°F converts to
// 21.111128°C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 0.555556
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32.0
}
