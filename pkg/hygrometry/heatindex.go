package hygrometry

import "math"

// HeatIndex returns the NOAA heat index in Celsius.
func HeatIndex(t, rh float64) float64 {
	tf := CelsiusToFahrenheit(t)
	hi := -42.379 + 2.04901523*tf + 10.14333127*rh - .22475541*tf*rh - .00683783*tf*tf -
		.05481717*rh*rh + .00122874*tf*tf*rh + .00085282*tf*rh*rh - .00000199*tf*tf*rh*rh

	// Bands are checked in order; only the first match applies.
	switch {
	case rh < 13 && tf > 80 && tf < 112:
		hi -= ((13.0 - rh) / 4.0) * math.Sqrt((17.0-math.Abs(tf-95.0))/17.0)
	case rh > 85 && tf > 80 && tf < 87:
		hi += ((rh - 85.0) / 10.0) * ((87.0 - tf) / 5.0)
	case tf < 80:
		hi = 0.5 * (tf + 61.0 + (tf-68.0)*1.2 + rh*0.094)
	}
	return FahrenheitToCelsius(hi)
}
