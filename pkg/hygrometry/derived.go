package hygrometry

import "math"

// Sensirion coefficients, valid over water between -45°C and 60°C.
const (
	sensA  = 6.112  // hPa
	sensM  = 17.62
	sensTn = 243.12 // °C
)

// HumidityAdjustTemp returns the relative humidity the same air would have if
// only its temperature changed from tc1 to tc2.
func HumidityAdjustTemp(rh1, tc1, tc2 float64) float64 {
	return rh1 * math.Exp(4283.78*(tc1-tc2)/(sensTn+tc1)/(sensTn+tc2))
}

// DewPoint uses the Sensirion Magnus coefficients and is not interchangeable
// with the dew point from VaporPressure.
func DewPoint(tc, rh float64) float64 {
	h := math.Log(rh/100.0) + sensM*tc/(sensTn+tc)
	return sensTn * h / (sensM - h)
}

// AbsoluteHumidity returns the water vapor density in g/m³.
func AbsoluteHumidity(t, rh float64) float64 {
	return 216.7 * (rh / 100.0 * sensA * math.Exp(sensM*t/(sensTn+t)) / (273.15 + t))
}

// MixingRatio returns grams of water vapor per kilogram of dry air. The
// result is meaningless when p does not exceed the vapor pressure.
func MixingRatio(t, rh, p float64) float64 {
	e := rh / 100.0 * sensA * math.Exp(sensM*t/(sensTn+t))
	return 622.0 * e / (p - e)
}
