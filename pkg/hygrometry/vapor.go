package hygrometry

import "math"

// Magnus coefficients for the vapor pressure triplet and the wet-bulb solver.
const (
	magnusA = 6.112 // hPa
	magnusB = 17.67
	magnusC = 243.5 // °C
)

func saturationVaporPressure(tc float64) float64 {
	return magnusA * math.Exp(magnusB*tc/(tc+magnusC))
}

// VaporPressure returns the saturation vapor pressure and the actual vapor
// pressure in hPa, plus the dew point in Celsius. The dew point is NaN when
// rh is zero.
func VaporPressure(tc, rh float64) (es, e, td float64) {
	es = saturationVaporPressure(tc)
	e = es * rh / 100.0
	if e == 0 {
		return es, e, math.NaN()
	}
	l := math.Log(e / magnusA)
	td = magnusC * l / (magnusB - l)
	return es, e, td
}
