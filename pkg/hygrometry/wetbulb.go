package hygrometry

import "math"

const (
	wetBulbTolerance = 0.0005 // hPa
	wetBulbStep      = 10.0   // °C
)

// WetBulb returns the wet-bulb temperature in Celsius for a dry-bulb
// temperature tc, relative humidity rh and pressure p in hPa. Humidity at or
// below zero is treated as zero. The search has no iteration limit.
func WetBulb(tc, rh, p float64) float64 {
	tw, _, _ := SolveWetBulb(tc, rh, p, 0)
	return tw
}

// SolveWetBulb is WetBulb with a ceiling on the number of guesses. A
// maxIter of zero or less runs until convergence. When the ceiling is hit
// the last guess is returned with converged set to false.
func SolveWetBulb(tc, rh, p float64, maxIter int) (tw float64, iterations int, converged bool) {
	if rh <= 0 {
		rh = 0
	}
	_, e2, _ := VaporPressure(tc, rh)

	incr := wetBulbStep
	sign := 1.0
	diff := 1.0
	for math.Abs(diff) > wetBulbTolerance {
		if maxIter > 0 && iterations >= maxIter {
			return tw, iterations, false
		}

		// Psychrometric equation: vapor pressure implied by the guess,
		// corrected for pressure and the wet-bulb depression.
		ew := saturationVaporPressure(tw)
		eg := ew - p*(tc-tw)*0.00066*(1.0+0.00115*tw)
		diff = e2 - eg
		if math.Abs(diff) < wetBulbTolerance {
			break
		}

		cur := 1.0
		if diff < 0 {
			cur = -1.0
		}
		if cur != sign {
			// Overshot the root: reverse and slow down.
			sign = cur
			incr /= 10.0
		}

		tw += incr * sign
		iterations++
	}
	return tw, iterations, true
}
