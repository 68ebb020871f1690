// Package points converts studied minutes into points.
package points

// MinutesPerPoint is the fixed exchange rate: twelve minutes of focused
// study earn one point.
const MinutesPerPoint = 12

// For returns the fractional points earned by studying for the given number
// of minutes. Accumulation stays fractional so partial sessions are never
// rounded away; round only for display.
func For(minutes int) float64 {
	return float64(minutes) / MinutesPerPoint
}
