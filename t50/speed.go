package t50

// CalcSpeed maps the average compressed bytes per print buffer to a
// print-speed code: denser images compress larger, and the thermal
// head needs more dwell time for them, so the printer ticks more
// slowly the larger avg is. Monotone non-increasing in avg.
func CalcSpeed(avg float64) int {
	switch {
	case avg > 3000:
		return 10
	case avg > 2800:
		return 15
	case avg > 2500:
		return 20
	case avg > 2000:
		return 25
	case avg > 1500:
		return 40
	case avg > 1000:
		return 45
	case avg > 500:
		return 55
	default:
		return 60
	}
}
