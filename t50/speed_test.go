package t50

import "testing"

func TestCalcSpeedThresholds(t *testing.T) {
	cases := []struct {
		avg  float64
		want int
	}{
		{3001, 10}, {2900, 15}, {2600, 20}, {2100, 25},
		{1600, 40}, {1100, 45}, {600, 55}, {100, 60}, {0, 60},
	}
	for _, c := range cases {
		if got := CalcSpeed(c.avg); got != c.want {
			t.Errorf("CalcSpeed(%v) = %d, want %d", c.avg, got, c.want)
		}
	}
}

func TestCalcSpeedMonotoneNonIncreasing(t *testing.T) {
	prev := CalcSpeed(0)
	for avg := 100.0; avg <= 4000; avg += 50 {
		cur := CalcSpeed(avg)
		if cur > prev {
			t.Fatalf("CalcSpeed not monotone non-increasing at avg=%v: %d > %d", avg, cur, prev)
		}
		prev = cur
	}
}
