package fuse

import (
	"fmt"
	"math"
)

// Trip is the operating time of a device for a fault current
type Trip struct {
	Time     float64 // s
	Multiple float64 // Ik / In
	Notes    []string
}

// TripTime returns the operating time for fault current ik (A).
// Between curve points log(t) is linear in log(m); outside the curve the
// nearest end point is used.
func (c Curve) TripTime(ik float64) Trip {
	if c.Rating <= 0 {
		return Trip{Notes: []string{"Invalid device rating (In ≤ 0), no trip time."}}
	}
	if ik <= 0 {
		return Trip{Notes: []string{"Ik ≤ 0 A, the device does not trip."}}
	}
	if len(c.Points) == 0 {
		return Trip{Notes: []string{"Empty time–current curve, no trip time."}}
	}

	m := ik / c.Rating
	tr := Trip{Multiple: m}
	tr.Notes = append(tr.Notes, fmt.Sprintf("Ik = %.1f A, In,curve = %.1f A ⇒ m = Ik/In ≈ %.2f", ik, c.Rating, m))

	pts := c.Points
	first, last := pts[0], pts[len(pts)-1]
	switch {
	case m <= first.Multiple:
		tr.Time = first.Time
		tr.Notes = append(tr.Notes, "m is left of the first curve point, using the first point.")
	case m >= last.Multiple:
		tr.Time = last.Time
		tr.Notes = append(tr.Notes, "m is right of the last curve point, using the last point.")
	default:
		for i := 1; i < len(pts); i++ {
			lo, hi := pts[i-1], pts[i]
			if m > hi.Multiple {
				continue
			}
			if m == hi.Multiple {
				tr.Time = hi.Time
				tr.Notes = append(tr.Notes, fmt.Sprintf("m is on curve point (%.2f,%.3f).", hi.Multiple, hi.Time))
				break
			}
			tr.Time = interpolateLogLog(lo, hi, m)
			tr.Notes = append(tr.Notes, fmt.Sprintf(
				"Interpolating in log–log scale between curve points (%.2f,%.3f) and (%.2f,%.3f).",
				lo.Multiple, lo.Time, hi.Multiple, hi.Time))
			break
		}
	}

	tr.Notes = append(tr.Notes, fmt.Sprintf("t ≈ %.3f s", tr.Time))
	return tr
}

func interpolateLogLog(lo, hi Point, m float64) float64 {
	lm1, lm2 := math.Log10(lo.Multiple), math.Log10(hi.Multiple)
	lt1, lt2 := math.Log10(lo.Time), math.Log10(hi.Time)
	if lm2 == lm1 {
		return lo.Time
	}
	ratio := (math.Log10(m) - lm1) / (lm2 - lm1)
	return math.Pow(10, lt1+ratio*(lt2-lt1))
}
