package hd60364

// Correction factors for ambient temperature (Table B.52.14/B.52.15)
// and grouping (Table B.52.17, row 1).

// tempFactor is one (ambient temperature, Kt) pair
type tempFactor struct {
	Temp float64 // °C
	K    float64
}

// groupFactor is one (group size, Kgrp) pair
type groupFactor struct {
	Count int
	K     float64
}

// SpacedBuriedLimit is the spacing (m) above which buried cables are not derated for grouping
const SpacedBuriedLimit = 0.5

var temperatureTable = map[Environment][]tempFactor{
	Air: {
		{10, 1.15}, {15, 1.12}, {20, 1.08}, {25, 1.04}, {30, 1.00},
		{35, 0.96}, {40, 0.91}, {45, 0.87}, {50, 0.82}, {55, 0.76},
		{60, 0.71}, {65, 0.65}, {70, 0.58}, {75, 0.50}, {80, 0.41},
	},
	Buried: {
		{10, 1.07}, {15, 1.04}, {20, 1.00}, {25, 0.96}, {30, 0.93},
		{35, 0.89}, {40, 0.85}, {45, 0.80}, {50, 0.76}, {55, 0.71},
		{60, 0.65}, {65, 0.60}, {70, 0.53}, {75, 0.46}, {80, 0.38},
	},
}

var groupingRow = []groupFactor{
	{1, 1.00}, {2, 0.80}, {3, 0.70}, {4, 0.65}, {5, 0.60}, {6, 0.57},
	{7, 0.54}, {8, 0.52}, {9, 0.50}, {12, 0.45}, {16, 0.41}, {20, 0.38},
}

var groupingTable = map[Reference][]groupFactor{
	RefA1: groupingRow,
	RefA2: groupingRow,
	RefB1: groupingRow,
	RefB2: groupingRow,
	RefC:  groupingRow,
	RefD1: groupingRow,
	RefD2: groupingRow,
}

// interpolateTemperature linearly interpolates Kt, clamping outside the table
func interpolateTemperature(pts []tempFactor, temp float64) float64 {
	if temp <= pts[0].Temp {
		return pts[0].K
	}
	last := pts[len(pts)-1]
	if temp >= last.Temp {
		return last.K
	}

	for i := 1; i < len(pts); i++ {
		lo, hi := pts[i-1], pts[i]
		if temp == hi.Temp {
			return hi.K
		}
		if temp < hi.Temp {
			return lo.K + (temp-lo.Temp)/(hi.Temp-lo.Temp)*(hi.K-lo.K)
		}
	}
	return last.K
}

// floorGrouping returns the factor of the largest tabulated count <= n, or 1.0 below the table
func floorGrouping(pts []groupFactor, n int) float64 {
	k := 1.0
	for _, p := range pts {
		if p.Count > n {
			break
		}
		k = p.K
	}
	return k
}
