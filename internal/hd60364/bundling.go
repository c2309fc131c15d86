package hd60364

import "math"

// Grouping factors of cables bundled together and of the same cables laid
// in a single layer, by cable count.
var (
	bundledGrouping = []groupFactor{
		{2, 0.80}, {3, 0.73}, {4, 0.65}, {5, 0.60}, {6, 0.56},
		{7, 0.52}, {8, 0.50}, {9, 0.48}, {10, 0.46}, {12, 0.45},
	}
	singleLayerGrouping = []groupFactor{
		{2, 0.90}, {3, 0.87}, {4, 0.85}, {5, 0.83}, {6, 0.81},
		{7, 0.79}, {8, 0.78}, {9, 0.77}, {10, 0.76}, {12, 0.75},
	}
)

// Bundling compares a grouping factor with the bundled and single-layer
// factors for the same number of cables
type Bundling struct {
	Cables             int
	Kgrp               float64 // factor in use
	BundledKgrp        float64
	SingleLayerKgrp    float64
	Improvement        float64 // single-layer minus bundled
	ImprovementPercent float64
	Bundled            bool // Kgrp is within 0.05 of the bundled value or below
	Warning            bool // bundled and single layer gains more than 0.05
}

// CheckBundling reports whether a segment's grouping factor indicates
// bundled cables and what a single-layer layout would give instead.
// The nearest tabulated cable count is used; ties go to the smaller count.
func CheckBundling(kgrp float64, cables int) Bundling {
	i := nearestCount(bundledGrouping, cables)
	b := Bundling{
		Cables:          cables,
		Kgrp:            kgrp,
		BundledKgrp:     bundledGrouping[i].K,
		SingleLayerKgrp: singleLayerGrouping[i].K,
	}
	b.Improvement = b.SingleLayerKgrp - b.BundledKgrp
	b.ImprovementPercent = b.Improvement / b.BundledKgrp * 100

	if kgrp <= b.BundledKgrp+0.05 {
		b.Bundled = true
		b.Warning = b.Improvement > 0.05
	}
	return b
}

func nearestCount(pts []groupFactor, n int) int {
	best := 0
	for i, p := range pts[1:] {
		if math.Abs(float64(p.Count-n)) < math.Abs(float64(pts[best].Count-n)) {
			best = i + 1
		}
	}
	return best
}
