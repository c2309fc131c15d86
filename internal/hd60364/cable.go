package hd60364

// Electrical data for XLPE power cables, Ω/km at 20 °C.

// CableData holds resistance and reactance per kilometre for one cross-section
type CableData struct {
	Size       float64 // mm²
	Resistance float64 // Ω/km
	Reactance3 float64 // Ω/km, 3-conductor cable (0 if not tabulated)
	Reactance4 float64 // Ω/km, 4-conductor cable (0 if not tabulated)
}

// MaterialConstants are the voltage-drop and thermal constants of a conductor material
type MaterialConstants struct {
	Q      float64 // Ω·mm²/m, resistivity at operating temperature
	Lambda float64 // Ω/m, line reactance
	K      float64 // A·√s/mm², XLPE insulation
}

// StandardSizes is the standard cross-section series (mm²)
var StandardSizes = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240, 300, 400}

var cableTable = map[Material][]CableData{
	Copper: {
		{1.5, 12.10, 0.103, 0.110},
		{2.5, 7.410, 0.095, 0.102},
		{4, 4.610, 0.089, 0.096},
		{6, 3.080, 0.087, 0.094},
		{10, 1.830, 0.082, 0.089},
		{16, 1.150, 0.078, 0.085},
		{25, 0.727, 0.074, 0.086},
		{35, 0.525, 0.073, 0.082},
		{50, 0.388, 0.070, 0.084},
		{70, 0.269, 0.067, 0.081},
		{95, 0.194, 0.065, 0.082},
		{120, 0.155, 0.064, 0.082},
		{150, 0.126, 0.063, 0.084},
		{185, 0.1017, 0.062, 0.082},
		{240, 0.0787, 0.061, 0.083},
		{300, 0.0601, 0.060, 0.083},
	},
	Aluminium: {
		{16, 1.910, 0, 0.089},
		{25, 1.200, 0, 0.086},
		{35, 0.868, 0, 0.082},
		{50, 0.641, 0, 0.084},
		{70, 0.444, 0, 0.081},
		{95, 0.321, 0, 0.082},
		{120, 0.254, 0, 0.082},
		{150, 0.207, 0, 0.084},
		{185, 0.166, 0, 0.082},
		{240, 0.127, 0, 0.083},
		{300, 0.103, 0, 0.083},
	},
}

var materialConstants = map[Material]MaterialConstants{
	Copper:    {Q: 0.0225, Lambda: 0.08e-3, K: 143},
	Aluminium: {Q: 0.036, Lambda: 0.08e-3, K: 94},
}
