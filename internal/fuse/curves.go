package fuse

// Point is one point of a time–current curve
type Point struct {
	Multiple float64 // Ik / In
	Time     float64 // s
}

// gG fuse-link characteristic, 60 points from 3·In.
// NH knife fuses share the Diazed characteristic.
var diazedPoints = []Point{
	{3.0, 1.5}, {3.1346, 1.33}, {3.27, 1.17}, {3.414, 1.04}, {3.565, 0.93},
	{3.723, 0.835}, {3.888, 0.75}, {4.059, 0.67}, {4.238, 0.6}, {4.424, 0.54},
	{4.617, 0.49}, {4.818, 0.445}, {5.027, 0.405}, {5.244, 0.37}, {5.47, 0.335},
	{5.704, 0.305}, {5.947, 0.28}, {6.2, 0.255}, {6.462, 0.235}, {6.734, 0.215},
	{7.017, 0.2}, {7.31, 0.185}, {7.614, 0.17}, {7.93, 0.158}, {8.258, 0.146},
	{8.598, 0.135}, {8.951, 0.125}, {9.318, 0.116}, {9.698, 0.108}, {10.093, 0.1},
	{10.504, 0.094}, {10.93, 0.088}, {11.372, 0.082}, {11.831, 0.077}, {12.307, 0.072},
	{12.801, 0.068}, {13.314, 0.064}, {13.846, 0.06}, {14.398, 0.057}, {14.97, 0.054},
	{15.563, 0.051}, {16.178, 0.048}, {16.815, 0.0455}, {17.475, 0.043}, {18.159, 0.0405},
	{18.868, 0.0385}, {19.602, 0.0365}, {20.363, 0.0345}, {21.151, 0.033}, {21.967, 0.0315},
	{22.812, 0.03}, {23.687, 0.0285}, {24.592, 0.027}, {25.529, 0.026}, {26.498, 0.025},
	{27.501, 0.024}, {28.539, 0.023}, {29.612, 0.022}, {30.722, 0.021}, {31.87, 0.02},
}

var neozedPoints = []Point{
	{3.0, 1.4}, {3.1346, 1.24275}, {3.2753, 1.10316}, {3.4223, 0.97926}, {3.5759, 0.86927},
	{3.7364, 0.77163}, {3.9041, 0.68496}, {4.0793, 0.60802}, {4.2624, 0.53973}, {4.4537, 0.47911},
	{4.6536, 0.42529}, {4.8625, 0.37752}, {5.0807, 0.33603}, {5.3087, 0.30052}, {5.547, 0.26875},
	{5.7959, 0.24035}, {6.056, 0.21495}, {6.3278, 0.19223}, {6.6118, 0.17191}, {6.9086, 0.15374},
	{7.2187, 0.13749}, {7.5426, 0.12296}, {7.8812, 0.10997}, {8.2349, 0.09834}, {8.6045, 0.08795},
	{8.9906, 0.07865}, {9.3941, 0.07034}, {9.8158, 0.06291}, {10.2563, 0.0569}, {10.7166, 0.05189},
	{11.1976, 0.04732}, {11.7001, 0.04315}, {12.2252, 0.03935}, {12.7739, 0.03589}, {13.3472, 0.03273},
	{13.9463, 0.02984}, {14.5722, 0.02722}, {15.2262, 0.02482}, {15.9096, 0.02263}, {16.6236, 0.02064},
	{17.3697, 0.01882}, {18.1492, 0.01717}, {18.9638, 0.01565}, {19.8149, 0.01428}, {20.7042, 0.01315},
	{21.6334, 0.01215}, {22.6044, 0.01122}, {23.6189, 0.01037}, {24.6789, 0.00957}, {25.7865, 0.00884},
	{26.9438, 0.00817}, {28.1531, 0.00755}, {29.4166, 0.00697}, {30.7369, 0.00644}, {32.1164, 0.00595},
	{33.5578, 0.00549}, {35.0639, 0.00508}, {36.6376, 0.00469}, {38.2819, 0.00433}, {40.0, 0.0040},
}

var (
	fuseRatings = []float64{2, 4, 6, 10, 13, 16, 20, 25, 32, 35, 40, 50, 63, 80, 100}
	nhRatings   = []float64{25, 35, 40, 50, 63, 80, 100, 125, 160, 200, 250, 315, 400}
	mcbRatings  = []float64{6, 10, 13, 16, 20, 25, 32, 40, 50, 63}
)
