package hd60364

// Current-carrying capacity for XLPE insulated cables (A), 90 °C conductor,
// 30 °C air or 20 °C ground. Tables B.52.3 to B.52.5.

// sizeAmps is one (cross-section, current) pair of an ampacity column
type sizeAmps struct {
	Size float64 // mm²
	Amps float64 // A
}

// ampacityTable is keyed by reference class, then loaded conductor count
type ampacityTable map[Reference]map[int][]sizeAmps

func column(sizes []float64, amps ...float64) []sizeAmps {
	out := make([]sizeAmps, len(amps))
	for i, a := range amps {
		out[i] = sizeAmps{Size: sizes[i], Amps: a}
	}
	return out
}

var (
	cuSizes   = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240, 300}
	alSizes   = []float64{2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240, 300}
	alD2Sizes = []float64{16, 25, 35, 50, 70, 95, 120, 150, 185, 240, 300}
)

var copperAmpacity = ampacityTable{
	RefA1: {
		2: column(cuSizes, 19, 26, 35, 45, 61, 81, 106, 131, 158, 200, 241, 278, 318, 362, 424, 486),
		3: column(cuSizes, 17, 23, 31, 40, 54, 73, 95, 117, 141, 179, 216, 249, 285, 324, 380, 435),
	},
	RefA2: {
		2: column(cuSizes, 18.5, 25, 33, 42, 57, 76, 99, 121, 145, 183, 220, 253, 290, 329, 386, 442),
		3: column(cuSizes, 16.5, 22, 30, 38, 51, 68, 89, 109, 130, 164, 197, 227, 259, 295, 346, 396),
	},
	RefB1: {
		2: column(cuSizes, 23, 31, 42, 54, 75, 100, 133, 164, 198, 253, 306, 354, 393, 449, 528, 603),
		3: column(cuSizes, 20, 28, 37, 48, 66, 88, 117, 144, 175, 222, 269, 312, 342, 384, 450, 514),
	},
	RefB2: {
		2: column(cuSizes, 22, 30, 40, 51, 69, 91, 119, 146, 175, 221, 265, 305, 334, 384, 459, 532),
		3: column(cuSizes, 19.5, 26, 35, 44, 60, 80, 105, 128, 154, 194, 233, 268, 300, 340, 398, 455),
	},
	RefC: {
		2: column(cuSizes, 24, 33, 45, 58, 80, 107, 138, 171, 209, 269, 328, 382, 441, 506, 599, 693),
		3: column(cuSizes, 22, 30, 40, 52, 71, 96, 119, 147, 179, 229, 278, 322, 371, 424, 500, 576),
	},
	RefD1: {
		2: column(cuSizes, 25, 33, 43, 53, 71, 91, 116, 139, 164, 203, 239, 271, 306, 343, 395, 446),
		3: column(cuSizes, 21, 28, 36, 44, 58, 75, 96, 115, 135, 157, 197, 223, 251, 281, 324, 365),
	},
	RefD2: {
		2: column(cuSizes, 27, 35, 46, 58, 77, 100, 129, 155, 183, 225, 270, 306, 343, 387, 448, 502),
		3: column(cuSizes, 23, 30, 39, 49, 65, 84, 107, 129, 153, 188, 226, 257, 287, 324, 375, 419),
	},
}

var aluminiumAmpacity = ampacityTable{
	RefA1: {
		2: column(alSizes, 20, 27, 35, 48, 64, 84, 103, 125, 158, 191, 220, 253, 288, 338, 387),
		3: column(alSizes, 19, 25, 32, 44, 58, 76, 94, 113, 142, 171, 197, 226, 256, 300, 344),
	},
	RefA2: {
		2: column(alSizes, 19.5, 26, 33, 45, 60, 78, 96, 115, 145, 175, 201, 230, 262, 307, 352),
		3: column(alSizes, 18, 24, 31, 41, 55, 71, 87, 104, 131, 157, 180, 206, 233, 273, 313),
	},
	RefB1: {
		2: column(alSizes, 25, 33, 43, 59, 79, 105, 130, 157, 200, 242, 281, 307, 351, 412, 471),
		3: column(alSizes, 22, 29, 38, 52, 71, 93, 116, 140, 179, 217, 251, 267, 300, 351, 402),
	},
	RefB2: {
		2: column(alSizes, 23, 31, 40, 54, 72, 94, 115, 138, 175, 210, 242, 261, 300, 358, 415),
		3: column(alSizes, 21, 28, 35, 48, 64, 84, 103, 124, 156, 188, 216, 240, 272, 318, 364),
	},
	RefC: {
		2: column(alSizes, 26, 35, 45, 62, 84, 101, 126, 154, 198, 241, 280, 324, 371, 439, 508),
		3: column(alSizes, 24, 32, 41, 57, 76, 90, 112, 136, 174, 211, 245, 283, 323, 382, 440),
	},
	RefD1: {
		2: column(alSizes, 26, 33, 42, 55, 71, 90, 108, 128, 158, 186, 211, 238, 267, 307, 346),
		3: column(alSizes, 22, 28, 35, 46, 59, 75, 90, 106, 130, 154, 174, 197, 220, 253, 286),
	},
	RefD2: {
		2: column(alD2Sizes, 76, 98, 117, 139, 170, 204, 233, 261, 296, 343, 386),
		3: column(alD2Sizes, 64, 82, 98, 117, 144, 172, 197, 220, 250, 290, 326),
	},
}

// lookup returns the current for the largest tabulated size <= size
func (t ampacityTable) lookup(ref Reference, loaded int, size float64) (sizeAmps, bool) {
	byLoaded, ok := t[ref]
	if !ok {
		return sizeAmps{}, false
	}
	col, ok := byLoaded[loaded]
	if !ok {
		return sizeAmps{}, false
	}

	var found sizeAmps
	ok = false
	for _, e := range col {
		if e.Size > size {
			break
		}
		found, ok = e, true
	}
	return found, ok
}
