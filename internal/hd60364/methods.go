package hd60364

// Installation method catalog, Table B.52.3 of the wiring code.
// Numbers without a method in the table are left out.

var methodTable = []InstallationMethod{
	{1, RefA1, Air, 1.0, "Insulated conductors or single-core cables in conduit in a thermally insulated wall", ""},
	{2, RefA2, Air, 1.0, "Multi-core cables in conduit in a thermally insulated wall", ""},
	{3, RefA1, Air, 1.0, "Multi-core cable direct in a thermally insulated wall", ""},
	{4, RefB1, Air, 1.0, "Insulated conductors or single-core cables in conduit on a wooden or masonry wall or spaced less than 0.3 x conduit diameter from it", ""},
	{5, RefB2, Air, 1.0, "Multi-core cable in conduit on a wooden or masonry wall or spaced less than 0.3 x conduit diameter from it", ""},
	{6, RefB1, Air, 1.0, "Insulated conductors or single-core cables in cable trunking on a wooden or masonry wall, run horizontally", ""},
	{7, RefB1, Air, 1.0, "Insulated conductors or single-core cables in cable trunking on a wooden or masonry wall, run vertically", ""},
	{8, RefB2, Air, 1.0, "Multi-core cable in cable trunking on a wooden or masonry wall, run horizontally", "Under consideration, method B2 may be used."},
	{9, RefB2, Air, 1.0, "Multi-core cable in cable trunking on a wooden or masonry wall, run vertically", "Under consideration, method B2 may be used."},
	{10, RefB1, Air, 1.0, "Insulated conductors or single-core cables in suspended cable trunking", ""},
	{11, RefB2, Air, 1.0, "Multi-core cable in suspended cable trunking", ""},
	{12, RefA1, Air, 1.0, "Insulated conductors or single-core cables run in mouldings", ""},
	{15, RefA1, Air, 1.0, "Insulated conductors in conduit or single-core or multi-core cables in architrave", ""},
	{16, RefA1, Air, 1.0, "Insulated conductors in conduit or single-core or multi-core cables in window frames", ""},
	{20, RefC, Air, 1.0, "Single-core or multi-core cables fixed on, or spaced less than 0.3 x cable diameter from, a wooden or masonry wall", ""},
	{21, RefC, Air, 1.0, "Single-core or multi-core cables fixed directly under a wooden or masonry ceiling", "Use together with item 3 of Table B.52.17."},
	{22, "E", Air, 1.0, "Single-core or multi-core cables spaced from a ceiling", "Under consideration, method E may be used."},
	{23, RefC, Air, 1.0, "Fixed installation of suspended current-using equipment", "Use together with item 3 of Table B.52.17."},
	{30, RefC, Air, 1.0, "Single-core or multi-core cables on unperforated trays run horizontally or vertically", "C together with item 2 of Table B.52.17."},
	{31, "E/F", Air, 1.0, "Single-core or multi-core cables on perforated trays run horizontally or vertically", "Reference E or F."},
	{32, "E/F", Air, 1.0, "Single-core or multi-core cables on brackets or on wire mesh trays run horizontally or vertically", "Reference E or F."},
	{33, "E/F/G", Air, 1.0, "Single-core or multi-core cables spaced more than 0.3 x cable diameter from a wall", "Reference E or F or method G."},
	{34, "E/F", Air, 1.0, "Single-core or multi-core cables on ladders", "Reference E or F."},
	{35, "E/F", Air, 1.0, "Single-core or multi-core cable suspended from or incorporating a support wire", "Reference E or F."},
	{36, "G", Air, 1.0, "Bare or insulated conductors on insulators", ""},
	{40, "B1/B2", Air, 1.0, "Single-core or multi-core cables in a building void", "1.5 De <= V < 5 De gives B2; 5 De <= V < 20 De gives B1."},
	{41, "B1/B2", Air, 1.0, "Insulated conductor in conduit in a building void", "1.5 De <= V < 20 De gives B2; V >= 20 De gives B1."},
	{42, "B1/B2", Air, 1.0, "Single-core or multi-core cable in conduit in a building void", "Under consideration: 1.5 De <= V < 20 De gives B2; V >= 20 De gives B1."},
	{43, "B1/B2", Air, 1.0, "Insulated conductors in cable ducting in a building void", "1.5 De <= V < 20 De gives B2; V >= 20 De gives B1."},
	{44, "B1/B2", Air, 1.0, "Single-core or multi-core cable in cable ducting in a building void", "Under consideration: 1.5 De <= V < 20 De gives B2; V >= 20 De gives B1."},
	{45, "B1/B2", Air, 1.0, "Insulated conductors in cable ducting in masonry with thermal resistivity not greater than 2 K.m/W", "1.5 De <= V < 5 De gives B2; 5 De <= V < 50 De gives B1."},
	{46, "B1/B2", Air, 1.0, "Single-core or multi-core cable in cable ducting in masonry with thermal resistivity not greater than 2 K.m/W", "Under consideration: 1.5 De <= V < 20 De gives B2; V >= 20 De gives B1."},
	{47, "B1/B2", Air, 1.0, "Single-core or multi-core cable in a ceiling void or in a raised floor", "1.5 De <= V < 5 De gives B2; 5 De <= V < 50 De gives B1."},
	{50, RefB1, Air, 1.0, "Insulated conductors or single-core cable in flush cable trunking in the floor", ""},
	{51, RefB2, Air, 1.0, "Multi-core cable in flush cable trunking in the floor", ""},
	{52, RefB1, Air, 1.0, "Insulated conductors or single-core cables in embedded trunking", ""},
	{53, RefB2, Air, 1.0, "Multi-core cable in embedded trunking", ""},
	{54, "B1/B2", Air, 1.0, "Insulated conductors or single-core cables in conduit in an unventilated cable channel run horizontally or vertically", "1.5 De <= V < 20 De gives B2; V >= 20 De gives B1."},
	{55, RefB1, Air, 1.0, "Insulated conductors in conduit in an open or ventilated cable channel in the floor", ""},
	{56, RefB1, Air, 1.0, "Sheathed single-core or multi-core cable in an open or ventilated cable channel run horizontally or vertically", ""},
	{57, RefC, Air, 1.0, "Single-core or multi-core cable direct in masonry with thermal resistivity not greater than 2 K.m/W, without added mechanical protection", ""},
	{58, RefC, Air, 1.0, "Single-core or multi-core cable direct in masonry with thermal resistivity not greater than 2 K.m/W, with added mechanical protection", ""},
	{59, RefB1, Air, 1.0, "Insulated conductors or single-core cables in conduit in masonry", ""},
	{60, RefB2, Air, 1.0, "Multi-core cables in conduit in masonry", ""},
	{70, RefD1, Buried, 1.0, "Multi-core cable in conduit or in cable ducting in the ground", ""},
	{71, RefD1, Buried, 1.0, "Single-core cable in conduit or in cable ducting in the ground", ""},
	{72, RefD2, Buried, 1.5, "Sheathed single-core or multi-core cables direct in the ground without added mechanical protection", ""},
	{73, RefD2, Buried, 1.5, "Sheathed single-core or multi-core cables direct in the ground with added mechanical protection", ""},
}
