package cuboid

// DominoSize is the number of facelets of the 3x3x2 cuboid.
const DominoSize = 42

// DominoGoal is the solved domino state.
const DominoGoal = "rrrrrrbbbbbbbbboooooogggggggggwwwwwwyyyyyy"

// Domino returns the 3x3x2 cuboid: U and D are 3x3 faces that turn in
// quarters, F, B, L and R are 2x3 faces that only turn 180 degrees.
//
// Facelet indices on the net:
//
//	          15 16 17
//	          18 19 20
//
//	          06 07 08
//	          09 10 11
//	          12 13 14
//
//	30 31 32  00 01 02  36 37 38
//	33 34 35  03 04 05  39 40 41
//
//	          21 22 23
//	          24 25 26
//	          27 28 29
//
// Solved colors: F red, U blue, B orange, D green, L white, R yellow.
func Domino() Puzzle {
	return Puzzle{
		Name:     "domino",
		Size:     DominoSize,
		Alphabet: []Color{Red, Blue, Orange, Green, White, Yellow},
		Goal:     State(DominoGoal),
		Projection: Projection{
			Orange: Red,
			Green:  Blue,
		},
		Faces: []FaceTurn{
			{Name: "L", Cycles: [][]int{{30, 35}, {31, 34}, {32, 33}, {3, 18}, {0, 15}, {6, 21}, {9, 24}, {12, 27}}},
			{Name: "R", Cycles: [][]int{{36, 41}, {37, 40}, {38, 39}, {5, 20}, {2, 17}, {14, 29}, {11, 26}, {8, 23}}},
			{Name: "F", Cycles: [][]int{{0, 5}, {1, 4}, {2, 3}, {12, 23}, {13, 22}, {14, 21}, {32, 39}, {35, 36}}},
			{Name: "B", Cycles: [][]int{{15, 20}, {16, 19}, {17, 18}, {6, 29}, {7, 28}, {8, 27}, {30, 41}, {33, 38}}},
			{Name: "U", Quarter: true, Cycles: [][]int{{6, 8, 14, 12}, {7, 11, 13, 9}, {0, 30, 20, 36}, {1, 31, 19, 37}, {2, 32, 18, 38}}},
			{Name: "D", Quarter: true, Cycles: [][]int{{21, 23, 29, 27}, {22, 26, 28, 24}, {3, 39, 17, 33}, {4, 40, 16, 34}, {5, 41, 15, 35}}},
		},
		Layout: [][]int{
			{-1, -1, -1, 15, 16, 17, -1, -1, -1},
			{-1, -1, -1, 18, 19, 20, -1, -1, -1},
			{-1, -1, -1, 6, 7, 8, -1, -1, -1},
			{-1, -1, -1, 9, 10, 11, -1, -1, -1},
			{-1, -1, -1, 12, 13, 14, -1, -1, -1},
			{30, 31, 32, 0, 1, 2, 36, 37, 38},
			{33, 34, 35, 3, 4, 5, 39, 40, 41},
			{-1, -1, -1, 21, 22, 23, -1, -1, -1},
			{-1, -1, -1, 24, 25, 26, -1, -1, -1},
			{-1, -1, -1, 27, 28, 29, -1, -1, -1},
		},
	}
}
