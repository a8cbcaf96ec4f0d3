// Package cuboid solves the 3x3x2 cuboid ("domino") puzzle with a
// bidirectional breadth-first search over a small catalog of named
// generator moves.
//
// # Features
//
//   - Facelet-level states with color projection
//   - Composable, labeled moves that report the generators they are made of
//   - Bidirectional search from the start and the goal at once
//   - Two-phase solving: projected colors first, half turns last
//   - Move tracking with stage detection
//
// # Quick Start
//
//	sol, err := cuboid.Solve("ooorrrgbggbgbgbroorrobggbgbbbgwwywwywywyyy")
//	if err != nil {
//	    log.Fatal(err) // malformed state
//	}
//	if !sol.Found {
//	    fmt.Println(cuboid.NoSolution)
//	    return
//	}
//	fmt.Println(sol) // e.g. "U' L2 U L2 ..."
//
// # Custom Searches
//
// Search works on any catalog:
//
//	p := cuboid.Domino()
//	cat := cuboid.MustCatalog(p.Size, p.Faces)
//	res, err := cuboid.Search(start, p.Goal, cat.HalfTurns(),
//	    cuboid.WithStrictLayers(true),
//	    cuboid.WithMaxDepth(12),
//	)
//
// # Moves
//
// The domino catalog holds L2 R2 F2 B2 U U2 U' D D2 D'. U and D turn in
// quarters; the 2x3 faces only turn 180 degrees. A catalog entry such as
// U2 is stored as U applied twice but reports the single label "U2".
package cuboid
