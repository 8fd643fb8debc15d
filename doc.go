// Package cubetrainer models a 3x3 Rubik's cube as 54 facelets and applies
// face turns to it.
//
// # Cube State
//
// A State is a plain value. Every operation returns a new State and leaves
// its argument alone, so callers can keep the previous state around while a
// turn animates:
//
//	s := cubetrainer.Solved()
//	next, err := cubetrainer.ApplyMove(s, cubetrainer.MoveR)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.IsSolved(), next.IsSolved()) // true false
//
// # Notation
//
// Moves use standard notation: a face letter (U, D, L, R, F, B) optionally
// followed by ' for counter-clockwise or 2 for a half turn. ParseAlgorithm
// reads forgiving user input; ParseSequence only accepts canonical text.
//
//	moves := cubetrainer.ParseAlgorithm("r u r’ u’") // R U R' U'
//	fmt.Println(cubetrainer.FormatMoves(cubetrainer.InverseAlgorithm(moves)))
//	// U R U' R'
//
// # Scrambles
//
// Scramble folds the inverse of an algorithm over the solved cube, giving the
// position that the algorithm solves:
//
//	s, _ := cubetrainer.Scramble(cubetrainer.TPerm)
//	s, _ = cubetrainer.ApplyMoves(s, cubetrainer.TPerm)
//	fmt.Println(s.IsSolved()) // true
package cubetrainer
