package cubetrainer

// Predefined moves for convenience.
//
// Example:
//
//	s, err := cubetrainer.ApplyMoves(cubetrainer.Solved(), cubetrainer.SexyMove)
var (
	// Right face moves
	MoveR      = Move{Face: R, Turn: CW}
	MoveRPrime = Move{Face: R, Turn: CCW}
	MoveR2     = Move{Face: R, Turn: Half}

	// Left face moves
	MoveL      = Move{Face: L, Turn: CW}
	MoveLPrime = Move{Face: L, Turn: CCW}
	MoveL2     = Move{Face: L, Turn: Half}

	// Up face moves
	MoveU      = Move{Face: U, Turn: CW}
	MoveUPrime = Move{Face: U, Turn: CCW}
	MoveU2     = Move{Face: U, Turn: Half}

	// Down face moves
	MoveD      = Move{Face: D, Turn: CW}
	MoveDPrime = Move{Face: D, Turn: CCW}
	MoveD2     = Move{Face: D, Turn: Half}

	// Front face moves
	MoveF      = Move{Face: F, Turn: CW}
	MoveFPrime = Move{Face: F, Turn: CCW}
	MoveF2     = Move{Face: F, Turn: Half}

	// Back face moves
	MoveB      = Move{Face: B, Turn: CW}
	MoveBPrime = Move{Face: B, Turn: CCW}
	MoveB2     = Move{Face: B, Turn: Half}
)

// AllMoves lists the 18 face turns.
var AllMoves = []Move{
	MoveU, MoveUPrime, MoveU2,
	MoveD, MoveDPrime, MoveD2,
	MoveL, MoveLPrime, MoveL2,
	MoveR, MoveRPrime, MoveR2,
	MoveF, MoveFPrime, MoveF2,
	MoveB, MoveBPrime, MoveB2,
}

// SexyMove is R U R' U', the most common trigger.
var SexyMove = []Move{MoveR, MoveU, MoveRPrime, MoveUPrime}

// TPerm swaps two adjacent corners and two edges of the last layer.
var TPerm = []Move{MoveR, MoveU, MoveRPrime, MoveUPrime, MoveRPrime, MoveF, MoveR2, MoveUPrime, MoveRPrime, MoveUPrime, MoveR, MoveU, MoveRPrime, MoveFPrime}
