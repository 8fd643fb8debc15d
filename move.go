package cubetrainer

import (
	"fmt"
	"strings"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW   Turn = 1  // Clockwise quarter turn, no suffix
	CCW  Turn = -1 // Counter-clockwise quarter turn, ' suffix
	Half Turn = 2  // Half turn, 2 suffix
)

// Valid reports whether t is CW, CCW or Half.
func (t Turn) Valid() bool {
	return t == CW || t == CCW || t == Half
}

// Suffix returns the notation suffix for the turn.
func (t Turn) Suffix() string {
	switch t {
	case CCW:
		return "'"
	case Half:
		return "2"
	default:
		return ""
	}
}

// Move is a single turn of one face.
type Move struct {
	Face Face
	Turn Turn
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	return m.Face.String() + m.Turn.Suffix()
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Valid reports whether the move names a real face and turn.
func (m Move) Valid() bool {
	return m.Face.Valid() && m.Turn.Valid()
}

// Inverse returns the move that undoes m.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// MarshalText implements encoding.TextMarshaler.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m.debug())
	}
	return []byte(m.Notation()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using strict notation.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Move) debug() string {
	return fmt.Sprintf("face=%d turn=%d", int(m.Face), int(m.Turn))
}

// InverseMove returns the inverse of m.
func InverseMove(m Move) Move {
	return m.Inverse()
}

// InverseAlgorithm returns the sequence that undoes moves: the order is
// reversed and every move is inverted.
func InverseAlgorithm(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

// ParseMove parses one canonical notation token such as R, R' or R2.
// Only uppercase face letters and the ASCII ' suffix are accepted.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	face, ok := faceFromLetter(rune(s[0]))
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			turn = CCW
		case '2':
			turn = Half
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseSequence parses space-separated canonical notation, failing on the
// first token that is not a valid move. Use ParseAlgorithm for user input.
func ParseSequence(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves formats moves as space-separated notation.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
