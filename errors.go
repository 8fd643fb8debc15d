package cubetrainer

import "errors"

// Sentinel errors for the cubetrainer package.
var (
	// ErrInvalidMove is returned when a move names an unknown face or turn.
	ErrInvalidMove = errors.New("cubetrainer: invalid move")

	// ErrInvalidNotation is returned by the strict parsers.
	ErrInvalidNotation = errors.New("cubetrainer: invalid move notation")
)
