package smartcube

import (
	"fmt"

	"github.com/SeamusWaldron/cubetrainer"
)

// Rotation is a single quarter turn reported by the cube.
type Rotation struct {
	Code      byte // face and direction, 0x00-0x0B
	Center    byte // center piece orientation
	Face      cubetrainer.Face
	Clockwise bool
}

// Move returns the rotation as an engine move.
func (r Rotation) Move() cubetrainer.Move {
	if r.Clockwise {
		return cubetrainer.Move{Face: r.Face, Turn: cubetrainer.CW}
	}
	return cubetrainer.Move{Face: r.Face, Turn: cubetrainer.CCW}
}

// colorFaces maps the cube's color index to the face that color sits on
// when held white up, green front.
var colorFaces = [6]cubetrainer.Face{
	0: cubetrainer.B, // blue
	1: cubetrainer.F, // green
	2: cubetrainer.U, // white
	3: cubetrainer.D, // yellow
	4: cubetrainer.R, // red
	5: cubetrainer.L, // orange
}

// DecodeRotation decodes a rotation payload of [code][center] pairs.
// Even codes are clockwise, odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	rotations := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorFaces) {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", idx, code)
		}
		rotations = append(rotations, Rotation{
			Code:      code,
			Center:    payload[i+1],
			Face:      colorFaces[idx],
			Clockwise: code%2 == 0,
		})
	}
	return rotations, nil
}

// DecodeMoves decodes a rotation payload into moves, merging adjacent turns
// of the same face.
func DecodeMoves(payload []byte) ([]cubetrainer.Move, error) {
	rotations, err := DecodeRotation(payload)
	if err != nil {
		return nil, err
	}
	moves := make([]cubetrainer.Move, len(rotations))
	for i, r := range rotations {
		moves[i] = r.Move()
	}
	return MergeMoves(moves), nil
}

// DecodeBattery returns the battery level, 0-100.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("battery payload too short")
	}
	return int(payload[0]), nil
}

// quarters counts a turn in clockwise quarter turns, 0-3.
func quarters(t cubetrainer.Turn) int {
	switch t {
	case cubetrainer.CW:
		return 1
	case cubetrainer.Half:
		return 2
	case cubetrainer.CCW:
		return 3
	}
	return 0
}

func turnOf(q int) (cubetrainer.Turn, bool) {
	switch q % 4 {
	case 1:
		return cubetrainer.CW, true
	case 2:
		return cubetrainer.Half, true
	case 3:
		return cubetrainer.CCW, true
	}
	return 0, false
}

// MergeMoves merges adjacent moves of the same face: R R becomes R2,
// R R R becomes R', and R R' cancels out.
func MergeMoves(moves []cubetrainer.Move) []cubetrainer.Move {
	result := make([]cubetrainer.Move, 0, len(moves))
	for _, m := range moves {
		if n := len(result); n > 0 && result[n-1].Face == m.Face {
			turn, ok := turnOf(quarters(result[n-1].Turn) + quarters(m.Turn))
			if ok {
				result[n-1].Turn = turn
			} else {
				result = result[:n-1]
			}
			continue
		}
		result = append(result, m)
	}
	return result
}
