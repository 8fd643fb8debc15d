package smartcube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubetrainer"
)

func TestParseMessageRoundTrip(t *testing.T) {
	frame := BuildFrame(MsgTypeRotation, []byte{0x08, 0x03, 0x09, 0x00})
	assert.Equal(t, byte(8), frame[1])

	msg, err := ParseMessage(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x08, 0x03, 0x09, 0x00}, msg.Payload)
	assert.Equal(t, "rotation", MessageTypeName(msg.Type))
}

func TestParseMessageErrors(t *testing.T) {
	good := BuildFrame(MsgTypeBattery, []byte{80})

	badChecksum := append([]byte(nil), good...)
	badChecksum[4]++

	badSuffix := append([]byte(nil), good...)
	badSuffix[len(badSuffix)-1] = 0x00

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = 0x00

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0x2A, 0x01}, ErrMessageTooShort},
		{"prefix", badPrefix, ErrInvalidPrefix},
		{"truncated", good[:len(good)-1], ErrInvalidLength},
		{"checksum", badChecksum, ErrInvalidChecksum},
		{"suffix", badSuffix, ErrInvalidSuffix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessage(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildCommand(t *testing.T) {
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, BuildCommand(CmdRequestBattery))
}

func TestDecodeRotation(t *testing.T) {
	tests := []struct {
		code byte
		want cubetrainer.Move
	}{
		{0x00, cubetrainer.MoveB},
		{0x01, cubetrainer.MoveBPrime},
		{0x02, cubetrainer.MoveF},
		{0x03, cubetrainer.MoveFPrime},
		{0x04, cubetrainer.MoveU},
		{0x05, cubetrainer.MoveUPrime},
		{0x06, cubetrainer.MoveD},
		{0x07, cubetrainer.MoveDPrime},
		{0x08, cubetrainer.MoveR},
		{0x09, cubetrainer.MoveRPrime},
		{0x0A, cubetrainer.MoveL},
		{0x0B, cubetrainer.MoveLPrime},
	}
	for _, tt := range tests {
		rots, err := DecodeRotation([]byte{tt.code, 0x06})
		require.NoError(t, err)
		require.Len(t, rots, 1)
		assert.Equal(t, tt.want, rots[0].Move(), "code 0x%02X", tt.code)
		assert.Equal(t, byte(0x06), rots[0].Center)
	}

	_, err := DecodeRotation([]byte{0x08})
	assert.Error(t, err)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.Error(t, err)
}

func TestMergeMoves(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"R R", "R2"},
		{"R R R", "R'"},
		{"R R R R", ""},
		{"R R'", ""},
		{"U R R' U", "U2"},
		{"R2 R", "R'"},
		{"R U R", "R U R"},
		{"F' F'", "F2"},
	}
	for _, tt := range tests {
		moves, err := cubetrainer.ParseSequence(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cubetrainer.FormatMoves(MergeMoves(moves)), tt.in)
	}
}

func TestDecodeNotification(t *testing.T) {
	moves, battery, err := decodeNotification(BuildFrame(MsgTypeRotation, []byte{0x08, 0x00, 0x08, 0x03, 0x04, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveR2, cubetrainer.MoveU}, moves)
	assert.Equal(t, -1, battery)

	moves, battery, err = decodeNotification(BuildFrame(MsgTypeBattery, []byte{77}))
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, 77, battery)

	moves, battery, err = decodeNotification(BuildFrame(MsgTypeCubeType, []byte{0x00}))
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, -1, battery)

	_, _, err = decodeNotification([]byte{0x00})
	assert.Error(t, err)
}

func TestSendCommandRequiresConnection(t *testing.T) {
	var c Client
	assert.ErrorIs(t, c.SendCommand(CmdRequestBattery), ErrNotConnected)
	assert.ErrorIs(t, c.FlashBacklight(), ErrNotConnected)
	assert.ErrorIs(t, c.ResetSolved(), ErrNotConnected)
}
