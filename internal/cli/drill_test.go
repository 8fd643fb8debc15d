package cli

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubetrainer"
	"github.com/SeamusWaldron/cubetrainer/internal/trainer"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDrill(t *testing.T, moves []cubetrainer.Move, opts ...trainer.Option) *drillModel {
	t.Helper()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	alg := cubetrainer.Algorithm{ID: "test", Name: "Test", Category: cubetrainer.CategoryCustom, Moves: moves}
	session, err := trainer.New(alg, opts...)
	require.NoError(t, err)

	m := newDrillModel(session, nil, logrus.NewEntry(quiet), 0)
	m.color = false
	return m
}

// land delivers the commit the model scheduled for its current attempt.
func land(m *drillModel) {
	m.Update(commitMsg{gen: m.gen})
}

func TestKeyMoves(t *testing.T) {
	assert.Equal(t, cubetrainer.MoveR, keyMoves["r"])
	assert.Equal(t, cubetrainer.MoveRPrime, keyMoves["R"])
	assert.Equal(t, cubetrainer.MoveD, keyMoves["d"])
	assert.Equal(t, cubetrainer.MoveBPrime, keyMoves["B"])
	assert.Len(t, keyMoves, 12)
}

func TestDrillKeyboardSolve(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	for _, k := range []string{"r", "u", "R", "U"} {
		_, cmd := m.Update(key(k))
		assert.NotNil(t, cmd, "key %s should schedule a commit", k)
		assert.True(t, m.session.Busy())
		land(m)
	}

	assert.True(t, m.session.State().IsSolved())
	assert.True(t, m.session.Complete())
	assert.Contains(t, m.status, "Solved in")
	assert.Contains(t, m.View(), "Step 4/4")
}

func TestDrillWrongKey(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	_, cmd := m.Update(key("u"))
	assert.Nil(t, cmd)
	assert.True(t, m.isError)
	assert.Equal(t, "✗ U, expected R", m.status)
	assert.False(t, m.session.Busy())
}

func TestDrillExamHidesExpected(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove, trainer.WithMode(trainer.ModeExam))

	m.Update(key("u"))
	assert.Equal(t, "✗ U", m.status)
	assert.NotContains(t, m.View(), "R U R' U'")

	m.Update(key("?"))
	assert.Equal(t, "Next: R", m.status)
	assert.NotContains(t, m.View(), "R U R' U'")
}

func TestDrillHint(t *testing.T) {
	m := newTestDrill(t, cubetrainer.TPerm)
	m.Update(key("?"))
	assert.Equal(t, "Next: R", m.status)
}

func TestDrillTypedMoves(t *testing.T) {
	m := newTestDrill(t, []cubetrainer.Move{cubetrainer.MoveR2, cubetrainer.MoveUPrime, cubetrainer.MoveF})

	m.Update(key(":"))
	require.True(t, m.typing)
	m.Update(key("r2"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(key("u’"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(key("fx"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "r2 u’ f", m.input)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.False(t, m.typing)
	assert.Len(t, m.queue, 2)

	for i := 0; i < 3; i++ {
		land(m)
	}
	assert.True(t, m.session.Complete())
	assert.Empty(t, m.queue)
}

func TestDrillKeysQueueWhileBusy(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	m.Update(key("r"))
	m.Update(key("u"))
	assert.Equal(t, 1, m.session.Step()+len(m.queue))

	land(m)
	assert.Equal(t, 1, m.session.Step())
	assert.True(t, m.session.Busy(), "queued move should be in flight")

	land(m)
	assert.Equal(t, 2, m.session.Step())
}

func TestDrillStaleCommitAfterReset(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	m.Update(key("r"))
	stale := commitMsg{gen: m.gen}
	m.Update(key("n"))
	require.False(t, m.session.Busy())

	m.Update(key("r"))
	m.Update(stale)
	assert.True(t, m.session.Busy(), "commit from the previous attempt is dropped")
	assert.Equal(t, 0, m.session.Step())

	land(m)
	assert.Equal(t, 1, m.session.Step())
}

func TestDrillStaleCommitDuringDemo(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	m.Update(key("r"))
	stale := commitMsg{gen: m.gen}
	m.Update(key("n"))
	m.Update(key("p"))
	require.True(t, m.session.Demoing())

	m.Update(stale)
	assert.Equal(t, 0, m.session.Step(), "only one demo commit chain runs")

	land(m)
	assert.Equal(t, 1, m.session.Step())
}

func TestDrillDemo(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	_, cmd := m.Update(key("p"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Demo: R", m.status)

	m.Update(key("r"))
	assert.Equal(t, "Demo playing", m.status)

	for i := 0; i < 4; i++ {
		land(m)
	}
	assert.True(t, m.session.State().IsSolved())
	assert.Equal(t, "Demo finished. Press n to try it yourself", m.status)

	m.Update(key("n"))
	assert.False(t, m.session.State().IsSolved())
	assert.Equal(t, 0, m.session.Step())
}

func TestDrillDeviceHalfTurn(t *testing.T) {
	m := newTestDrill(t, []cubetrainer.Move{cubetrainer.MoveR2, cubetrainer.MoveU})

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveR}})
	assert.False(t, m.session.Busy(), "first quarter is held")

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveR}})
	pending, ok := m.session.Pending()
	require.True(t, ok)
	assert.Equal(t, cubetrainer.MoveR2, pending)

	land(m)
	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveU}})
	land(m)
	assert.True(t, m.session.Complete())
}

func TestDrillDeviceHalfTurnWhileBusy(t *testing.T) {
	m := newTestDrill(t, []cubetrainer.Move{cubetrainer.MoveU, cubetrainer.MoveR2})

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveU, cubetrainer.MoveR, cubetrainer.MoveR}})
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveR2}, m.queue)

	land(m)
	land(m)
	assert.True(t, m.session.Complete())
}

func TestDrillDeviceWrongMoveNeedsUndo(t *testing.T) {
	m := newTestDrill(t, cubetrainer.SexyMove)

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveU}})
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveUPrime}, m.undo)
	assert.Equal(t, "Undo on the cube: U'", m.status)

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveF}})
	assert.Equal(t, "Undo on the cube: F' U'", m.status)

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveFPrime, cubetrainer.MoveUPrime}})
	assert.Empty(t, m.undo)
	assert.Equal(t, "Back on track", m.status)
	assert.Equal(t, 1, m.session.Attempt().Mistakes)

	m.Update(deviceMovesMsg{moves: []cubetrainer.Move{cubetrainer.MoveR}})
	assert.True(t, m.session.Busy())
}

func TestHalfTurnJoiner(t *testing.T) {
	var j halfTurnJoiner

	out := j.feed(cubetrainer.MoveRPrime, cubetrainer.MoveR2, true)
	assert.Empty(t, out)
	out = j.feed(cubetrainer.MoveRPrime, cubetrainer.MoveR2, true)
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveR2}, out)

	// A different move releases the held quarter first.
	j.feed(cubetrainer.MoveR, cubetrainer.MoveR2, true)
	out = j.feed(cubetrainer.MoveU, cubetrainer.MoveR2, true)
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveR, cubetrainer.MoveU}, out)

	// Quarters pass straight through when no half turn is expected.
	out = j.feed(cubetrainer.MoveR, cubetrainer.MoveR, true)
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveR}, out)
	out = j.feed(cubetrainer.MoveR, cubetrainer.Move{}, false)
	assert.Equal(t, []cubetrainer.Move{cubetrainer.MoveR}, out)
}
