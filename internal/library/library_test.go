package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubetrainer"
)

func TestBuiltinLoads(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	assert.Greater(t, lib.Len(), 30)

	sexy, err := lib.Get("sexy")
	require.NoError(t, err)
	assert.Equal(t, cubetrainer.SexyMove, sexy.Moves)
	assert.Equal(t, cubetrainer.CategoryBasic, sexy.Category)

	tperm, err := lib.Get("t-perm")
	require.NoError(t, err)
	assert.Equal(t, cubetrainer.TPerm, tperm.Moves)
}

// TestBuiltinAlgorithmsSolveTheirScramble runs every built-in algorithm
// against its own scramble.
func TestBuiltinAlgorithmsSolveTheirScramble(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	for _, alg := range lib.List() {
		t.Run(alg.ID, func(t *testing.T) {
			assert.NotEmpty(t, alg.Name)
			assert.NotEmpty(t, alg.Description)

			s, err := alg.Scramble()
			require.NoError(t, err)
			assert.False(t, s.IsSolved(), "scramble should not be solved")

			s, err = cubetrainer.ApplyMoves(s, alg.Moves)
			require.NoError(t, err)
			assert.True(t, s.IsSolved(), "algorithm should solve its scramble:\n%s", s)
		})
	}
}

func TestBuiltinHasNoCustomAlgorithms(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	assert.Empty(t, lib.ByCategory(cubetrainer.CategoryCustom))
	assert.Equal(t, []cubetrainer.Category{
		cubetrainer.CategoryBasic, cubetrainer.CategoryAdvanced, cubetrainer.CategoryPro,
	}, lib.Categories())
}

func TestGetUnknown(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	_, err = lib.Get("h-perm")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"slice move": `- {id: h, name: H, category: advanced, moves: "M2 U M2", description: d}`,
		"empty":      `- {id: e, name: E, category: basic, moves: "", description: d}`,
		"category":   `- {id: c, name: C, category: expert, moves: "R", description: d}`,
		"duplicate": `
- {id: a, name: A, category: basic, moves: "R", description: d}
- {id: a, name: B, category: basic, moves: "U", description: d}`,
		"unknown field": `- {id: a, name: A, category: basic, moves: "R", notes: x}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestAddCustom(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	before := lib.Len()

	alg, err := lib.AddCustom(cubetrainer.DefaultParsePolicy(), "", "", "r u r’ u’")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(alg.ID, CustomIDPrefix))
	assert.Equal(t, "Custom", alg.Name)
	assert.Equal(t, "r u r’ u’", alg.Description)
	assert.Equal(t, cubetrainer.CategoryCustom, alg.Category)
	assert.Equal(t, cubetrainer.SexyMove, alg.Moves)
	assert.Equal(t, before+1, lib.Len())

	got, err := lib.Get(alg.ID)
	require.NoError(t, err)
	assert.Equal(t, alg, got)
	assert.Len(t, lib.ByCategory(cubetrainer.CategoryCustom), 1)
}

func TestNewCustomUsesPolicy(t *testing.T) {
	p := cubetrainer.DefaultParsePolicy()
	p.PrimeMarks = append(p.PrimeMarks, "i")

	alg, err := NewCustom(p, "inverted", "", "Ri Ui R U")
	require.NoError(t, err)
	assert.Equal(t, "R' U' R U", alg.Notation())

	alg, err = NewCustom(cubetrainer.DefaultParsePolicy(), "plain", "", "Ri Ui R U")
	require.NoError(t, err)
	assert.Equal(t, "R U R U", alg.Notation())
}

func TestAddCustomWithoutMoves(t *testing.T) {
	lib := New()
	_, err := lib.AddCustom(cubetrainer.DefaultParsePolicy(), "noise", "", "hello world")
	assert.ErrorIs(t, err, ErrEmptyAlgorithm)
	assert.Zero(t, lib.Len())
}

func TestRemove(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	a, err := lib.AddCustom(cubetrainer.DefaultParsePolicy(), "one", "", "R U")
	require.NoError(t, err)
	b, err := lib.AddCustom(cubetrainer.DefaultParsePolicy(), "two", "", "F2")
	require.NoError(t, err)

	require.NoError(t, lib.Remove(a.ID))
	_, err = lib.Get(a.ID)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	got, err := lib.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "two", got.Name)

	assert.ErrorIs(t, lib.Remove("sexy"), ErrNotCustom)
	assert.ErrorIs(t, lib.Remove("missing"), ErrUnknownAlgorithm)
}

func TestReturnedAlgorithmsAreCopies(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	alg, err := lib.Get("sexy")
	require.NoError(t, err)
	alg.Moves[0] = cubetrainer.MoveB

	again, err := lib.Get("sexy")
	require.NoError(t, err)
	assert.Equal(t, cubetrainer.MoveR, again.Moves[0])
}

func TestIDsSorted(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	ids := lib.IDs()
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "checkerboard")
}
