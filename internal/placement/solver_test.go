package placement

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBijection(t *testing.T, slots []int, n int) {
	t.Helper()
	require.Len(t, slots, n)
	seen := make(map[int]bool)
	for _, s := range slots {
		assert.True(t, s >= 0 && s < n, "slot %d out of range", s)
		assert.False(t, seen[s], "slot %d assigned twice", s)
		seen[s] = true
	}
}

func TestGreedySolve(t *testing.T) {
	t.Run("unconstrained teams fill every slot", func(t *testing.T) {
		constraints := []Constraint{{Team: "A"}, {Team: "B"}, {Team: "C"}, {Team: "D"}, {Team: "E"}, {Team: "F"}}
		for seed := int64(1); seed <= 50; seed++ {
			slots, err := NewGreedy(rand.New(rand.NewSource(seed))).Solve(constraints)
			require.NoError(t, err)
			assertBijection(t, slots, len(constraints))
		}
	})

	t.Run("forbidden slots are never used", func(t *testing.T) {
		constraints := []Constraint{
			{Team: "A", Forbidden: []int{0, 1}},
			{Team: "B", Forbidden: []int{2}},
			{Team: "C", Forbidden: []int{3, 4}},
			{Team: "D"},
			{Team: "E"},
		}
		for seed := int64(1); seed <= 50; seed++ {
			slots, err := NewGreedy(rand.New(rand.NewSource(seed))).Solve(constraints)
			require.NoError(t, err)
			assertBijection(t, slots, len(constraints))
			for i, c := range constraints {
				assert.NotContains(t, c.Forbidden, slots[i], "%s placed in forbidden slot", c.Team)
			}
		}
	})

	t.Run("most constrained team is placed first", func(t *testing.T) {
		// Placed in input order this would fail half the time; placing A first
		// makes the assignment forced.
		constraints := []Constraint{
			{Team: "C"},
			{Team: "B", Forbidden: []int{0}},
			{Team: "A", Forbidden: []int{0, 1}},
		}
		for seed := int64(1); seed <= 50; seed++ {
			slots, err := NewGreedy(rand.New(rand.NewSource(seed))).Solve(constraints)
			require.NoError(t, err)
			assert.Equal(t, []int{0, 1, 2}, slots)
		}
	})

	t.Run("same seed gives same placement", func(t *testing.T) {
		constraints := []Constraint{{Team: "A"}, {Team: "B", Forbidden: []int{1}}, {Team: "C"}, {Team: "D"}}
		first, err := NewGreedy(rand.New(rand.NewSource(7))).Solve(constraints)
		require.NoError(t, err)
		second, err := NewGreedy(rand.New(rand.NewSource(7))).Solve(constraints)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("out of range forbidden slots are ignored", func(t *testing.T) {
		constraints := []Constraint{{Team: "A", Forbidden: []int{-1, 5, 9}}, {Team: "B"}}
		slots, err := NewGreedy(rand.New(rand.NewSource(1))).Solve(constraints)
		require.NoError(t, err)
		assertBijection(t, slots, 2)
	})

	t.Run("out of range forbidden slots count toward ordering", func(t *testing.T) {
		// A's avoid set is larger as given, so A is placed first and takes
		// slot 1, leaving B nowhere to go.
		constraints := []Constraint{
			{Team: "B", Forbidden: []int{0}},
			{Team: "A", Forbidden: []int{0, 5, 9}},
		}
		for seed := int64(1); seed <= 10; seed++ {
			_, err := NewGreedy(rand.New(rand.NewSource(seed))).Solve(constraints)
			var exhausted *ExhaustedError
			require.True(t, errors.As(err, &exhausted))
			assert.Equal(t, "B", exhausted.Team)
			assert.Equal(t, []int{1}, exhausted.Occupied)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		slots, err := NewGreedy(rand.New(rand.NewSource(1))).Solve(nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("reports the team that cannot be placed", func(t *testing.T) {
		constraints := []Constraint{
			{Team: "A", Forbidden: []int{0}},
			{Team: "B", Forbidden: []int{0}},
		}
		_, err := NewGreedy(rand.New(rand.NewSource(1))).Solve(constraints)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPlacementExhausted))

		var exhausted *ExhaustedError
		require.True(t, errors.As(err, &exhausted))
		assert.Contains(t, []string{"A", "B"}, exhausted.Team)
		assert.Equal(t, []int{0}, exhausted.Forbidden)
		assert.Equal(t, []int{1}, exhausted.Occupied)
	})

	t.Run("team forbidden from every slot", func(t *testing.T) {
		constraints := []Constraint{{Team: "A", Forbidden: []int{0, 1}}, {Team: "B"}}
		_, err := NewGreedy(rand.New(rand.NewSource(1))).Solve(constraints)
		var exhausted *ExhaustedError
		require.True(t, errors.As(err, &exhausted))
		assert.Equal(t, "A", exhausted.Team)
		assert.Contains(t, err.Error(), `"A"`)
	})
}

func TestOrder(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1}, Order([]int{1, 2, 0}))
}
