package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSolution builds a distinguishable 81-cell slice for collector tests;
// it is not a valid Sudoku solution, which the collector never checks.
func fakeSolution(seed int) []int {
	sol := make([]int, 81)
	for i := range sol {
		sol[i] = (i+seed)%9 + 1
	}
	return sol
}

func TestCollectorAccumulatesInOrder(t *testing.T) {
	c := NewCollector(0)
	require.NoError(t, c.Add(fakeSolution(0)))
	require.NoError(t, c.Add(fakeSolution(1)))
	require.NoError(t, c.Add(fakeSolution(2)))

	got := c.Results()
	require.Len(t, got, 3)
	assert.Equal(t, fakeSolution(0), got[0])
	assert.Equal(t, fakeSolution(1), got[1])
	assert.Equal(t, fakeSolution(2), got[2])
	assert.False(t, c.Full(), "uncapped collector is never full")
}

func TestCollectorDeduplicates(t *testing.T) {
	c := NewCollector(0)
	require.NoError(t, c.Add(fakeSolution(4)))
	require.NoError(t, c.Add(fakeSolution(4)))
	assert.Equal(t, 1, c.Len())
}

func TestCollectorCap(t *testing.T) {
	c := NewCollector(2)
	require.NoError(t, c.Add(fakeSolution(0)))
	assert.False(t, c.Full())

	err := c.Add(fakeSolution(1))
	assert.ErrorIs(t, err, errCapReached, "filling the last slot reports the cap")
	assert.True(t, c.Full())

	err = c.Add(fakeSolution(2))
	assert.ErrorIs(t, err, errCapReached)
	assert.Equal(t, 2, c.Len(), "solutions past the cap are dropped")
}

func TestCollectorCopiesSolutions(t *testing.T) {
	c := NewCollector(0)
	sol := fakeSolution(0)
	require.NoError(t, c.Add(sol))

	sol[0] = 9 - sol[0]
	assert.Equal(t, fakeSolution(0), c.Results()[0], "collector must keep its own copy")
}
