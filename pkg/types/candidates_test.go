package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatesSetOps(t *testing.T) {
	tests := []struct {
		name      string
		build     func() Candidates
		wantCount int
		wantVals  []int
	}{
		{
			name:      "full set",
			build:     func() Candidates { return AllCandidates },
			wantCount: 9,
			wantVals:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
		{
			name:      "empty set",
			build:     func() Candidates { return 0 },
			wantCount: 0,
			wantVals:  []int{},
		},
		{
			name:      "add values",
			build:     func() Candidates { return Candidates(0).Add(3).Add(7).Add(9) },
			wantCount: 3,
			wantVals:  []int{3, 7, 9},
		},
		{
			name:      "remove value",
			build:     func() Candidates { return AllCandidates.Remove(5) },
			wantCount: 8,
			wantVals:  []int{1, 2, 3, 4, 6, 7, 8, 9},
		},
		{
			name:      "remove absent value is a no-op",
			build:     func() Candidates { return Candidates(0).Add(2).Remove(9) },
			wantCount: 1,
			wantVals:  []int{2},
		},
		{
			name:      "add is idempotent",
			build:     func() Candidates { return Candidates(0).Add(4).Add(4) },
			wantCount: 1,
			wantVals:  []int{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.build()
			assert.Equal(t, tt.wantCount, c.Count())
			assert.ElementsMatch(t, tt.wantVals, c.Values())
			for _, v := range tt.wantVals {
				assert.True(t, c.Has(v), "Has(%d)", v)
			}
		})
	}
}

func TestCandidatesSole(t *testing.T) {
	assert.Equal(t, 0, AllCandidates.Sole(), "full set has no sole value")
	assert.Equal(t, 0, Candidates(0).Sole(), "empty set has no sole value")
	for v := 1; v <= 9; v++ {
		assert.Equal(t, v, Candidates(0).Add(v).Sole())
	}
	assert.Equal(t, 0, Candidates(0).Add(2).Add(8).Sole())
}

func TestCandidatesValuesAscending(t *testing.T) {
	c := Candidates(0).Add(9).Add(1).Add(5)
	assert.Equal(t, []int{1, 5, 9}, c.Values(), "Values must come back ascending")
}

func TestCandidatesString(t *testing.T) {
	assert.Equal(t, "{}", Candidates(0).String())
	assert.Equal(t, "{1 4 9}", Candidates(0).Add(4).Add(1).Add(9).String())
}
