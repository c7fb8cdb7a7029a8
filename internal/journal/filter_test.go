package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/models"
)

func filterFixture() []models.Trade {
	return []models.Trade{
		sampleTrade(1, "2024-01-05", 50),
		sampleTrade(2, "2024-01-10", -20),
		sampleTrade(3, "2024-01-15", 0),
		sampleTrade(4, "2024-02-01", 30),
	}
}

func ids(trades []models.Trade) []int64 {
	out := make([]int64, 0, len(trades))
	for _, tr := range trades {
		out = append(out, tr.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"no criteria", Criteria{}, []int64{1, 2, 3, 4}},
		{"all", Criteria{Result: ResultAll}, []int64{1, 2, 3, 4}},
		{"wins exclude break-even", Criteria{Result: ResultWin}, []int64{1, 4}},
		{"losses exclude break-even", Criteria{Result: ResultLoss}, []int64{2}},
		{"start inclusive", Criteria{StartDate: "2024-01-10"}, []int64{2, 3, 4}},
		{"end inclusive", Criteria{EndDate: "2024-01-10"}, []int64{1, 2}},
		{"range and result", Criteria{Result: ResultWin, StartDate: "2024-01-01", EndDate: "2024-01-31"}, []int64{1}},
		{"empty range", Criteria{StartDate: "2024-03-01"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(filterFixture(), tt.c)))
		})
	}
}

func TestFilter_IsSubsequence(t *testing.T) {
	all := filterFixture()
	got := Filter(all, Criteria{Result: ResultWin})

	// Every result appears in the input, in the same relative order.
	j := 0
	for _, tr := range got {
		for j < len(all) && all[j].ID != tr.ID {
			j++
		}
		require.Less(t, j, len(all))
		j++
	}
	assert.Len(t, all, 4, "input must not be modified")
}

func TestParseResult(t *testing.T) {
	for in, want := range map[string]Result{"": ResultAll, "all": ResultAll, "Win": ResultWin, " loss ": ResultLoss} {
		got, err := ParseResult(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseResult("breakeven")
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestCriteria_Active(t *testing.T) {
	assert.False(t, Criteria{}.Active())
	assert.False(t, Criteria{Result: ResultAll}.Active())
	assert.True(t, Criteria{Result: ResultLoss}.Active())
	assert.True(t, Criteria{StartDate: "2024-01-01"}.Active())
	assert.True(t, Criteria{EndDate: "2024-01-01"}.Active())
}
