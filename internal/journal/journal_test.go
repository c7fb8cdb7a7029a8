package journal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJournal(t *testing.T, p Persistence) *Journal {
	t.Helper()
	store := NewStore(p, "trades", zap.NewNop())
	store.Load()
	return New(store, NewBuilder(&seqIDs{}), zap.NewNop())
}

func submit(t *testing.T, j *Journal, date, direction, exit string) {
	t.Helper()
	raw := rawLong()
	raw.Date = date
	raw.Direction = direction
	raw.Exit = exit
	_, err := j.Submit(raw)
	require.NoError(t, err)
}

func TestJournal_SubmitAndView(t *testing.T) {
	// Arrange
	j := newTestJournal(t, newMapPersistence())
	submit(t, j, "2024-01-01", "long", "110")  // +100
	submit(t, j, "2024-01-02", "long", "95")   // -50
	submit(t, j, "2024-01-03", "long", "103")  // +30

	// Act
	all := j.View(Criteria{})
	wins := j.View(Criteria{Result: ResultWin})

	// Assert
	assert.Equal(t, 3, all.Total)
	assert.False(t, all.FiltersActive)
	assert.Equal(t, ResultAll, all.Criteria.Result)
	assert.Equal(t, []float64{0, 100, 50, 80}, all.Summary.EquityCurve)

	assert.True(t, wins.FiltersActive)
	assert.Equal(t, 3, wins.Total)
	assert.Len(t, wins.Trades, 2)
	assert.Equal(t, 130.0, wins.Summary.TotalPL)
	assert.Equal(t, 100.0, wins.Summary.WinRate)
}

func TestJournal_ViewDoesNotExposeStoredTrades(t *testing.T) {
	j := newTestJournal(t, newMapPersistence())
	tr, err := j.Submit(rawLong())
	require.NoError(t, err)
	require.NotNil(t, tr.RR)

	*tr.RR = 50
	v := j.View(Criteria{})
	require.Len(t, v.Trades, 1)
	*v.Trades[0].RR = 99

	again := j.View(Criteria{})
	assert.Equal(t, 2.0, *again.Trades[0].RR)
	assert.Equal(t, 2.0, again.Summary.AvgRR)
}

func TestJournal_SubmitInvalidLeavesStoreUnchanged(t *testing.T) {
	j := newTestJournal(t, newMapPersistence())
	raw := rawLong()
	raw.Quantity = "-1"

	tr, err := j.Submit(raw)

	assert.Nil(t, tr)
	assert.ErrorIs(t, err, ErrInvalidNumericField)
	assert.Equal(t, 0, j.View(Criteria{}).Total)
}

func TestJournal_SubmitPersistenceWarning(t *testing.T) {
	p := new(MockPersistence)
	p.On("Load", "trades").Return(nil, false, nil)
	p.On("Save", "trades", mock.Anything).Return(errors.New("full"))
	j := newTestJournal(t, p)

	tr, err := j.Submit(rawLong())

	require.NotNil(t, tr)
	assert.True(t, IsWarning(err))
	assert.Equal(t, 1, j.View(Criteria{}).Total)
}

func TestJournal_DeleteAndNotes(t *testing.T) {
	j := newTestJournal(t, newMapPersistence())
	submit(t, j, "2024-01-01", "long", "110")
	submit(t, j, "2024-01-02", "long", "95")

	require.NoError(t, j.UpdateNotes(2, "chased entry"))
	require.NoError(t, j.Delete(1))
	require.NoError(t, j.Delete(42))

	v := j.View(Criteria{})
	require.Len(t, v.Trades, 1)
	assert.Equal(t, int64(2), v.Trades[0].ID)
	assert.Equal(t, "chased entry", v.Trades[0].Notes)
}

func TestJournal_ClearRequiresConfirmation(t *testing.T) {
	j := newTestJournal(t, newMapPersistence())
	submit(t, j, "2024-01-01", "long", "110")

	assert.ErrorIs(t, j.Clear(false), ErrConfirmationRequired)
	assert.Equal(t, 1, j.View(Criteria{}).Total)

	require.NoError(t, j.Clear(true))
	assert.Equal(t, 0, j.View(Criteria{}).Total)
}

func TestJournal_ExportIgnoresFilters(t *testing.T) {
	j := newTestJournal(t, newMapPersistence())
	var empty bytes.Buffer
	assert.ErrorIs(t, j.Export(&empty), ErrNothingToExport)

	submit(t, j, "2024-01-01", "long", "110")
	submit(t, j, "2024-01-02", "long", "95")

	var buf bytes.Buffer
	require.NoError(t, j.Export(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "2024-01-02,AAPL,long,100,95,110,95,10,2.00,-50.00", lines[2])
}
