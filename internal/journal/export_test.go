package journal

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/models"
)

func TestWriteCSV(t *testing.T) {
	// Arrange
	a := models.Trade{
		ID: 1, Date: "2024-01-01", Direction: models.DirectionLong, Symbol: "AAPL",
		Entry: 100.5, Stop: 95, Target: 110, Exit: 108, Quantity: 10, RR: rr(1.95), PL: 75,
	}
	b := models.Trade{
		ID: 2, Date: "2024-01-02", Direction: models.DirectionShort, Symbol: "BRK,B",
		Entry: 0.00012, Stop: 0.00012, Target: 0.0001, Exit: 0.00011, Quantity: 1000, PL: 0.01,
	}
	var buf bytes.Buffer

	// Act
	err := WriteCSV(&buf, []models.Trade{a, b})

	// Assert
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Symbol,Direction,Entry,Stop,Target,Exit,Quantity,RR,PL\n"+
			"2024-01-01,AAPL,long,100.5,95,110,108,10,1.95,75.00\n"+
			"2024-01-02,\"BRK,B\",short,0.00012,0.00012,0.0001,0.00011,1000,,0.01\n",
		buf.String())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "BRK,B", records[2][1])
	assert.Equal(t, "", records[2][8])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := WriteCSV(&buf, nil)

	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len())
}
