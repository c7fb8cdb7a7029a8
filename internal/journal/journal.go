// Package journal records manual trades and derives the filtered table,
// summary statistics and equity curve shown to the user.
//
// Every action recomputes the whole view from the store; nothing is updated
// incrementally.
package journal

import (
	"io"

	"go.uber.org/zap"

	"trade-journal-go/internal/models"
)

// View is everything needed to render the journal after an action.
type View struct {
	Trades        []models.Trade `json:"trades"`
	Summary       Summary        `json:"summary"`
	Criteria      Criteria       `json:"criteria"`
	FiltersActive bool           `json:"filters_active"`
	Total         int            `json:"total"` // unfiltered count
}

// Journal ties the builder and the store to the filter and statistics
// engines.
type Journal struct {
	store   *Store
	builder *Builder
	logger  *zap.Logger
}

// New creates a Journal over an already loaded store.
func New(store *Store, builder *Builder, logger *zap.Logger) *Journal {
	return &Journal{store: store, builder: builder, logger: logger.Named("journal")}
}

// Submit builds a trade from the form and appends it. Validation errors leave
// the store untouched. A persistence warning is returned together with the
// trade, which is kept in memory.
func (j *Journal) Submit(raw RawTrade) (*models.Trade, error) {
	tr, err := j.builder.Build(raw)
	if err != nil {
		j.logger.Info("Rejected trade submission", zap.Error(err))
		return nil, err
	}
	err = j.store.Add(*tr)
	j.logger.Info("Trade recorded",
		zap.Int64("id", tr.ID),
		zap.String("symbol", tr.Symbol),
		zap.String("direction", string(tr.Direction)),
		zap.Float64("pl", tr.PL))
	return tr, err
}

// Delete removes a trade by id; unknown ids are ignored.
func (j *Journal) Delete(id int64) error {
	return j.store.DeleteByID(id)
}

// UpdateNotes edits the notes of a trade; unknown ids are ignored.
func (j *Journal) UpdateNotes(id int64, notes string) error {
	return j.store.UpdateNotes(id, notes)
}

// Clear removes every trade. It refuses to run without confirmation.
func (j *Journal) Clear(confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	n := j.store.Len()
	err := j.store.ClearAll()
	j.logger.Warn("Journal cleared", zap.Int("removed", n))
	return err
}

// View filters the journal and summarizes the result.
func (j *Journal) View(c Criteria) View {
	all := j.store.Trades()
	filtered := Filter(all, c)
	if c.Result == "" {
		c.Result = ResultAll
	}
	return View{
		Trades:        filtered,
		Summary:       Summarize(filtered),
		Criteria:      c,
		FiltersActive: c.Active(),
		Total:         len(all),
	}
}

// Export writes every trade, ignoring filters, as CSV.
func (j *Journal) Export(w io.Writer) error {
	return WriteCSV(w, j.store.Trades())
}
