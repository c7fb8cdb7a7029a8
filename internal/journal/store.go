package journal

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"trade-journal-go/internal/models"
)

// Persistence is a key/value blob store. Load reports ok=false when the key
// has never been written.
type Persistence interface {
	Save(key string, data []byte) error
	Load(key string) (data []byte, ok bool, err error)
}

// Store owns the ordered trade list and writes the whole list through to
// its Persistence after every mutation.
type Store struct {
	mu      sync.Mutex
	trades  []models.Trade
	persist Persistence
	key     string
	logger  *zap.Logger
}

// NewStore creates an empty store. Call Load to read persisted trades.
func NewStore(persist Persistence, key string, logger *zap.Logger) *Store {
	return &Store{
		persist: persist,
		key:     key,
		logger:  logger.Named("store").With(zap.String("key", key)),
	}
}

// Load replaces the in-memory list with the persisted one. Missing, unreadable
// or malformed data yields an empty journal rather than an error.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = nil
	data, ok, err := s.persist.Load(s.key)
	if err != nil {
		s.logger.Warn("Could not read persisted trades, starting empty", zap.Error(err))
		return
	}
	if !ok || len(data) == 0 {
		s.logger.Info("No persisted trades found")
		return
	}

	var trades []models.Trade
	if err := json.Unmarshal(data, &trades); err != nil {
		s.logger.Warn("Persisted trades are malformed, starting empty", zap.Error(err))
		return
	}
	s.trades = trades
	s.logger.Info("Loaded persisted trades", zap.Int("count", len(trades)))
}

// Add appends tr to the end of the journal.
func (s *Store) Add(tr models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append(s.trades, tr.Clone())
	return s.save("add")
}

// DeleteByID removes the trade with the given id. An unknown id is a no-op.
func (s *Store) DeleteByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.trades = append(s.trades[:idx:idx], s.trades[idx+1:]...)
	return s.save("delete")
}

// UpdateNotes replaces the notes of the trade with the given id. An unknown
// id is a no-op.
func (s *Store) UpdateNotes(id int64, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.trades[idx].Notes = notes
	return s.save("update notes")
}

// ClearAll removes every trade.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = nil
	return s.save("clear")
}

// Trades returns a deep copy of the journal in insertion order.
func (s *Store) Trades() []models.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Trade, len(s.trades))
	for i := range s.trades {
		out[i] = s.trades[i].Clone()
	}
	return out
}

// Len returns the number of trades held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trades)
}

func (s *Store) indexOf(id int64) int {
	for i := range s.trades {
		if s.trades[i].ID == id {
			return i
		}
	}
	return -1
}

// save must be called with s.mu held.
func (s *Store) save(op string) error {
	trades := s.trades
	if trades == nil {
		trades = []models.Trade{}
	}
	data, err := json.Marshal(trades)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.persist.Save(s.key, data); err != nil {
		s.logger.Warn("Failed to persist trades, keeping in-memory state",
			zap.String("op", op), zap.Int("count", len(s.trades)), zap.Error(err))
		return &PersistenceError{Op: op, Err: err}
	}
	s.logger.Debug("Persisted trades", zap.String("op", op), zap.Int("count", len(s.trades)))
	return nil
}
