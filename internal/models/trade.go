package models

// Direction is the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Trade is a closed trade recorded in the journal.
// Risk, Reward, RR and PL are derived once when the trade is built and are
// persisted as-is; only Notes may change afterwards.
type Trade struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Direction Direction `json:"direction"`
	Symbol    string    `json:"symbol"`
	Entry     float64   `json:"entry"`
	Stop      float64   `json:"stop"`
	Target    float64   `json:"target"`
	Exit      float64   `json:"exit"`
	Quantity  float64   `json:"quantity"`
	Notes     string    `json:"notes"`

	Risk   float64  `json:"risk"`
	Reward float64  `json:"reward"`
	RR     *float64 `json:"rr"` // nil when risk is zero
	PL     float64  `json:"pl"`
}

// IsWin reports whether the trade closed with a profit.
func (t Trade) IsWin() bool {
	return t.PL > 0
}

// IsLoss reports whether the trade closed with a loss. Break-even trades are
// neither wins nor losses.
func (t Trade) IsLoss() bool {
	return t.PL < 0
}

// Clone returns a copy of t that shares no memory with it.
func (t Trade) Clone() Trade {
	if t.RR != nil {
		rr := *t.RR
		t.RR = &rr
	}
	return t
}

// HasRR reports whether the reward-to-risk ratio is defined.
func (t Trade) HasRR() bool {
	return t.RR != nil
}
