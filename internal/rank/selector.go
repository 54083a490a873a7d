// Package rank selects the single most extreme quote of a scan cycle.
package rank

import (
	"math"
	"time"

	"topflow/internal/model"
)

// Selector accumulates the quotes of one cycle and retains the one with
// the largest absolute flow score. It is not safe for concurrent use and
// is discarded after Finalize.
type Selector struct {
	best *model.SymbolQuote
}

func NewSelector() *Selector { return &Selector{} }

// Offer folds one valid quote into the running best. The first quote is
// retained unconditionally; a later quote replaces it only on a strictly
// larger absolute flow score, so exact ties keep the earlier symbol.
func (s *Selector) Offer(q model.SymbolQuote) {
	if s.best == nil || math.Abs(q.FlowScore) > math.Abs(s.best.FlowScore) {
		best := q
		s.best = &best
	}
}

// Finalize returns the cycle result, or ok=false when no quote was ever
// offered. A flow score of zero labels bullish by convention.
func (s *Selector) Finalize() (*model.CycleResult, bool) {
	if s.best == nil {
		return nil, false
	}
	dir := model.DirectionBullish
	if s.best.FlowScore < 0 {
		dir = model.DirectionBearish
	}
	return &model.CycleResult{
		Top:       *s.best,
		Direction: dir,
		ScannedAt: time.Now(),
	}, true
}
