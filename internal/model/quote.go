package model

import "time"

// SymbolQuote holds one symbol's raw quote fields and the metrics derived
// from them for a single scan cycle. Quotes are never carried across cycles.
type SymbolQuote struct {
	Symbol             string
	PreviousClose      float64
	ChangeToday        float64
	Volume             float64
	PercentChangeToday float64
	AverageVolume      float64

	// Derived.
	Price          float64 // PreviousClose + ChangeToday
	RelativeVolume float64 // Volume / AverageVolume
	FlowScore      float64 // PercentChangeToday * RelativeVolume
}

// Direction labels which side of the market the winning flow is on.
type Direction string

const (
	DirectionBullish Direction = "TOP BULL FLOW"
	DirectionBearish Direction = "TOP BEAR FLOW"
)

// CycleResult is the outcome of one full pass over the watchlist: the quote
// with the largest absolute flow score and its direction label.
type CycleResult struct {
	Top       SymbolQuote
	Direction Direction
	ScannedAt time.Time
}
