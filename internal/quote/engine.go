package quote

import (
	"errors"
	"strings"

	"topflow/internal/model"
)

// Field keys of the upstream quote payload. Renaming any of these upstream
// breaks extraction silently (fields default to 0); they are a fixed wire
// contract, not tunables.
const (
	keyPreviousClose = "previous_close"
	keyChange        = "change"
	keyVolume        = "volume"
	keyPercentChange = "percent_change"
	keyAverageVolume = "average_volume"
)

// errorMarker is the upstream source's embedded failure indicator.
const errorMarker = `"status":"error"`

var (
	// ErrUpstreamError means the payload carries the upstream error marker.
	ErrUpstreamError = errors.New("upstream reports error status")
	// ErrNoVolumeHistory means average volume is missing or non-positive,
	// so the symbol cannot be ranked this cycle.
	ErrNoVolumeHistory = errors.New("no average volume history")
)

// Derive builds a SymbolQuote from one raw payload. It returns
// ErrUpstreamError when the payload carries the error marker and
// ErrNoVolumeHistory when average volume is not positive; both mean
// "skip this symbol for this cycle".
func Derive(payload, symbol string, parser Parser) (*model.SymbolQuote, error) {
	if strings.Contains(payload, errorMarker) {
		return nil, ErrUpstreamError
	}

	src := NewFieldSource(parser, payload)
	q := &model.SymbolQuote{
		Symbol:             symbol,
		PreviousClose:      src.Get(keyPreviousClose),
		ChangeToday:        src.Get(keyChange),
		Volume:             src.Get(keyVolume),
		PercentChangeToday: src.Get(keyPercentChange),
		AverageVolume:      src.Get(keyAverageVolume),
	}

	// Guards the relative-volume division; an absent average_volume reads
	// as 0 and intentionally fails here.
	if q.AverageVolume <= 0 {
		return nil, ErrNoVolumeHistory
	}

	// The upstream source has no current-price field, so today's close is
	// reconstructed from the previous close plus the change.
	q.Price = q.PreviousClose + q.ChangeToday
	q.RelativeVolume = q.Volume / q.AverageVolume
	q.FlowScore = q.PercentChangeToday * q.RelativeVolume
	return q, nil
}
