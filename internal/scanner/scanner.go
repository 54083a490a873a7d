// Package scanner runs the fixed-interval scan loop: fetch each watchlist
// symbol, derive its metrics, keep the most extreme flow, notify.
package scanner

import (
	"context"
	"fmt"
	"log"
	"time"

	"topflow/internal/collector"
	"topflow/internal/history"
	"topflow/internal/model"
	"topflow/internal/notifier"
	"topflow/internal/quote"
	"topflow/internal/rank"
)

// Deliverer is the outbound delivery capability. Its result is logged but
// never retried or propagated.
type Deliverer interface {
	Deliver(ctx context.Context, payload string) error
}

// Scanner orchestrates scan cycles over a fixed watchlist.
type Scanner struct {
	Fetcher   collector.Fetcher
	Deliverer Deliverer
	Watchlist []string
	Interval  time.Duration
	Parser    quote.Parser
	History   *history.Ring
}

// New creates a Scanner. The watchlist order is the scan order and the
// tie-break order for extremal selection.
func New(fetcher collector.Fetcher, deliverer Deliverer, watchlist []string, interval time.Duration, parser quote.Parser, hist *history.Ring) *Scanner {
	return &Scanner{
		Fetcher:   fetcher,
		Deliverer: deliverer,
		Watchlist: watchlist,
		Interval:  interval,
		Parser:    parser,
		History:   hist,
	}
}

// Run executes cycles until ctx is cancelled, sleeping the fixed interval
// after each cycle finishes. Actual cadence is therefore interval plus
// cycle execution time, not a wall-clock grid.
func (s *Scanner) Run(ctx context.Context) {
	for {
		s.RunCycle(ctx)
		select {
		case <-ctx.Done():
			log.Println("[INFO] scan loop stopped")
			return
		case <-time.After(s.Interval):
		}
	}
}

// RunCycle performs one full pass over the watchlist and returns the
// cycle result, or nil when no symbol produced a valid quote. Nothing
// inside a cycle ever stops the loop.
func (s *Scanner) RunCycle(ctx context.Context) *model.CycleResult {
	fmt.Println("Fetching tickers...")
	sel := rank.NewSelector()

	for _, symbol := range s.Watchlist {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		payload, err := s.Fetcher.FetchQuote(ctx, symbol)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v", symbol, err)
			continue
		}
		q, err := quote.Derive(payload, symbol, s.Parser)
		if err != nil {
			log.Printf("[WARN] skip %s: %v", symbol, err)
			continue
		}
		fmt.Println(notifier.FormatSymbolLine(q))
		sel.Offer(*q)
	}

	res, ok := sel.Finalize()
	if !ok {
		log.Println("[INFO] no valid quotes this cycle")
		return nil
	}

	fmt.Print(notifier.FormatReport(res))
	if s.Deliverer != nil {
		payload := notifier.SanitizePayload(notifier.FormatAlert(res))
		if err := s.Deliverer.Deliver(ctx, payload); err != nil {
			log.Printf("[WARN] deliver alert: %v", err)
		}
	}
	if s.History != nil {
		s.History.Add(*res)
	}
	return res
}
