package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"topflow/internal/collector"
	"topflow/internal/history"
	"topflow/internal/model"
	"topflow/internal/quote"
)

// recordingDeliverer captures delivered payloads.
type recordingDeliverer struct {
	payloads []string
	err      error
}

func (r *recordingDeliverer) Deliver(_ context.Context, payload string) error {
	r.payloads = append(r.payloads, payload)
	return r.err
}

func newTestScanner(fetcher collector.Fetcher, d Deliverer, watchlist []string) *Scanner {
	return New(fetcher, d, watchlist, time.Minute, quote.ParserScan, history.NewRing(8))
}

func TestRunCycle_SkipsFailedFetch(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Errs: map[string]error{"AAPL": errors.New("connection refused")},
		Payloads: map[string]string{
			"MSFT": `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"250000"}`,
		},
	}
	rec := &recordingDeliverer{}
	sc := newTestScanner(fetcher, rec, []string{"AAPL", "MSFT"})

	res := sc.RunCycle(context.Background())
	if res == nil {
		t.Fatal("expected a cycle result")
	}
	if res.Top.Symbol != "MSFT" {
		t.Errorf("expected MSFT, got %s", res.Top.Symbol)
	}
	if res.Top.Price != 102 || res.Top.RelativeVolume != 2.0 || res.Top.FlowScore != 3.0 {
		t.Errorf("unexpected metrics: %+v", res.Top)
	}
	if res.Direction != model.DirectionBullish {
		t.Errorf("expected bullish, got %s", res.Direction)
	}
	if len(rec.payloads) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(rec.payloads))
	}
}

func TestRunCycle_AllInvalid(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Payloads: map[string]string{
			"AAPL": `{"status":"error","message":"rate limited"}`,
			"MSFT": `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"0"}`,
		},
		Errs: map[string]error{"NVDA": errors.New("timeout")},
	}
	rec := &recordingDeliverer{}
	sc := newTestScanner(fetcher, rec, []string{"AAPL", "MSFT", "NVDA"})

	if res := sc.RunCycle(context.Background()); res != nil {
		t.Errorf("expected no result, got %+v", res)
	}
	if len(rec.payloads) != 0 {
		t.Errorf("expected no delivery, got %d", len(rec.payloads))
	}
}

func TestRunCycle_TieBreakFollowsWatchlistOrder(t *testing.T) {
	// Equal |flow|: +3.0 then -3.0. The earlier watchlist entry wins.
	fetcher := &collector.MockFetcher{
		Payloads: map[string]string{
			"AAPL": `{"previous_close":"100","change":"1","volume":"500000","percent_change":"1.5","average_volume":"250000"}`,
			"TSLA": `{"previous_close":"200","change":"-1","volume":"500000","percent_change":"-1.5","average_volume":"250000"}`,
		},
	}
	sc := newTestScanner(fetcher, &recordingDeliverer{}, []string{"AAPL", "TSLA"})

	res := sc.RunCycle(context.Background())
	if res == nil {
		t.Fatal("expected a cycle result")
	}
	if res.Top.Symbol != "AAPL" {
		t.Errorf("tie should keep AAPL, got %s", res.Top.Symbol)
	}
	if res.Direction != model.DirectionBullish {
		t.Errorf("expected bullish, got %s", res.Direction)
	}
}

func TestRunCycle_DeliveryFailureDoesNotPropagate(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Payloads: map[string]string{
			"MSFT": `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"250000"}`,
		},
	}
	rec := &recordingDeliverer{err: errors.New("webhook down")}
	sc := newTestScanner(fetcher, rec, []string{"MSFT"})

	if res := sc.RunCycle(context.Background()); res == nil {
		t.Error("delivery failure must not suppress the cycle result")
	}
}

func TestRunCycle_RecordsHistory(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Payloads: map[string]string{
			"MSFT": `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"250000"}`,
		},
	}
	hist := history.NewRing(4)
	sc := New(fetcher, &recordingDeliverer{}, []string{"MSFT"}, time.Minute, quote.ParserScan, hist)

	sc.RunCycle(context.Background())
	sc.RunCycle(context.Background())
	if hist.Len() != 2 {
		t.Errorf("expected 2 recorded cycles, got %d", hist.Len())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	fetcher := &collector.MockFetcher{Payloads: map[string]string{}}
	sc := New(fetcher, &recordingDeliverer{}, []string{"AAPL"}, time.Hour, quote.ParserScan, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sc.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
