package quote

import (
	"errors"
	"math"
	"testing"
)

const validPayload = `{"symbol":"MSFT","previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"250000"}`

func TestDerive_ValidQuote(t *testing.T) {
	for _, parser := range []Parser{ParserScan, ParserJSON} {
		q, err := Derive(validPayload, "MSFT", parser)
		if err != nil {
			t.Fatalf("parser %s: unexpected error: %v", parser, err)
		}
		if q.Symbol != "MSFT" {
			t.Errorf("parser %s: symbol = %q", parser, q.Symbol)
		}
		if q.Price != 102 {
			t.Errorf("parser %s: price = %v, want 102", parser, q.Price)
		}
		if q.RelativeVolume != 2.0 {
			t.Errorf("parser %s: relative volume = %v, want 2.0", parser, q.RelativeVolume)
		}
		if q.FlowScore != 3.0 {
			t.Errorf("parser %s: flow score = %v, want 3.0", parser, q.FlowScore)
		}
	}
}

func TestDerive_UpstreamErrorMarker(t *testing.T) {
	payload := `{"code":404,"message":"symbol not found","status":"error"}`
	_, err := Derive(payload, "FAKE", ParserScan)
	if !errors.Is(err, ErrUpstreamError) {
		t.Errorf("expected ErrUpstreamError, got %v", err)
	}
}

func TestDerive_AverageVolumePrecondition(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"zero", `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"0"}`},
		{"negative", `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5","average_volume":"-10"}`},
		{"absent", `{"previous_close":"100","change":"2","volume":"500000","percent_change":"1.5"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.payload, "MSFT", ParserScan)
			if !errors.Is(err, ErrNoVolumeHistory) {
				t.Errorf("expected ErrNoVolumeHistory, got %v", err)
			}
		})
	}
}

func TestDerive_MissingFieldsDefaultToZero(t *testing.T) {
	// Only average_volume present: every other field reads as 0, and the
	// quote is still considered valid.
	payload := `{"average_volume":"250000"}`
	q, err := Derive(payload, "AAPL", ParserScan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 0 || q.RelativeVolume != 0 || q.FlowScore != 0 {
		t.Errorf("expected zero metrics, got price=%v rvol=%v flow=%v", q.Price, q.RelativeVolume, q.FlowScore)
	}
}

func TestDerive_NegativeFlow(t *testing.T) {
	payload := `{"previous_close":"50","change":"-1","volume":"900000","percent_change":"-2","average_volume":"300000"}`
	q, err := Derive(payload, "TSLA", ParserScan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 49 {
		t.Errorf("price = %v, want 49", q.Price)
	}
	if math.Abs(q.FlowScore - (-6.0)) > 1e-12 {
		t.Errorf("flow score = %v, want -6.0", q.FlowScore)
	}
}
