package notifier

import (
	"fmt"
	"strings"

	"topflow/internal/model"
)

// Outbound payload bound. The rendered message is truncated while
// escaping so the escaped text never exceeds maxPayloadLen minus the tail
// margin; content beyond the bound is dropped, never an error.
const (
	maxPayloadLen     = 1000
	payloadTailMargin = 5
)

// FormatSymbolLine renders the streaming per-symbol console line emitted
// as each symbol is processed.
func FormatSymbolLine(q *model.SymbolQuote) string {
	return fmt.Sprintf("%s | Price: %.2f | Volume: %.0f | RVol %.4f | Change: %.4f%% | DirectionalFlow: %.4f",
		q.Symbol, q.Price, q.Volume, q.RelativeVolume, q.PercentChangeToday, q.FlowScore)
}

// FormatReport renders the end-of-cycle console block for the winning
// symbol.
func FormatReport(res *model.CycleResult) string {
	var b strings.Builder
	q := &res.Top
	b.WriteString(fmt.Sprintf("===== %s =====\n", res.Direction))
	b.WriteString(fmt.Sprintf("Ticker: %s\n", q.Symbol))
	b.WriteString(fmt.Sprintf("Price: %.2f\n", q.Price))
	b.WriteString(fmt.Sprintf("Change: %.4f%%\n", q.PercentChangeToday))
	b.WriteString(fmt.Sprintf("Volume: %.0f\n", q.Volume))
	b.WriteString(fmt.Sprintf("Relative Volume: %.4f\n", q.RelativeVolume))
	b.WriteString(fmt.Sprintf("Directional Flow: %.4f\n\n", q.FlowScore))
	return b.String()
}

// FormatAlert renders the compact multi-line message for outbound
// delivery, before sanitization.
func FormatAlert(res *model.CycleResult) string {
	q := &res.Top
	return fmt.Sprintf(
		"%s\nTicker: %s\nPrice: %.2f\nChange: %.4f%%\nVolume: %.0f\nRVol: %.4f\nDirectional Flow: %.4f",
		res.Direction, q.Symbol, q.Price, q.PercentChangeToday, q.Volume, q.RelativeVolume, q.FlowScore)
}

// FormatDigest renders a summary of recent cycle results for the
// scheduled digest message.
func FormatDigest(results []model.CycleResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("===== DAILY FLOW DIGEST =====\nCycles with a result: %d\n", len(results)))
	for i := range results {
		r := &results[i]
		b.WriteString(fmt.Sprintf("%s | %s %s | Flow: %+.4f | Price: %.2f\n",
			r.ScannedAt.Format("15:04"), r.Direction, r.Top.Symbol, r.Top.FlowScore, r.Top.Price))
	}
	return b.String()
}

// SanitizePayload converts a rendered message into the transport-safe
// single-line payload. Every newline becomes the two-character `\n`
// sequence; quote and backslash are escaped the same way since they are
// also structural in the outbound format. Output is silently truncated at
// the bound.
func SanitizePayload(msg string) string {
	limit := maxPayloadLen - payloadTailMargin
	var b strings.Builder
	b.Grow(len(msg))
	for i := 0; i < len(msg); i++ {
		if b.Len() >= limit {
			break
		}
		switch msg[i] {
		case '\n':
			b.WriteString(`\n`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(msg[i])
		}
	}
	return b.String()
}
