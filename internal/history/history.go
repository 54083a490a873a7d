// Package history keeps recent cycle results in memory for the scheduled
// digest. Nothing is written to disk and the ring is lost on restart.
package history

import (
	"sync"
	"time"

	"topflow/internal/model"
)

// Ring is a bounded, concurrency-safe buffer of cycle results. The scan
// loop appends while the digest task reads.
type Ring struct {
	mu   sync.Mutex
	buf  []model.CycleResult
	next int
	full bool
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]model.CycleResult, capacity)}
}

// Add appends one result, evicting the oldest when full.
func (r *Ring) Add(res model.CycleResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = res
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Len reports how many results are currently held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// Since returns the held results scanned at or after t, oldest first.
func (r *Ring) Since(t time.Time) []model.CycleResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.CycleResult
	appendIf := func(res model.CycleResult) {
		if !res.ScannedAt.Before(t) {
			out = append(out, res)
		}
	}
	if r.full {
		for i := r.next; i < len(r.buf); i++ {
			appendIf(r.buf[i])
		}
	}
	for i := 0; i < r.next; i++ {
		appendIf(r.buf[i])
	}
	return out
}
