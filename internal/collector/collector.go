package collector

import (
	"context"
	"errors"
)

// ErrNoPayload is returned by MockFetcher for symbols it has no entry for.
var ErrNoPayload = errors.New("no payload for symbol")

// MockFetcher returns controllable fixed payloads for development and
// testing.
type MockFetcher struct {
	Payloads map[string]string
	Errs     map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (string, error) {
	if err, ok := m.Errs[symbol]; ok {
		return "", err
	}
	if p, ok := m.Payloads[symbol]; ok {
		return p, nil
	}
	return "", ErrNoPayload
}
