package collector

import "context"

// Fetcher retrieves one symbol's raw quote payload from the upstream
// source. Any failure, including an empty result, means "skip this symbol
// for this cycle".
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (string, error)
	Name() string
}
