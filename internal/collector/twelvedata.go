package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TwelveDataFetcher implements Fetcher against the Twelve Data quote API.
// The API key travels in the request URL; there is no other auth.
type TwelveDataFetcher struct {
	BaseURL  string
	APIKey   string
	Exchange string
	Client   *http.Client
}

// NewTwelveDataFetcher creates a fetcher with optional proxy support.
func NewTwelveDataFetcher(baseURL, apiKey, exchange, proxyURL string) *TwelveDataFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TwelveDataFetcher{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Exchange: exchange,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

// FetchQuote retrieves the raw quote payload for one symbol. The body is
// returned whole; upstream error indicators inside a 200 response are the
// metric engine's concern, not the transport's.
func (f *TwelveDataFetcher) FetchQuote(ctx context.Context, symbol string) (string, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&exchange=%s&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(f.Exchange), url.QueryEscape(f.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read quote body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch quote: status %d, body: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}
