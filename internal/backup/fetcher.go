package backup

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads backup documents over HTTP.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	client.SetRetryCount(2)
	return &Fetcher{client: client}
}

// Fetch returns the body of rawURL, which must be an http or https URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse(%s) > %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported backup URL scheme %q", parsed.Scheme)
	}

	res, err := f.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", rawURL, res.Status())
	}
	return res.Body(), nil
}
