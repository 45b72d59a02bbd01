package nist

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	DefaultURL       = "https://airc.nist.gov/docs/playbook.json"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "helm-nist-mapper/1.0"

	maxContentSize = 64 << 20
)

var ErrFetch = errors.New("playbook fetch failed")

type FetchResult struct {
	Body       []byte
	StatusCode int
	// Insecure is set when the body came from the retry with certificate
	// validation disabled.
	Insecure bool
}

// Fetcher downloads the playbook. A failed strict fetch is retried exactly
// once with certificate validation disabled.
type Fetcher struct {
	client         *http.Client
	insecureClient *http.Client
	userAgent      string
	maxContentSize int64
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:         &http.Client{Transport: newTransport(timeout, false), Timeout: timeout},
		insecureClient: &http.Client{Transport: newTransport(timeout, true), Timeout: timeout},
		userAgent:      userAgent,
		maxContentSize: maxContentSize,
	}
}

func newTransport(timeout time.Duration, insecure bool) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	t := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          2,
		IdleConnTimeout:       90 * time.Second,
	}
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // corporate TLS-intercepting proxies
	}
	return t
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	res, err := f.get(ctx, f.client, url)
	if err == nil {
		return res, nil
	}
	res, retryErr := f.get(ctx, f.insecureClient, url)
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %s: %v; retry without certificate validation: %w", ErrFetch, url, err, retryErr)
	}
	res.Insecure = true
	return res, nil
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, url string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxContentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxContentSize {
		return nil, fmt.Errorf("content too large (exceeds %d bytes)", f.maxContentSize)
	}
	return &FetchResult{Body: body, StatusCode: resp.StatusCode}, nil
}
