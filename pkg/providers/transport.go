package providers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Invoker performs the single outbound POST of an invocation.
// It holds no per-call state and is safe for concurrent use.
type Invoker struct {
	httpClient *http.Client
}

// NewInvoker creates an invoker. An empty proxyURL means no explicit proxy.
func NewInvoker(proxyURL string) (*Invoker, error) {
	client, err := NewHTTPClientWithProxy(proxyURL)
	if err != nil {
		return nil, err
	}
	return &Invoker{httpClient: client}, nil
}

// NewInvokerWithClient wraps an existing http.Client.
func NewInvokerWithClient(client *http.Client) *Invoker {
	if client == nil {
		client = &http.Client{}
	}
	return &Invoker{httpClient: client}
}

// Do executes req and returns the raw body of a 2xx reply.
// Non-2xx replies become *UpstreamError, failures before a status *NetworkError.
func (i *Invoker) Do(req *http.Request, provider string) ([]byte, error) {
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Provider: provider, Err: redactURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Provider: provider, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

// redactURLError drops the query string from *url.Error so that
// credentials carried as query parameters never reach logs or envelopes.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: "[redacted]", Err: urlErr.Err}
	}
	if u.RawQuery != "" {
		u.RawQuery = "[redacted]"
	}
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
