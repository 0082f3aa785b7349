package providers

import (
	"fmt"
	"net/http"
	"net/url"
)

// NewHTTPClientWithProxy creates an http.Client configured with the given proxy URL.
// If proxyURL is empty, the client uses the environment proxy settings.
// Neither variant sets a client timeout; cancellation comes from the request context.
func NewHTTPClientWithProxy(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{Timeout: 0}, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL %q: scheme and host are required", proxyURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(parsed)

	return &http.Client{
		Timeout:   0,
		Transport: transport,
	}, nil
}
