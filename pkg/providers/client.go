package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// Client runs the adaptor pipeline for one descriptor.
type Client struct {
	descriptor *Descriptor
	invoker    *Invoker
	registry   *Registry
}

// NewClient creates a client bound to the global adaptor registry.
func NewClient(descriptor *Descriptor, invoker *Invoker) *Client {
	return NewClientWithRegistry(descriptor, invoker, globalRegistry)
}

// NewClientWithRegistry creates a client with an explicit registry.
func NewClientWithRegistry(descriptor *Descriptor, invoker *Invoker, registry *Registry) *Client {
	return &Client{
		descriptor: descriptor,
		invoker:    invoker,
		registry:   registry,
	}
}

// Descriptor returns the provider profile the client talks to.
func (c *Client) Descriptor() *Descriptor {
	return c.descriptor
}

// Call sends req over the route configured for kind and normalizes the reply.
func (c *Client) Call(ctx context.Context, kind ToolKind, req *ProviderRequest, requestID string) (*NormalizedResult, error) {
	route, ok := c.descriptor.Route(kind)
	if !ok {
		return nil, fmt.Errorf("no route configured for %s", kind)
	}

	adaptor, err := c.registry.GetAdaptor(route.Family)
	if err != nil {
		return nil, err
	}

	info := c.descriptor.RelayInfo(route, requestID)

	// Convert request
	reqBody, err := adaptor.ConvertRequest(req, info)
	if err != nil {
		return nil, fmt.Errorf("converting request: %w", err)
	}

	// Get request URL
	url, err := adaptor.GetRequestURL(info)
	if err != nil {
		return nil, fmt.Errorf("getting request URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	if err := adaptor.SetupRequestHeader(httpReq, info); err != nil {
		return nil, fmt.Errorf("setting up request headers: %w", err)
	}

	respBody, err := c.invoker.Do(httpReq, info.Provider)
	if err != nil {
		return nil, err
	}

	return adaptor.DoResponse(respBody, info)
}
