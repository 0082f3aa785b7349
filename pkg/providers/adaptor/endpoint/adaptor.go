// Package endpoint provides the adaptor for dedicated capability endpoints
// such as /web_search and /reader.
package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"

	"modelbridge/pkg/providers"
	"modelbridge/pkg/providers/converter"
)

// Adaptor implements the providers.Adaptor interface for dedicated endpoints.
type Adaptor struct {
	converter *converter.EndpointConverter
}

// New creates a new endpoint adaptor instance.
func New() *Adaptor {
	return &Adaptor{converter: converter.NewEndpointConverter()}
}

// Family implements providers.Adaptor.
func (a *Adaptor) Family() providers.Family {
	return providers.FamilyEndpoint
}

// GetRequestURL returns the base URL joined with the endpoint path.
func (a *Adaptor) GetRequestURL(info *providers.RelayInfo) (string, error) {
	if info.APIBase == "" {
		return "", fmt.Errorf("API base URL is required")
	}
	if info.Path == "" {
		return "", fmt.Errorf("endpoint path is required")
	}
	return info.APIBase + info.Path, nil
}

// SetupRequestHeader applies configured extra headers, then content type and
// credential so neither can be overridden.
func (a *Adaptor) SetupRequestHeader(req *http.Request, info *providers.RelayInfo) error {
	for key, value := range info.Headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+info.APIKey)

	return nil
}

// ConvertRequest converts a ProviderRequest to the endpoint payload.
func (a *Adaptor) ConvertRequest(req *providers.ProviderRequest, info *providers.RelayInfo) ([]byte, error) {
	providerReq, err := a.converter.ToProviderRequest(req, info.Path)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(providerReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return data, nil
}

// DoResponse extracts search results or reader content.
func (a *Adaptor) DoResponse(body []byte, info *providers.RelayInfo) (*providers.NormalizedResult, error) {
	return a.converter.FromProviderResponse(body, info.Path, info.Provider)
}

func init() {
	providers.Register(providers.FamilyEndpoint, func() providers.Adaptor {
		return New()
	})
}
