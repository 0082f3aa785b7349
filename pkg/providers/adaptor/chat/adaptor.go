// Package chat provides the adaptor for OpenAI-compatible chat-completions APIs.
package chat

import (
	"encoding/json"
	"fmt"
	"net/http"

	"modelbridge/pkg/providers"
	"modelbridge/pkg/providers/converter"
)

// Adaptor implements the providers.Adaptor interface for chat completions.
type Adaptor struct {
	converter *converter.ChatConverter
}

// New creates a new chat adaptor instance.
func New() *Adaptor {
	return &Adaptor{converter: converter.NewChatConverter()}
}

// Family implements providers.Adaptor.
func (a *Adaptor) Family() providers.Family {
	return providers.FamilyChat
}

// GetRequestURL returns the full URL for the API request.
func (a *Adaptor) GetRequestURL(info *providers.RelayInfo) (string, error) {
	if info.APIBase == "" {
		return "", fmt.Errorf("API base URL is required")
	}
	path := info.Path
	if path == "" {
		path = providers.PathChatCompletions
	}
	return info.APIBase + path, nil
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

// ConvertRequest converts a ProviderRequest to the chat-completions payload.
func (a *Adaptor) ConvertRequest(req *providers.ProviderRequest, info *providers.RelayInfo) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = info.Model
	}

	providerReq, err := a.converter.ToProviderRequest(req, model)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(providerReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return data, nil
}

// DoResponse extracts the answer text.
func (a *Adaptor) DoResponse(body []byte, info *providers.RelayInfo) (*providers.NormalizedResult, error) {
	return a.converter.FromProviderResponse(body, info.Provider)
}

func init() {
	providers.Register(providers.FamilyChat, func() providers.Adaptor {
		return New()
	})
}
