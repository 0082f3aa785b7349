// Package gemini provides the adaptor for the native generateContent API.
package gemini

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"modelbridge/pkg/providers"
	"modelbridge/pkg/providers/converter"
)

// Adaptor implements the providers.Adaptor interface for generateContent.
type Adaptor struct {
	converter *converter.GeminiConverter
}

// New creates a new Gemini adaptor instance.
func New() *Adaptor {
	return &Adaptor{converter: converter.NewGeminiConverter()}
}

// Family implements providers.Adaptor.
func (a *Adaptor) Family() providers.Family {
	return providers.FamilyGenerateContent
}

// GetRequestURL returns {base}/models/{model}:generateContent?key={key}.
func (a *Adaptor) GetRequestURL(info *providers.RelayInfo) (string, error) {
	if info.APIBase == "" {
		return "", fmt.Errorf("API base URL is required")
	}

	model := info.Model
	if model == "" {
		return "", fmt.Errorf("model is required for Gemini")
	}

	// Remove provider prefix if present (e.g., "google/gemini-pro" -> "gemini-pro")
	if idx := strings.Index(model, "/"); idx != -1 {
		model = model[idx+1:]
	}

	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		info.APIBase, url.PathEscape(model), url.QueryEscape(info.APIKey)), nil
}

// SetupRequestHeader applies configured extra headers, then the content type.
func (a *Adaptor) SetupRequestHeader(req *http.Request, info *providers.RelayInfo) error {
	for key, value := range info.Headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")

	return nil
}

// ConvertRequest converts a ProviderRequest to the generateContent payload.
func (a *Adaptor) ConvertRequest(req *providers.ProviderRequest, info *providers.RelayInfo) ([]byte, error) {
	providerReq, err := a.converter.ToProviderRequest(req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(providerReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return data, nil
}

// DoResponse extracts text and grounding sources.
func (a *Adaptor) DoResponse(body []byte, info *providers.RelayInfo) (*providers.NormalizedResult, error) {
	return a.converter.FromProviderResponse(body, info.Provider)
}

func init() {
	providers.Register(providers.FamilyGenerateContent, func() providers.Adaptor {
		return New()
	})
}
