package converter

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"modelbridge/pkg/providers"
)

// Generate-content text strategies.
const (
	StrategyGeminiFirstPart = "candidates.content.parts.0.text"
	StrategyGeminiAllParts  = "candidates.content.parts.#.text"
	StrategyNone            = "none"
)

// Grounding chunk lists, camelCase first.
var groundingChunkPaths = []string{
	"candidates.0.groundingMetadata.groundingChunks",
	"candidates.0.grounding_metadata.grounding_chunks",
}

var (
	chunkTitlePaths = []string{"web.title", "title"}
	chunkURLPaths   = []string{"web.uri", "web.url", "uri", "url"}
)

// Placeholders for grounding chunks missing a field.
const (
	UntitledSource = "Untitled"
	MissingURL     = "N/A"
)

// GeminiConverter handles the native generateContent shape.
type GeminiConverter struct{}

// NewGeminiConverter creates a new generate-content converter.
func NewGeminiConverter() *GeminiConverter {
	return &GeminiConverter{}
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig"`
	Tools            []map[string]struct{}   `json:"tools,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// ToProviderRequest converts a ProviderRequest to the generateContent body.
// System messages are folded into the user text; image parts are rejected.
func (c *GeminiConverter) ToProviderRequest(req *providers.ProviderRequest) (any, error) {
	if len(req.Grounding) > 1 {
		return nil, fmt.Errorf("at most one grounding tool per request, got %d", len(req.Grounding))
	}

	var texts []string
	for _, msg := range req.Messages {
		if len(msg.Parts) == 0 {
			if msg.Content != "" {
				texts = append(texts, msg.Content)
			}
			continue
		}
		for _, p := range msg.Parts {
			if p.Type != providers.PartText {
				return nil, fmt.Errorf("content part type %q is not supported by generateContent", p.Type)
			}
			texts = append(texts, p.Text)
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("at least one text message is required")
	}

	parts := make([]geminiPart, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, geminiPart{Text: t})
	}

	out := &geminiRequest{
		Contents: []geminiContent{{Role: string(providers.RoleUser), Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxOutputTokens,
		},
	}
	for _, g := range req.Grounding {
		switch g {
		case providers.GroundingGoogleSearch, providers.GroundingURLContext:
			out.Tools = append(out.Tools, map[string]struct{}{string(g): {}})
		default:
			return nil, fmt.Errorf("unknown grounding tool %q", g)
		}
	}

	return out, nil
}

// FromProviderResponse extracts text and grounding sources. Empty text is not an
// error here; the caller decides based on the tool.
func (c *GeminiConverter) FromProviderResponse(body []byte, provider string) (*providers.NormalizedResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, &providers.EmptyResponseError{Provider: provider, Detail: "(invalid JSON)"}
	}

	result := &providers.NormalizedResult{Strategy: StrategyNone}

	if first := gjson.GetBytes(body, "candidates.0.content.parts.0.text"); first.Type == gjson.String && first.Str != "" {
		result.Text = first.Str
		result.Strategy = StrategyGeminiFirstPart
	} else {
		var sb strings.Builder
		for _, part := range gjson.GetBytes(body, "candidates.0.content.parts").Array() {
			if t := part.Get("text"); t.Type == gjson.String {
				sb.WriteString(t.Str)
			}
		}
		if sb.Len() > 0 {
			result.Text = sb.String()
			result.Strategy = StrategyGeminiAllParts
		}
	}

	for _, chunk := range firstArray(body, groundingChunkPaths) {
		result.Sources = append(result.Sources, providers.Source{
			Title: firstString(chunk, chunkTitlePaths, UntitledSource),
			URL:   firstString(chunk, chunkURLPaths, MissingURL),
		})
	}

	return result, nil
}
