package converter

import (
	"fmt"

	"github.com/tidwall/gjson"

	"modelbridge/pkg/providers"
)

// Chat text strategies, in order.
const (
	StrategyChatContent   = "choices.message.content"
	StrategyChatReasoning = "choices.message.reasoning_content"
)

var chatTextStrategies = []Strategy{
	{Name: StrategyChatContent, Path: "choices.0.message.content"},
	// Some models put the answer here when thinking output is enabled. It may also be
	// an unfinished chain of thought, so callers are told through Strategy.
	{Name: StrategyChatReasoning, Path: "choices.0.message.reasoning_content"},
}

// ChatConverter handles the OpenAI-compatible chat-completions shape.
type ChatConverter struct{}

// NewChatConverter creates a new chat-completions converter.
func NewChatConverter() *ChatConverter {
	return &ChatConverter{}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Thinking    *chatThinking `json:"thinking,omitempty"`
}

type chatThinking struct {
	Type string `json:"type"`
}

// chatMessage content is either a string or a list of chatPart.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

// ToProviderRequest converts a ProviderRequest to the chat-completions body
// addressed to model.
func (c *ChatConverter) ToProviderRequest(req *providers.ProviderRequest, model string) (any, error) {
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Grounding) > 0 {
		return nil, fmt.Errorf("grounding tools are not supported by chat completions")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	out := &chatRequest{
		Model:       model,
		Messages:    make([]chatMessage, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxOutputTokens,
	}
	if req.DisableThinking {
		out.Thinking = &chatThinking{Type: "disabled"}
	}

	for _, msg := range req.Messages {
		cm := chatMessage{Role: string(msg.Role)}
		if len(msg.Parts) == 0 {
			cm.Content = msg.Content
			out.Messages = append(out.Messages, cm)
			continue
		}

		parts := make([]chatPart, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			switch p.Type {
			case providers.PartText:
				parts = append(parts, chatPart{Type: providers.PartText, Text: p.Text})
			case providers.PartImageURL:
				parts = append(parts, chatPart{
					Type:     providers.PartImageURL,
					ImageURL: &chatImageURL{URL: p.ImageURL},
				})
			default:
				return nil, fmt.Errorf("unsupported content part type %q", p.Type)
			}
		}
		cm.Content = parts
		out.Messages = append(out.Messages, cm)
	}

	return out, nil
}

// FromProviderResponse extracts the answer text from a chat-completions reply.
func (c *ChatConverter) FromProviderResponse(body []byte, provider string) (*providers.NormalizedResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, &providers.EmptyResponseError{Provider: provider, Detail: "(invalid JSON)"}
	}

	text, strategy, ok := FirstNonEmpty(body, chatTextStrategies)
	if !ok {
		return nil, &providers.EmptyResponseError{
			Provider: provider,
			Detail:   fmt.Sprintf("(full data: %s)", string(body)),
		}
	}

	return &providers.NormalizedResult{Text: text, Strategy: strategy}, nil
}
