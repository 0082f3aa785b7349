package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"modelbridge/pkg/prompt"
	"modelbridge/pkg/providers"
)

// AskTool forwards a free-form prompt to a chat model and returns the raw answer.
type AskTool struct {
	baseTool
}

// NewAskTool creates the ask or ask-pro tool for a route.
func NewAskTool(base baseTool) *AskTool {
	base.schema = askSchema(base.provider, base.kind, base.route)
	return &AskTool{baseTool: base}
}

func askSchema(provider string, kind providers.ToolKind, route providers.Route) *jsonschema.Schema {
	task := fmt.Sprintf("The task/question to send to %s. Be specific and detailed.", provider)
	system := fmt.Sprintf("Optional system prompt to guide %s's behavior (e.g., 'You are an expert Python developer')", provider)
	if kind == providers.KindAskPro {
		task = fmt.Sprintf("The complex task/question to send to %s Pro", provider)
		system = fmt.Sprintf("Optional system prompt to guide %s Pro's behavior. Defaults to a coding-focused prompt.", provider)
	}

	return objectSchema(map[string]*jsonschema.Schema{
		"prompt":        stringParam(task),
		"system_prompt": stringParam(system),
		"temperature": numberParam(
			fmt.Sprintf("Temperature for response randomness (0.0-1.0). Default: %g", route.Temperature),
			route.Temperature),
		"max_tokens": numberParam(
			fmt.Sprintf("Maximum tokens in response. Default: %d", route.MaxOutputTokens),
			float64(route.MaxOutputTokens)),
	}, "prompt")
}

// Execute implements Tool.
func (t *AskTool) Execute(ctx context.Context, raw map[string]any) (string, error) {
	args, err := DecodeArgs[AskArgs](raw)
	if err != nil {
		return "", err
	}
	if err := args.Validate(); err != nil {
		return "", err
	}

	req := t.newRequest()

	system := args.SystemPrompt
	if system == "" && t.route.DefaultSystemPrompt {
		system = prompt.DefaultProSystemPrompt
	}
	if system != "" {
		req.Messages = append(req.Messages, providers.Message{Role: providers.RoleSystem, Content: system})
	}
	req.Messages = append(req.Messages, userMessage(args.Prompt))

	if args.Temperature != nil {
		req.Temperature = *args.Temperature
	}
	if args.MaxTokens != nil {
		req.MaxOutputTokens = int(*args.MaxTokens)
	}

	res, err := t.call(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Text == "" {
		return "", &providers.EmptyResponseError{Provider: t.provider}
	}
	return res.Text, nil
}
