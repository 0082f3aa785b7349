package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"modelbridge/pkg/prompt"
	"modelbridge/pkg/providers"
	"modelbridge/pkg/providers/converter"
)

// WebReaderTool fetches one URL and returns its content.
type WebReaderTool struct {
	baseTool
}

// NewWebReaderTool creates the web_reader tool for a route.
func NewWebReaderTool(base baseTool) *WebReaderTool {
	base.schema = objectSchema(map[string]*jsonschema.Schema{
		"url": stringParam("The URL to fetch and parse. Must be a valid http/https URL."),
		"return_format": enumParam(
			"Content format. Options: markdown (default, best for LLM), text (plain text). Default: markdown",
			prompt.ReturnFormats, prompt.FormatMarkdown),
		"with_images_summary": boolParam("Include summary of images found on page. Default: false", false),
		"with_links_summary":  boolParam("Include summary of links found on page. Default: false", false),
		"timeout": numberParam(
			"Request timeout in seconds. Default: 20",
			converter.DefaultReaderTimeout),
	}, "url")
	return &WebReaderTool{baseTool: base}
}

// Execute implements Tool.
func (t *WebReaderTool) Execute(ctx context.Context, raw map[string]any) (string, error) {
	args, err := DecodeArgs[ReaderArgs](raw)
	if err != nil {
		return "", err
	}
	if err := args.Validate(); err != nil {
		return "", err
	}

	req := t.newRequest()

	if t.route.Family == providers.FamilyEndpoint {
		req.Reader = &providers.ReaderParams{
			URL:               args.URL,
			ReturnFormat:      args.Format(),
			WithImagesSummary: args.WithImagesSummary,
			WithLinksSummary:  args.WithLinksSummary,
		}
		if args.Timeout != nil {
			req.Reader.Timeout = int(*args.Timeout)
		}
		res, err := t.call(ctx, req)
		if err != nil {
			return "", err
		}
		return FormatReader(args.URL, res), nil
	}

	req.Messages = []providers.Message{userMessage(prompt.Reader(
		args.URL, args.Format(),
		args.WithImagesSummary != nil && *args.WithImagesSummary,
		args.WithLinksSummary != nil && *args.WithLinksSummary,
	))}
	res, err := t.call(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Text == "" {
		return "", &providers.EmptyResponseError{Provider: t.provider, Detail: "for URL reading"}
	}
	return FormatReader(args.URL, &providers.NormalizedResult{Text: res.Text}), nil
}
