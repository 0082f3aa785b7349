package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"modelbridge/pkg/prompt"
	"modelbridge/pkg/providers"
)

// ParseDocumentTool extracts text from an image or PDF with a multimodal chat model.
type ParseDocumentTool struct {
	baseTool
}

// NewParseDocumentTool creates the parse_document tool for a route.
func NewParseDocumentTool(base baseTool) *ParseDocumentTool {
	base.schema = objectSchema(map[string]*jsonschema.Schema{
		"file_url": stringParam("URL of the file to parse (image or PDF). Must be a publicly accessible URL."),
		"return_format": enumParam(
			"Output format. Options: markdown (default, best for LLM), text (plain text). Default: markdown",
			prompt.ReturnFormats, prompt.FormatMarkdown),
		"parse_mode": enumParam(
			"Parsing mode. Options: auto (automatic detection, default), ocr (force OCR), layout (preserve layout). Default: auto",
			prompt.ParseModes, prompt.ParseModeAuto),
	}, "file_url")
	return &ParseDocumentTool{baseTool: base}
}

// Execute implements Tool.
func (t *ParseDocumentTool) Execute(ctx context.Context, raw map[string]any) (string, error) {
	args, err := DecodeArgs[ParseArgs](raw)
	if err != nil {
		return "", err
	}
	if err := args.Validate(); err != nil {
		return "", err
	}

	format := args.Format()
	req := t.newRequest()
	req.Messages = []providers.Message{{
		Role: providers.RoleUser,
		Parts: []providers.ContentPart{
			{Type: providers.PartImageURL, ImageURL: args.FileURL},
			{Type: providers.PartText, Text: prompt.Parse(format, args.ParseMode)},
		},
	}}

	res, err := t.call(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Text == "" {
		return "", &providers.EmptyResponseError{Provider: t.provider, Detail: "for document parsing"}
	}
	return FormatParse(args.FileURL, format, res.Text, t.route.CompactHeader), nil
}
