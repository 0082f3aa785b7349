package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"modelbridge/pkg/prompt"
	"modelbridge/pkg/providers"
)

// WebSearchTool searches the web through a dedicated endpoint or a grounded generation.
type WebSearchTool struct {
	baseTool
}

// NewWebSearchTool creates the web_search tool for a route.
func NewWebSearchTool(base baseTool) *WebSearchTool {
	base.schema = objectSchema(map[string]*jsonschema.Schema{
		"search_query": stringParam("The search query. Be specific and detailed."),
		"count": rangeParam(
			"Number of results to return (1-50). Default: 10. Use 50 for deep research, 5 for quick checks.",
			prompt.DefaultCount, prompt.MinCount, prompt.MaxCount),
		"search_recency_filter": enumParam(
			"Time range filter. Options: oneDay (breaking news), oneWeek (recent), oneMonth (trends), oneYear (annual), noLimit (all time). Default: noLimit",
			prompt.RecencyFilters, prompt.RecencyNoLimit),
		"search_domain_filter": stringParam("Whitelist specific domains (e.g., 'techcrunch.com,venturebeat.com'). Optional."),
	}, "search_query")
	return &WebSearchTool{baseTool: base}
}

// Execute implements Tool.
func (t *WebSearchTool) Execute(ctx context.Context, raw map[string]any) (string, error) {
	args, err := DecodeArgs[SearchArgs](raw)
	if err != nil {
		return "", err
	}
	if err := args.Validate(); err != nil {
		return "", err
	}

	req := t.newRequest()
	count := args.ResolvedCount()

	if t.route.Family == providers.FamilyEndpoint {
		req.Search = &providers.SearchParams{
			Engine:        t.route.SearchEngine,
			Query:         args.SearchQuery,
			Count:         count,
			RecencyFilter: args.SearchRecencyFilter,
			DomainFilter:  args.SearchDomainFilter,
		}
		res, err := t.call(ctx, req)
		if err != nil {
			return "", err
		}
		return FormatEndpointSearch(args.SearchQuery, res.Sources), nil
	}

	req.Messages = []providers.Message{userMessage(
		prompt.Search(args.SearchQuery, count, args.SearchRecencyFilter, args.SearchDomainFilter),
	)}
	res, err := t.call(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Text == "" && len(res.Sources) == 0 {
		return "", &providers.EmptyResponseError{Provider: t.provider, Detail: "for web search"}
	}
	return FormatGroundedSearch(args.SearchQuery, res), nil
}
