package converter

import (
	"fmt"

	"github.com/tidwall/gjson"

	"modelbridge/pkg/providers"
)

// Endpoint strategies.
const (
	StrategySearchResults = "search_result"
	StrategyReaderResult  = "reader_result"
)

// Reader defaults applied when the caller omits them.
const (
	DefaultReturnFormat  = "markdown"
	DefaultReaderTimeout = 20
)

// EndpointConverter handles the dedicated /web_search and /reader endpoints.
type EndpointConverter struct{}

// NewEndpointConverter creates a new endpoint converter.
func NewEndpointConverter() *EndpointConverter {
	return &EndpointConverter{}
}

type searchRequest struct {
	SearchEngine        string `json:"search_engine"`
	SearchQuery         string `json:"search_query"`
	Count               int    `json:"count,omitempty"`
	SearchRecencyFilter string `json:"search_recency_filter,omitempty"`
	SearchDomainFilter  string `json:"search_domain_filter,omitempty"`
}

type readerRequest struct {
	URL               string `json:"url"`
	ReturnFormat      string `json:"return_format"`
	Timeout           int    `json:"timeout"`
	WithImagesSummary *bool  `json:"with_images_summary,omitempty"`
	WithLinksSummary  *bool  `json:"with_links_summary,omitempty"`
}

// ToProviderRequest converts a ProviderRequest to the body for path.
func (c *EndpointConverter) ToProviderRequest(req *providers.ProviderRequest, path string) (any, error) {
	switch path {
	case providers.PathWebSearch:
		s := req.Search
		if s == nil {
			return nil, fmt.Errorf("search parameters are required for %s", path)
		}
		if s.Query == "" {
			return nil, fmt.Errorf("search query is required")
		}
		return &searchRequest{
			SearchEngine:        s.Engine,
			SearchQuery:         s.Query,
			Count:               s.Count,
			SearchRecencyFilter: s.RecencyFilter,
			SearchDomainFilter:  s.DomainFilter,
		}, nil

	case providers.PathReader:
		r := req.Reader
		if r == nil {
			return nil, fmt.Errorf("reader parameters are required for %s", path)
		}
		if r.URL == "" {
			return nil, fmt.Errorf("url is required")
		}
		out := &readerRequest{
			URL:               r.URL,
			ReturnFormat:      r.ReturnFormat,
			Timeout:           r.Timeout,
			WithImagesSummary: r.WithImagesSummary,
			WithLinksSummary:  r.WithLinksSummary,
		}
		if out.ReturnFormat == "" {
			out.ReturnFormat = DefaultReturnFormat
		}
		if out.Timeout <= 0 {
			out.Timeout = DefaultReaderTimeout
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported endpoint path %q", path)
	}
}

// FromProviderResponse extracts the result for path.
func (c *EndpointConverter) FromProviderResponse(body []byte, path, provider string) (*providers.NormalizedResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, &providers.EmptyResponseError{Provider: provider, Detail: "(invalid JSON)"}
	}

	switch path {
	case providers.PathWebSearch:
		result := &providers.NormalizedResult{Strategy: StrategySearchResults}
		for _, item := range gjson.GetBytes(body, "search_result").Array() {
			result.Sources = append(result.Sources, providers.Source{
				Title:     item.Get("title").String(),
				URL:       firstString(item, []string{"link", "url"}, ""),
				Summary:   item.Get("content").String(),
				Media:     item.Get("media").String(),
				Published: item.Get("publish_date").String(),
			})
		}
		return result, nil

	case providers.PathReader:
		rr := gjson.GetBytes(body, "reader_result")
		if !rr.IsObject() {
			return nil, &providers.EmptyResponseError{
				Provider: provider,
				Detail:   fmt.Sprintf("(missing reader_result: %s)", string(body)),
			}
		}
		return &providers.NormalizedResult{
			Text:        rr.Get("content").String(),
			Title:       rr.Get("title").String(),
			Description: rr.Get("description").String(),
			Strategy:    StrategyReaderResult,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported endpoint path %q", path)
	}
}
