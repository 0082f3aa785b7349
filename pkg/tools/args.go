package tools

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"modelbridge/pkg/prompt"
)

// AskArgs are the arguments of the ask and ask-pro tools.
type AskArgs struct {
	Prompt       string   `json:"prompt"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *float64 `json:"max_tokens,omitempty"`
}

// Validate checks required fields and ranges.
func (a *AskArgs) Validate() error {
	if strings.TrimSpace(a.Prompt) == "" {
		return required("prompt")
	}
	if a.Temperature != nil && (*a.Temperature < 0 || *a.Temperature > 2) {
		return &InvalidArgumentError{Field: "temperature", Message: "must be between 0 and 2"}
	}
	if a.MaxTokens != nil {
		if err := positiveInt("max_tokens", *a.MaxTokens); err != nil {
			return err
		}
	}
	return nil
}

// SearchArgs are the arguments of web_search.
type SearchArgs struct {
	SearchQuery         string   `json:"search_query"`
	Count               *float64 `json:"count,omitempty"`
	SearchRecencyFilter string   `json:"search_recency_filter,omitempty"`
	SearchDomainFilter  string   `json:"search_domain_filter,omitempty"`
}

// Validate checks required fields and enums.
func (a *SearchArgs) Validate() error {
	if strings.TrimSpace(a.SearchQuery) == "" {
		return required("search_query")
	}
	if a.Count != nil && *a.Count != math.Trunc(*a.Count) {
		return &InvalidArgumentError{Field: "count", Message: "must be an integer"}
	}
	if a.SearchRecencyFilter != "" && !prompt.ValidRecency(a.SearchRecencyFilter) {
		return enumError("search_recency_filter", a.SearchRecencyFilter, prompt.RecencyFilters)
	}
	return nil
}

// ResolvedCount applies the default and the [1, 50] clamp.
func (a *SearchArgs) ResolvedCount() int {
	if a.Count == nil {
		return prompt.DefaultCount
	}
	c := *a.Count
	// Out of int range values still clamp.
	if c > prompt.MaxCount {
		return prompt.MaxCount
	}
	if c < 0 {
		return prompt.MinCount
	}
	return prompt.ClampCount(int(c))
}

// ReaderArgs are the arguments of web_reader.
type ReaderArgs struct {
	URL               string   `json:"url"`
	ReturnFormat      string   `json:"return_format,omitempty"`
	WithImagesSummary *bool    `json:"with_images_summary,omitempty"`
	WithLinksSummary  *bool    `json:"with_links_summary,omitempty"`
	Timeout           *float64 `json:"timeout,omitempty"`
}

// Validate checks required fields and enums.
func (a *ReaderArgs) Validate() error {
	if err := httpURL("url", a.URL); err != nil {
		return err
	}
	if a.ReturnFormat != "" && !prompt.ValidReturnFormat(a.ReturnFormat) {
		return enumError("return_format", a.ReturnFormat, prompt.ReturnFormats)
	}
	if a.Timeout != nil {
		if err := positiveInt("timeout", *a.Timeout); err != nil {
			return err
		}
	}
	return nil
}

// Format returns the requested format or the default.
func (a *ReaderArgs) Format() string {
	if a.ReturnFormat == "" {
		return prompt.FormatMarkdown
	}
	return a.ReturnFormat
}

// ParseArgs are the arguments of parse_document.
type ParseArgs struct {
	FileURL      string `json:"file_url"`
	ReturnFormat string `json:"return_format,omitempty"`
	ParseMode    string `json:"parse_mode,omitempty"`
}

// Validate checks required fields and enums.
func (a *ParseArgs) Validate() error {
	if err := httpURL("file_url", a.FileURL); err != nil {
		return err
	}
	if a.ReturnFormat != "" && !prompt.ValidReturnFormat(a.ReturnFormat) {
		return enumError("return_format", a.ReturnFormat, prompt.ReturnFormats)
	}
	if a.ParseMode != "" && !prompt.ValidParseMode(a.ParseMode) {
		return enumError("parse_mode", a.ParseMode, prompt.ParseModes)
	}
	return nil
}

// Format returns the requested format or the default.
func (a *ParseArgs) Format() string {
	if a.ReturnFormat == "" {
		return prompt.FormatMarkdown
	}
	return a.ReturnFormat
}

func httpURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return required(field)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &InvalidArgumentError{Field: field, Message: "must be a valid http/https URL"}
	}
	return nil
}

func positiveInt(field string, v float64) error {
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return &InvalidArgumentError{Field: field, Message: "must be a positive integer"}
	}
	return nil
}

func enumError(field, got string, allowed []string) error {
	return &InvalidArgumentError{
		Field:   field,
		Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), got),
	}
}
