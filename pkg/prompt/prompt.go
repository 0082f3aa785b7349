// Package prompt builds the natural-language instructions sent to models.
// Every builder is pure: identical arguments yield identical strings.
package prompt

import (
	"fmt"
	"strings"
)

// Search result count bounds.
const (
	DefaultCount = 10
	MinCount     = 1
	MaxCount     = 50
)

// Recency filter values.
const (
	RecencyOneDay   = "oneDay"
	RecencyOneWeek  = "oneWeek"
	RecencyOneMonth = "oneMonth"
	RecencyOneYear  = "oneYear"
	RecencyNoLimit  = "noLimit"
)

// Return formats.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Parse modes.
const (
	ParseModeAuto   = "auto"
	ParseModeOCR    = "ocr"
	ParseModeLayout = "layout"
)

// Enum values in schema order.
var (
	RecencyFilters = []string{RecencyOneDay, RecencyOneWeek, RecencyOneMonth, RecencyOneYear, RecencyNoLimit}
	ReturnFormats  = []string{FormatMarkdown, FormatText}
	ParseModes     = []string{ParseModeAuto, ParseModeOCR, ParseModeLayout}
)

// DefaultProSystemPrompt is used by the ask-pro tool when the caller sends none.
const DefaultProSystemPrompt = "You are an expert software engineer. Provide clean, efficient, well-documented code with best practices. Focus on correctness, readability, and maintainability."

var recencyPhrases = map[string]string{
	RecencyOneDay:   "the last 24 hours",
	RecencyOneWeek:  "the last week",
	RecencyOneMonth: "the last month",
	RecencyOneYear:  "the last year",
}

// ClampCount applies the default for zero and clamps to [MinCount, MaxCount].
func ClampCount(count int) int {
	switch {
	case count == 0:
		return DefaultCount
	case count < MinCount:
		return MinCount
	case count > MaxCount:
		return MaxCount
	default:
		return count
	}
}

// RecencyPhrase returns the phrase for a filter, or "" for noLimit and unknown values.
func RecencyPhrase(filter string) string {
	return recencyPhrases[filter]
}

// Search builds the grounded search instruction.
func Search(query string, count int, recency, domains string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search for: %s. Return the top %d results as a structured list. Each result should include: a title, the URL, and a brief summary of the content.",
		query, ClampCount(count))

	if phrase := RecencyPhrase(recency); phrase != "" {
		fmt.Fprintf(&sb, " Focus on results from %s.", phrase)
	}
	if domains != "" {
		fmt.Fprintf(&sb, " Only include results from these domains: %s.", domains)
	}
	return sb.String()
}

// Reader builds the grounded URL reading instruction.
func Reader(url, format string, includeImages, includeLinks bool) string {
	if format == "" {
		format = FormatMarkdown
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Read and extract the full content from this URL: %s. Return the content as %s. Preserve the document structure including headings, lists, and code blocks.",
		url, format)

	if includeImages {
		sb.WriteString(" Include a summary of images found on the page.")
	}
	if includeLinks {
		sb.WriteString(" Include a summary of links found on the page.")
	}
	return sb.String()
}

// Parse builds the document extraction instruction.
func Parse(format, mode string) string {
	if format == "" {
		format = FormatMarkdown
	}

	var instruction string
	switch mode {
	case ParseModeOCR:
		instruction = "Use OCR to extract all text."
	case ParseModeLayout:
		instruction = "Preserve the original layout and formatting as closely as possible."
	default:
		instruction = "Extract all text from this document."
	}

	return fmt.Sprintf("%s Format the output as %s. Preserve layout structure, tables, and formatting. Be thorough and accurate.",
		instruction, format)
}

// ValidRecency reports whether v is a known recency filter.
func ValidRecency(v string) bool { return contains(RecencyFilters, v) }

// ValidReturnFormat reports whether v is a known return format.
func ValidReturnFormat(v string) bool { return contains(ReturnFormats, v) }

// ValidParseMode reports whether v is a known parse mode.
func ValidParseMode(v string) bool { return contains(ParseModes, v) }

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
