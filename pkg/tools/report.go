package tools

import (
	"fmt"
	"strings"

	"modelbridge/pkg/providers"
)

// FormatGroundedSearch renders a search answered by a grounded generation.
// With sources, the list comes first, then the synthesized prose.
func FormatGroundedSearch(query string, res *providers.NormalizedResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Web Search Results for: \"%s\"\n", query)

	if len(res.Sources) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(res.Text)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Found %d grounded sources\n\n", len(res.Sources))
	for i, src := range res.Sources {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, src.Title)
		fmt.Fprintf(&sb, "URL: %s\n\n", src.URL)
	}
	sb.WriteString("---\n\nSynthesized Results:\n\n")
	sb.WriteString(res.Text)
	return sb.String()
}

// FormatEndpointSearch renders results returned by a dedicated search endpoint.
func FormatEndpointSearch(query string, results []providers.Source) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Web Search Results for: \"%s\"\n", query)
	fmt.Fprintf(&sb, "Found %d results\n\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, r.Title)
		fmt.Fprintf(&sb, "URL: %s\n", r.URL)
		if r.Summary != "" {
			fmt.Fprintf(&sb, "Summary: %s\n", r.Summary)
		}
		if r.Media != "" {
			fmt.Fprintf(&sb, "Source: %s\n", r.Media)
		}
		if r.Published != "" {
			fmt.Fprintf(&sb, "Published: %s\n", r.Published)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatReader renders page content. Title and description are optional.
func FormatReader(url string, res *providers.NormalizedResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Web Page Content from: %s\n\n", url)

	if res.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", res.Title)
	}
	if res.Description != "" {
		fmt.Fprintf(&sb, "**Description:** %s\n\n", res.Description)
	}

	sb.WriteString("---\n\n")
	if res.Text == "" {
		sb.WriteString("No content available")
	} else {
		sb.WriteString(res.Text)
	}
	return sb.String()
}

// FormatParse renders extracted document text. A compact header keeps the
// source and format lines adjacent.
func FormatParse(fileURL, format, content string, compact bool) string {
	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	return fmt.Sprintf("Document Parsing Results from: %s%sFormat: %s\n---\n\n%s", fileURL, gap, format, content)
}
