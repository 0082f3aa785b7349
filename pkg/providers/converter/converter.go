// Package converter translates between ProviderRequest/NormalizedResult and the
// wire payloads of each provider family. Extraction from replies is expressed as
// ordered lists of gjson paths tried in sequence.
package converter

import (
	"github.com/tidwall/gjson"
)

// Strategy is one extraction path tried against a reply body.
type Strategy struct {
	// Name is recorded in NormalizedResult.Strategy when the path matches.
	Name string
	Path string
}

// FirstNonEmpty returns the first strategy whose path resolves to a non-empty string.
func FirstNonEmpty(body []byte, strategies []Strategy) (string, string, bool) {
	for _, s := range strategies {
		v := gjson.GetBytes(body, s.Path)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str, s.Name, true
		}
	}
	return "", "", false
}

// firstString is FirstNonEmpty over a parsed value, returning fallback when nothing matches.
func firstString(r gjson.Result, paths []string, fallback string) string {
	for _, p := range paths {
		v := r.Get(p)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return fallback
}

// firstArray returns the first path that resolves to a JSON array.
func firstArray(body []byte, paths []string) []gjson.Result {
	for _, p := range paths {
		v := gjson.GetBytes(body, p)
		if v.IsArray() {
			return v.Array()
		}
	}
	return nil
}
