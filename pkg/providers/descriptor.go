package providers

import (
	"fmt"
	"sort"
	"strings"
)

// Route binds one tool kind to a family, model and request defaults.
type Route struct {
	Family Family
	// APIBase overrides the descriptor base for this route when set.
	APIBase         string
	Path            string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Grounding       []GroundingTool
	DisableThinking bool
	// DefaultSystemPrompt applies the coding system prompt when the caller sends none.
	DefaultSystemPrompt bool
	SearchEngine        string
	Multimodal          bool
	// CompactHeader drops the blank line between report header lines.
	CompactHeader bool
}

// Descriptor is an immutable provider profile with its credential.
type Descriptor struct {
	Name           string
	DisplayName    string
	APIBase        string
	ChatAPIBase    string
	APIKey         string
	AskToolName    string
	AskProToolName string
	Descriptions   map[ToolKind]string
	Routes         map[ToolKind]Route
	Headers        map[string]string
}

// Overrides replaces preset values from configuration. Empty values keep the preset.
type Overrides struct {
	APIBase     string
	ChatAPIBase string
	Models      map[ToolKind]string
	Headers     map[string]string
}

// Route returns the route for a tool kind.
func (d *Descriptor) Route(kind ToolKind) (Route, bool) {
	r, ok := d.Routes[kind]
	return r, ok
}

// ToolName returns the catalog name for a kind.
func (d *Descriptor) ToolName(kind ToolKind) string {
	switch kind {
	case KindAsk:
		return d.AskToolName
	case KindAskPro:
		return d.AskProToolName
	default:
		return string(kind)
	}
}

// BaseURL returns the base URL a route is sent to.
func (d *Descriptor) BaseURL(r Route) string {
	if r.APIBase != "" {
		return r.APIBase
	}
	if r.Family == FamilyChat && d.ChatAPIBase != "" {
		return d.ChatAPIBase
	}
	return d.APIBase
}

// RelayInfo builds the per-call routing metadata for a route.
func (d *Descriptor) RelayInfo(r Route, requestID string) *RelayInfo {
	path := r.Path
	if path == "" && r.Family == FamilyChat {
		path = PathChatCompletions
	}
	return &RelayInfo{
		RequestID: requestID,
		Provider:  d.DisplayName,
		APIKey:    d.APIKey,
		APIBase:   strings.TrimRight(d.BaseURL(r), "/"),
		Model:     r.Model,
		Path:      path,
		Headers:   d.Headers,
	}
}

type preset struct {
	descriptor Descriptor
	// chatSuffix derives the chat base from an overridden API base.
	chatSuffix string
}

const (
	zaiBase    = "https://api.z.ai/api/paas/v4"
	geminiBase = "https://generativelanguage.googleapis.com/v1beta"
)

var presets = map[string]preset{
	"zai": {
		descriptor: Descriptor{
			Name:           "zai",
			DisplayName:    "Z.ai",
			APIBase:        zaiBase,
			AskToolName:    "ask_glm5",
			AskProToolName: "ask_glm5_pro",
			Descriptions: map[ToolKind]string{
				KindAsk:           "Delegate tasks to GLM-5 (Z.ai's flagship model). Use this for: complex reasoning, advanced analysis, system design, and demanding cognitive tasks.",
				KindAskPro:        "Delegate to GLM-5 with a coding-optimized system prompt. Use this for: code generation, programming tasks, refactoring, debugging, and technical implementation.",
				KindWebSearch:     "LLM-optimized web search for competitive intelligence, market research, and real-time information. Returns structured summaries ready for analysis.",
				KindWebReader:     "Fetch and parse full content from a specific URL. Use this to read articles, blog posts, documentation, or any web content after finding it via web_search. Returns markdown-formatted content.",
				KindParseDocument: "Extract text from documents, images, and PDFs using GLM vision. Handles complex layouts, tables, multi-column text. Use for contracts, scanned documents, invoices.",
			},
			Routes: map[ToolKind]Route{
				KindAsk: {
					Family: FamilyChat, Model: "glm-5",
					Temperature: 0.7, MaxOutputTokens: 4000, DisableThinking: true,
				},
				KindAskPro: {
					Family: FamilyChat, Model: "glm-5",
					Temperature: 0.7, MaxOutputTokens: 4000, DisableThinking: true,
					DefaultSystemPrompt: true,
				},
				KindWebSearch: {
					Family: FamilyEndpoint, Path: PathWebSearch, SearchEngine: "search-prime",
				},
				KindWebReader: {
					Family: FamilyEndpoint, Path: PathReader,
				},
				KindParseDocument: {
					Family: FamilyChat, Model: "glm-4.6v",
					Temperature: 0.1, MaxOutputTokens: 8000, Multimodal: true,
				},
			},
		},
	},
	"gemini": {
		chatSuffix: "/openai",
		descriptor: Descriptor{
			Name:           "gemini",
			DisplayName:    "Gemini",
			APIBase:        geminiBase,
			ChatAPIBase:    geminiBase + "/openai",
			AskToolName:    "ask_gemini",
			AskProToolName: "ask_gemini_pro",
			Descriptions: map[ToolKind]string{
				KindAsk:           "Delegate tasks to Google Gemini 3 Flash for general analysis, synthesis, summarization, and reasoning tasks. Fast and cost-effective for most delegation needs.",
				KindAskPro:        "Delegate to Google Gemini 3 Pro for complex reasoning, code generation, architecture design, and demanding cognitive tasks. Most capable model.",
				KindWebSearch:     "LLM-optimized web search using Gemini with Google Search grounding. Returns structured search results with titles, URLs, and summaries.",
				KindWebReader:     "Fetch and parse full content from a specific URL using Gemini's URL context capability. Returns markdown-formatted content ready for analysis.",
				KindParseDocument: "Extract text from documents, images, and PDFs using Gemini's multimodal capabilities. Handles complex layouts, tables, multi-column text.",
			},
			Routes: map[ToolKind]Route{
				KindAsk: {
					Family: FamilyChat, Model: "gemini-3-flash-preview",
					Temperature: 0.7, MaxOutputTokens: 8192,
				},
				KindAskPro: {
					Family: FamilyChat, Model: "gemini-3-pro-preview",
					Temperature: 0.7, MaxOutputTokens: 16384, DefaultSystemPrompt: true,
				},
				KindWebSearch: {
					Family: FamilyGenerateContent, Model: "gemini-3-flash-preview",
					Temperature: 0.1, MaxOutputTokens: 8192,
					Grounding: []GroundingTool{GroundingGoogleSearch},
				},
				KindWebReader: {
					Family: FamilyGenerateContent, Model: "gemini-3-flash-preview",
					Temperature: 0.1, MaxOutputTokens: 8192,
					Grounding: []GroundingTool{GroundingURLContext},
				},
				KindParseDocument: {
					Family: FamilyChat, Model: "gemini-3-flash-preview",
					Temperature: 0.1, MaxOutputTokens: 8192, Multimodal: true,
					CompactHeader: true,
				},
			},
		},
	},
}

// PresetNames returns the known profile names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDescriptor builds the descriptor for a profile with the credential injected.
// The returned value shares nothing with the preset table.
func NewDescriptor(profile, apiKey string, o Overrides) (*Descriptor, error) {
	p, ok := presets[profile]
	if !ok {
		return nil, fmt.Errorf("unknown provider profile %q (available: %s)",
			profile, strings.Join(PresetNames(), ", "))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key for provider profile %q is empty", profile)
	}

	d := p.descriptor
	d.APIKey = apiKey

	if o.APIBase != "" {
		d.APIBase = strings.TrimRight(o.APIBase, "/")
		if p.chatSuffix != "" {
			d.ChatAPIBase = d.APIBase + p.chatSuffix
		}
	}
	if o.ChatAPIBase != "" {
		d.ChatAPIBase = strings.TrimRight(o.ChatAPIBase, "/")
	}

	d.Descriptions = make(map[ToolKind]string, len(p.descriptor.Descriptions))
	for k, v := range p.descriptor.Descriptions {
		d.Descriptions[k] = v
	}

	if len(o.Headers) > 0 {
		d.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			d.Headers[k] = v
		}
	}

	d.Routes = make(map[ToolKind]Route, len(p.descriptor.Routes))
	for kind, r := range p.descriptor.Routes {
		r.Grounding = append([]GroundingTool(nil), r.Grounding...)
		if model := o.Models[kind]; model != "" && r.Family != FamilyEndpoint {
			r.Model = model
		}
		d.Routes[kind] = r
	}

	return &d, nil
}
