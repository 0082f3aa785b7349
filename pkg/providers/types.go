// Package providers implements the provider side of the bridge: descriptors for the
// upstream services, an adaptor per wire family, and the shared transport invoker.
// Adaptors translate a ProviderRequest into one provider-specific payload and translate
// the raw reply back into a NormalizedResult.
package providers

import (
	"net/http"
)

// Family identifies one of the wire-protocol shapes an upstream service exposes.
type Family string

const (
	// FamilyChat is the OpenAI-compatible chat-completions shape.
	FamilyChat Family = "chat"
	// FamilyGenerateContent is the native generateContent shape with grounding tools.
	FamilyGenerateContent Family = "generate_content"
	// FamilyEndpoint is a dedicated REST endpoint per capability (search, reader).
	FamilyEndpoint Family = "endpoint"
)

// ToolKind is the logical operation behind a catalog entry.
type ToolKind string

const (
	KindAsk           ToolKind = "ask"
	KindAskPro        ToolKind = "ask_pro"
	KindWebSearch     ToolKind = "web_search"
	KindWebReader     ToolKind = "web_reader"
	KindParseDocument ToolKind = "parse_document"
)

// Kinds lists every tool kind in catalog order.
var Kinds = []ToolKind{KindAsk, KindAskPro, KindWebSearch, KindWebReader, KindParseDocument}

// Dedicated endpoint paths.
const (
	PathChatCompletions = "/chat/completions"
	PathWebSearch       = "/web_search"
	PathReader          = "/reader"
)

// Role is the author of a message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Content part types for multimodal user messages.
const (
	PartText     = "text"
	PartImageURL = "image_url"
)

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string
	Text     string
	ImageURL string
}

// Message is a single instruction sent to the model.
// When Parts is non-empty it takes precedence over Content.
type Message struct {
	Role    Role
	Content string
	Parts   []ContentPart
}

// GroundingTool is a retrieval capability attached to a generate-content call.
type GroundingTool string

const (
	GroundingGoogleSearch GroundingTool = "google_search"
	GroundingURLContext   GroundingTool = "url_context"
)

// SearchParams carries the dedicated search endpoint fields.
type SearchParams struct {
	Engine        string
	Query         string
	Count         int
	RecencyFilter string
	DomainFilter  string
}

// ReaderParams carries the dedicated reader endpoint fields.
type ReaderParams struct {
	URL               string
	ReturnFormat      string
	Timeout           int
	WithImagesSummary *bool
	WithLinksSummary  *bool
}

// ProviderRequest is the adaptor-neutral request built fresh for every invocation.
// Chat and generate-content adaptors read Messages; the endpoint adaptor reads
// Search or Reader.
type ProviderRequest struct {
	Model           string
	Messages        []Message
	Grounding       []GroundingTool
	Temperature     float64
	MaxOutputTokens int
	DisableThinking bool

	Search *SearchParams
	Reader *ReaderParams
}

// Source is one cited or returned document.
type Source struct {
	Title     string
	URL       string
	Summary   string
	Media     string
	Published string
}

// NormalizedResult is the provider-independent answer.
type NormalizedResult struct {
	Text        string
	Sources     []Source
	Title       string
	Description string
	// Strategy names the extraction path that produced Text.
	Strategy string
}

// RelayInfo carries per-call routing metadata through the adaptor pipeline.
type RelayInfo struct {
	RequestID string
	Provider  string // display name used in error text
	APIKey    string
	APIBase   string
	Model     string
	Path      string
	Headers   map[string]string
}

// Adaptor is implemented once per Family.
type Adaptor interface {
	// Family reports the wire shape this adaptor speaks.
	Family() Family

	// GetRequestURL returns the full URL for the call.
	GetRequestURL(info *RelayInfo) (string, error)

	// SetupRequestHeader sets content type, credential and extra headers.
	SetupRequestHeader(req *http.Request, info *RelayInfo) error

	// ConvertRequest returns the marshaled provider payload.
	ConvertRequest(req *ProviderRequest, info *RelayInfo) ([]byte, error)

	// DoResponse extracts a NormalizedResult from a 2xx body.
	DoResponse(body []byte, info *RelayInfo) (*NormalizedResult, error)
}
