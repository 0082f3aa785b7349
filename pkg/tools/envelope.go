package tools

// ContentTypeText is the only content type produced.
const ContentTypeText = "text"

// Content is one element of an envelope.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is the uniform result of every invocation.
type Envelope struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// TextEnvelope wraps a successful report.
func TextEnvelope(text string) Envelope {
	return Envelope{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// ErrorEnvelope wraps a failure message.
func ErrorEnvelope(text string) Envelope {
	return Envelope{Content: []Content{{Type: ContentTypeText, Text: text}}, IsError: true}
}

// Text returns the concatenated text content.
func (e Envelope) Text() string {
	if len(e.Content) == 1 {
		return e.Content[0].Text
	}
	var out string
	for _, c := range e.Content {
		out += c.Text
	}
	return out
}
