package tools_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"modelbridge/pkg/logger"
	"modelbridge/pkg/prompt"
	"modelbridge/pkg/providers"
	_ "modelbridge/pkg/providers/all"
	"modelbridge/pkg/tools"
)

type fakeUpstream struct {
	calls    atomic.Int32
	lastPath string
	lastKey  string
	lastAuth string
	lastBody map[string]any
}

func newDispatcher(t *testing.T, profile string, up *fakeUpstream, reply func(w http.ResponseWriter)) (*tools.Dispatcher, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.calls.Add(1)
		up.lastPath = r.URL.Path
		up.lastKey = r.URL.Query().Get("key")
		up.lastAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		up.lastBody = nil
		_ = json.Unmarshal(raw, &up.lastBody)
		reply(w)
	}))
	t.Cleanup(srv.Close)

	desc, err := providers.NewDescriptor(profile, "test-key", providers.Overrides{APIBase: srv.URL})
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	client := providers.NewClient(desc, providers.NewInvokerWithClient(srv.Client()))

	var buf bytes.Buffer
	cfg := logger.DefaultConfig()
	cfg.Console = &buf
	log, err := logger.New(cfg)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	registry, err := tools.NewCatalog(client, log)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return tools.NewDispatcher(registry, client, log), &buf
}

func writeJSON(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestCatalog_Order(t *testing.T) {
	tests := map[string][]string{
		"zai":    {"ask_glm5", "ask_glm5_pro", "web_search", "web_reader", "parse_document"},
		"gemini": {"ask_gemini", "ask_gemini_pro", "web_search", "web_reader", "parse_document"},
	}
	for profile, want := range tests {
		d, _ := newDispatcher(t, profile, &fakeUpstream{}, writeJSON(`{}`))
		descs := d.Registry().Descriptors()
		if len(descs) != len(want) {
			t.Fatalf("%s: expected %d tools, got %d", profile, len(want), len(descs))
		}
		for i, desc := range descs {
			if desc.Name != want[i] {
				t.Fatalf("%s: tool %d = %s, want %s", profile, i, desc.Name, want[i])
			}
			if desc.InputSchema.Type != "object" || len(desc.InputSchema.Required) != 1 {
				t.Fatalf("%s: bad schema for %s: %+v", profile, desc.Name, desc.InputSchema)
			}
			if desc.Description == "" {
				t.Fatalf("%s: %s has no description", profile, desc.Name)
			}
		}
	}
}

func TestCatalog_SearchCountBounds(t *testing.T) {
	d, _ := newDispatcher(t, "zai", &fakeUpstream{}, writeJSON(`{}`))
	tool, ok := d.Registry().Get("web_search")
	if !ok {
		t.Fatal("web_search missing")
	}
	count := tool.InputSchema().Properties["count"]
	if count.Minimum == nil || *count.Minimum != 1 || count.Maximum == nil || *count.Maximum != 50 {
		t.Fatalf("unexpected count bounds: %+v", count)
	}
	if string(count.Default) != "10" {
		t.Fatalf("unexpected count default: %s", count.Default)
	}
}

func TestDispatcher_UnknownTool(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "zai", up, writeJSON(`{}`))

	env := d.Invoke(context.Background(), "nope", nil)
	if !env.IsError || env.Text() != "Error calling Z.ai (nope): unknown tool: nope" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if up.calls.Load() != 0 {
		t.Fatal("unknown tool must not reach the provider")
	}
}

func TestDispatcher_UnknownToolUsesProfileName(t *testing.T) {
	d, _ := newDispatcher(t, "gemini", &fakeUpstream{}, writeJSON(`{}`))

	env := d.InvokeJSON(context.Background(), "nope", json.RawMessage(`{"query":"x"}`))
	if !env.IsError || !strings.HasPrefix(env.Text(), "Error calling Gemini (nope): ") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestDispatcher_UpstreamError(t *testing.T) {
	d, logs := newDispatcher(t, "zai", &fakeUpstream{}, func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "rate limited")
	})

	env := d.Invoke(context.Background(), "ask_glm5", map[string]any{"prompt": "hi"})
	if !env.IsError {
		t.Fatalf("expected error envelope, got %+v", env)
	}
	want := "Error calling Z.ai (ask_glm5): Z.ai API error: 500 - rate limited"
	if env.Text() != want {
		t.Fatalf("got %q, want %q", env.Text(), want)
	}
	if !strings.Contains(logs.String(), `"reason":"server"`) {
		t.Fatalf("expected classified log entry, got %s", logs.String())
	}
}

func TestDispatcher_InvalidArguments(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "zai", up, writeJSON(`{}`))

	tests := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"ask_glm5", map[string]any{}, "invalid argument prompt: is required"},
		{"ask_glm5", map[string]any{"prompt": "x", "temperature": "hot"}, "invalid argument temperature: must be a number"},
		{"web_search", map[string]any{"search_query": "q", "search_recency_filter": "yesterday"}, "invalid argument search_recency_filter"},
		{"web_reader", map[string]any{"url": "ftp://example.com"}, "invalid argument url: must be a valid http/https URL"},
		{"parse_document", map[string]any{"file_url": "https://x.test/a.pdf", "parse_mode": "magic"}, "invalid argument parse_mode"},
	}
	for _, tt := range tests {
		env := d.Invoke(context.Background(), tt.tool, tt.args)
		if !env.IsError || !strings.Contains(env.Text(), tt.want) {
			t.Fatalf("%s %v: got %+v, want %q", tt.tool, tt.args, env, tt.want)
		}
	}
	if up.calls.Load() != 0 {
		t.Fatalf("invalid arguments reached the provider %d times", up.calls.Load())
	}
}

func TestDispatcher_InvokeJSONRejectsNonObject(t *testing.T) {
	d, _ := newDispatcher(t, "zai", &fakeUpstream{}, writeJSON(`{}`))

	env := d.InvokeJSON(context.Background(), "ask_glm5", json.RawMessage(`[1,2]`))
	if !env.IsError || !strings.Contains(env.Text(), "must be a JSON object") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAskPro_DefaultSystemPrompt(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "zai", up, writeJSON(`{"choices":[{"message":{"content":"hello"}}]}`))

	env := d.Invoke(context.Background(), "ask_glm5_pro", map[string]any{"prompt": "write code"})
	if env.IsError || env.Text() != "hello" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if up.lastPath != "/chat/completions" || up.lastAuth != "Bearer test-key" {
		t.Fatalf("unexpected request %s auth=%q", up.lastPath, up.lastAuth)
	}

	msgs, _ := up.lastBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %v", up.lastBody["messages"])
	}
	system := msgs[0].(map[string]any)
	if system["role"] != "system" || system["content"] != prompt.DefaultProSystemPrompt {
		t.Fatalf("unexpected system message: %v", system)
	}
	thinking, _ := up.lastBody["thinking"].(map[string]any)
	if thinking["type"] != "disabled" {
		t.Fatalf("expected thinking disabled, got %v", up.lastBody["thinking"])
	}
	if up.lastBody["max_tokens"] != float64(4000) || up.lastBody["temperature"] != 0.7 {
		t.Fatalf("unexpected defaults: %v", up.lastBody)
	}
}

func TestAsk_CallerOverrides(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "zai", up, writeJSON(`{"choices":[{"message":{"content":"ok"}}]}`))

	env := d.Invoke(context.Background(), "ask_glm5", map[string]any{
		"prompt":        "hi",
		"system_prompt": "be brief",
		"temperature":   0.0,
		"max_tokens":    12.0,
	})
	if env.IsError {
		t.Fatalf("unexpected error: %s", env.Text())
	}
	msgs, _ := up.lastBody["messages"].([]any)
	if msgs[0].(map[string]any)["content"] != "be brief" {
		t.Fatalf("system prompt not forwarded: %v", msgs)
	}
	if up.lastBody["temperature"] != 0.0 || up.lastBody["max_tokens"] != 12.0 {
		t.Fatalf("overrides not applied: %v", up.lastBody)
	}
}

func TestAsk_ReasoningFallback(t *testing.T) {
	d, logs := newDispatcher(t, "zai", &fakeUpstream{},
		writeJSON(`{"choices":[{"message":{"content":"","reasoning_content":"thought"}}]}`))

	env := d.Invoke(context.Background(), "ask_glm5", map[string]any{"prompt": "hi"})
	if env.IsError || env.Text() != "thought" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !strings.Contains(logs.String(), "reasoning_content") {
		t.Fatalf("expected fallback warning, got %s", logs.String())
	}
}

func TestAsk_EmptyResponse(t *testing.T) {
	d, _ := newDispatcher(t, "zai", &fakeUpstream{},
		writeJSON(`{"choices":[{"message":{"content":"","reasoning_content":""}}]}`))

	env := d.Invoke(context.Background(), "ask_glm5", map[string]any{"prompt": "hi"})
	if !env.IsError || !strings.Contains(env.Text(), "Z.ai returned empty response") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestWebSearch_Grounded(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "gemini", up, writeJSON(`{"candidates":[{
		"content":{"parts":[{"text":"Summary."}]},
		"groundingMetadata":{"groundingChunks":[{"web":{"title":"A","uri":"u1"}},{"web":{}}]}
	}]}`))

	env := d.Invoke(context.Background(), "web_search", map[string]any{"search_query": "go news", "count": 3.0})
	if env.IsError {
		t.Fatalf("unexpected error: %s", env.Text())
	}
	want := "Web Search Results for: \"go news\"\n" +
		"Found 2 grounded sources\n\n" +
		"[1] A\nURL: u1\n\n" +
		"[2] Untitled\nURL: N/A\n\n" +
		"---\n\nSynthesized Results:\n\nSummary."
	if env.Text() != want {
		t.Fatalf("got %q\nwant %q", env.Text(), want)
	}
	if up.lastPath != "/models/gemini-3-flash-preview:generateContent" || up.lastKey != "test-key" {
		t.Fatalf("unexpected request %s key=%q", up.lastPath, up.lastKey)
	}
	grounding, _ := up.lastBody["tools"].([]any)
	if len(grounding) != 1 {
		t.Fatalf("expected one grounding tool, got %v", up.lastBody["tools"])
	}
	if _, ok := grounding[0].(map[string]any)["google_search"]; !ok {
		t.Fatalf("expected google_search grounding, got %v", grounding[0])
	}
}

func TestWebSearch_GroundedWithoutSources(t *testing.T) {
	d, _ := newDispatcher(t, "gemini", &fakeUpstream{},
		writeJSON(`{"candidates":[{"content":{"parts":[{"text":"Only prose."}]}}]}`))

	env := d.Invoke(context.Background(), "web_search", map[string]any{"search_query": "q"})
	if env.Text() != "Web Search Results for: \"q\"\n\n\nOnly prose." {
		t.Fatalf("unexpected text %q", env.Text())
	}
}

func TestWebSearch_Endpoint(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "zai", up, writeJSON(`{"search_result":[
		{"title":"Go 1.26","link":"https://go.dev/blog","content":"Released.","media":"go.dev","publish_date":"2026-02-01"}
	]}`))

	env := d.Invoke(context.Background(), "web_search", map[string]any{
		"search_query":          "go release",
		"count":                 80.0,
		"search_recency_filter": "oneWeek",
	})
	if env.IsError {
		t.Fatalf("unexpected error: %s", env.Text())
	}
	if up.lastPath != "/web_search" {
		t.Fatalf("unexpected path %s", up.lastPath)
	}
	if up.lastBody["search_engine"] != "search-prime" || up.lastBody["count"] != float64(50) {
		t.Fatalf("unexpected body %v", up.lastBody)
	}
	want := "Web Search Results for: \"go release\"\nFound 1 results\n\n" +
		"[1] Go 1.26\nURL: https://go.dev/blog\nSummary: Released.\nSource: go.dev\nPublished: 2026-02-01\n\n"
	if env.Text() != want {
		t.Fatalf("got %q\nwant %q", env.Text(), want)
	}
}

func TestWebReader_Endpoint(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "zai", up, writeJSON(`{"reader_result":{"title":"Docs","description":"About","content":"# Body"}}`))

	env := d.Invoke(context.Background(), "web_reader", map[string]any{"url": "https://example.com", "timeout": 5.0})
	if env.IsError {
		t.Fatalf("unexpected error: %s", env.Text())
	}
	want := "Web Page Content from: https://example.com\n\n# Docs\n\n**Description:** About\n\n---\n\n# Body"
	if env.Text() != want {
		t.Fatalf("got %q\nwant %q", env.Text(), want)
	}
	if up.lastBody["timeout"] != float64(5) || up.lastBody["return_format"] != "markdown" {
		t.Fatalf("unexpected body %v", up.lastBody)
	}
}

func TestWebReader_EndpointMissingResult(t *testing.T) {
	d, _ := newDispatcher(t, "zai", &fakeUpstream{}, writeJSON(`{"id":"x"}`))

	env := d.Invoke(context.Background(), "web_reader", map[string]any{"url": "https://example.com"})
	if !env.IsError || !strings.Contains(env.Text(), "missing reader_result") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestWebReader_URLContext(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "gemini", up, writeJSON(`{"candidates":[{"content":{"parts":[{"text":"Page text"}]}}]}`))

	env := d.Invoke(context.Background(), "web_reader", map[string]any{"url": "https://example.com"})
	if env.Text() != "Web Page Content from: https://example.com\n\n---\n\nPage text" {
		t.Fatalf("unexpected text %q", env.Text())
	}
	grounding, _ := up.lastBody["tools"].([]any)
	if _, ok := grounding[0].(map[string]any)["url_context"]; !ok {
		t.Fatalf("expected url_context grounding, got %v", up.lastBody["tools"])
	}
}

func TestWebReader_URLContextEmpty(t *testing.T) {
	d, _ := newDispatcher(t, "gemini", &fakeUpstream{}, writeJSON(`{"candidates":[]}`))

	env := d.Invoke(context.Background(), "web_reader", map[string]any{"url": "https://example.com"})
	if !env.IsError || !strings.Contains(env.Text(), "Gemini returned empty response for URL reading") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestParseDocument(t *testing.T) {
	up := &fakeUpstream{}
	d, _ := newDispatcher(t, "gemini", up, writeJSON(`{"choices":[{"message":{"content":"Invoice #1"}}]}`))

	env := d.Invoke(context.Background(), "parse_document", map[string]any{
		"file_url":      "https://x.test/scan.png",
		"return_format": "text",
		"parse_mode":    "ocr",
	})
	if env.Text() != "Document Parsing Results from: https://x.test/scan.png\nFormat: text\n---\n\nInvoice #1" {
		t.Fatalf("unexpected text %q", env.Text())
	}
	if up.lastPath != "/openai/chat/completions" {
		t.Fatalf("unexpected path %s", up.lastPath)
	}

	msgs, _ := up.lastBody["messages"].([]any)
	parts, _ := msgs[0].(map[string]any)["content"].([]any)
	if len(parts) != 2 {
		t.Fatalf("expected two parts, got %v", msgs[0])
	}
	if parts[0].(map[string]any)["type"] != "image_url" || parts[1].(map[string]any)["type"] != "text" {
		t.Fatalf("image part must precede the instruction: %v", parts)
	}
	if !strings.Contains(parts[1].(map[string]any)["text"].(string), "OCR") {
		t.Fatalf("parse mode not reflected in instruction: %v", parts[1])
	}
}

func TestParseDocument_ZaiHeaderLayout(t *testing.T) {
	d, _ := newDispatcher(t, "zai", &fakeUpstream{}, writeJSON(`{"choices":[{"message":{"content":"C"}}]}`))

	env := d.Invoke(context.Background(), "parse_document", map[string]any{"file_url": "https://a/b.pdf"})
	if env.Text() != "Document Parsing Results from: https://a/b.pdf\n\nFormat: markdown\n---\n\nC" {
		t.Fatalf("unexpected text %q", env.Text())
	}
}
