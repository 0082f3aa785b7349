package providers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"modelbridge/pkg/config"
	"modelbridge/pkg/providers"
	_ "modelbridge/pkg/providers/all"
)

func TestNewDescriptor_Presets(t *testing.T) {
	for _, name := range providers.PresetNames() {
		d, err := providers.NewDescriptor(name, "key", providers.Overrides{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, kind := range providers.Kinds {
			if _, ok := d.Route(kind); !ok {
				t.Fatalf("%s: missing route for %s", name, kind)
			}
			if d.Descriptions[kind] == "" {
				t.Fatalf("%s: missing description for %s", name, kind)
			}
		}
	}
}

func TestNewDescriptor_Errors(t *testing.T) {
	if _, err := providers.NewDescriptor("nope", "key", providers.Overrides{}); err == nil {
		t.Fatal("expected unknown profile error")
	}
	if _, err := providers.NewDescriptor("zai", "", providers.Overrides{}); err == nil {
		t.Fatal("expected empty key error")
	}
}

func TestNewDescriptor_Overrides(t *testing.T) {
	d, err := providers.NewDescriptor("gemini", "key", providers.Overrides{
		APIBase: "http://localhost:1234/v1beta/",
		Models:  map[providers.ToolKind]string{providers.KindAskPro: "custom-pro"},
	})
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if d.APIBase != "http://localhost:1234/v1beta" {
		t.Fatalf("unexpected base %q", d.APIBase)
	}
	if d.ChatAPIBase != "http://localhost:1234/v1beta/openai" {
		t.Fatalf("unexpected chat base %q", d.ChatAPIBase)
	}
	r, _ := d.Route(providers.KindAskPro)
	if r.Model != "custom-pro" {
		t.Fatalf("expected model override, got %q", r.Model)
	}

	// The preset table must stay untouched.
	fresh, _ := providers.NewDescriptor("gemini", "key", providers.Overrides{})
	r, _ = fresh.Route(providers.KindAskPro)
	if r.Model != "gemini-3-pro-preview" {
		t.Fatalf("preset mutated: %q", r.Model)
	}
}

func TestDescriptor_ToolName(t *testing.T) {
	d, _ := providers.NewDescriptor("zai", "key", providers.Overrides{})
	if d.ToolName(providers.KindAsk) != "ask_glm5" || d.ToolName(providers.KindAskPro) != "ask_glm5_pro" {
		t.Fatalf("unexpected ask tool names")
	}
	if d.ToolName(providers.KindWebReader) != "web_reader" {
		t.Fatalf("unexpected reader name %q", d.ToolName(providers.KindWebReader))
	}
}

func TestInvoker_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "rate limited")
	}))
	defer srv.Close()

	inv := providers.NewInvokerWithClient(srv.Client())
	req, _ := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("{}"))

	_, err := inv.Do(req, "Z.ai")
	var upstream *providers.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 500 || upstream.Body != "rate limited" {
		t.Fatalf("unexpected upstream error: %+v", upstream)
	}
	if err.Error() != "Z.ai API error: 500 - rate limited" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if c := providers.ClassifyError(err); c.Reason != providers.FailureReasonServer {
		t.Fatalf("expected server reason, got %s", c.Reason)
	}
}

func TestInvoker_NetworkErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := srv.URL + "/models/m:generateContent?key=secret-key"
	srv.Close()

	inv := providers.NewInvokerWithClient(&http.Client{})
	req, _ := http.NewRequest(http.MethodPost, target, strings.NewReader("{}"))

	_, err := inv.Do(req, "Gemini")
	var netErr *providers.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("credential leaked: %v", err)
	}
	if c := providers.ClassifyError(err); c.Reason != providers.FailureReasonNetwork {
		t.Fatalf("expected network reason, got %s", c.Reason)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want providers.FailureReason
	}{
		{&providers.UpstreamError{StatusCode: 401}, providers.FailureReasonAuth},
		{&providers.UpstreamError{StatusCode: 429}, providers.FailureReasonRateLimit},
		{&providers.UpstreamError{StatusCode: 402}, providers.FailureReasonBilling},
		{&providers.UpstreamError{StatusCode: 400, Body: "API_KEY_INVALID"}, providers.FailureReasonAuth},
		{&providers.UpstreamError{StatusCode: 400, Body: "bad field"}, providers.FailureReasonClient},
		{&providers.EmptyResponseError{Provider: "x"}, providers.FailureReasonEmpty},
		{errors.New("boom"), providers.FailureReasonUnknown},
	}
	for _, tc := range cases {
		if got := providers.ClassifyError(tc.err).Reason; got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.err, tc.want, got)
		}
	}
}

func TestClient_CallGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"page"}]}}]}`)
	}))
	defer srv.Close()

	d, err := providers.NewDescriptor("gemini", "k1", providers.Overrides{APIBase: srv.URL})
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	client := providers.NewClient(d, providers.NewInvokerWithClient(srv.Client()))

	res, err := client.Call(context.Background(), providers.KindWebReader, &providers.ProviderRequest{
		Model:       "gemini-3-flash-preview",
		Temperature: 0.1,
		Grounding:   []providers.GroundingTool{providers.GroundingURLContext},
		Messages:    []providers.Message{{Role: providers.RoleUser, Content: "read"}},
	}, "req-1")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if res.Text != "page" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if gotPath != "/models/gemini-3-flash-preview:generateContent" || gotKey != "k1" {
		t.Fatalf("unexpected url path=%s key=%s", gotPath, gotKey)
	}
	tools, _ := gotBody["tools"].([]any)
	if len(tools) != 1 {
		t.Fatalf("expected one grounding tool, got %v", gotBody["tools"])
	}
	if _, ok := tools[0].(map[string]any)["url_context"]; !ok {
		t.Fatalf("expected url_context tool, got %v", tools[0])
	}
}

func TestClient_CallChatBearer(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"hello"}}]}`)
	}))
	defer srv.Close()

	d, _ := providers.NewDescriptor("zai", "zkey", providers.Overrides{APIBase: srv.URL})
	client := providers.NewClient(d, providers.NewInvokerWithClient(srv.Client()))

	res, err := client.Call(context.Background(), providers.KindAsk, &providers.ProviderRequest{
		Model:    "glm-5",
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	}, "req-2")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if res.Text != "hello" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if gotAuth != "Bearer zkey" || gotPath != "/chat/completions" {
		t.Fatalf("unexpected auth=%q path=%q", gotAuth, gotPath)
	}
}

func TestPresetNames_MatchConfigProfiles(t *testing.T) {
	got := providers.PresetNames()
	want := config.Profiles()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("preset table %v and config profiles %v differ", got, want)
	}
}

func TestClient_ConfiguredHeaders(t *testing.T) {
	var gotAuth, gotTrace string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get("X-Trace-Id")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"hello"}}]}`)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "zkey"
	cfg.Provider.APIBase = srv.URL
	cfg.Provider.Headers = map[string]string{
		"x-trace-id":    "t1",
		"Authorization": "Bearer other",
	}
	d, err := providers.ProvideDescriptor(cfg)
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	cfg.Provider.Headers["x-trace-id"] = "mutated"

	client := providers.NewClient(d, providers.NewInvokerWithClient(srv.Client()))
	_, err = client.Call(context.Background(), providers.KindAsk, &providers.ProviderRequest{
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	}, "req-3")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if gotTrace != "t1" {
		t.Fatalf("expected configured header, got %q", gotTrace)
	}
	if gotAuth != "Bearer zkey" {
		t.Fatalf("credential header was overridden: %q", gotAuth)
	}
}
