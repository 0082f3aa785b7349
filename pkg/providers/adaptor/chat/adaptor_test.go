package chat

import (
	"encoding/json"
	"testing"

	"modelbridge/pkg/providers"
)

func TestConvertRequest_LeavesCallerModel(t *testing.T) {
	req := &providers.ProviderRequest{
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	}
	info := &providers.RelayInfo{Model: "glm-5"}

	data, err := New().ConvertRequest(req, info)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if req.Model != "" {
		t.Fatalf("caller request was modified: model=%q", req.Model)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["model"] != "glm-5" {
		t.Fatalf("expected route model, got %v", body["model"])
	}
}

func TestConvertRequest_RequestModelWins(t *testing.T) {
	req := &providers.ProviderRequest{
		Model:    "glm-4.6v",
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	}

	data, err := New().ConvertRequest(req, &providers.RelayInfo{Model: "glm-5"})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["model"] != "glm-4.6v" {
		t.Fatalf("expected request model, got %v", body["model"])
	}
}
