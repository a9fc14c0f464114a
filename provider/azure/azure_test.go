package azure_provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartretail/assistant/config"
	"github.com/smartretail/assistant/models"
)

func TestCompleteUsesDeploymentPath(t *testing.T) {
	var gotPath, gotVersion, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		gotKey = r.Header.Get("api-key")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "grounded answer"}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(config.OpenAIConfig{
		APIKey:          "azure-key",
		Endpoint:        srv.URL,
		APIVersion:      "2024-02-01",
		CompletionModel: "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	answer, err := c.Complete(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if answer != "grounded answer" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if gotPath != "/openai/deployments/gpt-4o-mini/chat/completions" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotVersion != "2024-02-01" {
		t.Fatalf("unexpected api-version: %s", gotVersion)
	}
	if gotKey != "azure-key" {
		t.Fatalf("azure auth must use the api-key header, got %q", gotKey)
	}
}

func TestEmbedUsesEmbeddingDeployment(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{"embedding": []float32{1, 2}}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(config.OpenAIConfig{
		APIKey:          "azure-key",
		Endpoint:        srv.URL,
		CompletionModel: "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	vec, err := c.Embed(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 2 {
		t.Fatalf("unexpected vector: %v", vec)
	}
	if gotPath != "/openai/deployments/text-embedding-3-small/embeddings" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient(config.OpenAIConfig{APIKey: "k"}); err == nil {
		t.Fatalf("expected error without endpoint")
	}
}
