package eval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildPromptContainsInputs(t *testing.T) {
	prompt := BuildPrompt("my summary", "the original text", 300)
	for _, want := range []string{"my summary", "the original text", "WPM: 300", "Accuracy", "qualitative rating"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestEvaluateHappyPath(t *testing.T) {
	var gotAuth string
	var gotBody requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Good comprehension."}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	c := NewClient("test-key", WithEndpoint(server.URL))
	verdict, err := c.Evaluate(context.Background(), "some/model", "summary", "text", 300)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if verdict != "Good comprehension." {
		t.Fatalf("unexpected verdict: %q", verdict)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody.Model != "some/model" {
		t.Fatalf("unexpected model: %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[0].Content, "WPM: 300") {
		t.Fatalf("prompt not forwarded: %q", gotBody.Messages[0].Content)
	}
}

func TestEvaluateNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient("test-key", WithEndpoint(server.URL))
	_, err := c.Evaluate(context.Background(), "some/model", "summary", "text", 300)
	if err == nil {
		t.Fatalf("expected error for non-OK status")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error should carry the response body, got %v", err)
	}
}

func TestEvaluateMissingChoices(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices field", `{}`},
		{"empty choices", `{"choices": []}`},
		{"missing message", `{"choices": [{}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if _, err := w.Write([]byte(tc.body)); err != nil {
					t.Errorf("failed to write response: %v", err)
				}
			}))
			defer server.Close()

			c := NewClient("test-key", WithEndpoint(server.URL))
			if _, err := c.Evaluate(context.Background(), "some/model", "summary", "text", 300); err == nil {
				t.Fatalf("expected error for malformed response")
			}
		})
	}
}
