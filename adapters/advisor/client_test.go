package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gokinet/domain/core"
)

type verdict struct {
	Answer string `json:"answer"`
	Score  int    `json:"score"`
}

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v", req["model"])
		}
		if rf, ok := req["response_format"].(map[string]interface{}); !ok || rf["type"] != "json_object" {
			t.Errorf("response_format = %v, want json_object", req["response_format"])
		}

		w.WriteHeader(status)
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%s}}]}`, mustQuote(t, content))
	}))
}

func mustQuote(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("quoting: %v", err)
	}
	return string(b)
}

func testConfig(baseURL string) ClientConfig {
	return ClientConfig{
		APIKey:      "sk-test",
		BaseURL:     baseURL,
		Model:       "test-model",
		MaxTokens:   256,
		Temperature: 0.2,
		Timeout:     5 * time.Second,
	}
}

func TestGetJSONResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bare JSON", `{"answer":"yes","score":3}`},
		{"fenced JSON", "```json\n{\"answer\":\"yes\",\"score\":3}\n```"},
		{"chatter before JSON", "Here is the result you asked for:\n{\"answer\":\"yes\",\"score\":3}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, http.StatusOK, tt.content)
			defer srv.Close()

			client := NewStructuredClient[verdict](testConfig(srv.URL))
			got, err := client.GetJSONResponse(context.Background(), "score things", "score this")
			if err != nil {
				t.Fatalf("GetJSONResponse: %v", err)
			}
			if got.Answer != "yes" || got.Score != 3 {
				t.Errorf("parsed = %+v", got)
			}
		})
	}
}

func TestGetJSONResponseServerError(t *testing.T) {
	srv := chatServer(t, http.StatusBadGateway, `{}`)
	defer srv.Close()

	client := NewStructuredClient[verdict](testConfig(srv.URL))
	_, err := client.GetJSONResponse(context.Background(), "sys", "prompt")
	if !errors.Is(err, core.ErrAdvisorDown) {
		t.Fatalf("err = %v, want ErrAdvisorDown", err)
	}
}

func TestGetJSONResponseUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewStructuredClient[verdict](testConfig(srv.URL))
	_, err := client.GetJSONResponse(context.Background(), "sys", "prompt")
	if !errors.Is(err, core.ErrAdvisorDown) {
		t.Fatalf("err = %v, want ErrAdvisorDown", err)
	}
}

func TestGetJSONResponseMalformedContent(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "not json at all")
	defer srv.Close()

	client := NewStructuredClient[verdict](testConfig(srv.URL))
	_, err := client.GetJSONResponse(context.Background(), "sys", "prompt")
	if err == nil {
		t.Fatal("expected parse error for non-JSON content")
	}
	if errors.Is(err, core.ErrAdvisorDown) {
		t.Errorf("content errors are not availability errors: %v", err)
	}
}
