package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/spigell/offer-matcher/internal/ai"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL, "qwen2.5:14b", 0, zap.NewNop())
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		expects bool
	}{
		{name: "model listed", status: http.StatusOK, body: `{"models":[{"name":"llama3"},{"name":"qwen2.5:14b"}]}`, expects: true},
		{name: "model missing", status: http.StatusOK, body: `{"models":[{"name":"llama3"}]}`, expects: false},
		{name: "bad status", status: http.StatusInternalServerError, body: `oops`, expects: false},
		{name: "garbage body", status: http.StatusOK, body: `{`, expects: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/api/tags" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			})

			if got := client.Available(context.Background()); got != tc.expects {
				t.Fatalf("expected %v, got %v", tc.expects, got)
			}
		})
	}
}

func TestAvailableUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if New(url, "", 0, nil).Available(context.Background()) {
		t.Fatal("unreachable backend must be reported as unavailable")
	}
}

func TestGenerate(t *testing.T) {
	var payload api.GenerateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, `{"response":"总分：82","done":true}`)
	})

	res := client.Generate(context.Background(), ai.GenerateRequest{
		Prompt:      "prompt",
		System:      "system",
		Temperature: 0.5,
		MaxTokens:   1024,
	})

	if !res.OK() || res.Text != "总分：82" {
		t.Fatalf("unexpected result: %+v", res)
	}

	if payload.Model != "qwen2.5:14b" || payload.System != "system" || payload.Stream == nil || *payload.Stream {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Options["temperature"] != 0.5 || payload.Options["num_predict"] != float64(1024) {
		t.Fatalf("unexpected options: %+v", payload.Options)
	}
}

func TestGenerateStream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, `{"response":"总分","done":false}`)
		fmt.Fprintln(w, `{"response":"：","done":false}`)
		fmt.Fprintln(w, `{"response":"90","done":true}`)
	})

	res := client.Generate(context.Background(), ai.GenerateRequest{Prompt: "p", Stream: true})
	if !res.OK() || res.Text != "总分：90" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGenerateBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"error":"model 'qwen2.5:14b' not found"}`)
	})

	res := client.Generate(context.Background(), ai.GenerateRequest{Prompt: "p"})
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Failure.Kind != ai.FailureStatus {
		t.Fatalf("unexpected failure kind: %s", res.Failure.Kind)
	}
	if res.String() != "错误: 404" {
		t.Fatalf("unexpected marker: %q", res.String())
	}
}

func TestGenerateUndecodableResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	res := client.Generate(context.Background(), ai.GenerateRequest{Prompt: "p"})
	if res.OK() || res.Failure.Kind != ai.FailureDecode {
		t.Fatalf("expected decode failure, got %+v", res)
	}
}

func TestGenerateUnreachableReturnsMarker(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := New(url, "", 0, zap.NewNop()).Generate(context.Background(), ai.GenerateRequest{Prompt: "p"})

	if res.OK() || res.Failure.Kind != ai.FailureTransport {
		t.Fatalf("expected transport failure, got %+v", res)
	}
	if !strings.HasPrefix(res.String(), "错误:") {
		t.Fatalf("expected error marker, got %q", res.String())
	}
}

func TestChat(t *testing.T) {
	var payload api.ChatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"你好"}}`)
	})

	res := client.Chat(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
	})

	if !res.OK() || res.Text != "你好" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Content != "hi" || payload.Stream == nil || *payload.Stream {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestEmbeddings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			http.Error(w, "no", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"embedding":[0.1,0.2]}`)
	})

	if got := client.Embeddings(context.Background(), "text"); len(got) != 2 || got[1] != 0.2 {
		t.Fatalf("unexpected embedding: %v", got)
	}

	failing := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := failing.Embeddings(context.Background(), "text")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil vector, got %v", got)
	}
}
