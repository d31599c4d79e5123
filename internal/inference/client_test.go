package inference_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/inference"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.InferenceConfig {
	return &config.InferenceConfig{
		BaseURL:     "http://upstream",
		Model:       "qwen2.5:latest",
		Timeout:     "2s",
		Temperature: 0.7,
	}
}

func newTestClient(t *testing.T, rt roundTripperFunc) *inference.Client {
	t.Helper()

	client, err := inference.NewWithHTTPClient(testConfig(), testLogger(), &http.Client{Transport: rt})
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	return client
}

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func chatReply(content string) map[string]any {
	return map[string]any{
		"model":   "qwen2.5:latest",
		"message": map[string]any{"role": "assistant", "content": content},
		"done":    true,
	}
}

func TestGenerate_Success(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/chat" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}

		var payload map[string]any
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode req: %v", err)
		}

		if payload["model"] != "qwen2.5:latest" {
			t.Fatalf("model=%v", payload["model"])
		}

		if stream, ok := payload["stream"].(bool); !ok || stream {
			t.Fatalf("stream=%v, want false", payload["stream"])
		}

		if _, ok := payload["format"]; ok {
			t.Fatal("format should be omitted for unstructured requests")
		}

		msgs, _ := payload["messages"].([]any)
		if len(msgs) != 1 {
			t.Fatalf("messages=%v, want 1 entry", msgs)
		}

		return jsonResponse(t, http.StatusOK, chatReply("a fine listing")), nil
	})

	gen, err := client.Generate(context.Background(), "describe the product", inference.Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if gen.Content != "a fine listing" {
		t.Errorf("Content = %q, want %q", gen.Content, "a fine listing")
	}

	if gen.Model != "qwen2.5:latest" {
		t.Errorf("Model = %q, want %q", gen.Model, "qwen2.5:latest")
	}

	if gen.Duration < 0 {
		t.Errorf("Duration = %v, want non-negative", gen.Duration)
	}
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request should be sent for an empty prompt")
		return nil, nil
	})

	tests := []string{"", "   ", "\n\t"}

	for _, prompt := range tests {
		if _, err := client.Generate(context.Background(), prompt, inference.Options{}); !errors.Is(err, inference.ErrEmptyPrompt) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyPrompt", prompt, err)
		}
	}
}

func TestGenerate_Structured(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		var payload map[string]any
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode req: %v", err)
		}

		if payload["format"] != "json" {
			t.Fatalf("format=%v, want json", payload["format"])
		}

		return jsonResponse(t, http.StatusOK, chatReply(`{"ok":true}`)), nil
	})

	if _, err := client.Generate(context.Background(), "respond in json", inference.Options{Structured: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerate_TemperatureOverride(t *testing.T) {
	override := 0.1

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		var payload struct {
			Options struct {
				Temperature float64 `json:"temperature"`
			} `json:"options"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode req: %v", err)
		}

		if payload.Options.Temperature != override {
			t.Fatalf("temperature=%g, want %g", payload.Options.Temperature, override)
		}

		return jsonResponse(t, http.StatusOK, chatReply("ok")), nil
	})

	if _, err := client.Generate(context.Background(), "hi", inference.Options{Temperature: &override}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerate_ServerError(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(bytes.NewReader([]byte("model not loaded"))),
		}, nil
	})

	_, err := client.Generate(context.Background(), "hi", inference.Options{})
	if !errors.Is(err, inference.ErrConnection) {
		t.Errorf("Generate error = %v, want ErrConnection", err)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	_, err := client.Generate(context.Background(), "hi", inference.Options{Timeout: 10 * time.Millisecond})
	if !errors.Is(err, inference.ErrTimeout) {
		t.Errorf("Generate error = %v, want ErrTimeout", err)
	}
}

func TestGenerate_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.Generate(ctx, "hi", inference.Options{})
	if !errors.Is(err, inference.ErrTimeout) {
		t.Errorf("Generate error = %v, want ErrTimeout", err)
	}
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, chatReply("  ")), nil
	})

	_, err := client.Generate(context.Background(), "hi", inference.Options{})
	if !errors.Is(err, inference.ErrConnection) {
		t.Errorf("Generate error = %v, want ErrConnection for blank completion", err)
	}
}

func TestGenerate_UndecodableReply(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte("not json at all"))),
		}, nil
	})

	_, err := client.Generate(context.Background(), "hi", inference.Options{})
	if !errors.Is(err, inference.ErrConnection) {
		t.Errorf("Generate error = %v, want ErrConnection", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "   "

	if _, err := inference.New(cfg, testLogger()); err == nil {
		t.Error("New() should reject a blank base URL")
	}
}

func TestNew_TrimsBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "http://upstream/"

	client, err := inference.NewWithHTTPClient(cfg, testLogger(), &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.String() != "http://upstream/api/chat" {
				t.Fatalf("url=%s, want trailing slash trimmed", req.URL)
			}
			return jsonResponse(t, http.StatusOK, chatReply("ok")), nil
		}),
	})
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}

	if _, err := client.Generate(context.Background(), "hi", inference.Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}
