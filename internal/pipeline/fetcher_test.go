package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arguslabs/argus/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "argus-test",
		MaxBodyBytes: 1 << 20,
	}
}

func TestFetchHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/dog-facts.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>
<script>var x = "hidden";</script>
<p>The dog barks. The dog does not bark.</p>
</body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	result, err := f.Fetch(context.Background(), server.URL+"/dog-facts.html")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(result.Text, "The dog barks.") {
		t.Errorf("text missing page content: %q", result.Text)
	}
	if strings.Contains(result.Text, "hidden") {
		t.Errorf("text leaked script content: %q", result.Text)
	}
	if result.Subject != "dog facts" {
		t.Errorf("subject = %q, want %q", result.Subject, "dog facts")
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", result.StatusCode)
	}
}

func TestFetchPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("The sky is blue."))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	result, err := f.Fetch(context.Background(), server.URL+"/notes.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Text != "The sky is blue." {
		t.Errorf("text = %q", result.Text)
	}
}

func TestFetchRobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("should not be reachable"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	_, err := f.Fetch(context.Background(), server.URL+"/private/page.html")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Fatalf("error = %v, want ErrRobotsDisallowed", err)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok ok"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, err := f.Fetch(context.Background(), server.URL+"/page"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "argus-test" {
		t.Errorf("User-Agent = %q, want argus-test", gotUA)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig())
	if _, err := f.Fetch(context.Background(), server.URL+"/broken"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestFetchBodyLimit(t *testing.T) {
	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 16

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer server.Close()

	f := NewFetcher(cfg)
	result, err := f.Fetch(context.Background(), server.URL+"/big")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(result.Text) != 16 {
		t.Errorf("body length = %d, want 16", len(result.Text))
	}
}

func TestSubjectFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/dog-facts.html", "dog facts"},
		{"https://example.com/a/b/under_score", "under score"},
		{"https://example.com/", "example.com"},
		{"https://example.com", "example.com"},
	}
	for _, tt := range tests {
		if got := subjectFromURL(tt.url); got != tt.want {
			t.Errorf("subjectFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
