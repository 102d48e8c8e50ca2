package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxyFn := NewProxyFunc("http://proxy.local:3128", "http://secure-proxy.local:3128", "")

	httpReq := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	u, err := proxyFn(httpReq)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u == nil || u.Host != "proxy.local:3128" {
		t.Errorf("http proxy = %v, want proxy.local:3128", u)
	}

	httpsReq := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	u, err = proxyFn(httpsReq)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u == nil || u.Host != "secure-proxy.local:3128" {
		t.Errorf("https proxy = %v, want secure-proxy.local:3128", u)
	}
}

func TestNewProxyFuncHTTPFallback(t *testing.T) {
	// Only an HTTP proxy configured: HTTPS requests use it too.
	proxyFn := NewProxyFunc("http://proxy.local:3128", "", "")

	httpsReq := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	u, err := proxyFn(httpsReq)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u == nil || u.Host != "proxy.local:3128" {
		t.Errorf("https fallback proxy = %v, want proxy.local:3128", u)
	}
}

func TestNewProxyFuncNoProxy(t *testing.T) {
	proxyFn := NewProxyFunc("http://proxy.local:3128", "", "internal.corp, .svc.local, 127.0.0.1")

	tests := []struct {
		url    string
		bypass bool
	}{
		{"http://internal.corp/page", true},
		{"http://api.internal.corp/page", true},
		{"http://db.svc.local/page", true},
		{"http://127.0.0.1:8080/page", true},
		{"http://example.com/page", false},
		{"http://notinternal.corp.example.com/page", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.url, nil)
		u, err := proxyFn(req)
		if err != nil {
			t.Fatalf("proxy func(%s): %v", tt.url, err)
		}
		if tt.bypass && u != nil {
			t.Errorf("%s: proxied through %v, want direct", tt.url, u)
		}
		if !tt.bypass && (u == nil || u.Host != "proxy.local:3128") {
			t.Errorf("%s: proxy = %v, want proxy.local:3128", tt.url, u)
		}
	}
}
