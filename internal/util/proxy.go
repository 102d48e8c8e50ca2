package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc creates a proxy function for HTTP transports. Explicit proxy
// URLs win over the environment; with none configured it falls back to
// http.ProxyFromEnvironment. noProxy is a comma-separated list of hosts
// (and domain suffixes) that bypass the configured proxies.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skipped := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if bypassProxy(req.URL.Hostname(), skipped) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseNoProxy(noProxy string) []string {
	var entries []string
	for _, entry := range strings.Split(noProxy, ",") {
		entry = strings.TrimSpace(strings.ToLower(entry))
		entry = strings.TrimPrefix(entry, ".")
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// bypassProxy matches a host against no-proxy entries: exact host or any
// parent domain.
func bypassProxy(host string, entries []string) bool {
	host = strings.ToLower(host)
	for _, entry := range entries {
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
