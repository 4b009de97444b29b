package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "example.com,.corp.local")

	tests := []struct {
		url  string
		want string
	}{
		{"http://news.example.org/a", "http://proxy.internal:3128"},
		{"https://news.example.org/a", "http://proxy.internal:3128"},
		{"http://example.com/a", ""},
		{"https://wiki.corp.local/a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.url, nil)
			if err != nil {
				t.Fatal(err)
			}
			got, err := proxy(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotStr := ""
			if got != nil {
				gotStr = got.String()
			}
			if gotStr != tt.want {
				t.Errorf("proxy(%s) = %q, want %q", tt.url, gotStr, tt.want)
			}
		})
	}
}

func TestNewProxyFunc_SeparateHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://plain:3128", "http://secure:3129", "")
	req, _ := http.NewRequest(http.MethodGet, "https://news.example.org/", nil)
	got, err := proxy(req)
	if err != nil || got == nil || got.Host != "secure:3129" {
		t.Errorf("expected the https proxy, got %v %v", got, err)
	}
}
