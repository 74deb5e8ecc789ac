package util

import (
	"net/http"
	"testing"
	"time"
)

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "", "internal.example")

	req, _ := http.NewRequest(http.MethodGet, "https://api.openai.com/v1/models", nil)
	got, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy.local:3128" {
		t.Errorf("expected proxy.local:3128, got %v", got)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://internal.example/api", nil)
	got, err = proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected NO_PROXY host to bypass proxy, got %v", got)
	}
}

func TestNewHTTPClient_DefaultTimeout(t *testing.T) {
	c := NewHTTPClient(0, "", "", "")
	if c.Timeout != 120*time.Second {
		t.Errorf("expected 120s default timeout, got %v", c.Timeout)
	}

	c = NewHTTPClient(5, "", "", "")
	if c.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", c.Timeout)
	}
}
