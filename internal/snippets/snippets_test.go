package snippets

import (
	"strings"
	"testing"
)

func TestTabsSubstituteModel(t *testing.T) {
	tabs := Tabs("gpt-4", []string{"temperature"}, "https://proxy.example.com")
	if len(tabs) != 4 {
		t.Fatalf("got %d tabs, want 4", len(tabs))
	}
	for i, tab := range tabs {
		if tab.Title == "Supported OpenAI params" {
			continue
		}
		if !strings.Contains(tab.Body, "gpt-4") {
			t.Errorf("tab %d (%s) missing model identifier", i, tab.Title)
		}
		if !strings.Contains(tab.Body, "https://proxy.example.com") {
			t.Errorf("tab %d (%s) missing base url", i, tab.Title)
		}
	}
}

func TestTabsBaseURLPlaceholder(t *testing.T) {
	tabs := Tabs("gpt-4", nil, "")
	if !strings.Contains(tabs[0].Body, BaseURLPlaceholder) {
		t.Error("empty base url should fall back to placeholder")
	}
}

func TestSupportedParams(t *testing.T) {
	tests := []struct {
		name   string
		params []string
		want   string
	}{
		{
			name:   "order preserved",
			params: []string{"temperature", "max_tokens", "stream"},
			want:   "temperature\nmax_tokens\nstream",
		},
		{
			name:   "single param",
			params: []string{"temperature"},
			want:   "temperature",
		},
		{
			name:   "empty sequence renders empty",
			params: nil,
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SupportedParams(tt.params); got != tt.want {
				t.Errorf("SupportedParams(%v) = %q, want %q", tt.params, got, tt.want)
			}
		})
	}
}
