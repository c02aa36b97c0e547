package cache

import (
	"testing"

	"modelhub/internal/config"
	"modelhub/internal/proxy"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.Config{
		Version: 1,
		Proxy:   config.Proxy{BaseURL: "https://proxy.example.com"},
		Cache:   config.Cache{Enabled: true, DataRoot: t.TempDir()},
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceAndList(t *testing.T) {
	db := openTestDB(t)

	in := int64(128000)
	first := []proxy.ModelGroup{
		{
			ModelGroup:              "gpt-4",
			Mode:                    "chat",
			SupportsFunctionCalling: true,
			SupportsVision:          true,
			MaxInputTokens:          &in,
			SupportedOpenAIParams:   []string{"temperature", "max_tokens"},
		},
		{ModelGroup: "text-embedding-3-small", Mode: "embedding"},
	}
	if err := db.ReplaceModelGroups(first); err != nil {
		t.Fatalf("ReplaceModelGroups() error = %v", err)
	}

	got, err := db.ListModelGroups()
	if err != nil {
		t.Fatalf("ListModelGroups() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].ModelGroup != "gpt-4" || got[1].ModelGroup != "text-embedding-3-small" {
		t.Errorf("fetch order not preserved: %v, %v", got[0].ModelGroup, got[1].ModelGroup)
	}
	if got[0].MaxInputTokens == nil || *got[0].MaxInputTokens != 128000 {
		t.Errorf("MaxInputTokens = %v, want 128000", got[0].MaxInputTokens)
	}
	if got[0].MaxOutputTokens != nil {
		t.Errorf("MaxOutputTokens = %v, want nil round trip", got[0].MaxOutputTokens)
	}
	if len(got[0].SupportedOpenAIParams) != 2 || got[0].SupportedOpenAIParams[0] != "temperature" {
		t.Errorf("params = %v, order must survive the cache", got[0].SupportedOpenAIParams)
	}
	if !got[0].SupportsVision || got[1].SupportsVision {
		t.Error("capability flags mangled in round trip")
	}

	// A second fetch replaces the listing wholesale.
	if err := db.ReplaceModelGroups([]proxy.ModelGroup{{ModelGroup: "claude-3"}}); err != nil {
		t.Fatalf("ReplaceModelGroups() error = %v", err)
	}
	got, err = db.ListModelGroups()
	if err != nil {
		t.Fatalf("ListModelGroups() error = %v", err)
	}
	if len(got) != 1 || got[0].ModelGroup != "claude-3" {
		t.Errorf("got %v, want wholesale replacement", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if _, known, err := db.GetSetting(proxy.SettingPublicModelHub); err != nil || known {
		t.Fatalf("GetSetting() = known=%v err=%v, want unknown", known, err)
	}

	if err := db.SetSetting(proxy.SettingPublicModelHub, true); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	v, known, err := db.GetSetting(proxy.SettingPublicModelHub)
	if err != nil || !known || !v {
		t.Errorf("GetSetting() = %v,%v,%v, want true,true,nil", v, known, err)
	}

	if err := db.SetSetting(proxy.SettingPublicModelHub, false); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	v, known, err = db.GetSetting(proxy.SettingPublicModelHub)
	if err != nil || !known || v {
		t.Errorf("GetSetting() = %v,%v,%v, want false,true,nil", v, known, err)
	}
}
