package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	// Clear env overrides so file values are observable
	for _, env := range []string{"PUBMED_API_KEY", "GROK_API_KEY", "GROK_API_URL", "GROK_MODEL", "CHRONOS_SYNONYMS", "CHRONOS_DB"} {
		t.Setenv(env, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	dir := setConfigHome(t)
	writeConfig(t, dir, "pubmed_api_key: pk\nllm_api_key: lk\nllm_model: grok-1\ndb_path: /tmp/test.db\n")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.PubMedAPIKey != "pk" || cfg.LLMAPIKey != "lk" || cfg.LLMModel != "grok-1" {
		t.Errorf("loaded config = %+v", cfg)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadGlobalConfigMissing(t *testing.T) {
	setConfigHome(t)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.PubMedAPIKey != "" {
		t.Errorf("missing config file produced keys: %+v", cfg)
	}
	// Default DB path sits next to the config file
	if filepath.Base(cfg.DBPath) != DBFile {
		t.Errorf("default DBPath = %q, want basename %q", cfg.DBPath, DBFile)
	}
}

func TestLoadGlobalConfigEnvOverride(t *testing.T) {
	dir := setConfigHome(t)
	writeConfig(t, dir, "pubmed_api_key: from-file\n")
	t.Setenv("PUBMED_API_KEY", "from-env")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PubMedAPIKey != "from-env" {
		t.Errorf("PubMedAPIKey = %q, env must override file", cfg.PubMedAPIKey)
	}
}

func TestLoadGlobalConfigMalformed(t *testing.T) {
	dir := setConfigHome(t)
	writeConfig(t, dir, "pubmed_api_key: [unterminated\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() on malformed YAML returned nil error")
	}
}

func TestLoadGlobalConfigCached(t *testing.T) {
	dir := setConfigHome(t)
	writeConfig(t, dir, "pubmed_api_key: first\n")

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}

	writeConfig(t, dir, "pubmed_api_key: second\n")
	second, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second load did not return cached config")
	}

	ResetGlobalConfigCache()
	third, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if third.PubMedAPIKey != "second" {
		t.Errorf("after cache reset, PubMedAPIKey = %q, want second", third.PubMedAPIKey)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandTilde("~/data/syn.yml"); got != filepath.Join(home, "data/syn.yml") {
		t.Errorf("ExpandTilde(~/data/syn.yml) = %q", got)
	}
	if got := ExpandTilde("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandTilde(/abs/path) = %q", got)
	}
	if got := ExpandTilde(""); got != "" {
		t.Errorf("ExpandTilde(\"\") = %q", got)
	}
}
