// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/chronos/config.yml.
type GlobalConfig struct {
	PubMedAPIKey string `yaml:"pubmed_api_key,omitempty"`
	LLMAPIKey    string `yaml:"llm_api_key,omitempty"`
	LLMAPIURL    string `yaml:"llm_api_url,omitempty"`
	LLMModel     string `yaml:"llm_model,omitempty"`
	SynonymsPath string `yaml:"synonyms_path,omitempty"`
	DBPath       string `yaml:"db_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "chronos"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// DBFile is the default database file name, stored next to the config.
	DBFile = "chronos.db"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/chronos/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file, then overlays
// environment variables (a .env file in the working directory is read
// first). Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	// Missing .env is the normal case
	_ = godotenv.Load()

	var cfg GlobalConfig
	path := GlobalConfigPath()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Empty config, env overlay still applies
		case err != nil:
			return nil, fmt.Errorf("reading global config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	overlayEnv(&cfg)

	cfg.SynonymsPath = ExpandTilde(cfg.SynonymsPath)
	cfg.DBPath = ExpandTilde(cfg.DBPath)
	if cfg.DBPath == "" && path != "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DBFile)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// overlayEnv applies environment variable overrides onto cfg.
func overlayEnv(cfg *GlobalConfig) {
	for _, v := range []struct {
		env  string
		dest *string
	}{
		{"PUBMED_API_KEY", &cfg.PubMedAPIKey},
		{"GROK_API_KEY", &cfg.LLMAPIKey},
		{"GROK_API_URL", &cfg.LLMAPIURL},
		{"GROK_MODEL", &cfg.LLMModel},
		{"CHRONOS_SYNONYMS", &cfg.SynonymsPath},
		{"CHRONOS_DB", &cfg.DBPath},
	} {
		if val := os.Getenv(v.env); val != "" {
			*v.dest = val
		}
	}
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetPubMedAPIKey returns the NCBI API key from global config.
func GetPubMedAPIKey() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.PubMedAPIKey
}

// GetDBPath returns the database path from global config.
func GetDBPath() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.DBPath
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage returns setup guidance when required keys are missing.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`Missing configuration.

Tip: Create %s to set API keys:
  mkdir -p %s
  cat > %s <<EOF
  pubmed_api_key: YOUR_NCBI_KEY
  llm_api_key: YOUR_LLM_KEY
  llm_api_url: https://api.example.com/v1/chat/completions
  EOF

Environment variables (PUBMED_API_KEY, GROK_API_KEY, GROK_API_URL) override
file values; a .env file in the working directory is also read.`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
