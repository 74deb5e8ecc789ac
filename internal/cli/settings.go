package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/landwatch/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// registerDefaults seeds v with every key of the default config so env
// overrides reach keys absent from the config file.
func registerDefaults(v *viper.Viper) error {
	b, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(b, &tree); err != nil {
		return err
	}
	setDefaults(v, "", tree)

	// omitempty keys never show up in the marshaled tree
	for _, key := range []string{"llm.api_key", "llm.base_url", "llm.http_proxy", "llm.https_proxy", "llm.no_proxy"} {
		_ = v.BindEnv(key)
	}
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// loadConfig resolves flags, env, config file and defaults into a Config.
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyProviderEnv(&cfg.LLM)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyProviderEnv falls back to the provider's conventional variables
// when the config carries no credentials.
func applyProviderEnv(llm *model.LLMConfig) {
	switch strings.ToLower(llm.Provider) {
	case "openai":
		if llm.APIKey == "" {
			llm.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if llm.APIKey == "" {
			llm.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if llm.BaseURL == "" {
			llm.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}
