package cli

import (
	"testing"

	"github.com/ppiankov/fnoltriage/internal/model"
)

func TestResultFilename(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/claims/claim_001.txt", "claim_001.json"},
		{"claim.html", "claim.json"},
		{"./nested/dir/fnol.md", "fnol.json"},
	}
	for _, tc := range cases {
		if got := resultFilename(tc.path); got != tc.want {
			t.Errorf("resultFilename(%q): expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestConfigureLLM_DisabledClearsProvider(t *testing.T) {
	llmEnabled = false
	defer func() { llmEnabled = false }()

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "openai"
	if err := configureLLM(cfg); err != nil {
		t.Fatalf("configureLLM failed: %v", err)
	}
	if cfg.LLM.Provider != "" {
		t.Errorf("Expected provider cleared when disabled, got %q", cfg.LLM.Provider)
	}
}

func TestConfigureLLM_OpenAIRequiresEnvKey(t *testing.T) {
	llmEnabled = true
	llmProvider = "openai"
	defer func() { llmEnabled = false }()
	t.Setenv("OPENAI_API_KEY", "")

	if err := configureLLM(model.DefaultConfig()); err == nil {
		t.Error("Expected error without OPENAI_API_KEY")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := model.DefaultConfig()
	if err := configureLLM(cfg); err != nil {
		t.Fatalf("configureLLM failed: %v", err)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("Expected key from environment, got %q", cfg.LLM.APIKey)
	}
}

func TestConfigureLLM_OllamaBaseURLFromEnv(t *testing.T) {
	llmEnabled = true
	llmProvider = "ollama"
	llmModel = "llama3.2"
	defer func() {
		llmEnabled = false
		llmProvider = "openai"
		llmModel = ""
	}()
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.internal:11434")

	cfg := model.DefaultConfig()
	if err := configureLLM(cfg); err != nil {
		t.Fatalf("configureLLM failed: %v", err)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3.2" {
		t.Errorf("Unexpected LLM config: %+v", cfg.LLM)
	}
	if cfg.LLM.BaseURL != "http://ollama.internal:11434" {
		t.Errorf("Expected base URL from environment, got %q", cfg.LLM.BaseURL)
	}
}
