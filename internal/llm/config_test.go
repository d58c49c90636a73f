package llm

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic default provider, got %q", cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("unexpected default model: %q", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.ReasoningModel != "claude-sonnet" {
		t.Fatalf("unexpected default reasoning model: %q", cfg.Anthropic.ReasoningModel)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("expected 3 retry attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("QUIZFORGE_LLM_PROVIDER", "openai")
	t.Setenv("QUIZFORGE_OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZFORGE_OPENAI_MODEL", "gpt-4o")
	t.Setenv("QUIZFORGE_OPENAI_REASONING_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai, got %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("expected key override, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("expected model override, got %q", cfg.OpenAI.Model)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"anthropic with key", func(c *Config) { c.Anthropic.APIKey = "k" }, false},
		{"anthropic without key", func(c *Config) {}, true},
		{"mock needs no key", func(c *Config) { c.Provider = "mock" }, false},
		{"unknown provider", func(c *Config) { c.Provider = "llama-farm" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
