package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkrish/quizforge/internal/llm"
	"github.com/dkrish/quizforge/internal/pipeline"
)

// Config holds generation limits.
type Config struct {
	// MaxTokens caps the LLM response size for one batch.
	MaxTokens int

	// Temperature controls sampling randomness. Generation runs warmer
	// than grading because variety is the point.
	Temperature float64

	// DefaultCount is used when the request does not specify how many
	// questions to produce.
	DefaultCount int
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    2048,
		Temperature:  0.8,
		DefaultCount: 5,
	}
}

// Generator is the pipeline stage that produces a question batch via the
// LLM provider. It writes Questions; failures become workflow errors.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Name implements pipeline.Agent.
func (g *Generator) Name() string { return "question-generator" }

// Description implements pipeline.Agent.
func (g *Generator) Description() string {
	return "Generates a batch of grade-appropriate math questions"
}

// batchOutput is the raw LLM response before IDs are assigned.
type batchOutput struct {
	Questions []struct {
		Text        string  `json:"text"`
		Answer      float64 `json:"answer"`
		Explanation string  `json:"explanation"`
	} `json:"questions"`
}

// Process generates wc.Count questions in a single batch call. On failure
// the context is returned unchanged apart from a workflow error entry.
func (g *Generator) Process(ctx context.Context, wc *pipeline.Context) *pipeline.Context {
	ctx = llm.WithPurpose(ctx, "question-gen")

	count := wc.Count
	if count <= 0 {
		count = g.cfg.DefaultCount
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(wc, count)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		wc.AddError(g.Name(), fmt.Sprintf("LLM generation failed: %v", err))
		return wc
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		wc.AddError(g.Name(), fmt.Sprintf("failed to parse LLM response: %v", err))
		return wc
	}

	questions := make([]pipeline.Question, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		questions = append(questions, pipeline.Question{
			ID:          uuid.NewString(),
			Text:        q.Text,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	wc.Questions = questions

	if len(questions) != count {
		wc.AddWarning(fmt.Sprintf("requested %d questions, model returned %d", count, len(questions)))
	}

	return wc
}
