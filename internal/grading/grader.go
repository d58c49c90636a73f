package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dkrish/quizforge/internal/llm"
)

// ErrEmptySubmission is returned when a submission carries no answers.
var ErrEmptySubmission = errors.New("no answers to validate: empty submission")

// Config controls the grader's LLM usage.
type Config struct {
	// MaxTokens is the token budget per grading response.
	MaxTokens int

	// Temperature for grading calls. Low by default: grades should be
	// reproducible.
	Temperature float64

	// Concurrency caps in-flight grading calls per submission.
	Concurrency int
}

// DefaultConfig returns recommended grading defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.2,
		Concurrency: 4,
	}
}

// Grader scores a batch of free-text student answers against a
// model-graded rubric and synthesizes a submission-level report.
// Grading is all-or-nothing: any model failure or unparseable grade
// fails the whole submission with no partial result.
type Grader struct {
	provider llm.Provider
	cfg      Config
}

// New creates a grader backed by the given provider.
func New(provider llm.Provider, cfg Config) *Grader {
	return &Grader{provider: provider, cfg: cfg}
}

func (g *Grader) Name() string { return "answer-validator" }

func (g *Grader) Description() string {
	return "Scores student answers with partial credit and aggregates a submission report"
}

// gradeOutput is the raw per-answer LLM response.
type gradeOutput struct {
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
	IsCorrect bool    `json:"is_correct"`
}

// ValidateAnswers grades every answer in the submission and aggregates the
// result. The returned Questions preserve submission order regardless of
// grading-call completion order.
func (g *Grader) ValidateAnswers(ctx context.Context, sub *Submission) (*Result, error) {
	if err := checkSubmission(sub); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "answer-grading")

	results := make([]QuestionResult, len(sub.Answers))

	grp, gctx := errgroup.WithContext(ctx)
	if g.cfg.Concurrency > 0 {
		grp.SetLimit(g.cfg.Concurrency)
	}
	for i, answer := range sub.Answers {
		grp.Go(func() error {
			graded, err := g.gradeAnswer(gctx, answer)
			if err != nil {
				return err
			}
			results[i] = *graded
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("%s validation failed: %w", g.Name(), err)
	}

	return g.aggregate(sub, results), nil
}

// gradeAnswer runs one grading call through the reasoning-tier model.
func (g *Grader) gradeAnswer(ctx context.Context, a SubmittedAnswer) (*QuestionResult, error) {
	userMsg, err := buildGradingMessage(a)
	if err != nil {
		return nil, fmt.Errorf("build grading prompt: %w", err)
	}

	req := llm.Request{
		System: gradingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      GradeSchema,
		Reasoning:   true,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var raw gradeOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse grading response: %w", err)
	}

	return &QuestionResult{
		QuestionID:    a.QuestionID,
		QuestionText:  a.QuestionText,
		StudentAnswer: a.StudentAnswer,
		Score:         raw.Score,
		MaxScore:      PointsPerQuestion,
		Feedback:      raw.Feedback,
		IsCorrect:     raw.IsCorrect,
	}, nil
}

// aggregate folds per-answer grades into the submission report.
func (g *Grader) aggregate(sub *Submission, results []QuestionResult) *Result {
	var total float64
	for _, r := range results {
		total += r.Score
	}
	maxScore := float64(PointsPerQuestion * len(results))
	pct := int(math.Round(total / maxScore * 100))

	strengths, improvements := partitionByTopic(results)

	return &Result{
		Success:             true,
		SessionID:           sub.SessionID,
		TotalScore:          total,
		MaxScore:            maxScore,
		PercentageScore:     pct,
		Questions:           results,
		OverallFeedback:     overallFeedback(pct),
		Strengths:           strengths,
		AreasForImprovement: improvements,
	}
}

// checkSubmission enforces the caller contract before any model call.
func checkSubmission(sub *Submission) error {
	if sub == nil || len(sub.Answers) == 0 {
		return ErrEmptySubmission
	}
	var missing []string
	if strings.TrimSpace(sub.SessionID) == "" {
		missing = append(missing, "sessionId")
	}
	if strings.TrimSpace(sub.StudentID) == "" {
		missing = append(missing, "studentId")
	}
	if strings.TrimSpace(sub.StudentEmail) == "" {
		missing = append(missing, "studentEmail")
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid submission: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
