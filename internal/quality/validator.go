package quality

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dkrish/quizforge/internal/pipeline"
)

// Validator is the pipeline stage that inspects generated questions for
// mathematical correctness, age/grade fit, pedagogical soundness, and
// set-level diversity. It writes the qualityChecks record and mirrors all
// findings into workflow warnings; it never aborts the pipeline over a
// flawed question.
type Validator struct {
	cfg Config
}

// New creates a quality validator with the given heuristic parameters.
func New(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

func (v *Validator) Name() string { return "quality-validator" }

func (v *Validator) Description() string {
	return "Checks generated questions for math accuracy, grade fit, pedagogy, and batch diversity"
}

// Process validates every question in the context and writes QualityChecks.
// An empty candidate set is not fatal: it records a warning and returns the
// context unchanged.
func (v *Validator) Process(_ context.Context, wc *pipeline.Context) *pipeline.Context {
	if len(wc.Questions) == 0 {
		wc.AddWarning(v.Name() + ": no questions to validate")
		return wc
	}

	checks := &pipeline.QualityChecks{
		MathematicalAccuracy: true,
		AgeAppropriateness:   true,
		PedagogicalSoundness: true,
		Issues:               []string{},
	}

	for i, q := range wc.Questions {
		for _, issue := range v.checkStructure(q) {
			checks.Issues = append(checks.Issues, indexed(i, issue))
		}
		for _, issue := range v.checkMath(q, wc.QuestionType) {
			checks.MathematicalAccuracy = false
			checks.Issues = append(checks.Issues, indexed(i, issue))
		}
		for _, issue := range v.checkAgeFit(q, wc.Grade, wc.DifficultySettings.NumberRange) {
			checks.AgeAppropriateness = false
			checks.Issues = append(checks.Issues, indexed(i, issue))
		}
		for _, issue := range v.checkPedagogy(q, wc.QuestionType) {
			checks.PedagogicalSoundness = false
			checks.Issues = append(checks.Issues, indexed(i, issue))
		}
	}

	checks.DiversityScore = DiversityScore(wc.Questions, v.cfg)
	if len(wc.Questions) >= 2 && checks.DiversityScore < v.cfg.MinDiversity {
		checks.Issues = append(checks.Issues, "Questions lack sufficient diversity")
	}

	wc.QualityChecks = checks
	for _, issue := range checks.Issues {
		wc.AddWarning(issue)
	}

	return wc
}

// ProcessStructured runs the same per-question checks over the structured
// carrier and returns a fixed-shape summary instead of mutating a context.
func (v *Validator) ProcessStructured(_ context.Context, sc *pipeline.StructuredContext) *pipeline.QualitySummary {
	var issues []string
	for i, q := range sc.Questions {
		for _, issue := range v.checkStructure(q) {
			issues = append(issues, indexed(i, issue))
		}
		for _, issue := range v.checkMath(q, sc.QuestionType) {
			issues = append(issues, indexed(i, issue))
		}
		for _, issue := range v.checkAgeFit(q, sc.Grade, nil) {
			issues = append(issues, indexed(i, issue))
		}
		for _, issue := range v.checkPedagogy(q, sc.QuestionType) {
			issues = append(issues, indexed(i, issue))
		}
	}

	return &pipeline.QualitySummary{
		Passed: len(issues) == 0,
		Score:  DiversityScore(sc.Questions, v.cfg),
		Issues: issues,
	}
}

// checkStructure verifies the question is shaped like a question at all.
func (v *Validator) checkStructure(q pipeline.Question) []string {
	var issues []string
	if len(q.Text) < v.cfg.MinTextLength {
		issues = append(issues, fmt.Sprintf("question text too short (%d chars, minimum %d)", len(q.Text), v.cfg.MinTextLength))
	}
	if math.IsNaN(q.Answer) || math.IsInf(q.Answer, 0) {
		issues = append(issues, "answer is not a finite number")
	}
	return issues
}

// checkMath recomputes the expected result for binary arithmetic types
// from the first two numbers in the question text and compares it to the
// stated answer. Types with no recomputation rule pass by default.
func (v *Validator) checkMath(q pipeline.Question, questionType string) []string {
	nums := extractNumbers(q.Text)
	if len(nums) < 2 {
		return nil
	}

	expected, ok := recompute(questionType, nums[0], nums[1])
	if !ok {
		return nil
	}

	if math.Abs(expected-q.Answer) > v.cfg.Tolerance {
		return []string{fmt.Sprintf("stated answer %v does not match computed %v", q.Answer, expected)}
	}
	return nil
}

// gradeCeilings for extracted numbers and for the answer's magnitude.
// Grades above 4 have no extracted-number ceiling.
func numberCeiling(grade int) (float64, bool) {
	switch {
	case grade <= 2:
		return 20, true
	case grade <= 4:
		return 100, true
	default:
		return 0, false
	}
}

func answerCeiling(grade int) float64 {
	switch {
	case grade <= 2:
		return 50
	case grade <= 4:
		return 500
	default:
		return 5000
	}
}

// checkAgeFit enforces the configured number range and the grade-tiered
// ceilings for question numbers and answer magnitude.
func (v *Validator) checkAgeFit(q pipeline.Question, grade int, numberRange *pipeline.Range) []string {
	var issues []string
	nums := extractNumbers(q.Text)

	if numberRange != nil {
		for _, n := range nums {
			if n < numberRange.Min || n > numberRange.Max {
				issues = append(issues, fmt.Sprintf("number %v outside configured range [%v, %v]", n, numberRange.Min, numberRange.Max))
				break
			}
		}
	}

	if ceiling, ok := numberCeiling(grade); ok {
		for _, n := range nums {
			if n > ceiling {
				issues = append(issues, fmt.Sprintf("number %v too large for grade %d (limit %v)", n, grade, ceiling))
				break
			}
		}
	}

	if limit := answerCeiling(grade); math.Abs(q.Answer) > limit {
		issues = append(issues, fmt.Sprintf("answer magnitude %v exceeds grade %d limit %v", math.Abs(q.Answer), grade, limit))
	}

	return issues
}

// checkPedagogy applies the verbosity, explanation, and vocabulary
// heuristics.
func (v *Validator) checkPedagogy(q pipeline.Question, questionType string) []string {
	var issues []string

	if words := len(strings.Fields(q.Text)); words > v.cfg.MaxWords {
		issues = append(issues, fmt.Sprintf("question too verbose (%d words, limit %d)", words, v.cfg.MaxWords))
	}
	if len(strings.TrimSpace(q.Explanation)) < v.cfg.MinExplanationLength {
		issues = append(issues, "explanation missing or too short")
	}
	if !hasTypeKeyword(questionType, q.Text) {
		issues = append(issues, fmt.Sprintf("question lacks %s vocabulary", questionType))
	}

	return issues
}

// indexed prefixes an issue with its 1-based question number.
func indexed(i int, issue string) string {
	return fmt.Sprintf("Question %d: %s", i+1, issue)
}
