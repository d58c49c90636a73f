package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrish/quizforge/internal/llm"
)

// serialConfig grades one answer at a time so canned mock responses map to
// answers in submission order.
func serialConfig() Config {
	cfg := DefaultConfig()
	cfg.Concurrency = 1
	return cfg
}

func validSubmission(answers ...SubmittedAnswer) *Submission {
	return &Submission{
		SessionID:    "sess-42",
		StudentID:    "student-7",
		StudentEmail: "kid@example.com",
		Answers:      answers,
		SubmittedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func gradeJSON(score float64, feedback string, correct bool) llm.MockResponse {
	content := fmt.Sprintf(`{"score":%v,"feedback":%q,"is_correct":%v}`, score, feedback, correct)
	return llm.MockResponse{Content: json.RawMessage(content)}
}

func TestValidateAnswers_AggregatesScores(t *testing.T) {
	mock := llm.NewMockProvider(
		gradeJSON(10, "Perfect.", true),
		gradeJSON(5, "Half right.", false),
		gradeJSON(0, "Not quite.", false),
	)
	g := New(mock, serialConfig())

	sub := validSubmission(
		SubmittedAnswer{QuestionID: "q1", QuestionText: "What is 2 + 3? (addition)", StudentAnswer: "5"},
		SubmittedAnswer{QuestionID: "q2", QuestionText: "What is 9 - 4? (subtraction)", StudentAnswer: "4"},
		SubmittedAnswer{QuestionID: "q3", QuestionText: "What is 3 x 3? (multiplication)", StudentAnswer: "33"},
	)

	result, err := g.ValidateAnswers(context.Background(), sub)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "sess-42", result.SessionID)
	assert.Equal(t, 15.0, result.TotalScore)
	assert.Equal(t, 30.0, result.MaxScore)
	assert.Equal(t, 50, result.PercentageScore)
	assert.Contains(t, result.OverallFeedback, "50%")
}

func TestValidateAnswers_PerfectScore(t *testing.T) {
	mock := llm.NewMockProvider(
		gradeJSON(10, "Great.", true),
		gradeJSON(10, "Great.", true),
		gradeJSON(10, "Great.", true),
	)
	g := New(mock, serialConfig())

	sub := validSubmission(
		SubmittedAnswer{QuestionID: "q1", QuestionText: "addition drill one", StudentAnswer: "7"},
		SubmittedAnswer{QuestionID: "q2", QuestionText: "addition drill two", StudentAnswer: "12"},
		SubmittedAnswer{QuestionID: "q3", QuestionText: "addition drill three", StudentAnswer: "9"},
	)

	result, err := g.ValidateAnswers(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, 100, result.PercentageScore)
	assert.Contains(t, result.OverallFeedback, "100%")
}

func TestValidateAnswers_PreservesSubmissionOrder(t *testing.T) {
	mock := llm.NewMockProvider(
		gradeJSON(10, "first", true),
		gradeJSON(2, "second", false),
	)
	g := New(mock, serialConfig())

	sub := validSubmission(
		SubmittedAnswer{QuestionID: "q-a", QuestionText: "addition question", StudentAnswer: "1"},
		SubmittedAnswer{QuestionID: "q-b", QuestionText: "division question", StudentAnswer: "2"},
	)

	result, err := g.ValidateAnswers(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, result.Questions, 2)

	assert.Equal(t, "q-a", result.Questions[0].QuestionID)
	assert.Equal(t, 10.0, result.Questions[0].Score)
	assert.Equal(t, "q-b", result.Questions[1].QuestionID)
	assert.Equal(t, 2.0, result.Questions[1].Score)
	assert.Equal(t, 10.0, result.Questions[0].MaxScore)
}

func TestValidateAnswers_EmptySubmissionFails(t *testing.T) {
	g := New(llm.NewMockProvider(), DefaultConfig())

	_, err := g.ValidateAnswers(context.Background(), validSubmission())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySubmission)
	assert.Contains(t, err.Error(), "empty submission")
	assert.Contains(t, err.Error(), "no answers")
}

func TestValidateAnswers_MissingIdentityFails(t *testing.T) {
	g := New(llm.NewMockProvider(), DefaultConfig())

	sub := validSubmission(SubmittedAnswer{QuestionID: "q1", QuestionText: "addition", StudentAnswer: "5"})
	sub.StudentEmail = "   "

	_, err := g.ValidateAnswers(context.Background(), sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "studentEmail")
}

func TestValidateAnswers_MalformedGradeFailsWholeSubmission(t *testing.T) {
	mock := llm.NewMockProvider(
		gradeJSON(10, "fine", true),
		llm.MockResponse{Content: json.RawMessage(`the dog ate my rubric`)},
	)
	g := New(mock, serialConfig())

	sub := validSubmission(
		SubmittedAnswer{QuestionID: "q1", QuestionText: "addition one", StudentAnswer: "5"},
		SubmittedAnswer{QuestionID: "q2", QuestionText: "addition two", StudentAnswer: "6"},
	)

	result, err := g.ValidateAnswers(context.Background(), sub)
	require.Error(t, err)
	assert.Nil(t, result, "no partial results on grading failure")
	assert.Contains(t, err.Error(), "answer-validator validation failed")
}

func TestValidateAnswers_ProviderFailureIsFatal(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.UnavailableError{Err: errors.New("model offline")}},
	)
	g := New(mock, serialConfig())

	sub := validSubmission(SubmittedAnswer{QuestionID: "q1", QuestionText: "addition", StudentAnswer: "5"})

	_, err := g.ValidateAnswers(context.Background(), sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer-validator validation failed")
	assert.Contains(t, err.Error(), "model offline")
}

func TestValidateAnswers_IsCorrectEchoedVerbatim(t *testing.T) {
	// A high score with is_correct=false must be reported as-is: the label
	// comes from the model, not from the score threshold.
	mock := llm.NewMockProvider(
		gradeJSON(9, "right result, shaky method", false),
	)
	g := New(mock, serialConfig())

	sub := validSubmission(SubmittedAnswer{QuestionID: "q1", QuestionText: "addition", StudentAnswer: "5"})

	result, err := g.ValidateAnswers(context.Background(), sub)
	require.NoError(t, err)
	assert.False(t, result.Questions[0].IsCorrect)
	assert.Equal(t, 9.0, result.Questions[0].Score)
}

func TestValidateAnswers_StrengthsAndImprovements(t *testing.T) {
	mock := llm.NewMockProvider(
		gradeJSON(10, "nailed it", true),
		gradeJSON(3, "needs work", false),
		gradeJSON(8, "solid", true),
	)
	g := New(mock, serialConfig())

	sub := validSubmission(
		SubmittedAnswer{QuestionID: "q1", QuestionText: "An addition word problem about apples", StudentAnswer: "12"},
		SubmittedAnswer{QuestionID: "q2", QuestionText: "A subtraction challenge", StudentAnswer: "99"},
		SubmittedAnswer{QuestionID: "q3", QuestionText: "A division puzzle", StudentAnswer: "4"},
	)

	result, err := g.ValidateAnswers(context.Background(), sub)
	require.NoError(t, err)

	assert.Contains(t, result.Strengths, "Strong grasp of addition")
	assert.Contains(t, result.Strengths, "Strong grasp of division")
	assert.Contains(t, result.AreasForImprovement, "More practice needed with subtraction")
}

func TestValidateAnswers_UsesReasoningTier(t *testing.T) {
	mock := llm.NewMockProvider(gradeJSON(7, "ok", false))
	g := New(mock, serialConfig())

	sub := validSubmission(SubmittedAnswer{QuestionID: "q1", QuestionText: "addition", StudentAnswer: "5"})
	_, err := g.ValidateAnswers(context.Background(), sub)
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	assert.True(t, mock.Calls[0].Reasoning, "grading must request the reasoning tier")
	assert.NotNil(t, mock.Calls[0].Schema)
}
