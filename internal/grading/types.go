package grading

import "time"

// PointsPerQuestion is the fixed per-answer score ceiling.
const PointsPerQuestion = 10

// Submission is an immutable batch of student answers to grade.
type Submission struct {
	SessionID    string            `json:"sessionId"`
	StudentID    string            `json:"studentId"`
	StudentEmail string            `json:"studentEmail"`
	Answers      []SubmittedAnswer `json:"answers"`
	SubmittedAt  time.Time         `json:"submittedAt"`
}

// SubmittedAnswer pairs a question with the student's free-text answer.
type SubmittedAnswer struct {
	QuestionID    string `json:"questionId"`
	QuestionText  string `json:"questionText"`
	StudentAnswer string `json:"studentAnswer"`
}

// QuestionResult is the graded outcome for a single answer.
// IsCorrect is echoed verbatim from the model's grading JSON; the
// aggregate depends only on Score.
type QuestionResult struct {
	QuestionID    string  `json:"questionId"`
	QuestionText  string  `json:"questionText"`
	StudentAnswer string  `json:"studentAnswer"`
	Score         float64 `json:"score"`
	MaxScore      float64 `json:"maxScore"`
	Feedback      string  `json:"feedback"`
	IsCorrect     bool    `json:"isCorrect"`
}

// Result is the submission-level grading report.
type Result struct {
	Success             bool             `json:"success"`
	SessionID           string           `json:"sessionId"`
	TotalScore          float64          `json:"totalScore"`
	MaxScore            float64          `json:"maxScore"`
	PercentageScore     int              `json:"percentageScore"`
	Questions           []QuestionResult `json:"questions"`
	OverallFeedback     string           `json:"overallFeedback"`
	Strengths           []string         `json:"strengths"`
	AreasForImprovement []string         `json:"areasForImprovement"`
}
