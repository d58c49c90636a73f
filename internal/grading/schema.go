package grading

import "github.com/dkrish/quizforge/internal/llm"

// GradeSchema defines the JSON schema for per-answer grading responses.
var GradeSchema = &llm.Schema{
	Name:        "answer-grade",
	Description: "Partial-credit grade for one student answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Partial-credit score from 0 (no credit) to 10 (full credit)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two encouraging sentences explaining the grade to the student",
			},
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer is considered correct overall",
			},
		},
		"required":             []any{"score", "feedback", "is_correct"},
		"additionalProperties": false,
	},
}
