package generator

import "github.com/dkrish/quizforge/internal/llm"

// BatchSchema defines the JSON schema for LLM question-batch responses.
var BatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of math practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the student, in plain ASCII text",
						},
						"answer": map[string]any{
							"type":        "number",
							"description": "The correct numeric answer",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Step-by-step worked solution, age-appropriate for a child",
						},
					},
					"required":             []any{"text", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
