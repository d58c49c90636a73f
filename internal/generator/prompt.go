package generator

import (
	"fmt"
	"strings"

	"github.com/dkrish/quizforge/internal/pipeline"
)

const systemPrompt = `You are a math teacher creating practice questions for elementary school students.

Rules:
- Generate exactly the requested number of questions for the given type, grade, and difficulty.
- Use plain ASCII text for all math. No LaTeX, no Unicode symbols. Use / for fractions, * for multiplication, and standard operators.
- Each question must be clear, self-contained, and solvable by a student of the given grade.
- Keep every question under 50 words.
- The answer must be a single number, computed correctly.
- The explanation must show the solution step by step in at least one full sentence.
- Vary the scenarios, names, and numbers so no two questions read alike.
- Phrase each question with vocabulary matching its operation (for addition use words like "add", "plus", "total"; for subtraction "minus", "difference", "left"; and so on).`

// buildUserMessage constructs the user message from the request context.
func buildUserMessage(wc *pipeline.Context, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question type: %s\n", wc.QuestionType)
	fmt.Fprintf(&b, "Grade: %d\n", wc.Grade)
	if wc.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", wc.Difficulty)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	if r := wc.DifficultySettings.NumberRange; r != nil {
		fmt.Fprintf(&b, "Every number appearing in a question must be between %g and %g.\n", r.Min, r.Max)
	}

	if len(wc.RelatedTopics) > 0 {
		b.WriteString("\nWeave in these related curriculum topics where natural:\n")
		for i, topic := range wc.RelatedTopics {
			fmt.Fprintf(&b, "%d. %s\n", i+1, topic)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
