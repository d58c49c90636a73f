package grading

import (
	"bytes"
	"text/template"
)

const gradingSystemPrompt = `You are a patient elementary school math grader. Grade the student's answer against the question using partial credit.

Instructions:
- Award 10 points for a fully correct answer, 0 for no meaningful attempt.
- Award partial credit (1-9) when the approach is right but the result is wrong, or the result is right without the asked-for reasoning.
- Keep feedback to one or two sentences, addressed to the student, and encouraging.
- Set is_correct to true only when the answer deserves full or near-full credit.`

var gradingUserTemplate = template.Must(template.New("grade").Parse(`Question: {{.QuestionText}}
Student's answer: {{.StudentAnswer}}`))

func buildGradingMessage(a SubmittedAnswer) (string, error) {
	var buf bytes.Buffer
	if err := gradingUserTemplate.Execute(&buf, a); err != nil {
		return "", err
	}
	return buf.String(), nil
}
