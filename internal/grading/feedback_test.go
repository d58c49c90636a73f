package grading

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicOf(t *testing.T) {
	tests := []struct {
		text  string
		topic string
		ok    bool
	}{
		{"Solve this ADDITION puzzle", "addition", true},
		{"A tricky subtraction question", "subtraction", true},
		{"Compare the fractions 1/2 and 1/3", "fraction", true},
		{"A word problem about trains", "word problem", true},
		{"What is 2 + 2?", "", false},
	}
	for _, tt := range tests {
		topic, ok := topicOf(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.topic, topic, tt.text)
	}
}

func TestPartitionByTopic(t *testing.T) {
	results := []QuestionResult{
		{QuestionText: "addition with apples", Score: 10},
		{QuestionText: "another addition drill", Score: 9},
		{QuestionText: "subtraction on a number line", Score: 4},
		{QuestionText: "division of cookies", Score: 8},
		{QuestionText: "mystery question with no subject", Score: 0},
	}

	strengths, improvements := partitionByTopic(results)

	assert.Equal(t, []string{"Strong grasp of addition", "Strong grasp of division"}, strengths)
	assert.Equal(t, []string{"More practice needed with subtraction"}, improvements)
}

func TestPartitionByTopic_SameTopicBothLists(t *testing.T) {
	results := []QuestionResult{
		{QuestionText: "multiplication tables", Score: 10},
		{QuestionText: "multiplication word problem", Score: 2},
	}

	strengths, improvements := partitionByTopic(results)

	assert.Contains(t, strengths, "Strong grasp of multiplication")
	assert.Contains(t, improvements, "More practice needed with multiplication")
}

func TestOverallFeedback_AlwaysStatesPercentage(t *testing.T) {
	for _, pct := range []int{0, 49, 50, 69, 70, 89, 90, 100} {
		msg := overallFeedback(pct)
		assert.Contains(t, msg, fmt.Sprintf("%d%%", pct))
	}
}
