package grading

import (
	"fmt"
	"strings"
)

// strongScore is the threshold partitioning strengths from areas needing
// improvement. The model's is_correct label usually agrees with it but is
// reported independently.
const strongScore = 8

// topics are matched as lower-cased substrings against question text to
// derive a subject token for strengths/improvement entries. Order matters:
// the first match wins.
var topics = []string{
	"addition",
	"subtraction",
	"multiplication",
	"division",
	"fraction",
	"decimal",
	"pattern",
	"measurement",
	"geometry",
	"word problem",
}

// topicOf derives a topic token from question text.
// Returns ("", false) when no topic matches; such answers contribute to
// neither list.
func topicOf(questionText string) (string, bool) {
	lower := strings.ToLower(questionText)
	for _, topic := range topics {
		if strings.Contains(lower, topic) {
			return topic, true
		}
	}
	return "", false
}

// partitionByTopic splits graded answers into strengths (score ≥ 8) and
// areas for improvement (score < 8), keyed by each question's topic token.
// Duplicate topics collapse to one entry per list.
func partitionByTopic(results []QuestionResult) (strengths, improvements []string) {
	seenStrong := make(map[string]struct{})
	seenWeak := make(map[string]struct{})

	for _, r := range results {
		topic, ok := topicOf(r.QuestionText)
		if !ok {
			continue
		}
		if r.Score >= strongScore {
			if _, dup := seenStrong[topic]; dup {
				continue
			}
			seenStrong[topic] = struct{}{}
			strengths = append(strengths, "Strong grasp of "+topic)
		} else {
			if _, dup := seenWeak[topic]; dup {
				continue
			}
			seenWeak[topic] = struct{}{}
			improvements = append(improvements, "More practice needed with "+topic)
		}
	}
	return strengths, improvements
}

// overallFeedback synthesizes a one-line summary that always states the
// numeric percentage.
func overallFeedback(pct int) string {
	switch {
	case pct >= 90:
		return fmt.Sprintf("Excellent work! You scored %d%% on this session.", pct)
	case pct >= 70:
		return fmt.Sprintf("Good job! You scored %d%% — keep it up.", pct)
	case pct >= 50:
		return fmt.Sprintf("You scored %d%%. A bit more practice will go a long way.", pct)
	default:
		return fmt.Sprintf("You scored %d%%. Let's review these topics together and try again.", pct)
	}
}
