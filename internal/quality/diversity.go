package quality

import (
	"math"
	"strings"

	"github.com/dkrish/quizforge/internal/pipeline"
)

// DiversityScore measures how dissimilar a batch of questions are from one
// another, in [0, 1]. It combines answer uniqueness (weight cfg.AnswerWeight)
// with text dissimilarity (weight cfg.TextWeight). A single question is
// trivially diverse and scores 1.
func DiversityScore(questions []pipeline.Question, cfg Config) float64 {
	n := len(questions)
	if n <= 1 {
		return 1.0
	}

	// Answer-uniqueness term: distinct rounded answers over batch size.
	distinct := make(map[int64]struct{}, n)
	for _, q := range questions {
		distinct[int64(math.Round(q.Answer))] = struct{}{}
	}
	answerTerm := float64(len(distinct)) / float64(n)

	// Text term: 1 minus the mean pairwise Jaccard similarity of word sets.
	sets := make([]map[string]struct{}, n)
	for i, q := range questions {
		sets[i] = wordSet(q.Text)
	}
	var simSum float64
	var pairs int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			simSum += jaccard(sets[i], sets[j])
			pairs++
		}
	}
	textTerm := 1 - simSum/float64(pairs)

	score := cfg.AnswerWeight*answerTerm + cfg.TextWeight*textTerm
	return clamp01(score)
}

// wordSet lower-cases and whitespace-tokenizes text into a set.
func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// jaccard computes |a ∩ b| / |a ∪ b|. Two empty sets are identical.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	var inter int
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
