package quality

// Config tunes the quality validator's heuristics.
type Config struct {
	// AnswerWeight is the diversity weight of the answer-uniqueness term.
	AnswerWeight float64

	// TextWeight is the diversity weight of the text-dissimilarity term.
	TextWeight float64

	// MinDiversity is the batch diversity floor; scores below it are
	// flagged as an issue for multi-question batches.
	MinDiversity float64

	// MinTextLength is the minimum question text length in characters.
	MinTextLength int

	// MaxWords is the verbosity ceiling for question text.
	MaxWords int

	// MinExplanationLength is the minimum explanation length in characters.
	MinExplanationLength int

	// Tolerance is the absolute tolerance when comparing a recomputed
	// result to the stated answer.
	Tolerance float64
}

// DefaultConfig returns the standard heuristic parameters.
func DefaultConfig() Config {
	return Config{
		AnswerWeight:         0.4,
		TextWeight:           0.6,
		MinDiversity:         0.5,
		MinTextLength:        10,
		MaxWords:             50,
		MinExplanationLength: 5,
		Tolerance:            0.01,
	}
}
