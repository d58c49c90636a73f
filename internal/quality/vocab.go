package quality

import "strings"

// typeKeywords maps a question type to the vocabulary a well-formed
// question of that type is expected to use. At least one keyword must
// appear in the question text. The table is data-driven: adding a new
// question type is a one-line change.
var typeKeywords = map[string][]string{
	"addition":       {"add", "plus", "sum", "total", "altogether"},
	"subtraction":    {"subtract", "minus", "difference", "take away", "left", "fewer"},
	"multiplication": {"multiply", "times", "product", "each", "groups of"},
	"division":       {"divide", "divided", "share", "split", "each"},
	"pattern":        {"pattern", "sequence", "next", "comes next", "missing"},
	"fractions":      {"fraction", "half", "third", "quarter", "numerator", "denominator"},
}

// hasTypeKeyword reports whether the question text contains at least one
// keyword for its type. Types without a vocabulary entry pass by default.
func hasTypeKeyword(questionType, text string) bool {
	keywords, ok := typeKeywords[questionType]
	if !ok {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
