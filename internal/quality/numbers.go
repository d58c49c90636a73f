package quality

import (
	"regexp"
	"strconv"
)

// numberRe matches integer and decimal tokens. The capture group keeps a
// leading minus only when it is a sign, not an operator: a minus directly
// after a digit ("12-7") separates two positive operands, while a minus
// after a non-digit ("dropped to -5") belongs to the number.
var numberRe = regexp.MustCompile(`(?:^|[^\d])(-?\d+(?:\.\d+)?)`)

// extractNumbers returns every numeric token found in the text, in order.
func extractNumbers(text string) []float64 {
	matches := numberRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// recompute evaluates the binary arithmetic operation for the given
// question type over the first two operands. The second return value is
// false when the type has no recomputation rule or the operation cannot
// be verified (zero divisor).
func recompute(questionType string, a, b float64) (float64, bool) {
	switch questionType {
	case "addition":
		return a + b, true
	case "subtraction":
		return a - b, true
	case "multiplication":
		return a * b, true
	case "division":
		if b == 0 {
			// A zero divisor is skipped, not failed.
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}
