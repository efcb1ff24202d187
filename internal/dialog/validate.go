package dialog

import (
	"strconv"
	"strings"

	"github.com/akozyreva/somnus/internal/domain"
)

// Validation results carry either a parsed value or a user-facing reason
// the input was rejected. A non-empty reason means re-prompt; the dialog
// state is left untouched so the user can retry.

func validateClock(text string) (domain.Clock, string) {
	c, err := domain.ParseClock(strings.TrimSpace(text))
	if err != nil {
		return domain.Clock{}, "Invalid time format. Please enter a 24-hour time like HH:MM, for example 22:30."
	}
	return c, ""
}

func validateGoal(text string) (float64, string) {
	goal, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, "Please enter a valid number, for example 7.5."
	}
	if goal <= 0 || goal > 24 {
		return 0, "Please enter a number greater than 0 and at most 24."
	}
	return goal, ""
}

func validateRating(text string) (int, string) {
	rating, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || rating < 1 || rating > 5 {
		return 0, "Please enter a whole number from 1 to 5."
	}
	return rating, ""
}

// confirmsDelete reports whether text is an affirmative answer to the
// delete-all prompt. Anything else is a cancellation, not an error.
func confirmsDelete(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "yes")
}
