package extractdate

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// foldWidth maps fullwidth digits and punctuation to ASCII ("１２：３０" -> "12:30").
// Ideographs and the month/day/clock markers are left untouched.
func foldWidth(s string) string {
	if s == "" {
		return s
	}
	out, _, err := transform.String(width.Fold, s)
	if err != nil {
		return s
	}
	return out
}
