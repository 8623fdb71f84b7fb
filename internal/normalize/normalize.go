package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Email trims and case-folds an email address.
func Email(s string) string {
	return fold(strings.TrimSpace(s))
}

// Username trims and case-folds a username.
func Username(s string) string {
	return fold(strings.TrimSpace(s))
}

func Mobile(s string) string {
	return strings.TrimSpace(s)
}

// Name trims and collapses inner whitespace.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold is the case-insensitive comparison key used for search.
func Fold(s string) string {
	return fold(s)
}

// fold applies Unicode case folding.
func fold(s string) string {
	return cases.Fold().String(s)
}
