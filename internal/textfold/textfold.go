// Package textfold case-folds text for search matching.
package textfold

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold case-folds s. A Caser keeps state, so each call makes its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Contains reports whether haystack contains the already folded needle.
func Contains(haystack, foldedNeedle string) bool {
	return strings.Contains(Fold(haystack), foldedNeedle)
}
