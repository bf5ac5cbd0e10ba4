// Package utils provides common text utility functions.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// TrimWhitespace removes leading and trailing whitespace.
func (s *StringHelper) TrimWhitespace(str string) string {
	return strings.TrimSpace(str)
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateDisplay truncates a string to a maximum display width, measured
// in terminal cells rather than bytes so wide runes count double.
func (s *StringHelper) TruncateDisplay(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}

	return runewidth.Truncate(str, maxWidth, "...")
}
