package utils

import "github.com/microcosm-cc/bluemonday"

// Post and comment bodies are plain text; strip all markup rather than
// allowing a UGC subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes HTML from user supplied content to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
