package utils

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// SafeHTML sanitizes user-authored markup and marks the result safe for
// template interpolation. Content is stored verbatim; this runs at render
// time only.
func SafeHTML(input string) template.HTML {
	return template.HTML(Sanitize(input))
}
