package form

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans free-text input before it is stored in the form.
type Sanitizer interface {
	Sanitize(string) string
}

// SanitizerFunc adapts a function into a Sanitizer.
type SanitizerFunc func(string) string

// Sanitize calls the underlying function.
func (fn SanitizerFunc) Sanitize(value string) string {
	return fn(value)
}

// NopSanitizer keeps input untouched.
var NopSanitizer Sanitizer = SanitizerFunc(func(value string) string { return value })

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// StrictSanitizer strips every HTML element from input and returns plain text,
// so "Tom & <b>Jerry</b>" becomes "Tom & Jerry".
func StrictSanitizer() Sanitizer {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return SanitizerFunc(func(value string) string {
		if value == "" {
			return ""
		}
		return html.UnescapeString(strictPolicy.Sanitize(value))
	})
}
