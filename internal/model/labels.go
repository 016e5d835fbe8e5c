package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

var acronyms = map[string]string{
	"id":  "ID",
	"url": "URL",
	"api": "API",
}

// DefaultLabeler converts a property name into a human-friendly label, e.g.
// "startDate" -> "Start Date" and "id" -> "ID".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, labelWord(part))
		}
	}
	return strings.Join(segments, " ")
}

func labelWord(word string) string {
	lower := strings.ToLower(word)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
