package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-.\s]+`)

var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"api":  "API",
	"mfa":  "MFA",
	"uuid": "UUID",
}

// DefaultLabeler turns a parameter name into a display label: "full name"
// becomes "Full Name", "projectID" becomes "Project ID".
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleWord(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(input string) string {
	runes := []rune(input)
	var out strings.Builder
	for i, r := range runes {
		if i > 0 && isBoundary(runes, i) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// isBoundary splits fooBar, foo2 and the tail of an acronym run (IDNumber).
func isBoundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case isLower(prev) && isUpper(cur):
		return true
	case isLetter(prev) && isDigit(cur), isDigit(prev) && isLetter(cur):
		return true
	case isUpper(prev) && isUpper(cur) && i+1 < len(runes) && isLower(runes[i+1]):
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleWord(word string) string {
	lower := strings.ToLower(word)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}
