package util

import (
	"errors"
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFileName rejects traversal patterns and replaces unsafe characters
// with underscores, matching the key layout expected by the bill pipeline.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = unsafeFileChars.ReplaceAllString(s, "_")
	if s == "" || strings.Trim(s, "_") == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
