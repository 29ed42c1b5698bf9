// Package slug turns free text into safe single path or file name segments.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	extRe    = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// FromName lowercases s and collapses every run of other characters into a
// dash. An empty result becomes fallback.
func FromName(s, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback
	}
	return s
}

// Filename slugs the stem of name and keeps a short alphanumeric extension.
// Directory parts are dropped.
func Filename(name, fallback string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	stem, ext := base, strings.ToLower(filepath.Ext(base))
	if extRe.MatchString(ext) {
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	} else {
		ext = ""
	}
	stem = FromName(stem, "")
	if stem == "" {
		return fallback
	}
	return stem + ext
}
