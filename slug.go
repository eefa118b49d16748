// slug.go derived-field rules: slugs, excerpts, read time
package main

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	excerptLength   = 160
	wordsPerMinute  = 200
	maxSlugAttempts = 1000
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// slugify lowercases, maps runs of non-alphanumerics to single hyphens and
// trims leading/trailing hyphens.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripTags removes HTML markup and collapses whitespace.
func stripTags(html string) string {
	text := htmlTag.ReplaceAllString(html, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// deriveExcerpt truncates stripped content to excerptLength characters,
// appending an ellipsis when anything was cut. Truncation counts runes,
// not bytes, so multi-byte content never yields a torn excerpt.
func deriveExcerpt(content string) string {
	text := stripTags(content)
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}

// deriveReadTime is ceil(words / wordsPerMinute), minimum 1 minute.
func deriveReadTime(content string) int {
	words := len(strings.Fields(stripTags(content)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// uniqueBlogSlug disambiguates collisions with a numeric suffix rather than
// rejecting or overwriting. excludeID skips the record being updated.
func uniqueBlogSlug(base, excludeID string) (string, error) {
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		var count int64
		q := db.Model(&Blog{}).Where("slug = ?", candidate)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("could not find a unique slug for %q", base)
}
