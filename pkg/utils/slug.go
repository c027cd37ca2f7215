package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var slugStripPattern = regexp.MustCompile("[^a-z0-9 ]+")

// GenerateSlug creates a URL-friendly slug from a string
func GenerateSlug(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

// UniqueSlug resolves slug collisions by suffixing -2, -3, ... until the
// exists check comes back false. The first candidate is the bare slug.
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	slug := GenerateSlug(base)
	candidate := slug
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}
