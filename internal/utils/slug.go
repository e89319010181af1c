package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers the title and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = "untitled"
	}

	return slug
}

// SlugWithSuffix disambiguates a taken slug with a short random suffix.
func SlugWithSuffix(slug string) string {
	return slug + "-" + uuid.NewString()[:8]
}
