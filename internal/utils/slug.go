package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a free-text title into a lower-case, accent-free,
// hyphenated identifier: "Casa Bonita #1" → "casa-bonita-1".
func Slugify(title string) string {
	// NFD decomposition, then drop combining marks (Mn) to strip accents.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	flat, _, err := transform.String(t, title)
	if err != nil {
		flat = title
	}

	s := strings.ToLower(strings.TrimSpace(flat))
	s = strings.Join(strings.Fields(s), "-")
	s = nonWordChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugExistsFunc reports whether a candidate slug is already taken.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// GenerateSlug derives a slug from the title and consults the injected
// existence check once. On collision a random numeric suffix in [0,999]
// is appended without re-checking; the storage layer's unique index is
// the authoritative guard against the remaining race.
func GenerateSlug(ctx context.Context, title string, exists SlugExistsFunc) (string, error) {
	candidate := Slugify(title)
	if candidate == "" {
		candidate = "listing"
	}

	taken, err := exists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if taken {
		candidate = fmt.Sprintf("%s-%d", candidate, RandomInt(1000))
	}
	return candidate, nil
}
