package models

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugRun matches every run of characters that cannot appear in a slug,
	// whitespace included. Letters, combining marks and digits of any script stay.
	nonSlugRun = regexp.MustCompile(`[^\p{L}\p{M}\p{N}]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Slugify renders title as a lowercase, hyphenated URL segment. It returns nil
// only when title is blank, so an untitled post stores NULL instead of "".
func Slugify(title string) *string {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	lowered := strings.ToLower(stripLatinAccents(title))
	result := strings.Trim(nonSlugRun.ReplaceAllString(lowered, "-"), "-")
	if result == "" {
		// Nothing but punctuation: keep it, escaped.
		hyphenated := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
		if trimmed := strings.Trim(hyphenated, "-"); trimmed != "" {
			hyphenated = trimmed
		}
		result = url.PathEscape(hyphenated)
	}
	return &result
}

// stripLatinAccents drops the combining marks that follow a Latin letter:
// "Café" -> "Cafe". Marks on other scripts are part of the spelling and stay.
func stripLatinAccents(s string) string {
	var b strings.Builder
	latinBase := false
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			if latinBase {
				continue
			}
		} else {
			latinBase = unicode.Is(unicode.Latin, r)
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
