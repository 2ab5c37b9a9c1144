// Package locale resolves which language a caller is reading in. Every read
// that filters by language receives the result explicitly; nothing here is
// global.
package locale

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const DefaultLocale = "en"

// Normalize parses code as a BCP 47 tag and returns its canonical form
// ("EN" -> "en", "pt_br" -> "pt-BR").
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return "", fmt.Errorf("empty locale")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", code, err)
	}
	return tag.String(), nil
}

// IsValid reports whether code parses as a language tag.
func IsValid(code string) bool {
	_, err := Normalize(code)
	return err == nil
}

// Resolver picks the current locale for a request out of the supported set.
type Resolver struct {
	defaultLocale string
	supported     []string
	matcher       language.Matcher
}

// NewResolver builds a Resolver. The default locale is always supported and
// invalid codes in available are skipped.
func NewResolver(defaultLocale string, available []string) (*Resolver, error) {
	def, err := Normalize(defaultLocale)
	if err != nil {
		return nil, err
	}

	supported := []string{def}
	tags := []language.Tag{language.MustParse(def)}
	for _, code := range available {
		normalized, err := Normalize(code)
		if err != nil || contains(supported, normalized) {
			continue
		}
		supported = append(supported, normalized)
		tags = append(tags, language.MustParse(normalized))
	}

	return &Resolver{
		defaultLocale: def,
		supported:     supported,
		matcher:       language.NewMatcher(tags),
	}, nil
}

func (r *Resolver) Default() string {
	return r.defaultLocale
}

func (r *Resolver) Supported() []string {
	return append([]string(nil), r.supported...)
}

// IsSupported reports whether code, once normalized, is one of the supported
// locales. No fallback matching is applied: "en-GB" is not supported by "en".
func (r *Resolver) IsSupported(code string) bool {
	normalized, err := Normalize(code)
	return err == nil && contains(r.supported, normalized)
}

// Match returns the supported locale closest to code, or the default when
// code is unusable or nothing is close enough.
func (r *Resolver) Match(code string) string {
	normalized, err := Normalize(code)
	if err != nil {
		return r.defaultLocale
	}
	if contains(r.supported, normalized) {
		return normalized
	}
	_, idx, confidence := r.matcher.Match(language.MustParse(normalized))
	if confidence == language.No {
		return r.defaultLocale
	}
	return r.supported[idx]
}

// FromRequest resolves the current locale from the "locale" query parameter,
// then the Accept-Language header, then the default.
func (r *Resolver) FromRequest(req *http.Request) string {
	if code := req.URL.Query().Get("locale"); code != "" {
		return r.Match(code)
	}

	header := req.Header.Get("Accept-Language")
	if header == "" {
		return r.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return r.defaultLocale
	}
	_, idx, confidence := r.matcher.Match(tags...)
	if confidence == language.No {
		return r.defaultLocale
	}
	return r.supported[idx]
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
