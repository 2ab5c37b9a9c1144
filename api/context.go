package api

import (
	"context"
)

type keyType string

const (
	localeKey keyType = "locale"
)

// ctxWithLocale adds the resolved request locale to the context
func ctxWithLocale(ctx context.Context, loc string) context.Context {
	return context.WithValue(ctx, localeKey, loc)
}

// ctxGetLocale retrieves the request locale, falling back to fallback when the
// locale middleware did not run
func ctxGetLocale(ctx context.Context, fallback string) string {
	if loc, ok := ctx.Value(localeKey).(string); ok && loc != "" {
		return loc
	}
	return fallback
}
