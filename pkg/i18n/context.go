package i18n

import (
	"context"
)

type localeContextKey struct{}

// SetLocale stores the request language in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the language stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, ok := LocaleFromContext(ctx); ok {
		return locale
	}
	return DefaultLanguage
}

// LocaleFromContext returns the language stored in ctx, if any.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale, locale != ""
}
