package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no default is configured.
const DefaultLanguage = "en"

// Catalog holds message templates per language, addressed by dot-separated
// keys such as "validation.min_length". It is read-only after New and safe for
// concurrent use.
type Catalog struct {
	messages    map[string]map[string]string
	defaultLang string
	langs       []string
	matcher     language.Matcher
	logger      *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when a requested one has no match.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New loads translations from loader and builds a catalog.
func New(ctx context.Context, loader Loader, opts ...Option) (*Catalog, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	c := &Catalog{
		defaultLang: DefaultLanguage,
		messages:    make(map[string]map[string]string),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, tree := range raw {
		if lang == "" {
			return nil, ErrEmptyLanguageCode
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[strings.ToLower(lang)] = flat
	}

	c.buildMatcher()
	c.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", c.langs))
	return c, nil
}

// flatten turns {"validation": {"required": "x"}} into {"validation.required": "x"}.
func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// buildMatcher orders languages default first, since language.Matcher falls
// back to its first tag.
func (c *Catalog) buildMatcher() {
	langs := make([]string, 0, len(c.messages)+1)
	for lang := range c.messages {
		if lang != c.defaultLang {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs)
	langs = append([]string{c.defaultLang}, langs...)

	c.langs = c.langs[:0]
	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			c.logger.Warn("skipping invalid language tag", slog.String("lang", lang), slog.String("error", err.Error()))
			continue
		}
		tags = append(tags, tag)
		c.langs = append(c.langs, lang)
	}
	c.matcher = language.NewMatcher(tags)
}

// Languages returns the known languages, the default first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Supports reports whether lang, or its base language, has translations.
func (c *Catalog) Supports(lang string) bool {
	for _, candidate := range candidates(lang) {
		if _, ok := c.messages[candidate]; ok {
			return true
		}
	}
	return false
}

// Lookup returns the template for key in lang, trying the base language
// ("pt-br" -> "pt") and then the default language.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	for _, candidate := range append(candidates(lang), c.defaultLang) {
		if tmpl, ok := c.messages[candidate][key]; ok {
			return tmpl, true
		}
	}
	return "", false
}

func candidates(lang string) []string {
	lang = strings.ToLower(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return nil
	}
	out := []string{lang}
	if base, _, ok := strings.Cut(lang, "-"); ok && base != "" {
		out = append(out, base)
	}
	return out
}

// T translates key into lang and substitutes "%{name}" placeholders from params.
// A missing key is returned as-is.
func (c *Catalog) T(lang, key string, params map[string]any) string {
	tmpl, ok := c.Lookup(lang, key)
	if !ok {
		c.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
		return key
	}
	return Interpolate(tmpl, params)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate replaces "%{name}" with params[name]. Unknown names are kept.
func Interpolate(tmpl string, params map[string]any) string {
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}
