// Package i18n provides message catalogs for localizing validation messages.
//
// A Catalog is loaded once from JSON or YAML documents keyed by language:
//
//	en:
//	  validation:
//	    required: "field is required"
//	    min_length: "must be at least %{min} characters long"
//	de:
//	  validation:
//	    required: "Pflichtfeld"
//
// Nested keys are addressed with dots ("validation.required"). Templates use
// the same "%{name}" placeholders as rule messages.
//
// # Loading
//
//	catalog, err := i18n.New(ctx, i18n.FSLoader(os.DirFS("locales"), "."),
//	    i18n.WithDefaultLanguage("en"),
//	)
//
// MapLoader, FileLoader and FSLoader cover in-memory, single-file and directory
// sources; any Loader implementation can be supplied.
//
// # Language selection
//
// Lookup falls back from a regional language to its base language and then to
// the default language. Match negotiates an Accept-Language header with
// golang.org/x/text/language. Middleware stores the selected language in the
// request context, where GetLocale and LocaleFromContext read it back.
package i18n
