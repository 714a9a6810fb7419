package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header handed to the parser.
const maxAcceptLanguageLength = 4096

// Match picks the best supported language for an Accept-Language header,
// falling back to the default language.
func (c *Catalog) Match(acceptLanguage string) string {
	if acceptLanguage == "" || len(c.langs) == 0 {
		return c.defaultLang
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}

	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(c.langs) {
		return c.defaultLang
	}
	return c.langs[idx]
}
