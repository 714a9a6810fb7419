package i18n

import (
	"net/http"
)

// Middleware stores the request language in the request context. The "lang"
// query parameter wins when the catalog supports it; otherwise the
// Accept-Language header is matched against the catalog.
func Middleware(c *Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := r.URL.Query().Get("lang")
			if lang == "" || len(lang) > 35 || !c.Supports(lang) {
				lang = c.Match(r.Header.Get("Accept-Language"))
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
