package plugin

import (
	"context"

	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

// Translate replaces default failure messages with the catalog entry for the
// locale stored in the context (see i18n.SetLocale and i18n.Middleware), or
// the catalog's default language when the context carries none.
// Records carrying a caller-supplied message or a broken rule check are left
// as they are, as are records whose key has no catalog entry. The order and
// number of records never change.
func Translate(c *i18n.Catalog) Middleware {
	if c == nil {
		panic(ErrNilCatalog)
	}
	return func(next validator.Validator) validator.Validator {
		return validator.ValidatorFunc(func(ctx context.Context, inst *validator.Instance) (*validator.Result, error) {
			res, err := next.Validate(ctx, inst)
			if err != nil || res.Success {
				return res, err
			}
			lang, ok := i18n.LocaleFromContext(ctx)
			if !ok {
				lang = c.DefaultLanguage()
			}
			return translate(c, lang, res), nil
		})
	}
}

func translate(c *i18n.Catalog, lang string, res *validator.Result) *validator.Result {
	out := res.Clone()
	for i, rec := range out.Errors {
		if rec.Overridden || rec.Cause != nil || rec.Key == "" {
			continue
		}
		if tmpl, ok := c.Lookup(lang, rec.Key); ok {
			out.Errors[i].Message = validator.Interpolate(tmpl, rec.Params)
		}
	}
	return out
}
