// Package plugin provides middleware around validator.Validator.
//
// Plugins run at the call boundary: they see the instance going in and the
// Result coming out, never the evaluation itself. None of them reorders or
// drops failure records.
//
//	v := plugin.Chain(engine,
//	    plugin.Logging(log),
//	    plugin.Translate(catalog),
//	    plugin.Cache(plugin.NewMemoryStore(1024), 5*time.Minute),
//	)
//
//	res, err := v.Validate(ctx, inst)
//
// Logging records the shape, duration and failure count of every call.
// Cache memoizes results by Fingerprint, in memory (MemoryStore) or in Redis
// (RedisStore). Translate rewrites default messages from an i18n.Catalog
// using each record's translation key and params; it is placed outside Cache
// so that one cached result serves every locale.
package plugin
