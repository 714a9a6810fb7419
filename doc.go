// Package shapekit connects the validation engine in pkg/validator to
// net/http.
//
// Bind is middleware for a single shape: it decodes the JSON request body,
// materializes it, validates it and either answers 422 with the Result or
// passes the instance on to the next handler.
//
//	engine := validator.New(reg)
//
//	r := chi.NewRouter()
//	r.With(shapekit.Bind(engine, engine, "Signup")).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//		inst, _ := shapekit.InstanceFromContext(r.Context())
//		var in SignupRequest
//		if err := inst.Decode(&in); err != nil {
//			// ...
//		}
//	})
//
// The validator argument may be the engine itself or the engine wrapped with
// pkg/plugin middleware. The materializer is always the engine.
//
// A failed validation is rendered as
//
//	{"success": false, "errors": [{"path": ["address", "city"], "rule": "required", "message": "field is required"}]}
//
// Requests that cannot be validated at all get a JSON error body:
//
//   - 415 for a missing or non-JSON content type
//   - 400 for malformed JSON or trailing data
//   - 413 for bodies over the limit (DefaultMaxBodySize, see WithMaxBodySize)
//   - 404 for a shape the registry does not know
//
// Handler is the endpoint variant used by shapecheck serve: it always answers
// with the Result, 200 when the body is valid.
package shapekit
