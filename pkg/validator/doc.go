// Package validator is a declarative validation engine for loosely-typed data.
//
// Shapes are declared once, at initialization, in a Registry: each shape has
// fields in declaration order, each field has rules, and a field may hold a
// nested shape or an ordered sequence of them. The Engine then turns raw
// input (decoded JSON, YAML, form values) into an Instance of a shape and
// evaluates every rule, collecting every failure into a Result.
//
// # Declaring shapes
//
//	reg := validator.NewRegistry()
//
//	validator.Declare(reg, "Address").
//	    Field("city", validator.Required(), validator.MinLength(2)).
//	    MustDone()
//
//	validator.Declare(reg, "User").
//	    Field("email", validator.Required(), validator.Email()).
//	    Field("password", validator.StrongPassword(validator.DefaultPasswordStrength())).
//	    Field("confirm", validator.Compare().EqualTo("password").WithMessage("passwords do not match")).
//	    Optional("nickname", validator.MaxLength(32)).
//	    Nested("address", validator.Ref("Address"), validator.Required()).
//	    MustDone()
//
// Nested references are resolved lazily, so shapes may refer to each other in
// any order, including recursively. Declaration mistakes (duplicate rules,
// unknown or unresolved shapes) are returned as errors and must not be
// ignored.
//
// # Validating
//
//	engine := validator.New(reg, validator.WithLogger(log))
//
//	inst, res, err := engine.Check(ctx, "User", input)
//	if err != nil {
//	    return err // declaration problem
//	}
//	if !res.Success {
//	    for _, e := range res.Errors {
//	        fmt.Println(e.Path, e.Rule, e.Message) // [address city] min_length must be at least 2 characters long
//	    }
//	}
//
// Validation never stops at the first failure: every failing rule of every
// field is reported, in declaration order, with its full path. Result
// serializes as {"success": bool, "errors": [{"path", "rule", "message"}]}.
//
// # Rules and combinators
//
// Each source file groups one family of rules (string_rules.go,
// numeric_rules.go, date_rules.go, ...). Every constructor returns an
// immutable Rule; WithMessage returns a copy whose failures report the given
// message verbatim, whatever the family.
//
// And, Or, IfThenElse and Not compose rules. A combinator's own message
// override replaces whatever message its children would report.
//
// # Asynchronous rules
//
// Async, Exists and Unique run their check on a separate goroutine through
// package async and are awaited in declaration order. A check that returns an
// error or panics does not abort validation: it is reported as a
// "rule evaluation failed: <cause>" failure and logged through the engine
// logger.
//
// # Error Handling
//
// Result.Err converts failures into ValidationErrors, which implements error
// and matches ErrValidationFailed with errors.Is.
package validator
