// Package schema declares validator shapes from YAML or JSON documents.
//
// A document lists shapes in order, each with its fields and their rules, and
// optionally names lookups used by the exists and unique rules:
//
//	lookups:
//	  taken_emails:
//	    driver: postgres
//	    table: users
//	    column: email
//
//	shapes:
//	  Signup:
//	    fields:
//	      email: [required, email, {unique: taken_emails}]
//	      password:
//	        rules:
//	          - required
//	          - {min_length: 8}
//	          - rule: contains_digit
//	            message: needs a digit
//	      address:
//	        shape: Address
//
// A rule is written as a bare name, a single-key mapping from name to
// arguments, or a full mapping with rule, args and message keys. The
// combinators and, or, if, not and each nest further rules.
//
// # Declaring
//
//	reg := validator.NewRegistry()
//	doc, err := schema.Load(reg, data,
//	    schema.WithLookupResolver(resolve),
//	)
//
// Declare compiles the whole document before touching the registry. Unknown
// rules, bad arguments, undeclared shape references and unresolvable lookups
// are all collected into one joined error and nothing is declared.
//
// Lookups with the static driver are built from their values list. Every
// other driver is handed to the LookupResolver, which usually wraps a
// backend from pkg/lookup.
package schema
