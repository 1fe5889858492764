// Package validation provides Laravel-style validation of request input.
//
// # Overview
//
// Rules are expressed as pipe-separated strings on a map of field names,
// the way Laravel's Validator facade takes them.
//
// # Basic Usage
//
//	v := validation.Make(req.All(), validation.Rules{
//	    "length": "integer|between:1,1024",
//	    "hash":   "boolean",
//	    "format": "required|in:hex,base64",
//	})
//
//	if v.Fails() {
//	    res.ValidationError(v.Errors())
//	    // 422 {"message": "...", "errors": {"field": ["message1"]}}
//	}
//
// # Available Rules
//
//   - required     field must be present and non-empty
//   - string       passes (all query values are strings)
//   - integer      must parse as an integer
//   - boolean      true, false, 1, 0, yes, no, on, off
//   - min:n        at least n characters, or at least n with integer
//   - max:n        at most n characters, or at most n with integer
//   - between:a,b  length, or value with integer, within [a, b]
//   - in:a,b,c     one of the listed values
//
// A field without required that is missing or empty skips its other rules.
// Rules run left to right and stop at the first failure for a field.
package validation
