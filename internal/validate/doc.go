// Package validate provides input validation for caskfind's domain types.
//
// Validation happens at the boundary between user input (command arguments,
// imported manifests) and the store. Each function returns the normalised
// value or an error wrapping one of the sentinels in errors.go:
//
//	if errors.Is(err, validate.ErrInvalidToken) {
//	    // handle invalid token
//	}
package validate
