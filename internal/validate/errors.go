// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidTap   = errors.New("invalid tap")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidName  = errors.New("invalid name")
)
