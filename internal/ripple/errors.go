package ripple

import "errors"

// ErrInvalidParams is returned when simulation parameters fail validation.
// The returned error wraps it with the offending field.
var ErrInvalidParams = errors.New("ripple: invalid parameters")
