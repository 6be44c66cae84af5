package contour

import "errors"

// ErrInvalidConfig is returned, wrapped with details, when configuration
// values are out of range. It is detected before any work is done.
var ErrInvalidConfig = errors.New("invalid configuration")
