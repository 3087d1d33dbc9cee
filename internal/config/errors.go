package config

import "errors"

// ErrInvalidConfig is wrapped by every configuration-validation failure
// (spec.md §7's "configuration invalid" error taxonomy entry).
var ErrInvalidConfig = errors.New("invalid configuration")
