package json

import "errors"

// Decoder-side sentinel errors, following the teacher's flat
// errors.New sentinel-var pattern (error.go) rather than a wrapped enum
// — these describe JSON input problems, not Lite³ buffer states, so
// they live alongside the scanner rather than in internal/buffer.
var (
	ErrExpectedJsonProperty      = errors.New("json: expected property name")
	ErrExpectedJsonArrayOrObject = errors.New("json: expected array or object at top level")
	ErrExpectedJsonValue         = errors.New("json: expected a value")
	ErrNestingDepthExceeded      = errors.New("json: nesting depth exceeded max")
	ErrNeedsMoreData             = errors.New("json: input ended mid-token")
	ErrTrailingData              = errors.New("json: trailing data after top-level value")
)
