// Package lite3 is the typed API over a Lite³ message buffer: a single
// contiguous byte region that is simultaneously a JSON-equivalent typed
// tree and the working memory for every read and edit against it.
package lite3

import "github.com/andersstorhaug/lite3/internal/buffer"

// Sentinel errors, re-exported from the internal status channel so
// callers can use errors.Is without importing internal/buffer.
var (
	ErrKeyNotFound           error = buffer.KeyNotFound
	ErrArrayIndexOutOfBounds error = buffer.ArrayIndexOutOfBounds
	ErrMutatedBuffer         error = buffer.MutatedBuffer
	ErrExpectedObject        error = buffer.ExpectedObject
	ErrExpectedArray         error = buffer.ExpectedArray
	ErrExpectedArrayOrObject error = buffer.ExpectedArrayOrObject
	ErrValueKindDoesNotMatch error = buffer.ValueKindDoesNotMatch
	ErrInvalidIterator       error = buffer.InvalidIterator
	ErrInsufficientBuffer    error = buffer.InsufficientBuffer
	ErrHashProbeLimitReached error = buffer.HashProbeLimitReached
)
