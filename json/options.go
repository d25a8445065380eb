// Package json implements the streaming JSON<->Lite³ transcoders (C4):
// a resumable, token-driven decoder that drives the typed API package
// directly from a byte stream, and a recursive-walk encoder that
// renders a Lite³ container back to JSON. Neither side depends on
// encoding/json; see DESIGN.md for why a hand-rolled scanner is the
// correct rendition here rather than a shortcut.
package json

// DefaultNestingMax is the maximum Object/Array nesting depth accepted
// when Options.NestingMax is left at zero.
const DefaultNestingMax = 64

// DefaultInitialBuffer is the starting capacity for a growable
// destination allocated by Decode when the caller does not specify one.
const DefaultInitialBuffer = 1024

// DefaultMaxBuffer bounds how large Decode will grow a destination
// buffer before giving up with lite3.ErrInsufficientBuffer.
const DefaultMaxBuffer = 1 << 30

// Options configures a decode. The zero value is usable: every field
// falls back to its Default* constant.
type Options struct {
	// NestingMax caps Object/Array depth; exceeding it during decode
	// fails with ErrNestingDepthExceeded. The check runs when the new
	// level is pushed, so a nested container that exceeds the cap has
	// already been created in the destination when the error is returned.
	NestingMax int

	// InitialBuffer is the destination's starting capacity.
	InitialBuffer int

	// MaxBuffer is the destination's growth ceiling.
	MaxBuffer int
}

func (o Options) nestingMax() int {
	if o.NestingMax > 0 {
		return o.NestingMax
	}
	return DefaultNestingMax
}

func (o Options) initialBuffer() int {
	if o.InitialBuffer > 0 {
		return o.InitialBuffer
	}
	return DefaultInitialBuffer
}

func (o Options) maxBuffer() int {
	if o.MaxBuffer > 0 {
		return o.MaxBuffer
	}
	return DefaultMaxBuffer
}
