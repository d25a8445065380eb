package lite3

import "github.com/andersstorhaug/lite3/internal/buffer"

// Value tags, re-exported so callers of Iterator.Type can branch on
// them without reaching into internal/buffer.
const (
	TagNull   = buffer.TagNull
	TagBool   = buffer.TagBool
	TagI64    = buffer.TagI64
	TagF64    = buffer.TagF64
	TagBytes  = buffer.TagBytes
	TagString = buffer.TagString
	TagObject = buffer.TagObject
	TagArray  = buffer.TagArray
)
