package json

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andersstorhaug/lite3/lite3"
)

// Encode renders src (a *lite3.Object or *lite3.Array) as RFC 8259 JSON
// to w, with one deliberate extension: Bytes values are emitted as
// Base64 strings (spec.md §6). It is a simple recursive walk, per
// spec.md §1's explicit scoping of the encoder outside the resumable
// core.
func Encode(w io.Writer, src any) error {
	e := &encoder{w: w}
	switch v := src.(type) {
	case *lite3.Object:
		return e.object(v)
	case *lite3.Array:
		return e.array(v)
	default:
		return lite3.ErrExpectedArrayOrObject
	}
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) writeString(s string) { e.write([]byte(s)) }

func (e *encoder) object(o *lite3.Object) error {
	e.writeString("{")
	it := o.Iterate()
	first := true
	for it.Next() {
		if !first {
			e.writeString(",")
		}
		first = false
		e.quote(string(it.Key()))
		e.writeString(":")
		if err := e.value(it); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return err
	}
	e.writeString("}")
	return e.err
}

func (e *encoder) array(a *lite3.Array) error {
	e.writeString("[")
	it := a.Iterate()
	first := true
	for it.Next() {
		if !first {
			e.writeString(",")
		}
		first = false
		if err := e.value(it); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return err
	}
	e.writeString("]")
	return e.err
}

func (e *encoder) value(it *lite3.Iterator) error {
	switch it.Type() {
	case lite3.TagNull:
		e.writeString("null")
	case lite3.TagBool:
		if it.Bool() {
			e.writeString("true")
		} else {
			e.writeString("false")
		}
	case lite3.TagI64:
		e.writeString(strconv.FormatInt(it.I64(), 10))
	case lite3.TagF64:
		e.writeString(formatFloat(it.F64()))
	case lite3.TagString:
		e.quote(it.String())
	case lite3.TagBytes:
		e.quote(base64.StdEncoding.EncodeToString(it.Bytes()))
	case lite3.TagObject:
		if err := e.object(it.Object()); err != nil {
			return err
		}
	case lite3.TagArray:
		if err := e.array(it.Array()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("json: unrecognized value tag %d", it.Type())
	}
	return e.err
}

// formatFloat renders v the way strconv.FormatFloat's 'g' verb does,
// except a whole-valued result ("3") gets a trailing ".0" so it
// re-decodes as a double rather than an integer, per spec.md §8's
// round-trip property for F64 values.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// quote writes s as a JSON string literal, escaping the characters
// RFC 8259 requires (quote, backslash and bytes below 0x20). All other
// bytes, including invalid UTF-8, are copied through unchanged.
func (e *encoder) quote(s string) {
	e.write([]byte{'"'})
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			e.writeString(s[start:i])
		}
		switch c {
		case '"':
			e.writeString(`\"`)
		case '\\':
			e.writeString(`\\`)
		case '\n':
			e.writeString(`\n`)
		case '\r':
			e.writeString(`\r`)
		case '\t':
			e.writeString(`\t`)
		default:
			e.writeString(fmt.Sprintf(`\u%04x`, c))
		}
		start = i + 1
	}
	if start < len(s) {
		e.writeString(s[start:])
	}
	e.write([]byte{'"'})
}
