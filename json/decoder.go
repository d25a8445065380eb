package json

import (
	"bytes"
	"io"
	"strconv"

	"github.com/andersstorhaug/lite3/lite3"
)

type frameKind uint8

const (
	frameObject frameKind = iota
	frameArray
)

// frame is one level of the decoder's nesting stack. It folds spec.md
// §4.4's four named states (Object, ObjectSwitch, Array, ArraySwitch)
// into two frame kinds plus a hasKey flag: an Object frame with
// hasKey==false is "Object" (expecting a property or end), and with
// hasKey==true is "ObjectSwitch" (expecting the value for key). An
// Array frame has no key-switch state — an element token is dispatched
// directly, so no separate ArraySwitch slot is needed.
type frame struct {
	kind    frameKind
	obj     *lite3.Object
	arr     *lite3.Array
	hasKey  bool
	key     string
	started bool
}

// Decoder drives the typed API from an accumulated byte stream one
// token at a time. Feed appends input; Run advances as far as
// possible and returns ErrNeedsMoreData when it runs out mid-structure
// with more input still expected — feed more and call Run again to
// resume from exactly where it left off.
//
// Unlike a decoder handed a reader-owned buffer that gets recycled
// between reads, Decoder owns its input accumulator outright (append,
// then compact the consumed prefix), so the "pending key must be
// copied out before the reader recycles its buffer" hazard spec.md
// §4.4 describes does not arise here: nothing aliases the reader's
// memory in the first place. A property name is captured as a Go
// string (which itself copies out of the accumulator) at the moment
// it's scanned, so it already survives any later compaction unaided.
type Decoder struct {
	opts   Options
	in     []byte
	pos    int
	final  bool
	frames []frame
	root   any
	err    error
}

// NewDecoder creates a Decoder ready to receive input via Feed.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// Feed appends chunk to the pending input. final marks chunk as the
// last one the source will ever produce.
func (d *Decoder) Feed(chunk []byte, final bool) {
	if len(chunk) > 0 {
		d.in = append(d.in, chunk...)
	}
	d.final = final
}

// Root returns the destination container once decoding has completed:
// *lite3.Object or *lite3.Array. It is nil beforehand.
func (d *Decoder) Root() any { return d.root }

// compact drops the already-consumed prefix of the input accumulator,
// bounding memory on long streaming decodes (S5).
func (d *Decoder) compact() {
	if d.pos == 0 {
		return
	}
	copy(d.in, d.in[d.pos:])
	d.in = d.in[:len(d.in)-d.pos]
	d.pos = 0
}

// Run advances the state machine as far as the fed input allows.
func (d *Decoder) Run() error {
	if d.err != nil {
		return d.err
	}
	for {
		if len(d.frames) == 0 {
			if d.root == nil {
				if err := d.start(); err != nil {
					return d.fail(err)
				}
				continue
			}
			return d.finish()
		}
		if err := d.step(&d.frames[len(d.frames)-1]); err != nil {
			if err == ErrNeedsMoreData && !d.final {
				return err
			}
			return d.fail(err)
		}
	}
}

func (d *Decoder) fail(err error) error {
	if err != ErrNeedsMoreData || d.final {
		d.err = err
	}
	return err
}

func (d *Decoder) finish() error {
	if !d.final {
		return ErrNeedsMoreData
	}
	if skipSpace(d.in, d.pos) < len(d.in) {
		return d.fail(ErrTrailingData)
	}
	return nil
}

func (d *Decoder) start() error {
	tok, next, err := scan(d.in, d.pos, d.final)
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokObjectStart:
		obj := lite3.NewGrowableObject(d.opts.initialBuffer(), d.opts.maxBuffer())
		d.root = obj
		d.pos = next
		return d.push(frame{kind: frameObject, obj: obj})
	case tokArrayStart:
		arr := lite3.NewGrowableArray(d.opts.initialBuffer(), d.opts.maxBuffer())
		d.root = arr
		d.pos = next
		return d.push(frame{kind: frameArray, arr: arr})
	default:
		return ErrExpectedJsonArrayOrObject
	}
}

func (d *Decoder) push(f frame) error {
	if len(d.frames) >= d.opts.nestingMax() {
		return ErrNestingDepthExceeded
	}
	d.frames = append(d.frames, f)
	return nil
}

func (d *Decoder) pop() { d.frames = d.frames[:len(d.frames)-1] }

func (d *Decoder) step(top *frame) error {
	if top.kind == frameObject {
		return d.stepObject(top)
	}
	return d.stepArray(top)
}

func (d *Decoder) stepObject(top *frame) error {
	if top.hasKey {
		return d.stepObjectValue(top)
	}
	tok, next, err := scan(d.in, d.pos, d.final)
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokObjectEnd:
		d.pos = next
		d.pop()
		return nil
	case tokComma:
		if !top.started {
			return ErrExpectedJsonProperty
		}
		d.pos = next
		return nil
	case tokString:
		// Don't commit d.pos past the key until the colon is scanned too:
		// if the colon scan needs more data, re-entering must see the key
		// token again rather than resume mid-property with the key lost.
		colon, next2, err := scan(d.in, next, d.final)
		if err != nil {
			return err
		}
		if colon.kind != tokColon {
			return ErrExpectedJsonProperty
		}
		key, err := d.tokenString(tok)
		if err != nil {
			return err
		}
		d.pos = next2
		top.hasKey = true
		top.key = key
		top.started = true
		return nil
	default:
		return ErrExpectedJsonProperty
	}
}

func (d *Decoder) stepObjectValue(top *frame) error {
	tok, next, err := scan(d.in, d.pos, d.final)
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokObjectStart:
		child, err := top.obj.SetObject(top.key)
		if err != nil {
			return err
		}
		top.hasKey = false
		d.pos = next
		return d.push(frame{kind: frameObject, obj: child})
	case tokArrayStart:
		child, err := top.obj.SetArray(top.key)
		if err != nil {
			return err
		}
		top.hasKey = false
		d.pos = next
		return d.push(frame{kind: frameArray, arr: child})
	default:
		if err := d.setScalar(objectSink{top.obj, top.key}, tok); err != nil {
			return err
		}
		top.hasKey = false
		d.pos = next
		return nil
	}
}

func (d *Decoder) stepArray(top *frame) error {
	tok, next, err := scan(d.in, d.pos, d.final)
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokArrayEnd:
		d.pos = next
		d.pop()
		return nil
	case tokComma:
		if !top.started {
			return ErrExpectedJsonValue
		}
		d.pos = next
		return nil
	case tokObjectStart:
		child, err := top.arr.AppendObject()
		if err != nil {
			return err
		}
		top.started = true
		d.pos = next
		return d.push(frame{kind: frameObject, obj: child})
	case tokArrayStart:
		child, err := top.arr.AppendArray()
		if err != nil {
			return err
		}
		top.started = true
		d.pos = next
		return d.push(frame{kind: frameArray, arr: child})
	default:
		if err := d.setScalar(arraySink{top.arr}, tok); err != nil {
			return err
		}
		top.started = true
		d.pos = next
		return nil
	}
}

// scalarSink lets stepObjectValue/stepArray share one dispatch for the
// four scalar token kinds against either an Object member or an Array
// element.
type scalarSink interface {
	setNull() error
	setBool(bool) error
	setI64(int64) error
	setF64(float64) error
	setString(string) error
}

type objectSink struct {
	obj *lite3.Object
	key string
}

func (s objectSink) setNull() error         { return s.obj.SetNull(s.key) }
func (s objectSink) setBool(v bool) error   { return s.obj.SetBool(s.key, v) }
func (s objectSink) setI64(v int64) error   { return s.obj.SetI64(s.key, v) }
func (s objectSink) setF64(v float64) error { return s.obj.SetF64(s.key, v) }
func (s objectSink) setString(v string) error {
	return s.obj.SetString(s.key, v)
}

type arraySink struct{ arr *lite3.Array }

func (s arraySink) setNull() error         { return s.arr.AppendNull() }
func (s arraySink) setBool(v bool) error   { return s.arr.AppendBool(v) }
func (s arraySink) setI64(v int64) error   { return s.arr.AppendI64(v) }
func (s arraySink) setF64(v float64) error { return s.arr.AppendF64(v) }
func (s arraySink) setString(v string) error {
	return s.arr.AppendString(v)
}

func (d *Decoder) setScalar(sink scalarSink, tok token) error {
	switch tok.kind {
	case tokNull:
		return sink.setNull()
	case tokTrue:
		return sink.setBool(true)
	case tokFalse:
		return sink.setBool(false)
	case tokNumber:
		i, f, isInt := parseNumber(tok.raw(d.in))
		if isInt {
			return sink.setI64(i)
		}
		return sink.setF64(f)
	case tokString:
		s, err := d.tokenString(tok)
		if err != nil {
			return err
		}
		return sink.setString(s)
	default:
		return ErrExpectedJsonValue
	}
}

// tokenString materializes a string token's content: an un-escaped
// span is converted to a string directly, without unescaping; an escaped
// span is unescaped into on-stack or pooled scratch first per spec.md §4.4.
func (d *Decoder) tokenString(tok token) (string, error) {
	raw := tok.raw(d.in)
	if !tok.escaped {
		return string(raw), nil
	}
	if len(raw) <= scratchInline {
		var buf [scratchInline]byte
		out, err := unescape(buf[:0], raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	scratch := allocateScratch()
	defer recycleScratch(scratch)
	out, err := unescape(*scratch, raw)
	if err != nil {
		return "", err
	}
	*scratch = out
	return string(out), nil
}

// parseNumber attempts an i64 parse first, falling back to f64 on
// overflow or non-integer syntax, per spec.md §4.4.
func parseNumber(raw []byte) (i int64, f float64, isInt bool) {
	if !bytes.ContainsAny(raw, ".eE") {
		if v, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			return v, 0, true
		}
	}
	v, _ := strconv.ParseFloat(string(raw), 64)
	return 0, v, false
}

// Decode reads a complete JSON document from r and decodes it into a
// freshly allocated growable Lite³ container, returning *lite3.Object
// or *lite3.Array depending on the document's top-level shape. r may
// be a bounded reader (e.g. bytes.NewReader) or a genuinely streaming
// one; either way Decode drives the resumable Decoder internally.
func Decode(r io.Reader, opts Options) (any, error) {
	d := NewDecoder(opts)
	chunk := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(chunk)
		final := rerr == io.EOF
		d.Feed(chunk[:n], final)
		err := d.Run()
		d.compact()
		if err == nil {
			return d.Root(), nil
		}
		if err == ErrNeedsMoreData && !final {
			if rerr != nil {
				return nil, rerr
			}
			continue
		}
		return nil, err
	}
}

// DecodeBytes decodes a bounded, already-complete JSON document.
func DecodeBytes(data []byte, opts Options) (any, error) {
	return Decode(bytes.NewReader(data), opts)
}

// DecodeObject decodes r, requiring the top-level value to be a JSON
// object.
func DecodeObject(r io.Reader, opts Options) (*lite3.Object, error) {
	root, err := Decode(r, opts)
	if err != nil {
		return nil, err
	}
	obj, ok := root.(*lite3.Object)
	if !ok {
		return nil, lite3.ErrExpectedObject
	}
	return obj, nil
}

// DecodeArray decodes r, requiring the top-level value to be a JSON
// array.
func DecodeArray(r io.Reader, opts Options) (*lite3.Array, error) {
	root, err := Decode(r, opts)
	if err != nil {
		return nil, err
	}
	arr, ok := root.(*lite3.Array)
	if !ok {
		return nil, lite3.ErrExpectedArray
	}
	return arr, nil
}
