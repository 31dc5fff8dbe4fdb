package response

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
)

// Kind tags the representation held by a Body.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindHTML
	KindJSON
	KindStream
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindHTML:
		return "html"
	case KindJSON:
		return "json"
	case KindStream:
		return "stream"
	case KindError:
		return "error"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Body is the payload of a response. Its zero value is an empty body.
type Body struct {
	kind   Kind
	text   string
	value  any
	stream io.Reader
	err    HTTPError
}

// Empty returns a body with no payload.
func Empty() Body { return Body{} }

// Text returns a plain text body.
func Text(s string) Body { return Body{kind: KindText, text: s} }

// HTML returns a markup body rendered as text/html.
func HTML(s string) Body { return Body{kind: KindHTML, text: s} }

// JSON returns a body serialized as JSON when rendered.
func JSON(v any) Body { return Body{kind: KindJSON, value: v} }

// Stream returns a body piped to the client as-is. A stream implementing
// io.Closer is closed once the response ends or the client goes away.
func Stream(r io.Reader) Body { return Body{kind: KindStream, stream: r} }

// Error returns an error body. Errors other than HTTPError become 500 unless
// they report their own status through a StatusCode method.
func Error(err error) Body { return Body{kind: KindError, err: toHTTPError(err)} }

// Kind returns the body tag.
func (b Body) Kind() Kind { return b.kind }

// Text returns the text of a KindText or KindHTML body.
func (b Body) Text() string { return b.text }

// Value returns the value of a KindJSON body.
func (b Body) Value() any { return b.value }

// Reader returns the stream of a KindStream body.
func (b Body) Reader() io.Reader { return b.stream }

// HTTPError returns the error of a KindError body.
func (b Body) HTTPError() HTTPError { return b.err }

// BodyOf maps a handler result onto a body: nil is empty; strings, booleans
// and numbers are text; readers are streams; errors are error bodies; maps,
// slices, structs and pointers to them are JSON. Any other value fails with
// ErrUnsupportedBody.
func BodyOf(v any) (Body, error) {
	switch x := v.(type) {
	case nil:
		return Empty(), nil
	case Body:
		return x, nil
	case string:
		return Text(x), nil
	case []byte:
		return Text(string(x)), nil
	case json.RawMessage:
		return JSON(x), nil
	case json.Marshaler:
		return JSON(x), nil
	case error:
		return Error(x), nil
	case io.Reader:
		return Stream(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Text(strconv.FormatBool(rv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Text(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Text(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32:
		return Text(strconv.FormatFloat(rv.Float(), 'f', -1, 32)), nil
	case reflect.Float64:
		return Text(strconv.FormatFloat(rv.Float(), 'f', -1, 64)), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return JSON(v), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Empty(), nil
		}
		return BodyOf(rv.Elem().Interface())
	default:
		return Body{}, fmt.Errorf("%w: %T", ErrUnsupportedBody, v)
	}
}
