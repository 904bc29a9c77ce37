package rest

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-querystring/query"
)

// Encoding selects where a request's fields travel.
type Encoding int

const (
	// EncodingJSON sends the fields as a JSON body. It is the default.
	EncodingJSON Encoding = iota
	// EncodingURI sends the fields as a query string and leaves the body empty.
	EncodingURI
)

func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingURI:
		return "uri"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Descriptor holds the static facts of a request type. Request types return
// the same Descriptor for every value.
type Descriptor struct {
	Method   Method
	Path     string
	Encoding Encoding
}

// Response is implemented by envelope types. Extract is the only place the
// envelope's success convention is interpreted.
type Response[D any] interface {
	Extract() (D, error)
}

// Request is implemented by request types. NewResponse returns a fresh,
// pointer-backed envelope for Call to decode into.
//
// Request structs should carry both `json` and `url` tags so they serialize
// under either encoding.
type Request[D any] interface {
	Descriptor() Descriptor
	NewResponse() Response[D]
}

// EncodeQuery serializes v (a struct or pointer to struct) into a query string
// using `url` struct tags. Keys are sorted.
func EncodeQuery(v any) (string, error) {
	values, err := query.Values(v)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// EncodeJSON serializes v into JSON text.
func EncodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
