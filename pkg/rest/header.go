package rest

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// Header is an insertion-ordered header set built for a single call.
type Header struct {
	keys   []string
	values map[string]string
}

// Get returns the value for name (case-insensitive).
func (h Header) Get(name string) string {
	return h.values[http.CanonicalHeaderKey(name)]
}

// Keys returns header names in first-insertion order.
func (h Header) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Len returns the number of distinct header names.
func (h Header) Len() int { return len(h.keys) }

// HTTP converts the set to an http.Header.
func (h Header) HTTP() http.Header {
	out := make(http.Header, len(h.keys))
	for _, k := range h.keys {
		out[k] = []string{h.values[k]}
	}
	return out
}

// HeaderHook customizes the headers of every call made through a Client.
// It must be safe for concurrent use.
type HeaderHook func(b *HeaderBuilder) error

// HeaderBuilder accumulates headers for exactly one in-flight call. The verb,
// resolved URL and body text are exposed so hooks can derive signatures.
type HeaderBuilder struct {
	method Method
	url    url.URL
	body   string
	header Header
	err    error
	built  bool
}

// NewHeaderBuilder seeds a builder with the call context.
func NewHeaderBuilder(method Method, u *url.URL, body string) *HeaderBuilder {
	b := &HeaderBuilder{
		method: method,
		body:   body,
		header: Header{values: make(map[string]string)},
	}
	if u != nil {
		b.url = *u
	}
	return b
}

// Method returns the call's verb.
func (b *HeaderBuilder) Method() Method { return b.method }

// URL returns a copy of the resolved URL.
func (b *HeaderBuilder) URL() *url.URL {
	u := b.url
	return &u
}

// Body returns the serialized body text ("" for URI-encoded requests).
func (b *HeaderBuilder) Body() string { return b.body }

// ContentType sets the Content-Type header.
func (b *HeaderBuilder) ContentType(value string) error {
	return b.Set("Content-Type", value)
}

// Set sets name to value, replacing any earlier value. Invalid names or
// values are rejected and also reported again by Build.
func (b *HeaderBuilder) Set(name, value string) error {
	if b.built {
		return ErrBuilderConsumed
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return b.fail(fmt.Errorf("%w: invalid header name %q", ErrHeader, name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return b.fail(fmt.Errorf("%w: invalid value for header %q", ErrHeader, name))
	}

	key := http.CanonicalHeaderKey(name)
	if _, exists := b.header.values[key]; !exists {
		b.header.keys = append(b.header.keys, key)
	}
	b.header.values[key] = value
	return nil
}

// Build yields the finished header set. The builder cannot be used afterwards.
func (b *HeaderBuilder) Build() (Header, error) {
	if b.built {
		return Header{}, ErrBuilderConsumed
	}
	b.built = true
	if b.err != nil {
		return Header{}, b.err
	}
	h := b.header
	b.header = Header{}
	return h, nil
}

func (b *HeaderBuilder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}
