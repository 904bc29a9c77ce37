package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/prettyrest/pkg/httpclient"
)

const mimeJSON = "application/json"

// Client issues typed requests against a fixed host. It holds no per-call
// state and is safe for concurrent use once constructed.
type Client struct {
	host      *url.URL
	transport httpclient.Client
	hook      HeaderHook
	log       Logger
}

// Option configures a Client at construction.
type Option func(*Client)

// WithHeaderHook registers the hook invoked on every call after the base headers are set.
func WithHeaderHook(hook HeaderHook) Option {
	return func(c *Client) { c.hook = hook }
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a client for host, which must be an absolute URL. Paths
// are resolved relative to it, so a host with a path prefix should end in "/".
func NewClient(host string, transport httpclient.Client, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport must not be nil")
	}
	u, err := url.Parse(strings.TrimSpace(host))
	if err != nil {
		return nil, fmt.Errorf("parse host: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("host %q must be an absolute url", host)
	}

	c := &Client{host: u, transport: transport}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.log = ensureLogger(c.log)
	return c, nil
}

// WithHeaderHook returns a copy of c that uses hook. c itself is unchanged.
func (c *Client) WithHeaderHook(hook HeaderHook) *Client {
	cp := *c
	cp.hook = hook
	return &cp
}

// Host returns the base URL as a string.
func (c *Client) Host() string { return c.host.String() }

// Call sends req and returns the payload extracted from its response envelope.
func Call[D any](ctx context.Context, c *Client, req Request[D]) (D, error) {
	var zero D
	if c == nil {
		return zero, fmt.Errorf("rest client is nil")
	}
	if req == nil {
		return zero, fmt.Errorf("%w: request is nil", ErrEncode)
	}
	desc := req.Descriptor()

	query, body, err := encode(desc.Encoding, req)
	if err != nil {
		return zero, err
	}

	target, err := c.resolve(desc.Path, query)
	if err != nil {
		return zero, err
	}

	header, err := c.headers(desc, target, body)
	if err != nil {
		return zero, err
	}

	c.log.DebugObj("rest call dispatch", "rest_call", map[string]any{
		"method": desc.Method.String(),
		"url":    target.Redacted(),
	})

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: desc.Method.HTTPMethod(),
		URL:    target.String(),
		Header: header.HTTP(),
		Body:   []byte(body),
	})
	if err != nil {
		return zero, fmt.Errorf("%w: %s %s: %w", ErrTransport, desc.Method, target.Redacted(), err)
	}

	if !resp.IsSuccess() {
		statusErr := &StatusError{
			Method:     desc.Method,
			URL:        target.Redacted(),
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       bodySnippet(resp.Body()),
		}
		c.log.WarnObj("rest call rejected", "rest_status_error", map[string]any{
			"method": desc.Method.String(),
			"url":    statusErr.URL,
			"status": statusErr.StatusCode,
		})
		return zero, statusErr
	}

	envelope := req.NewResponse()
	if envelope == nil {
		return zero, fmt.Errorf("%w: request %T returned a nil envelope", ErrDecode, req)
	}
	if err := json.Unmarshal(resp.Body(), envelope); err != nil {
		return zero, fmt.Errorf("%w: %T: %w", ErrDecode, envelope, err)
	}

	data, err := envelope.Extract()
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			err = &APIError{Message: err.Error(), Err: err}
		}
		return zero, err
	}
	return data, nil
}

// encode serializes the request for its declared encoding. Exactly one of
// query and body is non-empty.
func encode(enc Encoding, req any) (query, body string, err error) {
	switch enc {
	case EncodingURI:
		query, err = EncodeQuery(req)
		if err != nil {
			return "", "", fmt.Errorf("%w: query string: %w", ErrEncode, err)
		}
		return query, "", nil
	case EncodingJSON:
		body, err = EncodeJSON(req)
		if err != nil {
			return "", "", fmt.Errorf("%w: json body: %w", ErrEncode, err)
		}
		return "", body, nil
	default:
		return "", "", fmt.Errorf("%w: unsupported encoding %s", ErrEncode, enc)
	}
}

// resolve joins the request path (plus query string) onto the host.
func (c *Client) resolve(path, query string) (*url.URL, error) {
	ref := path
	if query != "" {
		ref = path + "?" + query
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: path %q: %w", ErrURL, path, err)
	}
	if rel.IsAbs() || rel.Host != "" {
		return nil, fmt.Errorf("%w: path %q is not relative to the host", ErrURL, path)
	}
	return c.host.ResolveReference(rel), nil
}

func (c *Client) headers(desc Descriptor, target *url.URL, body string) (Header, error) {
	b := NewHeaderBuilder(desc.Method, target, body)
	if err := b.Set("Accept", mimeJSON); err != nil {
		return Header{}, err
	}
	if desc.Encoding == EncodingJSON {
		if err := b.ContentType(mimeJSON); err != nil {
			return Header{}, err
		}
	}
	if c.hook != nil {
		if err := c.hook(b); err != nil {
			return Header{}, headerErr(err)
		}
	}
	h, err := b.Build()
	if err != nil {
		return Header{}, headerErr(err)
	}
	return h, nil
}

func headerErr(err error) error {
	if errors.Is(err, ErrHeader) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrHeader, err)
}
