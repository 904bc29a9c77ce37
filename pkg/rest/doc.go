// Package rest binds typed request values to HTTP calls and typed response
// envelopes back.
//
// A request type declares its verb, path and encoding through a Descriptor
// and names its response envelope through NewResponse. Call encodes the
// request, resolves the URL against the client host, builds headers
// (optionally through a HeaderHook), dispatches over an httpclient.Client,
// checks the HTTP status, decodes the envelope and returns whatever the
// envelope's Extract yields.
//
// HTTP-level failures surface as *StatusError and envelope-level failures as
// *APIError, so callers can tell them apart with errors.As.
package rest
