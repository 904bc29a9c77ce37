package okx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/prettyrest/pkg/rest"
)

// Code is the envelope status code. OKX sends it as a JSON string; numbers
// are accepted too. Either way it must be an unsigned integer.
type Code string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
	}
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return fmt.Errorf("okx code %q is not an unsigned integer", s)
	}
	*c = Code(s)
	return nil
}

// IsSuccess reports whether the code is 0.
func (c Code) IsSuccess() bool {
	n, err := strconv.ParseUint(string(c), 10, 64)
	return err == nil && n == 0
}

// Envelope is the standard OKX v5 response wrapper.
type Envelope[T any] struct {
	Code Code   `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data *T     `json:"data,omitempty"`
}

// UnmarshalJSON rejects bodies without a code field, so a foreign body (a
// gateway error page, say) fails decoding instead of reading as an OKX failure.
func (e *Envelope[T]) UnmarshalJSON(raw []byte) error {
	var wire struct {
		Code *Code  `json:"code"`
		Msg  string `json:"msg"`
		Data *T     `json:"data"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	if wire.Code == nil {
		return fmt.Errorf("okx envelope: missing code field")
	}
	e.Code = *wire.Code
	e.Msg = wire.Msg
	e.Data = wire.Data
	return nil
}

// Extract returns Data when Code is 0. A zero code without data fails with
// rest.ErrNoData; any other code fails with Msg, or the code when Msg is empty.
func (e *Envelope[T]) Extract() (T, error) {
	var zero T
	if e.Code == "" {
		return zero, &rest.APIError{Message: "response code missing"}
	}
	if !e.Code.IsSuccess() {
		return zero, &rest.APIError{Code: string(e.Code), Message: e.Msg}
	}
	if e.Data == nil {
		return zero, &rest.APIError{Code: string(e.Code), Message: rest.ErrNoData.Error(), Err: rest.ErrNoData}
	}
	return *e.Data, nil
}

// OrderEnvelope wraps trade endpoints, which report per-order failures in
// sCode/sMsg in addition to the envelope code.
type OrderEnvelope struct {
	Envelope[[]OrderAck]
}

// Extract fails when the envelope or the first order ack reports an error,
// preferring the order's sMsg as the message.
func (e *OrderEnvelope) Extract() (OrderAck, error) {
	var acks []OrderAck
	if e.Data != nil {
		acks = *e.Data
	}
	if len(acks) > 0 {
		ack := acks[0]
		if ack.SCode != "" && ack.SCode != "0" {
			return OrderAck{}, &rest.APIError{Code: ack.SCode, Message: ack.SMsg}
		}
	}

	acks, err := e.Envelope.Extract()
	if err != nil {
		return OrderAck{}, err
	}
	if len(acks) == 0 {
		return OrderAck{}, &rest.APIError{Code: string(e.Code), Message: rest.ErrNoData.Error(), Err: rest.ErrNoData}
	}
	return acks[0], nil
}
