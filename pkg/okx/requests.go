package okx

import "github.com/samvad-hq/prettyrest/pkg/rest"

// GetInstruments lists instruments with open contracts.
//
// GET /api/v5/public/instruments. Rate limit: 20 requests per 2 seconds
// (IP + instType). uly or instFamily is required for OPTION.
type GetInstruments struct {
	InstType   InstrumentType `json:"instType" url:"instType"`
	Uly        string         `json:"uly,omitempty" url:"uly,omitempty"`
	InstFamily string         `json:"instFamily,omitempty" url:"instFamily,omitempty"`
	InstID     string         `json:"instId,omitempty" url:"instId,omitempty"`
}

var getInstrumentsDescriptor = rest.Descriptor{
	Method:   rest.MethodGet,
	Path:     "public/instruments",
	Encoding: rest.EncodingURI,
}

func (GetInstruments) Descriptor() rest.Descriptor { return getInstrumentsDescriptor }
func (GetInstruments) NewResponse() rest.Response[[]Instrument] {
	return new(Envelope[[]Instrument])
}

// GetTicker fetches the latest ticker of one instrument.
//
// GET /api/v5/market/ticker.
type GetTicker struct {
	InstID string `json:"instId" url:"instId"`
}

var getTickerDescriptor = rest.Descriptor{
	Method:   rest.MethodGet,
	Path:     "market/ticker",
	Encoding: rest.EncodingURI,
}

func (GetTicker) Descriptor() rest.Descriptor { return getTickerDescriptor }
func (GetTicker) NewResponse() rest.Response[[]Ticker] {
	return new(Envelope[[]Ticker])
}

// GetBalance reads the trading account balance. Requires credentials.
//
// GET /api/v5/account/balance. ccy is a comma separated list, at most 20.
type GetBalance struct {
	Ccy string `json:"ccy,omitempty" url:"ccy,omitempty"`
}

var getBalanceDescriptor = rest.Descriptor{
	Method:   rest.MethodGet,
	Path:     "account/balance",
	Encoding: rest.EncodingURI,
}

func (GetBalance) Descriptor() rest.Descriptor { return getBalanceDescriptor }
func (GetBalance) NewResponse() rest.Response[[]Balance] {
	return new(Envelope[[]Balance])
}

// PlaceOrder submits a single order. Requires credentials.
//
// POST /api/v5/trade/order.
type PlaceOrder struct {
	InstID  string `json:"instId" url:"instId"`
	TdMode  string `json:"tdMode" url:"tdMode"`
	Side    string `json:"side" url:"side"`
	OrdType string `json:"ordType" url:"ordType"`
	Sz      string `json:"sz" url:"sz"`
	Px      string `json:"px,omitempty" url:"px,omitempty"`
	PosSide string `json:"posSide,omitempty" url:"posSide,omitempty"`
	ClOrdID string `json:"clOrdId,omitempty" url:"clOrdId,omitempty"`
}

var placeOrderDescriptor = rest.Descriptor{
	Method: rest.MethodPost,
	Path:   "trade/order",
}

func (PlaceOrder) Descriptor() rest.Descriptor { return placeOrderDescriptor }
func (PlaceOrder) NewResponse() rest.Response[OrderAck] {
	return new(OrderEnvelope)
}
