package okx

import "strings"

// InstrumentType is the OKX instrument category.
type InstrumentType string

const (
	InstrumentSpot    InstrumentType = "SPOT"
	InstrumentMargin  InstrumentType = "MARGIN"
	InstrumentSwap    InstrumentType = "SWAP"
	InstrumentFutures InstrumentType = "FUTURES"
	InstrumentOption  InstrumentType = "OPTION"
	InstrumentAny     InstrumentType = "ANY"
)

// ParseInstrumentType accepts any letter case.
func ParseInstrumentType(s string) (InstrumentType, bool) {
	switch t := InstrumentType(strings.ToUpper(strings.TrimSpace(s))); t {
	case InstrumentSpot, InstrumentMargin, InstrumentSwap, InstrumentFutures, InstrumentOption, InstrumentAny:
		return t, true
	default:
		return "", false
	}
}

// Instrument is one entry of public/instruments.
type Instrument struct {
	InstType   InstrumentType `json:"instType"`
	InstID     string         `json:"instId"`
	Uly        string         `json:"uly,omitempty"`
	InstFamily string         `json:"instFamily,omitempty"`
	BaseCcy    string         `json:"baseCcy,omitempty"`
	QuoteCcy   string         `json:"quoteCcy,omitempty"`
	SettleCcy  string         `json:"settleCcy,omitempty"`
	CtVal      string         `json:"ctVal,omitempty"`
	CtMult     string         `json:"ctMult,omitempty"`
	TickSz     string         `json:"tickSz,omitempty"`
	LotSz      string         `json:"lotSz,omitempty"`
	MinSz      string         `json:"minSz,omitempty"`
	State      string         `json:"state,omitempty"`
	ListTime   string         `json:"listTime,omitempty"`
	ExpTime    string         `json:"expTime,omitempty"`
}

// Ticker is the latest market snapshot for an instrument.
type Ticker struct {
	InstType  InstrumentType `json:"instType"`
	InstID    string         `json:"instId"`
	Last      string         `json:"last"`
	LastSz    string         `json:"lastSz"`
	AskPx     string         `json:"askPx"`
	AskSz     string         `json:"askSz"`
	BidPx     string         `json:"bidPx"`
	BidSz     string         `json:"bidSz"`
	Open24h   string         `json:"open24h"`
	High24h   string         `json:"high24h"`
	Low24h    string         `json:"low24h"`
	Vol24h    string         `json:"vol24h"`
	VolCcy24h string         `json:"volCcy24h"`
	Ts        string         `json:"ts"`
}

// Balance is the trading account summary.
type Balance struct {
	TotalEq string          `json:"totalEq"`
	UTime   string          `json:"uTime"`
	Details []BalanceDetail `json:"details"`
}

// BalanceDetail is the per-currency part of a Balance.
type BalanceDetail struct {
	Ccy       string `json:"ccy"`
	Eq        string `json:"eq"`
	CashBal   string `json:"cashBal"`
	AvailBal  string `json:"availBal"`
	FrozenBal string `json:"frozenBal"`
}

// OrderAck is the per-order result of trade/order.
type OrderAck struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	Tag     string `json:"tag"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}
