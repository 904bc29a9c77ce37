package okx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/prettyrest/pkg/httpclient"
	"github.com/samvad-hq/prettyrest/pkg/rest"
)

// DefaultBaseURL is the production REST root. Paths are resolved against it.
const DefaultBaseURL = "https://www.okx.com/api/v5/"

// Options configures NewClient.
type Options struct {
	Credentials Credentials
	Simulated   bool
	Logger      rest.Logger
	Now         func() time.Time
}

// Client exposes typed OKX v5 endpoints over a rest.Client.
type Client struct {
	rest *rest.Client
}

// NewClient builds a client for baseURL (DefaultBaseURL when empty) signing
// calls with opts.Credentials when they are complete.
func NewClient(baseURL string, transport httpclient.Client, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	rc, err := rest.NewClient(baseURL, transport,
		rest.WithHeaderHook(SignHook(opts.Credentials, opts.Simulated, opts.Now)),
		rest.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init okx rest client: %w", err)
	}
	return &Client{rest: rc}, nil
}

// Wrap uses an existing rest.Client as is.
func Wrap(rc *rest.Client) *Client { return &Client{rest: rc} }

// REST returns the underlying client for issuing request types not covered here.
func (c *Client) REST() *rest.Client { return c.rest }

// Instruments lists instruments matching req.
func (c *Client) Instruments(ctx context.Context, req GetInstruments) ([]Instrument, error) {
	return rest.Call[[]Instrument](ctx, c.rest, req)
}

// Ticker returns the ticker for instID.
func (c *Client) Ticker(ctx context.Context, instID string) (Ticker, error) {
	tickers, err := rest.Call[[]Ticker](ctx, c.rest, GetTicker{InstID: instID})
	if err != nil {
		return Ticker{}, err
	}
	if len(tickers) == 0 {
		return Ticker{}, &rest.APIError{Code: "0", Message: fmt.Sprintf("no ticker for %s", instID), Err: rest.ErrNoData}
	}
	return tickers[0], nil
}

// Balance returns the account balance, optionally filtered to ccy.
func (c *Client) Balance(ctx context.Context, ccy string) ([]Balance, error) {
	return rest.Call[[]Balance](ctx, c.rest, GetBalance{Ccy: ccy})
}

// PlaceOrder submits req and returns the order acknowledgement.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrder) (OrderAck, error) {
	return rest.Call[OrderAck](ctx, c.rest, req)
}
