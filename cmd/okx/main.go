package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/samvad-hq/prettyrest/internal/config"
	"github.com/samvad-hq/prettyrest/internal/logger"
	"github.com/samvad-hq/prettyrest/pkg/httpclient"
	"github.com/samvad-hq/prettyrest/pkg/okx"
)

type CLI struct {
	Instruments InstrumentsCmd `cmd:"" help:"List instruments of a type"`
	Ticker      TickerCmd      `cmd:"" help:"Show the latest ticker of an instrument"`
	Balance     BalanceCmd     `cmd:"" help:"Show account balances (requires API credentials)"`
}

// runtime is bound into every command's Run method.
type runtime struct {
	ctx    context.Context
	client *okx.Client
	out    io.Writer
}

type InstrumentsCmd struct {
	Type   string `short:"t" required:"" help:"Instrument type (SPOT, MARGIN, SWAP, FUTURES, OPTION)"`
	Uly    string `help:"Underlying, e.g. BTC-USD"`
	Family string `help:"Instrument family, e.g. BTC-USD"`
	ID     string `name:"id" help:"Single instrument id"`
}

func (c *InstrumentsCmd) Run(rt *runtime) error {
	typ, ok := okx.ParseInstrumentType(c.Type)
	if !ok {
		return fmt.Errorf("unknown instrument type %q", c.Type)
	}
	list, err := rt.client.Instruments(rt.ctx, okx.GetInstruments{
		InstType:   typ,
		Uly:        c.Uly,
		InstFamily: c.Family,
		InstID:     c.ID,
	})
	if err != nil {
		return err
	}
	return printJSON(rt.out, list)
}

type TickerCmd struct {
	InstID string `arg:"" help:"Instrument id, e.g. BTC-USDT"`
}

func (c *TickerCmd) Run(rt *runtime) error {
	t, err := rt.client.Ticker(rt.ctx, c.InstID)
	if err != nil {
		return err
	}
	return printJSON(rt.out, t)
}

type BalanceCmd struct {
	Ccy string `help:"Comma separated currencies to filter on"`
}

func (c *BalanceCmd) Run(rt *runtime) error {
	b, err := rt.client.Balance(rt.ctx, c.Ccy)
	if err != nil {
		return err
	}
	return printJSON(rt.out, b)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	cli := &CLI{}
	cliCtx := kong.Parse(cli,
		kong.Name("okx"),
		kong.Description("Query the OKX v5 REST API."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	cliCtx.FatalIfErrorf(err)

	log, err := logger.InitTo(cfg, os.Stderr)
	cliCtx.FatalIfErrorf(err)
	defer logger.Close()

	client, err := okx.NewClient(cfg.OKXBaseURL, httpclient.NewRestyClient(cfg.HTTPTimeout), okx.Options{
		Credentials: okx.Credentials{
			APIKey:     cfg.OKXAPIKey,
			SecretKey:  cfg.OKXSecretKey,
			Passphrase: cfg.OKXPassphrase,
		},
		Simulated: cfg.OKXSimulated,
		Logger:    log,
	})
	cliCtx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = cliCtx.Run(&runtime{ctx: ctx, client: client, out: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "okx: %v\n", err)
		stop()
		_ = logger.Close()
		os.Exit(1)
	}
}
