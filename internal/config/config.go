// Package config holds command line options shared by the binaries.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/service"
)

// Indexer selects the default Electrum server and connection options.
type Indexer struct {
	Host           string        `long:"host" env:"HOST" description:"electrum server host"`
	Port           uint16        `long:"port" env:"PORT" description:"electrum server port (50001 plain, 50002 TLS when empty)"`
	TLS            bool          `long:"tls" env:"TLS" description:"connect over TLS"`
	SkipVerify     bool          `long:"skip-verify" env:"SKIP_VERIFY" description:"accept self-signed certificates"`
	Proxy          string        `long:"proxy" env:"PROXY" description:"SOCKS5 proxy host:port"`
	DialTimeout    time.Duration `long:"dial-timeout" env:"DIAL_TIMEOUT" description:"connect and handshake timeout" default:"10s"`
	RequestTimeout time.Duration `long:"request-timeout" env:"REQUEST_TIMEOUT" description:"per request timeout" default:"30s"`
	RPS            int           `long:"rps" env:"RPS" description:"max requests per second per connection, 0 is unlimited" default:"0"`
}

// Endpoint returns the configured server.
func (c Indexer) Endpoint() model.Endpoint {
	return model.Endpoint{Host: c.Host, Port: c.Port, TLS: c.TLS}
}

// Electrum returns the session template used by electrum.Dialer.
func (c Indexer) Electrum() electrum.Config {
	return electrum.Config{
		Endpoint:          c.Endpoint(),
		TLSSkipVerify:     c.SkipVerify,
		Proxy:             c.Proxy,
		DialTimeout:       c.DialTimeout,
		RequestTimeout:    c.RequestTimeout,
		RequestsPerSecond: c.RPS,
	}
}

// Batch controls request batching per reconstruction stage.
type Batch struct {
	History int           `long:"history" env:"HISTORY" description:"script hashes per history batch" default:"10"`
	Header  int           `long:"header" env:"HEADER" description:"heights per header batch" default:"20"`
	Tx      int           `long:"tx" env:"TX" description:"transactions per batch" default:"10"`
	Balance int           `long:"balance" env:"BALANCE" description:"script hashes per balance batch" default:"10"`
	Delay   time.Duration `long:"delay" env:"DELAY" description:"pause between batches" default:"100ms"`
}

// Service converts the options to a service.BatchConfig.
func (c Batch) Service() service.BatchConfig {
	return service.BatchConfig{
		HistoryBatchSize: c.History,
		HeaderBatchSize:  c.Header,
		TxBatchSize:      c.Tx,
		BalanceBatchSize: c.Balance,
		Delay:            c.Delay,
	}
}

// Parse loads an optional .env file and parses args into cfg.
func Parse(cfg any, args []string) ([]string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return flags.ParseArgs(cfg, args)
}
