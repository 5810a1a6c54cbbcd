package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/keyderiv"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/utils"
)

var options struct {
	Network      string         `long:"network" env:"NETWORK" description:"bitcoin network" default:"mainnet"`
	ScriptHashes []string       `long:"script-hash" description:"script hash to watch, repeatable"`
	Addresses    []string       `long:"address" description:"address to watch, repeatable"`
	XPub         string         `long:"xpub" env:"XPUB" description:"extended public key to derive from"`
	ScriptType   string         `long:"script-type" description:"p2pkh, p2wpkh or p2sh-p2wpkh; inferred from the key when empty"`
	Count        uint32         `long:"count" description:"receive and change addresses derived per chain" default:"20"`
	Timeout      time.Duration  `long:"timeout" env:"TIMEOUT" description:"overall timeout" default:"10m"`
	Verbose      bool           `short:"v" long:"verbose" description:"log indexer traffic"`
	Indexer      config.Indexer `group:"indexer" namespace:"indexer" env-namespace:"INDEXER"`
	Batch        config.Batch   `group:"batch" namespace:"batch" env-namespace:"BATCH"`
}

func main() {
	if _, err := config.Parse(&options, os.Args); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	logger := zap.NewNop()
	if options.Verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			panic("can't initialize zap logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(logger, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	deriver, err := keyderiv.NewDeriver(options.Network)
	if err != nil {
		return err
	}
	set, labels, err := deriver.Resolve(keyderiv.Selection{
		ScriptHashes: options.ScriptHashes,
		Addresses:    options.Addresses,
		XPub:         options.XPub,
		ScriptType:   options.ScriptType,
		Count:        options.Count,
	})
	if err != nil {
		return err
	}

	dialer, err := electrum.NewDialer(options.Indexer.Electrum(), metrics.NewIndexerClient(options.Network), logger)
	if err != nil {
		return err
	}
	portfolio, err := service.NewPortfolio(
		service.ElectrumSessions(dialer),
		metrics.NewBalanceAggregator(options.Network),
		metrics.NewHistoryReconstructor(options.Network),
		logger,
		options.Batch.Service(),
	)
	if err != nil {
		return err
	}

	started := time.Now()
	summary, err := portfolio.Summary(ctx, service.Query{Endpoint: options.Indexer.Endpoint(), ScriptHashes: set})
	if err != nil {
		return err
	}
	logger.Info("portfolio summary done",
		zap.Int("script_hashes", set.Len()),
		zap.Int("points", len(summary.History)),
		zap.Duration("elapsed", clock.Since(started)))

	renderBalances(out, summary, labels)
	renderTimeline(out, summary)
	renderReport(out, summary)
	return nil
}

func label(h scripthash.Hash, labels map[scripthash.Hash]keyderiv.Derived) string {
	d, ok := labels[h]
	if !ok {
		return h.String()
	}
	if d.Path == "" {
		return d.Address
	}
	return d.Path + " " + d.Address
}

func renderBalances(out io.Writer, s service.Summary, labels map[scripthash.Hash]keyderiv.Derived) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Balance")
	t.AppendHeader(table.Row{"Script", "Confirmed", "Unconfirmed", "Total", "Note"})
	for _, row := range s.Balance.PerHash {
		if row.Err == nil && row.Confirmed == 0 && row.Unconfirmed == 0 {
			continue
		}
		note := ""
		if row.Err != nil {
			note = row.Err.Error()
		}
		t.AppendRow(table.Row{
			label(row.ScriptHash, labels),
			utils.FormatBTC(row.Confirmed),
			utils.FormatBTC(row.Unconfirmed),
			utils.FormatBTC(row.Confirmed+row.Unconfirmed),
			note,
		})
	}
	t.AppendFooter(table.Row{
		"Total",
		utils.FormatBTC(s.Balance.ConfirmedTotal),
		utils.FormatBTC(s.Balance.Total - s.Balance.ConfirmedTotal),
		utils.FormatBTC(s.Balance.Total),
		"",
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func renderTimeline(out io.Writer, s service.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("History")
	t.AppendHeader(table.Row{"Time", "Height", "Transaction", "Change", "Balance"})
	for _, p := range s.History {
		t.AppendRow(table.Row{
			utils.FormatTimestamp(p.Timestamp),
			p.Height,
			p.TxID.String(),
			utils.FormatBTC(p.DeltaSats),
			utils.FormatBTC(p.CumulativeSats),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func renderReport(out io.Writer, s service.Summary) {
	if !s.Report.Degraded() && s.Consistent {
		return
	}
	fmt.Fprintf(out, "warning: incomplete data (history %d, headers %d, transactions %d, unresolved inputs %d)",
		s.Report.HistoryFailures, s.Report.HeaderFailures, s.Report.TxFailures, s.Report.UnresolvedPrevouts)
	if !s.Consistent {
		fmt.Fprint(out, "; history does not match the confirmed balance")
	}
	fmt.Fprintln(out)
}
