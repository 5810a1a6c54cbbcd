package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/scripthash"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/pkg/workerpool"
	"go.uber.org/zap"
)

// ErrNoScriptHashes is returned for a query without script hashes.
var ErrNoScriptHashes = errors.New("query has no script hashes")

// Query selects the indexer and the owned script hashes.
type Query struct {
	Endpoint     model.Endpoint
	ScriptHashes scripthash.Set
}

// Summary combines the current balance and the reconstructed timeline of one session.
type Summary struct {
	Balance model.BalanceSummary
	History []model.AccumulationPoint
	Report  Report
	// Consistent is true when the last cumulative value equals the confirmed balance total.
	Consistent bool
}

// SessionDialerFunc adapts a function to SessionDialer.
type SessionDialerFunc func(ctx context.Context, endpoint model.Endpoint) (IndexerSession, error)

func (f SessionDialerFunc) Dial(ctx context.Context, endpoint model.Endpoint) (IndexerSession, error) {
	return f(ctx, endpoint)
}

// ElectrumSessions opens instrumented Electrum sessions.
func ElectrumSessions(d *electrum.Dialer) SessionDialer {
	return SessionDialerFunc(func(ctx context.Context, endpoint model.Endpoint) (IndexerSession, error) {
		c, err := d.Dial(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Portfolio answers balance and history queries, one indexer session per query.
type Portfolio struct {
	dialer         SessionDialer
	balanceMetrics BalanceMetrics
	historyMetrics HistoryMetrics
	logger         *zap.Logger
	batch          BatchConfig
}

func NewPortfolio(
	dialer SessionDialer,
	balanceMetrics BalanceMetrics,
	historyMetrics HistoryMetrics,
	logger *zap.Logger,
	batch BatchConfig,
) (*Portfolio, error) {
	if dialer == nil {
		return nil, errors.New("session dialer is required")
	}
	if balanceMetrics == nil || historyMetrics == nil {
		return nil, errors.New("portfolio metrics are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !batch.valid() {
		batch = DefaultBatchConfig()
	}
	return &Portfolio{
		dialer:         dialer,
		balanceMetrics: balanceMetrics,
		historyMetrics: historyMetrics,
		logger:         logger,
		batch:          batch,
	}, nil
}

// Balance returns the balance summary for q.
func (p *Portfolio) Balance(ctx context.Context, q Query) (model.BalanceSummary, error) {
	var summary model.BalanceSummary
	err := p.withSession(ctx, q, func(session IndexerSession) error {
		agg, err := NewBalanceAggregator(session, p.balanceMetrics, p.logger, p.batch)
		if err != nil {
			return err
		}
		summary, err = agg.FetchBalances(ctx, q.ScriptHashes)
		return err
	})
	return summary, err
}

// History returns the accumulation timeline for q.
func (p *Portfolio) History(ctx context.Context, q Query) ([]model.AccumulationPoint, Report, error) {
	var (
		points []model.AccumulationPoint
		report Report
	)
	err := p.withSession(ctx, q, func(session IndexerSession) error {
		rec, err := NewHistoryReconstructor(session, p.historyMetrics, p.logger, p.batch)
		if err != nil {
			return err
		}
		points, report, err = rec.ReconstructWithReport(ctx, q.ScriptHashes)
		return err
	})
	return points, report, err
}

// Summary runs the balance and history computations concurrently on one session. Either failing
// cancels the other.
func (p *Portfolio) Summary(ctx context.Context, q Query) (Summary, error) {
	var out Summary
	err := p.withSession(ctx, q, func(session IndexerSession) error {
		agg, err := NewBalanceAggregator(session, p.balanceMetrics, p.logger, p.batch)
		if err != nil {
			return err
		}
		rec, err := NewHistoryReconstructor(session, p.historyMetrics, p.logger, p.batch)
		if err != nil {
			return err
		}

		return workerpool.All(ctx,
			func(ctx context.Context) error {
				var err error
				out.Balance, err = agg.FetchBalances(ctx, q.ScriptHashes)
				return err
			},
			func(ctx context.Context) error {
				var err error
				out.History, out.Report, err = rec.ReconstructWithReport(ctx, q.ScriptHashes)
				return err
			},
		)
	})
	if err != nil {
		return Summary{}, err
	}

	var last int64
	if n := len(out.History); n > 0 {
		last = out.History[n-1].CumulativeSats
	}
	out.Consistent = last == out.Balance.ConfirmedTotal
	if !out.Consistent {
		p.logger.Warn("history does not match confirmed balance",
			zap.Int64("history_sats", last),
			zap.Int64("confirmed_sats", out.Balance.ConfirmedTotal),
			zap.Bool("degraded", out.Report.Degraded()))
	}
	return out, nil
}

func (p *Portfolio) withSession(ctx context.Context, q Query, run func(IndexerSession) error) error {
	if q.ScriptHashes.Len() == 0 {
		return ErrNoScriptHashes
	}

	session, err := p.dialer.Dial(ctx, q.Endpoint)
	if err != nil {
		return fmt.Errorf("open indexer session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			p.logger.Warn("close indexer session", zap.Error(closeErr))
		}
	}()

	return run(session)
}
