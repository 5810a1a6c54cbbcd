package electrum

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"go.uber.org/zap"
)

// Dialer opens instrumented sessions to arbitrary endpoints sharing one set of options.
type Dialer struct {
	template   Config
	rpcMetrics RPCMetrics
	logger     *zap.Logger
}

// NewDialer builds a Dialer. template.Endpoint is ignored; each Dial supplies its own.
func NewDialer(template Config, rpcMetrics RPCMetrics, logger *zap.Logger) (*Dialer, error) {
	if rpcMetrics == nil {
		return nil, errors.New("electrum rpc metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dialer{
		template:   template,
		rpcMetrics: rpcMetrics,
		logger:     logger,
	}, nil
}

// Dial connects to endpoint and completes the handshake.
func (d *Dialer) Dial(ctx context.Context, endpoint model.Endpoint) (client *ObservedClient, err error) {
	started := time.Now()
	defer func() {
		d.rpcMetrics.Observe(MethodServerVersion, err, started)
	}()

	cfg := d.template
	cfg.Endpoint = endpoint

	c, err := Dial(ctx, cfg, d.logger)
	if err != nil {
		return nil, err
	}
	return NewObservedClient(c, d.rpcMetrics), nil
}
