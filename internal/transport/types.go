// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	PortfolioService interface {
		Balance(ctx context.Context, q service.Query) (model.BalanceSummary, error)
		History(ctx context.Context, q service.Query) ([]model.AccumulationPoint, service.Report, error)
		Summary(ctx context.Context, q service.Query) (service.Summary, error)
	}
	SessionDialer interface {
		Dial(ctx context.Context, endpoint model.Endpoint) (service.IndexerSession, error)
	}
)
