package transport

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
)

// ServiceName is the health service name answered besides the empty server-wide name.
const ServiceName = "blockinsight7000.portfolio"

// HealthHandler reports SERVING when the default indexer accepts a handshake.
type HealthHandler struct {
	healthpb.UnimplementedHealthServer

	dialer   SessionDialer
	endpoint model.Endpoint
	timeout  time.Duration
	logger   *zap.Logger
}

// NewHealthHandler returns a HealthHandler probing endpoint.
func NewHealthHandler(dialer SessionDialer, endpoint model.Endpoint, timeout time.Duration, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		dialer:   dialer,
		endpoint: endpoint,
		timeout:  timeout,
		logger:   logger,
	}
}

// Check dials the indexer and closes the session right away.
func (h *HealthHandler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	session, err := h.dialer.Dial(ctx, h.endpoint)
	if err != nil {
		h.logger.Warn("indexer health check failed",
			zap.String("indexer", h.endpoint.Address()),
			zap.Error(err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	if err := session.Close(); err != nil {
		h.logger.Debug("close health session", zap.Error(err))
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
