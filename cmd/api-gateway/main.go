package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/keyderiv"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/transport"
)

var options struct {
	Addr          string         `long:"addr" env:"API_GATEWAY_ADDR" description:"addr" default:":8000"`
	RestAddr      string         `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	Network       string         `long:"network" env:"NETWORK" description:"bitcoin network" default:"mainnet"`
	HealthTimeout time.Duration  `long:"health-timeout" env:"HEALTH_TIMEOUT" description:"indexer probe timeout" default:"5s"`
	Indexer       config.Indexer `group:"indexer" namespace:"indexer" env-namespace:"INDEXER"`
	Batch         config.Batch   `group:"batch" namespace:"batch" env-namespace:"BATCH"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := config.Parse(&options, os.Args); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	deriver, err := keyderiv.NewDeriver(options.Network)
	if err != nil {
		logger.Fatal("Failed to create deriver", zap.Error(err))
	}
	dialer, err := electrum.NewDialer(options.Indexer.Electrum(), metrics.NewIndexerClient(options.Network), logger)
	if err != nil {
		logger.Fatal("Failed to create electrum dialer", zap.Error(err))
	}
	sessions := service.ElectrumSessions(dialer)
	portfolio, err := service.NewPortfolio(
		sessions,
		metrics.NewBalanceAggregator(options.Network),
		metrics.NewHistoryReconstructor(options.Network),
		logger,
		options.Batch.Service(),
	)
	if err != nil {
		logger.Fatal("Failed to create portfolio service", zap.Error(err))
	}

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()

	healthpb.RegisterHealthServer(grpcServer, transport.NewHealthHandler(
		sessions, options.Indexer.Endpoint(), options.HealthTimeout, logger))
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", options.Addr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Fatal("Start GRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	mux := http.NewServeMux()

	gw := gwruntime.NewServeMux(transport.ServeMuxOptions()...)
	handler := transport.NewPortfolioHandler(portfolio, deriver, options.Indexer.Endpoint(), logger)
	if err := handler.Register(gw); err != nil {
		logger.Fatal("Register portfolio handler", zap.Error(err))
	}

	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              options.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// History reconstruction of large wallets can take minutes.
		WriteTimeout:   5 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server",
		zap.String("addr", options.RestAddr),
		zap.String("indexer", options.Indexer.Endpoint().Address()))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
