package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	api "github.com/isaac-server/isaac/internal/api/grpc/isaac"
	"github.com/isaac-server/isaac/internal/config"
	"github.com/isaac-server/isaac/internal/logger"
)

// Options controls the isaac-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// LogLevel overrides the level from the settings file when set.
	LogLevel string
	// Ready, when set, receives the bound address once the server is listening.
	Ready func(addr net.Addr)
}

var (
	// ErrNoServerAddress indicates missing server configuration.
	ErrNoServerAddress = errors.New("no server address configured")
	// errUnknownLogLevel is returned for an unrecognised log level override.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Run starts the gRPC server and blocks until context is canceled or server stops.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "isaac-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Apply the log level: CLI flag overrides config.
	levelText := settings.LogLevel
	if opts.LogLevel != "" {
		levelText = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(levelText)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, levelText)
	}

	logger.SetLevel(level)

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	// Create the version service and the gRPC server exposing it.
	svc := newService()
	grpcServer := newGRPCServer(svc)

	// Announce server and protocol versions before accepting connections.
	logger.Banner(ctx)
	logger.InfoKV(ctx, "ISAAC server listening", "listen_address", lis.Addr().String())

	// Let in-process callers learn the bound address (port 0 resolves here).
	if opts.Ready != nil {
		opts.Ready(lis.Addr())
	}

	// Closed after GracefulStop finishes so Run returns only once the server fully stops.
	done := make(chan struct{})

	// Stop gracefully once the context is cancelled.
	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	// Serve blocks until GracefulStop or a listener failure.
	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done

	// Report handshake totals for this run.
	accepted, rejected := svc.stats()
	logger.InfoKV(ctx, "GRPC server stopped", "handshakes_accepted", accepted, "handshakes_rejected", rejected)

	return nil
}

// newGRPCServer registers the version service, health checks and reflection.
func newGRPCServer(svc api.Service) *grpc.Server {
	grpcServer := grpc.NewServer()

	// Version diagnostics and protocol handshakes.
	api.RegisterVersionServiceServer(grpcServer, api.NewServer(svc))

	// Standard health checks report the version service as serving.
	healthServer := health.NewServer()
	healthServer.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Reflection resolves the version service through its registered file descriptor.
	reflection.Register(grpcServer)

	return grpcServer
}

// resolveListenAddress determines the listen address for the gRPC server.
// An override is used as is; otherwise the port of configAddr is bound on all interfaces.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
