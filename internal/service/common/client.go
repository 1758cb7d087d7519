//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/emptypb"

	api "github.com/isaac-server/isaac/internal/api/grpc/isaac"
	"github.com/isaac-server/isaac/internal/config"
	domain "github.com/isaac-server/isaac/internal/domain/handshake"
)

// Client wraps the gRPC version service client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the server.
	conn *grpc.ClientConn
	// api is the version service client.
	api api.VersionServiceClient
	// health is the standard gRPC health client.
	health healthpb.HealthClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errPeerRequired is returned when a handshake is attempted without a peer.
	errPeerRequired = errors.New("peer must be provided")
)

// Dial creates a gRPC client for the ISAAC server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial isaac server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewVersionServiceClient(conn),
		health:      healthpb.NewHealthClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetVersion retrieves the server version and build metadata.
func (c *Client) GetVersion(ctx context.Context) (*domain.Info, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetVersion(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	info, err := api.InfoFromProto(resp)
	if err != nil {
		return nil, fmt.Errorf("decode version: %w", err)
	}

	return info, nil
}

// Handshake negotiates the protocol version with the server.
func (c *Client) Handshake(ctx context.Context, peer *domain.Peer) (*domain.Negotiation, error) {
	if peer == nil {
		return nil, errPeerRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Handshake(callCtx, api.PeerToProto(peer))
	if err != nil {
		return nil, fmt.Errorf("handshake: %w", err)
	}

	negotiation, err := api.NegotiationFromProto(resp)
	if err != nil {
		return nil, fmt.Errorf("decode handshake: %w", err)
	}

	return negotiation, nil
}

// Serving reports whether the server's health service marks the version service as serving.
func (c *Client) Serving(ctx context.Context) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.health.Check(callCtx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return false, fmt.Errorf("health check: %w", err)
	}

	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
