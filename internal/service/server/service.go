package server

import (
	"context"
	"sync/atomic"

	domain "github.com/isaac-server/isaac/internal/domain/handshake"
	"github.com/isaac-server/isaac/internal/logger"
)

// service answers version diagnostics and negotiates the protocol with peers.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// info is the immutable description of this build.
	info *domain.Info
	// accepted counts handshakes that ended compatible.
	accepted atomic.Uint64
	// rejected counts handshakes that ended incompatible.
	rejected atomic.Uint64
}

// newService creates a service describing the current build.
func newService() *service {
	return &service{
		info: domain.Current(),
	}
}

// Describe returns a copy of the server info.
func (s *service) Describe(ctx context.Context) *domain.Info {
	logger.Debug(ctx, "Version requested")

	info := *s.info

	return &info
}

// Negotiate checks the peer protocol against ours and records the outcome.
func (s *service) Negotiate(ctx context.Context, peer *domain.Peer) *domain.Negotiation {
	result := domain.Negotiate(s.info.Protocol, s.info.Server, peer)

	var actor *domain.Actor
	if peer != nil {
		actor = peer.Actor.Clone()
	}

	if result.Accepted {
		s.accepted.Add(1)
		logger.InfoKV(ctx, "Handshake accepted", "peer_protocol", peer.Protocol.String(), "actor", actor)

		return result
	}

	s.rejected.Add(1)

	peerProtocol := "none"
	if peer != nil {
		peerProtocol = peer.Protocol.String()
	}

	logger.WarnKV(ctx, "Handshake rejected",
		"peer_protocol", peerProtocol,
		"server_protocol", s.info.Protocol.String(),
		"actor", actor,
	)

	return result
}

// stats returns the number of accepted and rejected handshakes.
func (s *service) stats() (accepted, rejected uint64) {
	return s.accepted.Load(), s.rejected.Load()
}
