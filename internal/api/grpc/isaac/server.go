package isaac

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/isaac-server/isaac/internal/domain/handshake"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Describe(ctx context.Context) *domain.Info
	Negotiate(ctx context.Context, peer *domain.Peer) *domain.Negotiation
}

// Server implements VersionServiceServer on top of a Service.
type Server struct {
	// service provides the version data and negotiation logic.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetVersion returns the server and protocol versions with build metadata.
func (s *Server) GetVersion(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return InfoToProto(s.service.Describe(ctx)), nil
}

// Handshake negotiates the protocol with a peer.
// An incompatible peer is not an error: the response carries accepted=false.
func (s *Server) Handshake(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	peer, err := PeerFromProto(req)
	if err != nil {
		if errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidField) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		return nil, status.Error(codes.Internal, "unable to read handshake")
	}

	return NegotiationToProto(s.service.Negotiate(ctx, peer)), nil
}
