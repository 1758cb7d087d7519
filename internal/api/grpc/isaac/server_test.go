package isaac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/isaac-server/isaac/internal/domain/handshake"
	"github.com/isaac-server/isaac/internal/version"
)

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	// lastPeer records the peer passed to Negotiate.
	lastPeer *domain.Peer
}

// Describe returns the info of the current build.
func (f *fakeService) Describe(context.Context) *domain.Info {
	return domain.Current()
}

// Negotiate records the peer and applies the domain rule.
func (f *fakeService) Negotiate(_ context.Context, peer *domain.Peer) *domain.Negotiation {
	f.lastPeer = peer

	return domain.Negotiate(version.Protocol(), version.Server(), peer)
}

// TestServer_GetVersion checks the diagnostics payload.
func TestServer_GetVersion(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	resp, err := s.GetVersion(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)

	fields := resp.GetFields()
	require.Equal(t, "1.5.0", fields[FieldServerVersion].GetStringValue())
	require.Equal(t, "1.0", fields[FieldProtocolVersion].GetStringValue())
	require.InDelta(t, 1, fields[FieldServerMajor].GetNumberValue(), 0)
	require.InDelta(t, 5, fields[FieldServerMinor].GetNumberValue(), 0)
	require.InDelta(t, 0, fields[FieldServerPatch].GetNumberValue(), 0)

	info, err := InfoFromProto(resp)
	require.NoError(t, err)
	require.Equal(t, domain.Current(), info)
}

// TestServer_Handshake_Validation ensures malformed requests return InvalidArgument.
func TestServer_Handshake_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.Handshake(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Handshake(context.Background(), new(structpb.Struct))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	bad := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldProtocolVersion: structpb.NewStringValue("one"),
	}}

	_, err = s.Handshake(context.Background(), bad)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	wrongKind := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldProtocolVersion: structpb.NewNumberValue(1),
	}}

	_, err = s.Handshake(context.Background(), wrongKind)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_Handshake covers accepted and rejected peers.
func TestServer_Handshake(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	request := PeerToProto(&domain.Peer{
		Actor:    &domain.Actor{Hostname: "lab-01", Username: "isaac"},
		Protocol: version.Protocol(),
	})

	resp, err := s.Handshake(context.Background(), request)
	require.NoError(t, err)

	negotiation, err := NegotiationFromProto(resp)
	require.NoError(t, err)
	require.True(t, negotiation.Accepted)
	require.Equal(t, version.Server(), negotiation.Server)
	require.Equal(t, version.Protocol(), negotiation.Protocol)
	require.Equal(t, &domain.Actor{Hostname: "lab-01", Username: "isaac"}, svc.lastPeer.Actor)

	request = PeerToProto(&domain.Peer{Protocol: version.Proto{Major: version.ProtocolMajor + 1}})

	resp, err = s.Handshake(context.Background(), request)
	require.NoError(t, err)
	require.False(t, resp.GetFields()[FieldAccepted].GetBoolValue())
	require.Nil(t, svc.lastPeer.Actor)
}
