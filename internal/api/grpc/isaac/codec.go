package isaac

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/isaac-server/isaac/internal/domain/handshake"
	"github.com/isaac-server/isaac/internal/version"
)

// Struct field names used on the wire.
const (
	FieldServerVersion   = "server_version"
	FieldServerMajor     = "server_major"
	FieldServerMinor     = "server_minor"
	FieldServerPatch     = "server_patch"
	FieldProtocolVersion = "protocol_version"
	FieldProtocolMajor   = "protocol_major"
	FieldProtocolMinor   = "protocol_minor"
	FieldCommit          = "commit"
	FieldBuildTime       = "build_time"
	FieldAccepted        = "accepted"
	FieldHostname        = "hostname"
	FieldUsername        = "username"
)

var (
	// ErrMissingField is returned when a required Struct field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidField is returned when a Struct field has the wrong kind or value.
	ErrInvalidField = errors.New("invalid field")
)

// InfoToProto renders server info as a Struct.
func InfoToProto(info *domain.Info) *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldCommit:    structpb.NewStringValue(info.Commit),
		FieldBuildTime: structpb.NewStringValue(info.BuildTime),
	}

	putServer(fields, info.Server)
	putProtocol(fields, info.Protocol)

	return &structpb.Struct{Fields: fields}
}

// InfoFromProto parses server info from a Struct.
func InfoFromProto(s *structpb.Struct) (*domain.Info, error) {
	server, err := getServer(s)
	if err != nil {
		return nil, err
	}

	protocol, err := getProtocol(s)
	if err != nil {
		return nil, err
	}

	return &domain.Info{
		Server:    server,
		Protocol:  protocol,
		Commit:    s.GetFields()[FieldCommit].GetStringValue(),
		BuildTime: s.GetFields()[FieldBuildTime].GetStringValue(),
	}, nil
}

// PeerToProto renders a handshake request as a Struct.
func PeerToProto(peer *domain.Peer) *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldProtocolVersion: structpb.NewStringValue(peer.Protocol.String()),
	}

	if peer.Actor != nil {
		fields[FieldHostname] = structpb.NewStringValue(peer.Actor.Hostname)
		fields[FieldUsername] = structpb.NewStringValue(peer.Actor.Username)
	}

	return &structpb.Struct{Fields: fields}
}

// PeerFromProto parses a handshake request. Only protocol_version is required.
func PeerFromProto(s *structpb.Struct) (*domain.Peer, error) {
	text, err := getString(s, FieldProtocolVersion)
	if err != nil {
		return nil, err
	}

	protocol, err := version.ParseProto(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidField, FieldProtocolVersion, err)
	}

	peer := &domain.Peer{Protocol: protocol}

	hostname := s.GetFields()[FieldHostname].GetStringValue()
	username := s.GetFields()[FieldUsername].GetStringValue()

	if hostname != "" || username != "" {
		peer.Actor = &domain.Actor{
			Hostname: hostname,
			Username: username,
		}
	}

	return peer, nil
}

// NegotiationToProto renders a handshake outcome as a Struct.
func NegotiationToProto(n *domain.Negotiation) *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldAccepted: structpb.NewBoolValue(n.Accepted),
	}

	putServer(fields, n.Server)
	putProtocol(fields, n.Protocol)

	return &structpb.Struct{Fields: fields}
}

// NegotiationFromProto parses a handshake outcome from a Struct.
func NegotiationFromProto(s *structpb.Struct) (*domain.Negotiation, error) {
	accepted, ok := s.GetFields()[FieldAccepted].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, FieldAccepted)
	}

	server, err := getServer(s)
	if err != nil {
		return nil, err
	}

	protocol, err := getProtocol(s)
	if err != nil {
		return nil, err
	}

	return &domain.Negotiation{
		Accepted: accepted.BoolValue,
		Server:   server,
		Protocol: protocol,
	}, nil
}

func putServer(fields map[string]*structpb.Value, v version.SemVer) {
	fields[FieldServerVersion] = structpb.NewStringValue(v.String())
	fields[FieldServerMajor] = structpb.NewNumberValue(float64(v.Major))
	fields[FieldServerMinor] = structpb.NewNumberValue(float64(v.Minor))
	fields[FieldServerPatch] = structpb.NewNumberValue(float64(v.Patch))
}

func putProtocol(fields map[string]*structpb.Value, p version.Proto) {
	fields[FieldProtocolVersion] = structpb.NewStringValue(p.String())
	fields[FieldProtocolMajor] = structpb.NewNumberValue(float64(p.Major))
	fields[FieldProtocolMinor] = structpb.NewNumberValue(float64(p.Minor))
}

func getServer(s *structpb.Struct) (version.SemVer, error) {
	var (
		v   version.SemVer
		err error
	)

	if v.Major, err = getInt(s, FieldServerMajor); err != nil {
		return version.SemVer{}, err
	}

	if v.Minor, err = getInt(s, FieldServerMinor); err != nil {
		return version.SemVer{}, err
	}

	if v.Patch, err = getInt(s, FieldServerPatch); err != nil {
		return version.SemVer{}, err
	}

	// The dotted string is informational, but it must agree with the numbers.
	if text := s.GetFields()[FieldServerVersion].GetStringValue(); text != "" && text != v.String() {
		return version.SemVer{}, fmt.Errorf("%w: %s %q does not match %s", ErrInvalidField, FieldServerVersion, text, v)
	}

	return v, nil
}

func getProtocol(s *structpb.Struct) (version.Proto, error) {
	var (
		p   version.Proto
		err error
	)

	if p.Major, err = getInt(s, FieldProtocolMajor); err != nil {
		return version.Proto{}, err
	}

	if p.Minor, err = getInt(s, FieldProtocolMinor); err != nil {
		return version.Proto{}, err
	}

	return p, nil
}

func getString(s *structpb.Struct, name string) (string, error) {
	value, ok := s.GetFields()[name].GetKind().(*structpb.Value_StringValue)
	if !ok || value.StringValue == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	return value.StringValue, nil
}

func getInt(s *structpb.Struct, name string) (int, error) {
	value, ok := s.GetFields()[name].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	n := value.NumberValue
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%v", ErrInvalidField, name, n)
	}

	return int(n), nil
}
