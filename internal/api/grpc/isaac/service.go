package isaac

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "isaac.v1.VersionService"

// FilePath is the path the version service file descriptor is registered under.
const FilePath = "isaac/v1/version.proto"

// Full method names of the version service.
const (
	GetVersionFullMethodName = "/" + ServiceName + "/GetVersion"
	HandshakeFullMethodName  = "/" + ServiceName + "/Handshake"
)

// VersionServiceServer is the server API of the version service.
type VersionServiceServer interface {
	GetVersion(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Handshake(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// VersionServiceClient is the client API of the version service.
type VersionServiceClient interface {
	GetVersion(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Handshake(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// VersionServiceDesc describes the version service for grpc.Server registration.
//
//nolint:gochecknoglobals // Service descriptors are package-level by grpc convention.
var VersionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VersionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetVersion",
			Handler:    getVersionHandler,
		},
		{
			MethodName: "Handshake",
			Handler:    handshakeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: FilePath,
}

// RegisterVersionServiceServer registers srv on the given registrar.
func RegisterVersionServiceServer(r grpc.ServiceRegistrar, srv VersionServiceServer) {
	r.RegisterService(&VersionServiceDesc, srv)
}

func getVersionHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(VersionServiceServer).GetVersion(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetVersionFullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VersionServiceServer).GetVersion(ctx, req.(*emptypb.Empty)) //nolint:forcetypeassert // See above.
	}

	return interceptor(ctx, in, info, handler)
}

func handshakeHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(VersionServiceServer).Handshake(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HandshakeFullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VersionServiceServer).Handshake(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // See above.
	}

	return interceptor(ctx, in, info, handler)
}

type versionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewVersionServiceClient returns a client bound to the given connection.
//
//nolint:ireturn // Mirrors generated gRPC client constructors.
func NewVersionServiceClient(cc grpc.ClientConnInterface) VersionServiceClient {
	return &versionServiceClient{cc: cc}
}

// GetVersion calls VersionService.GetVersion.
func (c *versionServiceClient) GetVersion(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetVersionFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// Handshake calls VersionService.Handshake.
func (c *versionServiceClient) Handshake(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, HandshakeFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
