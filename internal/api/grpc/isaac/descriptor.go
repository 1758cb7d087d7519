package isaac

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// fileDescriptor describes the version service for reflection clients.
//
//nolint:gochecknoglobals // Registered once at init, like generated descriptors.
var fileDescriptor protoreflect.FileDescriptor

func init() { //nolint:gochecknoinits // Generated protobuf code registers descriptors the same way.
	file, err := buildFile(protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}

	if err = protoregistry.GlobalFiles.RegisterFile(file); err != nil {
		panic(fmt.Errorf("register %s: %w", FilePath, err))
	}

	fileDescriptor = file
}

// File returns the registered descriptor of the version service file.
//
//nolint:ireturn // Descriptors are only exposed as protoreflect interfaces.
func File() protoreflect.FileDescriptor {
	return fileDescriptor
}

// buildFile assembles the proto3 file declaring VersionService on top of the
// Empty and Struct well-known types, resolved through the given registry.
func buildFile(resolver protodesc.Resolver) (protoreflect.FileDescriptor, error) {
	var (
		empty   = (&emptypb.Empty{}).ProtoReflect().Descriptor()
		strukt  = (&structpb.Struct{}).ProtoReflect().Descriptor()
		typeRef = func(d protoreflect.MessageDescriptor) *string {
			return proto.String("." + string(d.FullName()))
		}
	)

	//nolint:exhaustruct // Unset descriptor fields keep their proto defaults.
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FilePath),
		Package: proto.String("isaac.v1"),
		Dependency: []string{
			empty.ParentFile().Path(),
			strukt.ParentFile().Path(),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("VersionService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String("GetVersion"),
						InputType:  typeRef(empty),
						OutputType: typeRef(strukt),
					},
					{
						Name:       proto.String("Handshake"),
						InputType:  typeRef(strukt),
						OutputType: typeRef(strukt),
					},
				},
			},
		},
		Syntax: proto.String("proto3"),
	}

	file, err := protodesc.NewFile(fd, resolver)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", FilePath, err)
	}

	return file, nil
}
