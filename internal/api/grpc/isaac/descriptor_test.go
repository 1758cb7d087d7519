package isaac

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// TestFileDescriptor_Registered ensures the service resolves from the global registry.
func TestFileDescriptor_Registered(t *testing.T) {
	t.Parallel()

	desc, err := protoregistry.GlobalFiles.FindDescriptorByName(protoreflect.FullName(ServiceName))
	require.NoError(t, err)

	service, ok := desc.(protoreflect.ServiceDescriptor)
	require.True(t, ok)
	require.Equal(t, FilePath, service.ParentFile().Path())
	require.True(t, File() == service.ParentFile())

	file, err := protoregistry.GlobalFiles.FindFileByPath(FilePath)
	require.NoError(t, err)
	require.True(t, File() == file)
	require.Equal(t, FilePath, VersionServiceDesc.Metadata)
}

// TestFileDescriptor_MatchesServiceDesc checks every registered handler has a described method.
func TestFileDescriptor_MatchesServiceDesc(t *testing.T) {
	t.Parallel()

	service := File().Services().ByName("VersionService")
	require.NotNil(t, service)
	require.Equal(t, len(VersionServiceDesc.Methods), service.Methods().Len())

	for _, m := range VersionServiceDesc.Methods {
		method := service.Methods().ByName(protoreflect.Name(m.MethodName))
		require.NotNil(t, method, m.MethodName)
		require.Equal(t, protoreflect.FullName("google.protobuf.Struct"), method.Output().FullName())
	}

	require.Equal(t, protoreflect.FullName("google.protobuf.Empty"),
		service.Methods().ByName("GetVersion").Input().FullName())
	require.Equal(t, protoreflect.FullName("google.protobuf.Struct"),
		service.Methods().ByName("Handshake").Input().FullName())
}
