package version

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestServerString ensures the dotted string is exactly the join of the server constants.
func TestServerString(t *testing.T) {
	t.Parallel()

	require.Equal(t, fmt.Sprintf("%d.%d.%d", ServerMajor, ServerMinor, ServerPatch), ServerString())
	require.Equal(t, "1.5.0", ServerString())
	require.Equal(t, Server().String(), ServerString())
	require.Equal(t, Server().String(), Short())
	require.Contains(t, Full(), "version: "+Server().String()+",")
}

// TestProtocolIsIndependent ensures the protocol version never leaks into the server string.
func TestProtocolIsIndependent(t *testing.T) {
	t.Parallel()

	require.Equal(t, Proto{Major: 1, Minor: 0}, Protocol())
	require.Equal(t, "1.0", Protocol().String())
	require.NotEqual(t, "1.0", ServerString())
	require.NotEqual(t, "1.5.0.1.0", ServerString())
	require.Equal(t, 2, strings.Count(ServerString(), "."))
}

// TestConstantsNonNegative checks every numeric constant is a non-negative integer.
func TestConstantsNonNegative(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]int{
		"ServerMajor":   ServerMajor,
		"ServerMinor":   ServerMinor,
		"ServerPatch":   ServerPatch,
		"ProtocolMajor": ProtocolMajor,
		"ProtocolMinor": ProtocolMinor,
	} {
		require.GreaterOrEqual(t, value, 0, name)
	}
}

// TestConcurrentReads verifies repeated concurrent reads observe identical values.
func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup

	results := make([]string, 32)
	for i := range results {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = ServerString() + "|" + Protocol().String() + "|" + Server().String()
		}()
	}

	wg.Wait()

	for _, got := range results {
		require.Equal(t, "1.5.0|1.0|1.5.0", got)
	}
}

// TestFull ensures Full carries the server string, protocol and build metadata.
func TestFull(t *testing.T) {
	t.Parallel()

	full := Full()
	require.Contains(t, full, Short())
	require.Contains(t, full, "protocol: "+Protocol().String())
	require.Contains(t, full, "commit: "+Commit)
	require.Contains(t, full, "built at: "+BuildTime)
}

// TestParseProto covers accepted and rejected protocol strings.
func TestParseProto(t *testing.T) {
	t.Parallel()

	valid := map[string]Proto{
		"1.0":    {Major: 1, Minor: 0},
		" 2.13 ": {Major: 2, Minor: 13},
		"0.0":    {Major: 0, Minor: 0},
	}
	for input, want := range valid {
		got, err := ParseProto(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "1", "1.", ".1", "-1.0", "1.-0", "1.0.0", "a.b", "1.+2"} {
		_, err := ParseProto(input)
		require.ErrorIs(t, err, ErrInvalidProtocol, input)
	}
}

// TestCompatible exercises the major/minor compatibility rule.
func TestCompatible(t *testing.T) {
	t.Parallel()

	ours := Proto{Major: 1, Minor: 2}

	cases := []struct {
		peer Proto
		want bool
	}{
		{Proto{Major: 1, Minor: 0}, true},
		{Proto{Major: 1, Minor: 2}, true},
		{Proto{Major: 1, Minor: 3}, false},
		{Proto{Major: 0, Minor: 9}, false},
		{Proto{Major: 2, Minor: 0}, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ours.Compatible(c.peer), c.peer.String())
	}

	require.True(t, Protocol().Compatible(Protocol()))
}

// TestVersionCommand runs the attached cobra subcommand in both modes.
func TestVersionCommand(t *testing.T) {
	t.Parallel()

	run := func(args ...string) string {
		root := &cobra.Command{Use: "isaac-test"}
		AttachCobraVersionCommand(root)

		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)

		require.NoError(t, root.Execute())

		return strings.TrimSpace(out.String())
	}

	require.Equal(t, Full(), run("version"))
	require.Equal(t, "1.5.0", run("version", "--short"))
}
