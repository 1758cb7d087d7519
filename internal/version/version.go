package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Server release version.
const (
	ServerMajor = 1
	ServerMinor = 5
	ServerPatch = 0
)

// Wire protocol version. It changes only when wire compatibility changes,
// independently of server releases.
const (
	ProtocolMajor = 1
	ProtocolMinor = 0
)

// serverString is ServerMajor.ServerMinor.ServerPatch rendered as text once.
// It is unexported so importers can only read it through ServerString.
//
//nolint:gochecknoglobals // Derived from the constants above, never reassigned.
var serverString = Server().String()

var (
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// ErrInvalidProtocol is returned when a protocol version string cannot be parsed.
var ErrInvalidProtocol = errors.New("invalid protocol version")

// SemVer is a server release version.
type SemVer struct {
	Major int
	Minor int
	Patch int
}

// String renders the version as "major.minor.patch".
func (v SemVer) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// Proto is a wire protocol version.
type Proto struct {
	Major int
	Minor int
}

// String renders the protocol version as "major.minor".
func (p Proto) String() string {
	return strconv.Itoa(p.Major) + "." + strconv.Itoa(p.Minor)
}

// Compatible reports whether a peer speaking the given protocol can talk to us.
// Majors must match and the peer must not expect a newer minor than ours.
func (p Proto) Compatible(peer Proto) bool {
	return p.Major == peer.Major && peer.Minor <= p.Minor
}

// Server returns the server release version.
func Server() SemVer {
	return SemVer{
		Major: ServerMajor,
		Minor: ServerMinor,
		Patch: ServerPatch,
	}
}

// Protocol returns the wire protocol version.
func Protocol() Proto {
	return Proto{
		Major: ProtocolMajor,
		Minor: ProtocolMinor,
	}
}

// ParseProto parses a "major.minor" protocol version.
func ParseProto(s string) (Proto, error) {
	majorText, minorText, found := strings.Cut(strings.TrimSpace(s), ".")
	if !found {
		return Proto{}, fmt.Errorf("%w: %q", ErrInvalidProtocol, s)
	}

	major, err := parseComponent(majorText)
	if err != nil {
		return Proto{}, fmt.Errorf("%w: %q: major: %w", ErrInvalidProtocol, s, err)
	}

	minor, err := parseComponent(minorText)
	if err != nil {
		return Proto{}, fmt.Errorf("%w: %q: minor: %w", ErrInvalidProtocol, s, err)
	}

	return Proto{Major: major, Minor: minor}, nil
}

// parseComponent accepts only plain decimal digits, so signs and spaces are rejected.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty component")
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected character %q", r)
		}
	}

	return strconv.Atoi(s)
}

// ServerString returns the server version as "major.minor.patch".
func ServerString() string {
	return serverString
}

// Short returns only the server version string.
func Short() string {
	return serverString
}

// Full returns a human-readable version string with protocol, commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, protocol: %s, commit: %s, built at: %s",
		serverString, Protocol(), Commit, BuildTime)
}
