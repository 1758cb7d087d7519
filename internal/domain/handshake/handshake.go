package handshake

import "github.com/isaac-server/isaac/internal/version"

// Actor identifies the machine and user behind a peer.
type Actor struct {
	// Hostname is the machine name of the peer.
	Hostname string
	// Username is the system user running the peer.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// Peer is the side requesting a handshake.
type Peer struct {
	// Actor is optional audit information about the peer.
	Actor *Actor
	// Protocol is the wire protocol version the peer speaks.
	Protocol version.Proto
}

// Info describes a running server.
type Info struct {
	Server    version.SemVer
	Protocol  version.Proto
	Commit    string
	BuildTime string
}

// Current returns the Info of this build.
func Current() *Info {
	return &Info{
		Server:    version.Server(),
		Protocol:  version.Protocol(),
		Commit:    version.Commit,
		BuildTime: version.BuildTime,
	}
}

// Negotiation is the outcome of a handshake.
type Negotiation struct {
	// Accepted reports whether the peer protocol is compatible with the server.
	Accepted bool
	// Server is the server release version.
	Server version.SemVer
	// Protocol is the protocol version the server speaks.
	Protocol version.Proto
}

// Negotiate decides whether a peer can talk to a server speaking ours.
func Negotiate(ours version.Proto, server version.SemVer, peer *Peer) *Negotiation {
	accepted := peer != nil && ours.Compatible(peer.Protocol)

	return &Negotiation{
		Accepted: accepted,
		Server:   server,
		Protocol: ours,
	}
}
