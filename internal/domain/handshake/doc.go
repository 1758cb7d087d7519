// Package handshake holds the domain model of version negotiation between
// an ISAAC server and its peers.
package handshake
