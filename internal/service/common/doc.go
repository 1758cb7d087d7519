// Package common holds helpers shared by the ISAAC client tools.
//
// It provides a gRPC client for the version service with per-call timeouts
// and detection of the current system actor (hostname/username), which is
// sent along with handshakes for the server's audit log.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
