// Package integration holds end-to-end tests that run the ISAAC server
// in-process and talk to it over real gRPC connections.
package integration
