// Package server runs the ISAAC gRPC server: it loads settings, logs the
// version banner and serves the version service, health checks and
// reflection until the context is cancelled.
package server
