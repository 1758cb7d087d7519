// Package version exposes the ISAAC server release version and the
// protocol version it speaks.
//
// The numeric constants are fixed when the binary is built. ServerString
// returns the dotted "major.minor.patch" rendering of the server constants,
// computed once at package initialisation and not assignable from outside.
// Commit and BuildTime are build metadata injected via Go ldflags and default
// to sensible values for local builds.
package version
