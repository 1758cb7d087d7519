// Package probe implements isaac-probe: it connects to an ISAAC server,
// negotiates the protocol version, fetches the server version and reports
// whether the two sides can talk to each other.
package probe
