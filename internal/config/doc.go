// Package config defines the settings shared by the ISAAC binaries and
// provides helpers to load, validate and save them in YAML format.
package config
