// Package isaac implements the gRPC transport of the ISAAC version service.
//
// Messages are protobuf well-known types (Empty and Struct), so the service
// needs no generated code: the service descriptor and client stub are
// declared here, and codec.go maps Structs to domain types and back.
package isaac
