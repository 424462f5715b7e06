// Package olink implements the wire protocol and shared node plumbing of
// an object-link RPC runtime: a transport-agnostic way for a client side
// holding proxy sinks to talk to a server side holding real sources over
// any duplex channel that carries text frames.
//
// The package itself only knows about message framing (names.go,
// kind.go, codec.go, builders.go) and the BaseNode plumbing shared by
// both endpoint roles (base.go). The endpoint roles that use it live in
// the client and remote subpackages.
package olink
