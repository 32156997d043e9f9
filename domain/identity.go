// Package domain contains core concepts of the relay.
// This file defines Identity, issued by the external auth collaborator.
// Identities are immutable and referenced by value everywhere else.
package domain

// Identity is an opaque user identity validated by the auth collaborator.
// The relay never parses credentials itself.
type Identity struct {
	ID          string
	DisplayName string
}
