package domain

import "time"

// ConnectionID identifies one live transport session. An identity may hold
// several concurrent connections (multi-device), so fan-out always addresses
// connections, never identities.
type ConnectionID string

// Connection is the registry-side view of a live duplex session.
// Subscription state is ephemeral and re-established on reconnect;
// it does not survive a disconnect, unlike room membership.
type Connection struct {
	ID           ConnectionID
	Owner        Identity
	LastActivity time.Time
}
