package domain

// PresenceState is derived from connection liveness, never persisted as a
// source of truth. The durable store only caches a last-seen timestamp.
type PresenceState string

const (
	PresenceOnline  PresenceState = "online"
	PresenceAway    PresenceState = "away"
	PresenceOffline PresenceState = "offline"
)
