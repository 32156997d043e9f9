package domain

import "time"

// RoomID is the durable identifier of a room, issued at creation time.
type RoomID string

// Room is the durable entity. Membership (identity set) is durable and owned
// by the membership index; live subscriptions are tracked separately per
// connection.
type Room struct {
	ID        RoomID
	CreatedAt time.Time
}
