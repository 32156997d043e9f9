//go:generate go run go.uber.org/mock/mockgen -source=membership.go -destination=../mocks/mock_membership_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registered as 'pgx'

	"chat-relay/domain"
)

type IMembershipRepository interface {
	UpsertRoom(ctx context.Context, room domain.RoomID, createdAt time.Time) error
	RoomExists(ctx context.Context, room domain.RoomID) (bool, error)
	RecordMembershipChange(ctx context.Context, room domain.RoomID, identity domain.Identity, joined bool, at time.Time) error
	Members(ctx context.Context, room domain.RoomID) ([]string, error)
	IsMember(ctx context.Context, room domain.RoomID, identityID string) (bool, error)
	LastAck(ctx context.Context, room domain.RoomID, identityID string) (uint64, bool, error)
	SetLastAck(ctx context.Context, room domain.RoomID, identityID string, seq uint64) error
	TouchLastSeen(ctx context.Context, identityID string, at time.Time) error
}

// MembershipRepository is the relational side of the reconciler, backed by
// Postgres. It owns the durable membership list and the per-member
// last-acknowledged sequence used for replay.
type MembershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return MembershipRepository{db: db}
}

// Connect opens a Postgres connection from a DSN.
func Connect(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// Migrate applies idempotent schema changes for all required tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS room_members (
			room_id TEXT NOT NULL REFERENCES rooms(id),
			identity TEXT NOT NULL,
			display_name TEXT,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_ack BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (room_id, identity)
		)`,
		`CREATE TABLE IF NOT EXISTS identities (
			id TEXT PRIMARY KEY,
			last_seen TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_room_members_identity ON room_members(identity)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (r MembershipRepository) UpsertRoom(ctx context.Context, room domain.RoomID, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, created_at) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		string(room), createdAt.UTC())
	return err
}

func (r MembershipRepository) RoomExists(ctx context.Context, room domain.RoomID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM rooms WHERE id = $1`, string(room)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// RecordMembershipChange writes a join or leave. Both directions are
// idempotent so the at-least-once reconciler can retry freely.
func (r MembershipRepository) RecordMembershipChange(ctx context.Context, room domain.RoomID, identity domain.Identity, joined bool, at time.Time) error {
	if joined {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO room_members (room_id, identity, display_name, joined_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (room_id, identity) DO NOTHING`,
			string(room), identity.ID, identity.DisplayName, at.UTC())
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM room_members WHERE room_id = $1 AND identity = $2`,
		string(room), identity.ID)
	return err
}

func (r MembershipRepository) Members(ctx context.Context, room domain.RoomID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT identity FROM room_members WHERE room_id = $1`, string(room))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

func (r MembershipRepository) IsMember(ctx context.Context, room domain.RoomID, identityID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM room_members WHERE room_id = $1 AND identity = $2`,
		string(room), identityID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// LastAck returns the member's last-acknowledged sequence for a room.
// The bool is false when the identity is not a member.
func (r MembershipRepository) LastAck(ctx context.Context, room domain.RoomID, identityID string) (uint64, bool, error) {
	var ack int64
	err := r.db.QueryRowContext(ctx,
		`SELECT last_ack FROM room_members WHERE room_id = $1 AND identity = $2`,
		string(room), identityID).Scan(&ack)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint64(ack), true, nil
}

// SetLastAck only moves the acknowledgement forward; a stale ack from a slow
// device never regresses the replay cursor.
func (r MembershipRepository) SetLastAck(ctx context.Context, room domain.RoomID, identityID string, seq uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE room_members SET last_ack = GREATEST(last_ack, $3)
		 WHERE room_id = $1 AND identity = $2`,
		string(room), identityID, int64(seq))
	return err
}

// TouchLastSeen caches the moment an identity went offline. Presence itself
// is derived from connection liveness, never read back from here.
func (r MembershipRepository) TouchLastSeen(ctx context.Context, identityID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, last_seen) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET last_seen = EXCLUDED.last_seen`,
		identityID, at.UTC())
	return err
}
