package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chat-relay/domain"
)

func setupPG(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	db, err := Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestMembershipRepository_JoinLeaveRoundTrip(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(setupPG(t))
	ctx := context.Background()

	room := domain.RoomID("test_room_" + uuid.NewString())
	alice := domain.Identity{ID: "test_alice_" + uuid.NewString(), DisplayName: "Alice"}

	exists, err := repo.RoomExists(ctx, room)
	req.NoError(err)
	req.False(exists)

	req.NoError(repo.UpsertRoom(ctx, room, time.Now().UTC()))
	// Upsert is idempotent.
	req.NoError(repo.UpsertRoom(ctx, room, time.Now().UTC()))

	exists, err = repo.RoomExists(ctx, room)
	req.NoError(err)
	req.True(exists)

	req.NoError(repo.RecordMembershipChange(ctx, room, alice, true, time.Now().UTC()))
	// Retried join does not fail.
	req.NoError(repo.RecordMembershipChange(ctx, room, alice, true, time.Now().UTC()))

	member, err := repo.IsMember(ctx, room, alice.ID)
	req.NoError(err)
	req.True(member)

	members, err := repo.Members(ctx, room)
	req.NoError(err)
	req.Contains(members, alice.ID)

	req.NoError(repo.RecordMembershipChange(ctx, room, alice, false, time.Now().UTC()))
	member, err = repo.IsMember(ctx, room, alice.ID)
	req.NoError(err)
	req.False(member)
}

func TestMembershipRepository_LastAckNeverRegresses(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(setupPG(t))
	ctx := context.Background()

	room := domain.RoomID("test_room_" + uuid.NewString())
	bob := domain.Identity{ID: "test_bob_" + uuid.NewString()}

	req.NoError(repo.UpsertRoom(ctx, room, time.Now().UTC()))
	req.NoError(repo.RecordMembershipChange(ctx, room, bob, true, time.Now().UTC()))

	ack, isMember, err := repo.LastAck(ctx, room, bob.ID)
	req.NoError(err)
	req.True(isMember)
	req.Zero(ack)

	req.NoError(repo.SetLastAck(ctx, room, bob.ID, 5))
	// A stale ack from a slow device must not move the cursor back.
	req.NoError(repo.SetLastAck(ctx, room, bob.ID, 3))

	ack, isMember, err = repo.LastAck(ctx, room, bob.ID)
	req.NoError(err)
	req.True(isMember)
	req.Equal(uint64(5), ack)

	// A non-member has no cursor.
	_, isMember, err = repo.LastAck(ctx, room, "test_nobody")
	req.NoError(err)
	req.False(isMember)
}

func TestMembershipRepository_TouchLastSeen(t *testing.T) {
	req := require.New(t)
	repo := NewMembershipRepository(setupPG(t))
	ctx := context.Background()

	id := "test_carol_" + uuid.NewString()
	req.NoError(repo.TouchLastSeen(ctx, id, time.Now().UTC()))
	// Second touch updates in place.
	req.NoError(repo.TouchLastSeen(ctx, id, time.Now().UTC().Add(time.Minute)))
}
