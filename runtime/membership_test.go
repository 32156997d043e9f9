package runtime

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
)

func newMembershipIndex(t *testing.T) (*MembershipIndex, *mocks.MockIMembershipRepository, *mocks.MockIReconciler) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIMembershipRepository(ctrl)
	reconciler := mocks.NewMockIReconciler(ctrl)
	return NewMembershipIndex(repo, reconciler, slog.Default()), repo, reconciler
}

func TestMembershipIndex_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	index, repo, reconciler := newMembershipIndex(t)
	ctx := context.Background()
	alice := domain.Identity{ID: "alice"}

	repo.EXPECT().Members(gomock.Any(), domain.RoomID("lobby")).Return(nil, nil)
	// The durable write-through fires once, not once per attempt.
	reconciler.EXPECT().EnqueueMembership(domain.RoomID("lobby"), alice, true, gomock.Any()).Times(1)

	changed, err := index.Join(ctx, "lobby", alice)
	req.NoError(err)
	req.True(changed)

	changed, err = index.Join(ctx, "lobby", alice)
	req.NoError(err)
	req.False(changed)

	member, err := index.IsMember(ctx, "lobby", "alice")
	req.NoError(err)
	req.True(member)
}

func TestMembershipIndex_HydratesFromStore(t *testing.T) {
	req := require.New(t)
	index, repo, _ := newMembershipIndex(t)
	ctx := context.Background()

	// Membership written before a restart is still honored.
	repo.EXPECT().Members(gomock.Any(), domain.RoomID("lobby")).Return([]string{"alice", "bob"}, nil).Times(1)

	member, err := index.IsMember(ctx, "lobby", "bob")
	req.NoError(err)
	req.True(member)

	// Second lookup hits the in-memory index, not the store.
	member, err = index.IsMember(ctx, "lobby", "alice")
	req.NoError(err)
	req.True(member)

	req.ElementsMatch([]domain.RoomID{"lobby"}, index.RoomsOf("alice"))
}

func TestMembershipIndex_SubscribeRequiresJoin(t *testing.T) {
	req := require.New(t)
	index, repo, _ := newMembershipIndex(t)
	ctx := context.Background()

	repo.EXPECT().Members(gomock.Any(), domain.RoomID("lobby")).Return(nil, nil)

	err := index.Subscribe(ctx, "conn-1", "alice", "lobby")
	req.ErrorIs(err, errors.ErrNotAMember)
	req.Empty(index.SubscribersOf("lobby"))
}

func TestMembershipIndex_UnsubscribeAllReleasesEverything(t *testing.T) {
	req := require.New(t)
	index, repo, reconciler := newMembershipIndex(t)
	ctx := context.Background()
	alice := domain.Identity{ID: "alice"}

	repo.EXPECT().Members(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	reconciler.EXPECT().EnqueueMembership(gomock.Any(), alice, true, gomock.Any()).Times(2)

	for _, room := range []domain.RoomID{"lobby", "dev"} {
		_, err := index.Join(ctx, room, alice)
		req.NoError(err)
		req.NoError(index.Subscribe(ctx, "conn-1", "alice", room))
	}

	rooms := index.UnsubscribeAll("conn-1")
	req.ElementsMatch([]domain.RoomID{"lobby", "dev"}, rooms)
	req.Empty(index.SubscribersOf("lobby"))
	req.Empty(index.SubscribersOf("dev"))

	// Membership survives the disconnect.
	member, err := index.IsMember(ctx, "lobby", "alice")
	req.NoError(err)
	req.True(member)
}

func TestMembershipIndex_LeaveWritesThrough(t *testing.T) {
	req := require.New(t)
	index, repo, reconciler := newMembershipIndex(t)
	ctx := context.Background()
	alice := domain.Identity{ID: "alice"}

	repo.EXPECT().Members(gomock.Any(), domain.RoomID("lobby")).Return(nil, nil)
	reconciler.EXPECT().EnqueueMembership(domain.RoomID("lobby"), alice, true, gomock.Any())
	reconciler.EXPECT().EnqueueMembership(domain.RoomID("lobby"), alice, false, gomock.Any()).Times(1)

	_, err := index.Join(ctx, "lobby", alice)
	req.NoError(err)

	changed, err := index.Leave(ctx, "lobby", alice)
	req.NoError(err)
	req.True(changed)

	// Leaving twice is a no-op that still succeeds.
	changed, err = index.Leave(ctx, "lobby", alice)
	req.NoError(err)
	req.False(changed)
}
