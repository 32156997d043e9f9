package runtime

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/mocks"
)

type sequencerFixture struct {
	sequencer  *Sequencer
	rooms      *Rooms
	messages   *mocks.MockIMessageRepository
	deliveries chan domain.Message
	alarms     chan event.DomainEvent
}

func newSequencerFixture(t *testing.T, members ...string) sequencerFixture {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIMembershipRepository(ctrl)
	reconciler := mocks.NewMockIReconciler(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)

	repo.EXPECT().Members(gomock.Any(), gomock.Any()).Return(members, nil).AnyTimes()
	reconciler.EXPECT().EnqueueMessage(gomock.Any()).AnyTimes()

	rooms := NewRooms(256)
	index := NewMembershipIndex(repo, reconciler, slog.Default())
	deliveries := make(chan domain.Message, 1024)
	alarms := make(chan event.DomainEvent, 16)

	return sequencerFixture{
		sequencer:  NewSequencer(rooms, index, messages, reconciler, deliveries, alarms, slog.Default()),
		rooms:      rooms,
		messages:   messages,
		deliveries: deliveries,
		alarms:     alarms,
	}
}

func TestSequencer_ConcurrentAcceptsAreGapless(t *testing.T) {
	req := require.New(t)
	f := newSequencerFixture(t, "alice", "bob")
	f.messages.EXPECT().LastStoredSequence(domain.RoomID("lobby")).Return(uint64(0), nil)

	const perSender = 50
	var wg sync.WaitGroup
	for _, sender := range []domain.Identity{{ID: "alice"}, {ID: "bob"}} {
		wg.Add(1)
		go func(sender domain.Identity) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				_, err := f.sequencer.Accept(context.Background(), "lobby", sender, "hello")
				require.NoError(t, err)
			}
		}(sender)
	}
	wg.Wait()

	// Every sequence 1..100 was assigned exactly once, and the delivery
	// channel carries them in assignment order.
	seen := make(map[uint64]bool)
	var prev uint64
	for i := 0; i < 2*perSender; i++ {
		msg := <-f.deliveries
		req.False(seen[msg.Seq], "sequence %d assigned twice", msg.Seq)
		seen[msg.Seq] = true
		req.Greater(msg.Seq, prev)
		prev = msg.Seq
	}
	req.Equal(uint64(2*perSender), prev)
}

func TestSequencer_RejectedSendConsumesNoSequence(t *testing.T) {
	req := require.New(t)
	f := newSequencerFixture(t, "alice")
	f.messages.EXPECT().LastStoredSequence(domain.RoomID("lobby")).Return(uint64(0), nil)

	_, err := f.sequencer.Accept(context.Background(), "lobby", domain.Identity{ID: "stranger"}, "hi")
	req.ErrorIs(err, errors.ErrNotAMember)

	msg, err := f.sequencer.Accept(context.Background(), "lobby", domain.Identity{ID: "alice"}, "hi")
	req.NoError(err)
	req.Equal(uint64(1), msg.Seq)
}

func TestSequencer_SeedsCounterFromStore(t *testing.T) {
	req := require.New(t)
	f := newSequencerFixture(t, "alice")

	// A restart continues the room's total order instead of renumbering.
	f.messages.EXPECT().LastStoredSequence(domain.RoomID("lobby")).Return(uint64(41), nil).Times(1)

	msg, err := f.sequencer.Accept(context.Background(), "lobby", domain.Identity{ID: "alice"}, "hi")
	req.NoError(err)
	req.Equal(uint64(42), msg.Seq)

	// The seed is read once, later accepts use the in-memory counter.
	msg, err = f.sequencer.Accept(context.Background(), "lobby", domain.Identity{ID: "alice"}, "again")
	req.NoError(err)
	req.Equal(uint64(43), msg.Seq)
}

func TestSequencer_HaltsOnCorruptedCounter(t *testing.T) {
	req := require.New(t)
	f := newSequencerFixture(t, "alice")

	// Force a divergence between the tail and the counter.
	rs := f.rooms.Get("lobby")
	rs.seqLoaded = true
	rs.seq = 3
	rs.tail = []domain.Message{{Room: "lobby", Seq: 5}}

	_, err := f.sequencer.Accept(context.Background(), "lobby", domain.Identity{ID: "alice"}, "hi")
	req.ErrorIs(err, errors.ErrSequenceHalted)

	// The halt raised an operator-visible alarm.
	select {
	case evt := <-f.alarms:
		halted, ok := evt.(event.SequenceHalted)
		req.True(ok)
		req.Equal(domain.RoomID("lobby"), halted.Room)
	default:
		t.Fatal("expected a halt alarm")
	}

	// The room stays halted, nothing gets renumbered.
	_, err = f.sequencer.Accept(context.Background(), "lobby", domain.Identity{ID: "alice"}, "hi")
	req.ErrorIs(err, errors.ErrSequenceHalted)
}
