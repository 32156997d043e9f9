package workers

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/sink"
)

func TestFanoutWorker_DeliverInOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	index := mocks.NewMockISubscriberIndex(ctrl)
	sessions := mocks.NewMockISessionDirectory(ctrl)

	sinkA := sink.NewConnectionSink(8, 8)
	sinkB := sink.NewConnectionSink(8, 8)
	index.EXPECT().SubscribersOf(domain.RoomID("lobby")).
		Return([]domain.ConnectionID{"a", "b"}).AnyTimes()
	sessions.EXPECT().SinkOf(domain.ConnectionID("a")).Return(contract.ConnectionSink(sinkA), true).AnyTimes()
	sessions.EXPECT().SinkOf(domain.ConnectionID("b")).Return(contract.ConnectionSink(sinkB), true).AnyTimes()

	w := NewFanoutWorker(slog.Default(), nil, nil, index, sessions,
		func(domain.ConnectionID, error) { t.Fatal("no disconnect expected") })

	for seq := uint64(1); seq <= 3; seq++ {
		w.Deliver(domain.Message{Room: "lobby", Seq: seq})
	}

	for _, s := range []*sink.ConnectionSink{sinkA, sinkB} {
		for seq := uint64(1); seq <= 3; seq++ {
			req.Equal(seq, (<-s.Messages).Seq)
		}
	}
}

func TestFanoutWorker_BackpressureDisconnectsOnlyTheSlowOne(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	index := mocks.NewMockISubscriberIndex(ctrl)
	sessions := mocks.NewMockISessionDirectory(ctrl)

	healthy := sink.NewConnectionSink(8, 8)
	slow := sink.NewConnectionSink(1, 1)
	index.EXPECT().SubscribersOf(domain.RoomID("lobby")).
		Return([]domain.ConnectionID{"healthy", "slow"}).AnyTimes()
	sessions.EXPECT().SinkOf(domain.ConnectionID("healthy")).Return(contract.ConnectionSink(healthy), true).AnyTimes()
	sessions.EXPECT().SinkOf(domain.ConnectionID("slow")).Return(contract.ConnectionSink(slow), true).AnyTimes()

	var disconnected []domain.ConnectionID
	w := NewFanoutWorker(slog.Default(), nil, nil, index, sessions,
		func(conn domain.ConnectionID, reason error) {
			require.ErrorIs(t, reason, errors.ErrBackpressure)
			disconnected = append(disconnected, conn)
		})

	w.Deliver(domain.Message{Room: "lobby", Seq: 1})
	w.Deliver(domain.Message{Room: "lobby", Seq: 2})

	req.Equal([]domain.ConnectionID{"slow"}, disconnected)

	// The healthy sibling got the full stream.
	req.Equal(uint64(1), (<-healthy.Messages).Seq)
	req.Equal(uint64(2), (<-healthy.Messages).Seq)
}

func TestFanoutWorker_DisconnectRaceIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockISubscriberIndex(ctrl)
	sessions := mocks.NewMockISessionDirectory(ctrl)

	// The connection went away between the snapshot and the push.
	index.EXPECT().SubscribersOf(domain.RoomID("lobby")).
		Return([]domain.ConnectionID{"gone"})
	sessions.EXPECT().SinkOf(domain.ConnectionID("gone")).Return(nil, false)

	w := NewFanoutWorker(slog.Default(), nil, nil, index, sessions,
		func(domain.ConnectionID, error) { t.Fatal("no disconnect expected") })
	w.Deliver(domain.Message{Room: "lobby", Seq: 1})
}

func TestFanoutWorker_BroadcastIsBestEffort(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	index := mocks.NewMockISubscriberIndex(ctrl)
	sessions := mocks.NewMockISessionDirectory(ctrl)

	s := sink.NewConnectionSink(1, 1)
	index.EXPECT().SubscribersOf(domain.RoomID("lobby")).
		Return([]domain.ConnectionID{"a"}).AnyTimes()
	sessions.EXPECT().SinkOf(domain.ConnectionID("a")).Return(contract.ConnectionSink(s), true).AnyTimes()

	w := NewFanoutWorker(slog.Default(), nil, nil, index, sessions,
		func(domain.ConnectionID, error) { t.Fatal("no disconnect expected") })

	evt := event.PresenceChanged{Room: "lobby", Identity: domain.Identity{ID: "alice"}, State: domain.PresenceAway}
	w.Broadcast(evt)
	// Queue full: the second broadcast is dropped without disconnecting.
	w.Broadcast(evt)

	req.Len(s.Events, 1)
}
