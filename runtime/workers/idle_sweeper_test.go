package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/domain"
	"chat-relay/mocks"
)

func TestIdleSweeperWorker_SweepsAndDisconnects(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	presence := mocks.NewMockIPresenceSweeper(ctrl)
	sessions := mocks.NewMockIIdleScanner(ctrl)

	swept := make(chan struct{}, 8)
	presence.EXPECT().SweepAway(gomock.Any()).Do(func(time.Time) {
		swept <- struct{}{}
	}).MinTimes(1)
	sessions.EXPECT().IdleSince(gomock.Any()).
		Return([]domain.ConnectionID{"stale"}).MinTimes(1)

	disconnected := make(chan domain.ConnectionID, 8)
	w := NewIdleSweeperWorker(slog.Default(), presence, sessions,
		func(conn domain.ConnectionID, _ error) { disconnected <- conn },
		5*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("presence sweep never ran")
	}
	select {
	case conn := <-disconnected:
		req.Equal(domain.ConnectionID("stale"), conn)
	case <-time.After(time.Second):
		t.Fatal("unresponsive connection was never disconnected")
	}
}
