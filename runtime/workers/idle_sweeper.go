package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/contract"
)

var _ contract.Worker = (*IdleSweeperWorker)(nil)

// IdleSweeperWorker enforces the two inactivity thresholds: identities idle
// beyond the shorter one are presence-demoted to away, connections
// unresponsive beyond the longer one are forcibly unregistered.
type IdleSweeperWorker struct {
	log               *slog.Logger
	presence          contract.IPresenceSweeper
	sessions          contract.IIdleScanner
	disconnect        contract.DisconnectFunc
	interval          time.Duration
	unresponsiveAfter time.Duration
}

func NewIdleSweeperWorker(
	log *slog.Logger,
	presence contract.IPresenceSweeper,
	sessions contract.IIdleScanner,
	disconnect contract.DisconnectFunc,
	interval time.Duration,
	unresponsiveAfter time.Duration,
) *IdleSweeperWorker {
	return &IdleSweeperWorker{
		log:               log,
		presence:          presence,
		sessions:          sessions,
		disconnect:        disconnect,
		interval:          interval,
		unresponsiveAfter: unresponsiveAfter,
	}
}

func (w *IdleSweeperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping idle sweeper")
			return nil
		case <-ticker.C:
			now := time.Now().UTC()
			w.presence.SweepAway(now)
			for _, conn := range w.sessions.IdleSince(now.Add(-w.unresponsiveAfter)) {
				w.log.Info("Forcibly unregistering unresponsive connection", "connection_id", conn)
				w.disconnect(conn, fmt.Errorf("unresponsive beyond %s", w.unresponsiveAfter))
			}
		}
	}
}
