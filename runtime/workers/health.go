package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"

	"chat-relay/contract"
	"chat-relay/observability"
)

var _ contract.Worker = (*HealthWorker)(nil)

// HealthWorker periodically samples process-level health (RSS, CPU,
// goroutines) into gauges and the log, so an operator can correlate delivery
// anomalies with resource pressure.
type HealthWorker struct {
	log      *slog.Logger
	interval time.Duration
}

func NewHealthWorker(log *slog.Logger, interval time.Duration) *HealthWorker {
	return &HealthWorker{log: log, interval: interval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	w.log.Info("Starting health worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			memInfo, err := p.MemoryInfo()
			if err != nil {
				w.log.Error("Failed to collect memory stats", "error", err)
				continue
			}
			cpuPercent, err := p.CPUPercent()
			if err != nil {
				w.log.Error("Failed to collect cpu stats", "error", err)
				continue
			}
			observability.ProcessRSSBytes.Set(float64(memInfo.RSS))
			observability.ProcessCPUPercent.Set(cpuPercent)
			w.log.Debug("Process health",
				"rss_bytes", memInfo.RSS,
				"cpu_percent", cpuPercent,
				"goroutines", runtime.NumGoroutine())
		}
	}
}
