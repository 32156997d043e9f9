// Package observability provides Prometheus metrics for the relay core.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	MessagesAccepted        prometheus.Counter
	MessagesRejected        prometheus.Counter
	FanoutPushes            prometheus.Counter
	BackpressureDisconnects prometheus.Counter
	ReplayedMessages        prometheus.Counter
	PersistenceRetries      prometheus.Counter
	PersistenceDegraded     prometheus.Counter
	SequenceHalts           prometheus.Counter

	// Gauges
	LiveConnections      prometheus.Gauge
	OnlineIdentities     prometheus.Gauge
	ReconcilerQueueDepth prometheus.Gauge
	ChannelLength        *prometheus.GaugeVec
	ProcessRSSBytes      prometheus.Gauge
	ProcessCPUPercent    prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		MessagesAccepted = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_messages_accepted_total", Help: "Messages stamped with a sequence number"})
		MessagesRejected = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_messages_rejected_total", Help: "Submissions rejected before a sequence was consumed"})
		FanoutPushes = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_fanout_pushes_total", Help: "Messages pushed to a connection outbound queue"})
		BackpressureDisconnects = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_backpressure_disconnects_total", Help: "Connections disconnected because their outbound queue was full"})
		ReplayedMessages = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_replayed_messages_total", Help: "Messages replayed to reconnecting subscribers"})
		PersistenceRetries = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_persistence_retries_total", Help: "Durable write attempts retried after a transient failure"})
		PersistenceDegraded = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_persistence_degraded_total", Help: "Messages whose durable write retries were exhausted"})
		SequenceHalts = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_sequence_halts_total", Help: "Rooms halted after sequence corruption was detected"})
		LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{Name: "relay_live_connections", Help: "Currently registered connections"})
		OnlineIdentities = promauto.NewGauge(prometheus.GaugeOpts{Name: "relay_online_identities", Help: "Identities with at least one live connection"})
		ReconcilerQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{Name: "relay_reconciler_queue_depth", Help: "Pending durable writes in the reconciler queue"})
		ChannelLength = promauto.NewGaugeVec(prometheus.GaugeOpts{Name: "relay_channel_length", Help: "Current length of an internal pipeline channel"}, []string{"channel"})
		ProcessRSSBytes = promauto.NewGauge(prometheus.GaugeOpts{Name: "relay_process_rss_bytes", Help: "Resident memory of the relay process"})
		ProcessCPUPercent = promauto.NewGauge(prometheus.GaugeOpts{Name: "relay_process_cpu_percent", Help: "CPU usage of the relay process"})
	})
}
