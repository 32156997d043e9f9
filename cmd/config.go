package main

import "time"

type Config struct {
	Host    string `env:"HOST,default=0.0.0.0"`
	Port    int    `env:"PORT,default=8080"`
	DataDir string `env:"BADGER_FILEPATH,required=true"`

	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	AuthSecret string `env:"AUTH_SECRET,required=true"`
	AuthIssuer string `env:"AUTH_ISSUER,default=chat-relay"`

	PostgresDSN string `env:"POSTGRES_DSN,required=true"`

	DeliveryBufferSize        int `env:"DELIVERY_BUFFER_SIZE,default=1024"`
	EventBufferSize           int `env:"EVENT_BUFFER_SIZE,default=1024"`
	ConnectionBufferSize      int `env:"CONNECTION_BUFFER_SIZE,default=256"`
	ConnectionEventBufferSize int `env:"CONNECTION_EVENT_BUFFER_SIZE,default=64"`
	RoomTailSize              int `env:"ROOM_TAIL_SIZE,default=256"`

	ReconcilerQueueSize int           `env:"RECONCILER_QUEUE_SIZE,default=4096"`
	ReconcilerAttempts  int           `env:"RECONCILER_MAX_ATTEMPTS,default=5"`
	ReconcilerBackoff   time.Duration `env:"RECONCILER_BASE_BACKOFF,default=100ms"`

	SweepInterval     time.Duration `env:"SWEEP_INTERVAL,default=10s"`
	AwayAfter         time.Duration `env:"AWAY_AFTER,default=5m"`
	UnresponsiveAfter time.Duration `env:"UNRESPONSIVE_AFTER,default=30m"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,default=15s"`
	HealthInterval    time.Duration `env:"HEALTH_INTERVAL,default=30s"`

	MaxPayloadLength int           `env:"MAX_PAYLOAD_LENGTH,default=4096"`
	HistoryLimit     int           `env:"HISTORY_LIMIT,default=200"`
	WriteWait        time.Duration `env:"WS_WRITE_WAIT,default=10s"`
	PongWait         time.Duration `env:"WS_PONG_WAIT,default=60s"`
	PingPeriod       time.Duration `env:"WS_PING_PERIOD,default=50s"`
}
