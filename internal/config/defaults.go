package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultInputMode        = ModeCSV
	DefaultStreamBufferSize = 1024
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultReadTimeout      = 30 * time.Second
	DefaultPingInterval     = 15 * time.Second
	DefaultShards           = 1
	DefaultQueueSize        = 1024
	DefaultMetricsPort      = 9090
	DefaultMetricsPath      = "/metrics"
	DefaultLogLevel         = "info"
)

func (c *EngineConfig) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = "engine"
	}

	// Input defaults
	if c.Input.Mode == "" {
		c.Input.Mode = DefaultInputMode
	}
	if c.Input.BufferSize == 0 {
		c.Input.BufferSize = DefaultStreamBufferSize
	}
	if c.Input.HandshakeTimeout == 0 {
		c.Input.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Input.ReadTimeout == 0 {
		c.Input.ReadTimeout = DefaultReadTimeout
	}
	if c.Input.PingInterval == 0 {
		c.Input.PingInterval = DefaultPingInterval
	}

	// Processing defaults
	if c.Processing.Shards == 0 {
		c.Processing.Shards = DefaultShards
	}
	if c.Processing.QueueSize == 0 {
		c.Processing.QueueSize = DefaultQueueSize
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}
