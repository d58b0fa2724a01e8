package config

import "time"

// Input modes.
const (
	ModeCSV    = "csv"
	ModeStream = "stream"
)

// EngineConfig is the root configuration for an engine run.
type EngineConfig struct {
	Instance   InstanceConfig   `yaml:"instance"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Processing ProcessingConfig `yaml:"processing"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InstanceConfig identifies this engine instance in diagnostics.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// InputConfig selects and configures the transaction source.
type InputConfig struct {
	Mode string `yaml:"mode"` // "csv" or "stream"
	Path string `yaml:"path"` // CSV file path (csv mode)

	// Stream mode settings.
	StreamURL        string        `yaml:"stream_url"`
	BufferSize       int           `yaml:"buffer_size"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"`
}

// OutputConfig configures the report sink. An empty path means stdout.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// ProcessingConfig configures transaction dispatch. Shards=1 is the
// single-threaded reference mode; higher values shard by client id.
type ProcessingConfig struct {
	Shards    int `yaml:"shards"`
	QueueSize int `yaml:"queue_size"`
}

// MetricsConfig holds Prometheus metrics settings. Disabled by default;
// one-shot CSV runs rarely want a listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
