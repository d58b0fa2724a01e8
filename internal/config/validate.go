package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *EngineConfig) Validate() error {
	switch c.Input.Mode {
	case ModeCSV:
		if c.Input.Path == "" {
			return errors.New("input.path is required in csv mode")
		}
	case ModeStream:
		if c.Input.StreamURL == "" {
			return errors.New("input.stream_url is required in stream mode")
		}
		if c.Input.BufferSize < 1 {
			return errors.New("input.buffer_size must be >= 1")
		}
	default:
		return fmt.Errorf("input.mode must be %q or %q, got %q", ModeCSV, ModeStream, c.Input.Mode)
	}

	if c.Processing.Shards < 1 {
		return errors.New("processing.shards must be >= 1")
	}
	if c.Processing.QueueSize < 1 {
		return errors.New("processing.queue_size must be >= 1")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	return nil
}
