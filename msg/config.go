package msg

// Config aggregates the tunables for a Bus, matching the MSG options
// enumerated in spec §6. Port is accepted for interface compatibility
// with a future networked transport but is unused by this in-process
// substrate (spec §9's open question on connectToPeer).
type Config struct {
	AgentID              string  `yaml:"agent_id"`
	Port                 uint16  `yaml:"port"`
	MaxConnections       int     `yaml:"max_connections"`
	MessageBufferSize    int     `yaml:"message_buffer_size"`
	HeartbeatIntervalSec float64 `yaml:"heartbeat_interval_sec"`
	ConnectionTimeoutSec float64 `yaml:"connection_timeout_sec"`
	EnableEncryption     bool    `yaml:"enable_encryption"` // reserved, unused
}

// NewDefaultConfig returns sensible MSG defaults.
func NewDefaultConfig() Config {
	return Config{
		MaxConnections:       50,
		MessageBufferSize:    500,
		HeartbeatIntervalSec: 5,
		ConnectionTimeoutSec: 15,
	}
}
