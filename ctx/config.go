package ctx

// Config aggregates the tunables for a Registry, matching the CTX
// options enumerated in spec §6. Port is accepted for interface
// compatibility with a future networked MCP server but is unused by
// this in-process substrate.
type Config struct {
	ServerID          string  `yaml:"server_id"`
	Port              uint16  `yaml:"port"`
	MaxAgents         uint32  `yaml:"max_agents"`
	ContextBufferSize int     `yaml:"context_buffer_size"`
	ContextTimeoutSec float64 `yaml:"context_timeout_sec"`
	EnableEncryption  bool    `yaml:"enable_encryption"` // reserved, unused
}

// NewDefaultConfig returns a Config populated with the defaults from
// spec §6: context_buffer_size=1000, context_timeout_sec=5.
func NewDefaultConfig() Config {
	return Config{
		ServerID:          "ctx-default",
		MaxAgents:         100,
		ContextBufferSize: 1000,
		ContextTimeoutSec: 5,
	}
}
