package orch

import (
	"github.com/nervosys/autonomysim-swarmcore/ctx"
	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/form"
	"github.com/nervosys/autonomysim-swarmcore/msg"
	"gopkg.in/yaml.v3"
)

// SwarmConfig bundles the swarm-level fields recognized at the ORCH
// layer, per spec §6.
type SwarmConfig struct {
	MinAgents               uint32  `yaml:"min_agents"`
	MaxAgents               uint32  `yaml:"max_agents"`
	UpdateRateHz            float32 `yaml:"update_rate_hz"`
	EnableAutoRecovery      bool    `yaml:"enable_auto_recovery"`
	EnableAdaptiveFormation bool    `yaml:"enable_adaptive_formation"`
	AgentTimeoutSec         float32 `yaml:"agent_timeout_sec"`
}

// Config is the top-level configuration aggregate bundling nested
// configs for every subsystem plus swarm-level fields, per spec §6.
// It round-trips through YAML (the teacher's own serialization
// choice) purely in-memory — ORCH never reads or writes a config file
// itself; callers marshal/unmarshal around it.
type Config struct {
	Swarm SwarmConfig `yaml:"swarm"`
	CTX   ctx.Config  `yaml:"ctx"`
	MSG   msg.Config  `yaml:"msg"`
	DEC   dec.Config  `yaml:"dec"`
	FORM  form.Config `yaml:"form"`
}

// NewDefaultConfig returns a Config populated with every subsystem's
// defaults plus the swarm-level defaults from spec §6.
func NewDefaultConfig() Config {
	return Config{
		Swarm: SwarmConfig{
			MinAgents:               2,
			MaxAgents:               100,
			UpdateRateHz:            10,
			EnableAutoRecovery:      true,
			EnableAdaptiveFormation: true,
			AgentTimeoutSec:         5,
		},
		CTX:  ctx.NewDefaultConfig(),
		MSG:  msg.NewDefaultConfig(),
		DEC:  dec.NewDefaultConfig(),
		FORM: form.NewDefaultConfig(),
	}
}

// configAlias has Config's fields without its Marshal/UnmarshalYAML
// methods, breaking the infinite recursion those methods would
// otherwise cause when delegating to yaml.v3's default struct codec.
type configAlias Config

// MarshalYAML implements yaml.Marshaler so yaml.v3 encodes Config via
// its field tags rather than recursing into this method.
func (c Config) MarshalYAML() (interface{}, error) {
	return configAlias(c), nil
}

// UnmarshalYAML implements yaml.v3's node-based yaml.Unmarshaler.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var a configAlias
	if err := value.Decode(&a); err != nil {
		return err
	}
	*c = Config(a)
	return nil
}

// MarshalConfigYAML serializes cfg into a YAML document, the one
// in-memory snapshot mechanism this module supports (§10.3): ORCH
// itself never reads or writes a config file.
func MarshalConfigYAML(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// UnmarshalConfigYAML restores a Config from a document produced by
// MarshalConfigYAML.
func UnmarshalConfigYAML(data []byte) (Config, error) {
	var cfg Config
	err := yaml.Unmarshal(data, &cfg)
	return cfg, err
}
