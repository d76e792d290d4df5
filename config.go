package qkernel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	defaultNormTolerance = 1e-9
	platformName         = "Quantum Research Workbench"
)

// Config holds the tunables of a session. Zero values are never valid; start
// from NewConfig or ParseConfig.
type Config struct {
	// NormTolerance bounds the norm drift tolerated after a single gate.
	NormTolerance float64 `yaml:"norm_tolerance"`
	// StateTolerance bounds Hermiticity, trace and eigenvalue checks on ρ.
	StateTolerance float64 `yaml:"state_tolerance"`

	VQE  VQEConfig  `yaml:"vqe"`
	QAOA QAOAConfig `yaml:"qaoa"`

	Platform string `yaml:"platform"`
}

func NewConfig() *Config {
	return &Config{
		NormTolerance:  defaultNormTolerance,
		StateTolerance: defaultNormTolerance,
		VQE:            DefaultVQEConfig(),
		QAOA:           DefaultQAOAConfig(),
		Platform:       platformName,
	}
}

/*
ParseConfig decodes YAML over the defaults, so a document only needs the keys
it overrides.
*/
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.NormTolerance <= 0 || c.NormTolerance > 1e-3 {
		return newError("config", ErrDomain, "norm_tolerance %g outside (0, 1e-3]", c.NormTolerance)
	}
	if c.StateTolerance <= 0 || c.StateTolerance > 1e-3 {
		return newError("config", ErrDomain, "state_tolerance %g outside (0, 1e-3]", c.StateTolerance)
	}
	if err := c.VQE.Validate(); err != nil {
		return err
	}
	return c.QAOA.Validate()
}
