package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

const (
	DefaultThetaA   = 1.0
	DefaultTheta0   = 1.0
	DefaultSegments = 100
	DefaultLength   = 1.0
	DefaultDt       = 0.002
	DefaultDuration = 1.0
	DefaultTau      = 1.0
	DefaultDelta    = 0.01
	DefaultNfine    = 6
)

type Config struct {
	ThetaA   float64 `yaml:"theta_a"`
	Theta0   float64 `yaml:"theta_0"`
	Segments int     `yaml:"segments"`
	Length   float64 `yaml:"length"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Tau      float64 `yaml:"tau"`
	Delta    float64 `yaml:"delta"`
	Nfine    int     `yaml:"nfine"`
}

func DefaultConfig() *Config {
	return &Config{
		ThetaA:   DefaultThetaA,
		Theta0:   DefaultTheta0,
		Segments: DefaultSegments,
		Length:   DefaultLength,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Tau:      DefaultTau,
		Delta:    DefaultDelta,
		Nfine:    DefaultNfine,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the file representation into simulation parameters.
// Validation happens in scallop.New, not here.
func (c *Config) Params() scallop.Params {
	return scallop.Params{
		ThetaA:   c.ThetaA,
		Theta0:   c.Theta0,
		N:        c.Segments,
		L:        c.Length,
		Dt:       c.Dt,
		Duration: c.Duration,
		Tau:      c.Tau,
		Delta:    c.Delta,
		Nfine:    c.Nfine,
	}
}
