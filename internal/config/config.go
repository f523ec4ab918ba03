package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/laplab/internal/grid"
)

const (
	DefaultSize          = 64
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 5000
	DefaultHotEdge       = 100.0
)

// Config describes one relaxation run: the grid, the fixed boundary and
// the solver parameters.
type Config struct {
	Size          int           `yaml:"size"`
	Workers       int           `yaml:"workers"`
	Tolerance     float64       `yaml:"tolerance"`
	MaxIterations int           `yaml:"max_iterations"`
	Boundary      grid.Boundary `yaml:"boundary"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:          DefaultSize,
		Workers:       runtime.NumCPU(),
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Boundary:      grid.Boundary{Top: DefaultHotEdge},
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

// Normalize fills in an unset worker count and clamps it to the interior
// width so that small grids still run instead of failing partition
// validation.
func (c *Config) Normalize() {
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if max := c.Size - 2; c.Workers > max && max >= 1 {
		c.Workers = max
	}
}

// BuildMatrix allocates the matrix for this configuration with the
// boundary applied and a zero interior.
func (c *Config) BuildMatrix() (*grid.Matrix, error) {
	m, err := grid.NewMatrix(c.Size)
	if err != nil {
		return nil, fmt.Errorf("config: size %d: %w", c.Size, err)
	}
	m.ApplyBoundary(c.Boundary)
	return m, nil
}
