package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMode     = "cpu"
	DefaultRBuff    = 0.4
	DefaultSteps    = 10
	DefaultBox      = 10.0
	DefaultLogLevel = "info"
)

// Config describes a system and the force field acting on it.
type Config struct {
	Mode     string        `yaml:"mode"`
	RBuff    float64       `yaml:"r_buff"`
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file,omitempty"`
	System   SystemConfig  `yaml:"system"`
	Forces   []ForceConfig `yaml:"forces"`
	Run      RunConfig     `yaml:"run"`
}

type SystemConfig struct {
	Box           [3]float64       `yaml:"box"`
	ParticleTypes []string         `yaml:"particle_types"`
	BondTypes     []string         `yaml:"bond_types,omitempty"`
	ImproperTypes []string         `yaml:"improper_types,omitempty"`
	Lattice       *LatticeConfig   `yaml:"lattice,omitempty"`
	Particles     []ParticleConfig `yaml:"particles,omitempty"`
	Bonds         []GroupConfig    `yaml:"bonds,omitempty"`
	Impropers     []GroupConfig    `yaml:"impropers,omitempty"`
}

// LatticeConfig fills a simple cubic lattice of N^3 sites, cycling through
// the particle types. Used when Particles is empty.
type LatticeConfig struct {
	N       int     `yaml:"n"`
	Spacing float64 `yaml:"spacing"`
}

type ParticleConfig struct {
	Type string     `yaml:"type"`
	Pos  [3]float64 `yaml:"pos"`
}

type GroupConfig struct {
	Type    string `yaml:"type"`
	Members []int  `yaml:"members"`
}

type ForceConfig struct {
	Type     string        `yaml:"type"`
	RCut     *float64      `yaml:"r_cut,omitempty"`
	Shift    string        `yaml:"shift,omitempty"`
	Disabled bool          `yaml:"disabled,omitempty"`
	Coeffs   []CoeffConfig `yaml:"coeffs"`
}

type CoeffConfig struct {
	Types  []string           `yaml:"types"`
	Params map[string]float64 `yaml:"params"`
}

type RunConfig struct {
	Steps    int  `yaml:"steps"`
	Parallel bool `yaml:"parallel,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:     DefaultMode,
		RBuff:    DefaultRBuff,
		LogLevel: DefaultLogLevel,
		System: SystemConfig{
			Box:           [3]float64{DefaultBox, DefaultBox, DefaultBox},
			ParticleTypes: []string{"A"},
			Lattice:       &LatticeConfig{N: 4, Spacing: 1.2},
		},
		Run: RunConfig{Steps: DefaultSteps},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone deep-copies c through its YAML form.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("clone config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("clone config: %w", err)
	}
	return out, nil
}

// applyEnv lets HOOMD_MODE, HOOMD_LOG_LEVEL and HOOMD_LOG_FILE override the
// file.
func (c *Config) applyEnv() {
	c.Mode = getEnv("HOOMD_MODE", c.Mode)
	c.LogLevel = getEnv("HOOMD_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("HOOMD_LOG_FILE", c.LogFile)
}

func (c *Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
