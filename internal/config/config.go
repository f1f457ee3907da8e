package config

import (
	"fmt"
	"os"

	"github.com/24dai03-saifchaus/algonexus/internal/input"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bubble_sort"
	DefaultDelayMS   = 1500
	MinDelayMS       = 100
	MaxDelayMS       = 4000
	DelayStepMS      = 100
	DefaultLanguage  = "cpp"
	DefaultTheme     = "cyberpunk"
	DefaultDataDir   = ".algonexus"

	DefaultServerAddr     = ":8080"
	DefaultCacheSize      = 256
	DefaultMaxDatasetSize = 100
)

// Config holds a saved visualizer session. Dataset and target stay raw text so
// a config file reads the way the input fields did.
type Config struct {
	Algorithm string       `yaml:"algorithm"`
	Input     string       `yaml:"input"`
	Target    string       `yaml:"target"`
	DelayMS   int          `yaml:"delay_ms"`
	Language  string       `yaml:"language"`
	Theme     string       `yaml:"theme"`
	DataDir   string       `yaml:"data_dir"`
	Server    ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	CacheSize     int    `yaml:"cache_size"`

	// MaxDatasetSize caps the values accepted per trace request.
	MaxDatasetSize int `yaml:"max_dataset_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Input:     input.DefaultDataset,
		Target:    input.DefaultTarget,
		DelayMS:   DefaultDelayMS,
		Language:  DefaultLanguage,
		Theme:     DefaultTheme,
		DataDir:   DefaultDataDir,
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			CacheSize:      DefaultCacheSize,
			MaxDatasetSize: DefaultMaxDatasetSize,
		},
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
	cfg.DelayMS = ClampDelay(cfg.DelayMS)
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dataset parses the configured input text.
func (c *Config) Dataset() []int {
	return input.ParseDataset(c.Input)
}

// SearchTarget parses the configured target text.
func (c *Config) SearchTarget() trace.Target {
	return input.ParseTarget(c.Target)
}

// ClampDelay snaps ms into the playback range on the delay step grid.
func ClampDelay(ms int) int {
	if ms < MinDelayMS {
		return MinDelayMS
	}
	if ms > MaxDelayMS {
		return MaxDelayMS
	}
	return (ms + DelayStepMS/2) / DelayStepMS * DelayStepMS
}
