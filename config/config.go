// Package config loads cache settings from YAML.
//
//	name: sessions
//	policy: renew
//	ttl_minutes: 5
//	sweep_interval_ms: 1000
//	auto_start: true
//	shards: 4
//	metrics_addr: ":9102"
//	zmq_endpoint: "tcp://*:5557"
//
// Values are not range checked here. cache.New rejects bad ones with ErrInvalidConfig.
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v2"

	cache "github.com/krisalay/ttl-cache"
	"github.com/krisalay/ttl-cache/types"
)

// Config mirrors the YAML file.
type Config struct {
	Name            string  `yaml:"name"`
	Policy          string  `yaml:"policy"`
	TTLMinutes      float64 `yaml:"ttl_minutes"`
	SweepIntervalMs int64   `yaml:"sweep_interval_ms"`
	AutoStart       *bool   `yaml:"auto_start"`
	Shards          int     `yaml:"shards"`

	// MetricsAddr, when set, is where the binary serves Prometheus metrics.
	MetricsAddr string `yaml:"metrics_addr"`

	// ZMQEndpoint, when set, is where cache events are published.
	ZMQEndpoint string `yaml:"zmq_endpoint"`
}

// Default returns the settings used for anything a file leaves out.
func Default() Config {
	start := true
	return Config{
		Name:            cache.DefaultName,
		Policy:          string(types.Force),
		TTLMinutes:      cache.DefaultTTL.Minutes(),
		SweepIntervalMs: cache.DefaultSweepInterval.Milliseconds(),
		AutoStart:       &start,
		Shards:          1,
	}
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of Default. Unknown fields are an error.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Options turns the settings into cache options.
func (c Config) Options() ([]cache.Option, error) {
	policy, err := types.ParsePolicy(c.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cache.ErrInvalidConfig, err)
	}

	opts := []cache.Option{
		cache.WithName(c.Name),
		cache.WithPolicy(policy),
		cache.WithTTLMinutes(c.TTLMinutes),
		cache.WithSweepInterval(time.Duration(c.SweepIntervalMs) * time.Millisecond),
		cache.WithShards(c.Shards),
	}
	if c.AutoStart != nil {
		opts = append(opts, cache.WithAutoStart(*c.AutoStart))
	}
	return opts, nil
}
