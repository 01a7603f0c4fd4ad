// Package config loads the YAML configuration of the gridplanner command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"grid-planner/planner"
)

// Config is the root of the YAML file.
type Config struct {
	Grid   GridConfig        `yaml:"grid"`
	RRT    planner.RRTConfig `yaml:"rrt"`
	Run    RunConfig         `yaml:"run"`
	Server ServerConfig      `yaml:"server"`
	Log    LogConfig         `yaml:"log"`
}

// GridConfig describes the layout Reset restores. Obstacles from
// ObstaclesGeoJSON are added to the listed ones.
type GridConfig struct {
	planner.Layout   `yaml:",inline"`
	ObstaclesGeoJSON string `yaml:"obstacles_geojson"`
}

// RunConfig drives the terminal animation.
type RunConfig struct {
	Algorithm string        `yaml:"algorithm"`
	Tick      time.Duration `yaml:"tick"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig selects the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the demo grid, default RRT tuning, A* at 30ms per tick and
// a server on :8080.
func Default() *Config {
	return &Config{
		Grid: GridConfig{Layout: planner.DefaultLayout()},
		RRT:  planner.DefaultRRTConfig(),
		Run:  RunConfig{Algorithm: planner.AStar.String(), Tick: 30 * time.Millisecond},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result. Keys missing
// from the file keep their default values, except that a file with a grid
// section starts from no obstacles instead of the demo walls.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var sections struct {
		Grid *yaml.Node `yaml:"grid"`
	}
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg := Default()
	if sections.Grid != nil {
		cfg.Grid.Obstacles = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults behaves like Load but returns Default when path is empty
// or does not exist.
func LoadWithDefaults(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := planner.NewGrid(c.Grid.Layout); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if err := c.RRT.Validate(); err != nil {
		return fmt.Errorf("rrt: %w", err)
	}
	if _, err := planner.ParseAlgorithm(c.Run.Algorithm); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if c.Run.Tick < 0 {
		return fmt.Errorf("run: negative tick %s", c.Run.Tick)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, err
	}
	return level, nil
}

// ResolveLayout returns the grid layout with GeoJSON obstacles merged in.
func (c *Config) ResolveLayout() (planner.Layout, error) {
	layout := c.Grid.Layout
	layout.Obstacles = append([]planner.Cell(nil), layout.Obstacles...)
	if c.Grid.ObstaclesGeoJSON == "" {
		return layout, nil
	}
	data, err := os.ReadFile(c.Grid.ObstaclesGeoJSON)
	if err != nil {
		return planner.Layout{}, fmt.Errorf("failed to read obstacles: %w", err)
	}
	cells, err := planner.ObstaclesFromGeoJSON(data, layout.Width, layout.Height)
	if err != nil {
		return planner.Layout{}, err
	}
	layout.Obstacles = append(layout.Obstacles, cells...)
	return layout, nil
}
