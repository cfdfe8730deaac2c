// Package config provides configuration for go-go1 commands.
//
// Configuration is an explicit, immutable value: callers load it once
// (defaults, optional YAML file, env overrides) and pass it down to
// constructors. Nothing in this package is mutated after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RobotConfig holds hardware connection and motion parameters.
type RobotConfig struct {
	// Host is the MQTT broker on the robot, reachable over its WiFi AP.
	Host string `yaml:"host"`
	// InitialMode is the locomotion mode requested after connecting.
	InitialMode string `yaml:"initial_mode"`
	// MoveSpeed/MoveTime apply to forward and backward steps.
	MoveSpeed float64 `yaml:"move_speed"`
	MoveTime  float64 `yaml:"move_time"`
	// TurnSpeed/TurnTime apply to left and right steps.
	TurnSpeed float64 `yaml:"turn_speed"`
	TurnTime  float64 `yaml:"turn_time"`
}

// SimConfig holds grid simulator parameters.
type SimConfig struct {
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`
	StartX     int `yaml:"start_x"`
	StartY     int `yaml:"start_y"`
	// MoveDelayMs is the animation duration of one grid step.
	MoveDelayMs int `yaml:"move_delay_ms"`
}

// Config is the top-level configuration value.
type Config struct {
	Robot    RobotConfig `yaml:"robot"`
	Sim      SimConfig   `yaml:"sim"`
	WebPort  string      `yaml:"web_port"`
	LogLevel string      `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Robot: RobotConfig{
			Host:        "192.168.12.1",
			InitialMode: "walk",
			MoveSpeed:   0.5,
			MoveTime:    1.0,
			TurnSpeed:   0.5,
			TurnTime:    1.0,
		},
		Sim: SimConfig{
			GridWidth:   8,
			GridHeight:  8,
			StartX:      0,
			StartY:      0,
			MoveDelayMs: 500,
		},
		WebPort:  "8090",
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, an optional YAML file, and
// environment overrides, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides selected fields from the environment.
func applyEnv(cfg *Config) {
	if host := os.Getenv("ROBOT_HOST"); host != "" {
		cfg.Robot.Host = host
	}
	if mode := os.Getenv("ROBOT_MODE"); mode != "" {
		cfg.Robot.InitialMode = mode
	}
	if port := os.Getenv("WEB_PORT"); port != "" {
		cfg.WebPort = port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if speed := os.Getenv("ROBOT_SPEED"); speed != "" {
		if v, err := strconv.ParseFloat(speed, 64); err == nil {
			cfg.Robot.MoveSpeed = v
			cfg.Robot.TurnSpeed = v
		}
	}
}
