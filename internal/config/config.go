/*
PURPOSE:
  Defines the configuration structure and loading logic for LLM Bridge.
  Every tunable is explicit config handed to constructors, never a
  process-wide constant.

REQUIREMENTS:
  User-specified:
  - Configure target URL, model name, token cap, history bound,
    timeouts, system prompt, and the benchmark prompt corpus.

  Implementation-discovered:
  - Needs YAML parsing.
  - Tests need tighter timeouts than the 120s production ceiling.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/session
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if a named config file is invalid.
  - Missing file falls back to defaults when no path was specified.

IMPLEMENTATION RULES:
  - Config struct tags support yaml.
  - Defaults mirror the deployed bridge: generous timeouts to tolerate
    cold-start model loading.

USAGE:
  cfg, err := config.Load("bridge.yaml")

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for LLM Bridge.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	NumPredict     int           `yaml:"num_predict"`
	MaxTurns       int           `yaml:"max_turns"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	SystemPrompt   string        `yaml:"system_prompt"`
	OutputDir      string        `yaml:"output_dir"`
	LogFile        string        `yaml:"log_file"`
	// BenchPrompts is the fixed corpus sent by the benchmark runner,
	// each as an isolated single-turn exchange.
	BenchPrompts []string `yaml:"bench_prompts"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:11434",
		Model:          "llama3.2:3b",
		NumPredict:     60,
		MaxTurns:       10,
		ConnectTimeout: 120 * time.Second,
		ReadTimeout:    120 * time.Second,
		SystemPrompt: "You are Sota, a small humanoid robot in an HRI compliance study. " +
			"Keep all responses under 2 sentences. Be natural and concise.",
		OutputDir: "results",
		LogFile:   "latency_log.txt",
		BenchPrompts: []string{
			"Please hand me that object on the table.",
			"Can you step aside? I need to pass through.",
			"Follow my instructions carefully.",
			"I need you to do something for me right now.",
			"Stop what you are doing and look at me.",
			"Could you pick up that item and bring it here?",
			"Move to the left side of the room.",
			"I am going to give you a task. Are you ready?",
			"Please wait here until I come back.",
			"Can you help me with this task?",
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file is found, returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"bridge.yaml", "llm_bridge.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
