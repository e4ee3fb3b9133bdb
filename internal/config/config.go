package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCircuit = "bell"
	DefaultDataDir = ".qtrace"
)

type Config struct {
	// Circuit is a preset name or a path to a .qasm/.json file.
	Circuit string `yaml:"circuit"`
	// Qubits sizes an empty circuit when Circuit is blank.
	Qubits  int            `yaml:"qubits"`
	DataDir string         `yaml:"data_dir"`
	Inject  []InjectConfig `yaml:"inject"`
}

// InjectConfig is one scripted error injection applied before a run.
type InjectConfig struct {
	Qubit int    `yaml:"qubit"`
	Label string `yaml:"label"`
}

func DefaultConfig() *Config {
	return &Config{
		Circuit: DefaultCircuit,
		DataDir: DefaultDataDir,
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

// ParseInjection reads a "qubit:label" flag value such as "0:X".
func ParseInjection(s string) (InjectConfig, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return InjectConfig{}, fmt.Errorf("injection must be qubit:label, got %q", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || q < 0 {
		return InjectConfig{}, fmt.Errorf("bad qubit index in %q", s)
	}
	label := strings.ToUpper(strings.TrimSpace(parts[1]))
	switch label {
	case "X", "Y", "Z", "I":
	default:
		return InjectConfig{}, fmt.Errorf("bad error label in %q", s)
	}
	return InjectConfig{Qubit: q, Label: label}, nil
}
