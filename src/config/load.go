package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// fileConfig is the on-disk layout. The simulator settings live under an
// ElevatorConfig section so the file can carry other sections too.
type fileConfig struct {
	ElevatorConfig Config `yaml:"ElevatorConfig" toml:"ElevatorConfig"`
}

// Load reads a YAML or TOML settings file on top of the defaults. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	file := fileConfig{ElevatorConfig: cfg}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		_, err = toml.Decode(string(data), &file)
	default:
		return cfg, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return file.ElevatorConfig, nil
}

// ApplyEnv overrides cfg with ELEVSIM_* variables. Values from envFile (a
// dotenv file, optional) are used when the process environment does not
// set the same key.
func ApplyEnv(cfg Config, envFile string) (Config, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read env file %s: %w", envFile, err)
		default:
			fileVars = vars
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := fileVars[EnvPrefix+key]
		return v, ok
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FLOORS", &cfg.Building.Floors},
		{"ELEVATORS", &cfg.Building.Elevators},
		{"INITIAL_FLOOR", &cfg.InitialFloor},
		{"MOVE_SECONDS", &cfg.SimulationTiming.MoveDurationInSeconds},
		{"STOP_SECONDS", &cfg.SimulationTiming.StopDurationInSeconds},
		{"REQUEST_INTERVAL_SECONDS", &cfg.SimulationTiming.RandomRequestIntervalInSeconds},
	}
	for _, o := range ints {
		v, ok := lookup(o.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, o.key, v)
		}
		*o.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"DISPATCH_STRATEGY", &cfg.DispatchStrategy},
		{"LOG_DRIVER", &cfg.Logging.Driver},
		{"LOG_LEVEL", &cfg.Logging.Level},
		{"LOG_FILE", &cfg.Logging.File},
	}
	for _, o := range strs {
		if v, ok := lookup(o.key); ok {
			*o.dst = strings.TrimSpace(v)
		}
	}
	return cfg, nil
}

// Validate checks the structure of cfg. The strategy name is checked when
// the strategy is created.
func (c Config) Validate() error {
	var errs []error
	if c.Building.Floors < 1 {
		errs = append(errs, fmt.Errorf("Building.Floors must be at least 1, got %d", c.Building.Floors))
	}
	if c.Building.Elevators < 1 {
		errs = append(errs, fmt.Errorf("Building.Elevators must be at least 1, got %d", c.Building.Elevators))
	}
	if c.SimulationTiming.MoveDurationInSeconds <= 0 {
		errs = append(errs, errors.New("SimulationTiming.MoveDurationInSeconds must be positive"))
	}
	if c.SimulationTiming.StopDurationInSeconds <= 0 {
		errs = append(errs, errors.New("SimulationTiming.StopDurationInSeconds must be positive"))
	}
	if c.SimulationTiming.RandomRequestIntervalInSeconds <= 0 {
		errs = append(errs, errors.New("SimulationTiming.RandomRequestIntervalInSeconds must be positive"))
	}
	if c.DispatchStrategy == "" {
		errs = append(errs, errors.New("DispatchStrategy is empty"))
	}
	switch strings.ToLower(c.Logging.Driver) {
	case "", "slog", "zerolog":
	default:
		errs = append(errs, fmt.Errorf("Logging.Driver %q is not one of slog, zerolog", c.Logging.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
