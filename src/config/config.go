package config

import "time"

const (
	DefaultStrategy       = "ETA"
	DefaultFloors         = 10
	DefaultElevators      = 4
	DefaultInitialFloor   = 0
	MoveDuration          = 10 * time.Second
	StopDuration          = 10 * time.Second
	RandomRequestInterval = 15 * time.Second
	InitialRequestDelay   = 5 * time.Second
	DefaultLogDriver      = "slog"
	DefaultLogLevel       = "info"
	EnvPrefix             = "ELEVSIM_"
	SubmitQueueSize       = 16
)

// Config mirrors the ElevatorConfig section of the settings file.
type Config struct {
	DispatchStrategy string   `yaml:"DispatchStrategy" toml:"DispatchStrategy"`
	Building         Building `yaml:"Building" toml:"Building"`
	SimulationTiming Timing   `yaml:"SimulationTiming" toml:"SimulationTiming"`
	Logging          Logging  `yaml:"Logging" toml:"Logging"`
	InitialFloor     int      `yaml:"InitialFloor" toml:"InitialFloor"`
}

type Building struct {
	Floors    int `yaml:"Floors" toml:"Floors"`
	Elevators int `yaml:"Elevators" toml:"Elevators"`
}

type Timing struct {
	MoveDurationInSeconds          int `yaml:"MoveDurationInSeconds" toml:"MoveDurationInSeconds"`
	StopDurationInSeconds          int `yaml:"StopDurationInSeconds" toml:"StopDurationInSeconds"`
	RandomRequestIntervalInSeconds int `yaml:"RandomRequestIntervalInSeconds" toml:"RandomRequestIntervalInSeconds"`
}

type Logging struct {
	Driver string `yaml:"Driver" toml:"Driver"`
	Level  string `yaml:"Level" toml:"Level"`
	File   string `yaml:"File" toml:"File"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DispatchStrategy: DefaultStrategy,
		Building: Building{
			Floors:    DefaultFloors,
			Elevators: DefaultElevators,
		},
		SimulationTiming: Timing{
			MoveDurationInSeconds:          int(MoveDuration / time.Second),
			StopDurationInSeconds:          int(StopDuration / time.Second),
			RandomRequestIntervalInSeconds: int(RandomRequestInterval / time.Second),
		},
		Logging: Logging{
			Driver: DefaultLogDriver,
			Level:  DefaultLogLevel,
		},
		InitialFloor: DefaultInitialFloor,
	}
}

func (c Config) MoveTime() time.Duration {
	return time.Duration(c.SimulationTiming.MoveDurationInSeconds) * time.Second
}

func (c Config) StopTime() time.Duration {
	return time.Duration(c.SimulationTiming.StopDurationInSeconds) * time.Second
}

func (c Config) RequestInterval() time.Duration {
	return time.Duration(c.SimulationTiming.RandomRequestIntervalInSeconds) * time.Second
}
