package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/journal-relay/backend/internal/material"
	"github.com/journal-relay/backend/internal/session"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 8080
	DefaultGameProcess = "EliteDangerous64"
)

type Config struct {
	Journal    JournalConfig    `yaml:"journal"`
	Server     ServerConfig     `yaml:"server"`
	Dispatch   DispatchConfig   `yaml:"dispatch"`
	Supervisor SupervisorConfig `yaml:"supervisor"`
	Profile    ProfileConfig    `yaml:"profile"`
	Home       HomeConfig       `yaml:"home"`
	Observers  map[string]bool  `yaml:"observers"`
	// Materials maps a material name to the counts that raise threshold
	// events.
	Materials map[string]material.Limits `yaml:"materials"`
	Privacy    PrivacyConfig    `yaml:"privacy"`
	Log        LogConfig        `yaml:"log"`

	// StateDir holds the persisted star system atlas. Empty means the XDG
	// state directory.
	StateDir string `yaml:"state_dir" env:"EDDI_STATE_DIR"`
}

type JournalConfig struct {
	Dir          string        `yaml:"dir" env:"EDDI_JOURNAL_DIR"`
	PollInterval time.Duration `yaml:"poll_interval" env:"EDDI_JOURNAL_POLL_INTERVAL"`
	Replay       bool          `yaml:"replay" env:"EDDI_JOURNAL_REPLAY"`
	GameProcess  string        `yaml:"game_process" env:"EDDI_GAME_PROCESS"`
}

type ServerConfig struct {
	Port             int           `yaml:"port" env:"EDDI_PORT"`
	Host             string        `yaml:"host" env:"EDDI_HOST"`
	AllowedOrigins   []string      `yaml:"allowed_origins" env:"EDDI_ALLOWED_ORIGINS" envSeparator:","`
	AuthToken        string        `yaml:"auth_token" env:"EDDI_AUTH_TOKEN"`
	SnapshotInterval time.Duration `yaml:"snapshot_interval" env:"EDDI_SNAPSHOT_INTERVAL"`
	MaxConnections   int           `yaml:"max_connections" env:"EDDI_MAX_CONNECTIONS"`
}

type DispatchConfig struct {
	MaxConcurrency int64 `yaml:"max_concurrency" env:"EDDI_DISPATCH_MAX_CONCURRENCY"`
}

type SupervisorConfig struct {
	MaxStarts int           `yaml:"max_starts" env:"EDDI_SUPERVISOR_MAX_STARTS"`
	Grace     time.Duration `yaml:"grace" env:"EDDI_SUPERVISOR_GRACE"`
}

type ProfileConfig struct {
	Attempts      uint          `yaml:"attempts" env:"EDDI_PROFILE_ATTEMPTS"`
	Interval      time.Duration `yaml:"interval" env:"EDDI_PROFILE_INTERVAL"`
	FallbackDelay time.Duration `yaml:"fallback_delay" env:"EDDI_PROFILE_FALLBACK_DELAY"`
}

type HomeConfig struct {
	System  string `yaml:"system" env:"EDDI_HOME_SYSTEM"`
	Station string `yaml:"station" env:"EDDI_HOME_STATION"`
}

type PrivacyConfig struct {
	MaskCommander bool `yaml:"mask_commander" env:"EDDI_PRIVACY_MASK_COMMANDER"`
	MaskCredits   bool `yaml:"mask_credits" env:"EDDI_PRIVACY_MASK_CREDITS"`
	HideFriends   bool `yaml:"hide_friends" env:"EDDI_PRIVACY_HIDE_FRIENDS"`
	HideHome      bool `yaml:"hide_home" env:"EDDI_PRIVACY_HIDE_HOME"`
}

// NewPrivacyFilter converts the config into the filter applied to outgoing
// state.
func (p PrivacyConfig) NewPrivacyFilter() *session.PrivacyFilter {
	return &session.PrivacyFilter{
		MaskCommander: p.MaskCommander,
		MaskCredits:   p.MaskCredits,
		HideFriends:   p.HideFriends,
		HideHome:      p.HideHome,
	}
}

type LogConfig struct {
	Level string `yaml:"level" env:"EDDI_LOG_LEVEL"`
}

func defaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous")
}

func defaultConfig() *Config {
	return &Config{
		Journal: JournalConfig{
			Dir:          defaultJournalDir(),
			PollInterval: 500 * time.Millisecond,
			GameProcess:  DefaultGameProcess,
		},
		Server: ServerConfig{
			Port:             DefaultPort,
			Host:             "127.0.0.1",
			SnapshotInterval: 5 * time.Second,
			MaxConnections:   32,
		},
		Dispatch: DispatchConfig{
			MaxConcurrency: 64,
		},
		Supervisor: SupervisorConfig{
			MaxStarts: 5,
			Grace:     5 * time.Second,
		},
		Profile: ProfileConfig{
			Attempts:      6,
			Interval:      15 * time.Second,
			FallbackDelay: 2 * time.Second,
		},
		Observers: map[string]bool{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies EDDI_* environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Observers == nil {
		cfg.Observers = map[string]bool{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return cfg, err
}

// ParseEnv applies env-tagged overrides to target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Journal.PollInterval <= 0 {
		errs = append(errs, errors.New("journal.poll_interval must be positive"))
	}
	if c.Server.SnapshotInterval <= 0 {
		errs = append(errs, errors.New("server.snapshot_interval must be positive"))
	}
	if c.Server.MaxConnections < 0 {
		errs = append(errs, errors.New("server.max_connections must not be negative"))
	}
	if c.Dispatch.MaxConcurrency <= 0 {
		errs = append(errs, errors.New("dispatch.max_concurrency must be positive"))
	}
	if c.Supervisor.MaxStarts <= 0 {
		errs = append(errs, errors.New("supervisor.max_starts must be positive"))
	}
	if c.Profile.Attempts == 0 {
		errs = append(errs, errors.New("profile.attempts must be positive"))
	}
	if c.Home.Station != "" && c.Home.System == "" {
		errs = append(errs, errors.New("home.station set without home.system"))
	}
	for name, l := range c.Materials {
		if l.Minimum < 0 || l.Desired < 0 || l.Maximum < 0 {
			errs = append(errs, fmt.Errorf("materials.%s limits must not be negative", name))
		}
		if l.Maximum > 0 && l.Minimum > l.Maximum {
			errs = append(errs, fmt.Errorf("materials.%s minimum above maximum", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ObserverEnabled reports the configured toggle for name. Observers not
// listed are enabled.
func (c *Config) ObserverEnabled(name string) bool {
	enabled, ok := c.Observers[name]
	return !ok || enabled
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
