// Package config loads process settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/autoref/internal/engine"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "AUTOREF_"

type Config struct {
	Tournament TournamentConfig `yaml:"tournament"`
	Discord    DiscordConfig    `yaml:"discord"`
	Bancho     BanchoConfig     `yaml:"bancho"`
	Redis      RedisConfig      `yaml:"redis"`
	Database   DatabaseConfig   `yaml:"database"`
	HTTP       HTTPConfig       `yaml:"http"`
	Match      MatchConfig      `yaml:"match"`
	Engine     EngineConfig     `yaml:"engine"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type TournamentConfig struct {
	// Name prefixes lobby titles and selects score export rows
	Name           string `yaml:"name"`
	PrivateLobbies bool   `yaml:"private_lobbies"`
}

type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
	CategoryID    string `yaml:"category_id"`
	RefereeRoleID string `yaml:"referee_role_id"`
}

type BanchoConfig struct {
	Addr        string        `yaml:"addr"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	SendLimit   time.Duration `yaml:"send_limit"`
	SendBurst   int           `yaml:"send_burst"`
}

type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	FinishedTTL time.Duration `yaml:"finished_ttl"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type HTTPConfig struct {
	// Addr is the status API listen address; empty disables it
	Addr           string   `yaml:"addr"`
	OriginPatterns []string `yaml:"origin_patterns"`
}

type MatchConfig struct {
	LineDelay        time.Duration `yaml:"line_delay"`
	PersistTimeout   time.Duration `yaml:"persist_timeout"`
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
}

type EngineConfig struct {
	PickTimer         time.Duration `yaml:"pick_timer"`
	MapTimer          time.Duration `yaml:"map_timer"`
	StartDelay        time.Duration `yaml:"start_delay"`
	ResumeTimer       time.Duration `yaml:"resume_timer"`
	TimeoutTimer      time.Duration `yaml:"timeout_timer"`
	AfterTimeoutTimer time.Duration `yaml:"after_timeout_timer"`
	Cooldown          time.Duration `yaml:"cooldown"`
	HoldMention       string        `yaml:"hold_mention"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when neither file nor environment say otherwise
func Default() *Config {
	e := engine.DefaultConfig()
	return &Config{
		Bancho: BanchoConfig{
			Addr:        "irc.ppy.sh:6667",
			DialTimeout: 10 * time.Second,
			SendLimit:   time.Second,
			SendBurst:   4,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			FinishedTTL: 7 * 24 * time.Hour,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Match: MatchConfig{
			LineDelay:        250 * time.Millisecond,
			PersistTimeout:   10 * time.Second,
			SnapshotInterval: 30 * time.Second,
		},
		Engine: EngineConfig{
			PickTimer:         e.PickTimer,
			MapTimer:          e.MapTimer,
			StartDelay:        e.StartDelay,
			ResumeTimer:       e.ResumeTimer,
			TimeoutTimer:      e.TimeoutTimer,
			AfterTimeoutTimer: e.AfterTimeoutTimer,
			Cooldown:          e.Cooldown,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads path when it is not empty, applies environment overrides and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func applyEnvOverrides(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}

	str("TOURNAMENT_NAME", &cfg.Tournament.Name)
	if v, ok := lookup(EnvPrefix + "PRIVATE_LOBBIES"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sPRIVATE_LOBBIES: %w", EnvPrefix, err))
		} else {
			cfg.Tournament.PrivateLobbies = b
		}
	}

	str("DISCORD_TOKEN", &cfg.Discord.Token)
	str("DISCORD_APPLICATION_ID", &cfg.Discord.ApplicationID)
	str("DISCORD_GUILD_ID", &cfg.Discord.GuildID)
	str("DISCORD_CATEGORY_ID", &cfg.Discord.CategoryID)
	str("DISCORD_REFEREE_ROLE_ID", &cfg.Discord.RefereeRoleID)

	str("BANCHO_ADDR", &cfg.Bancho.Addr)

	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	num("REDIS_DB", &cfg.Redis.DB)

	str("DATABASE_DSN", &cfg.Database.DSN)

	str("HTTP_ADDR", &cfg.HTTP.Addr)
	if v, ok := lookup(EnvPrefix + "HTTP_ORIGIN_PATTERNS"); ok && v != "" {
		cfg.HTTP.OriginPatterns = splitList(v)
	}

	dur("LINE_DELAY", &cfg.Match.LineDelay)
	dur("SNAPSHOT_INTERVAL", &cfg.Match.SnapshotInterval)

	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Tournament.Name) == "" {
		errs = append(errs, errors.New("tournament.name is required"))
	}
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord.token is required"))
	}
	if c.Bancho.Addr == "" {
		errs = append(errs, errors.New("bancho.addr is required"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required"))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Match.LineDelay < 0 {
		errs = append(errs, errors.New("match.line_delay cannot be negative"))
	}
	if c.Match.SnapshotInterval <= 0 {
		errs = append(errs, errors.New("match.snapshot_interval must be positive"))
	}

	timers := []struct {
		name string
		d    time.Duration
	}{
		{"engine.pick_timer", c.Engine.PickTimer},
		{"engine.map_timer", c.Engine.MapTimer},
		{"engine.start_delay", c.Engine.StartDelay},
		{"engine.resume_timer", c.Engine.ResumeTimer},
		{"engine.timeout_timer", c.Engine.TimeoutTimer},
		{"engine.after_timeout_timer", c.Engine.AfterTimeoutTimer},
		{"engine.cooldown", c.Engine.Cooldown},
	}
	for _, t := range timers {
		if t.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", t.name))
		}
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// EngineSettings converts the timings into the engine's settings
func (c *Config) EngineSettings() *engine.Config {
	return &engine.Config{
		PickTimer:         c.Engine.PickTimer,
		MapTimer:          c.Engine.MapTimer,
		StartDelay:        c.Engine.StartDelay,
		ResumeTimer:       c.Engine.ResumeTimer,
		TimeoutTimer:      c.Engine.TimeoutTimer,
		AfterTimeoutTimer: c.Engine.AfterTimeoutTimer,
		Cooldown:          c.Engine.Cooldown,
		HoldMention:       c.Engine.HoldMention,
	}
}
