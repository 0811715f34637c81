package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"niuniu-server/internal/util"
)

// Config provides configuration for the niu niu server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		// ReadyCountdownTicks is how many one-second ticks the ready
		// countdown runs before a round starts with whoever is ready
		ReadyCountdownTicks int `yaml:"readyCountdownTicks" envconfig:"ready_countdown_ticks"`
		// RevealCountdownTicks is how many ticks players have to reveal
		// before stragglers are revealed automatically
		RevealCountdownTicks int `yaml:"revealCountdownTicks" envconfig:"reveal_countdown_ticks"`
		// DisplayTicks is the pause between all hands being revealed and
		// settlement, so clients can show the table
		DisplayTicks int `yaml:"displayTicks" envconfig:"display_ticks"`
		// DefaultBet applies when a participant never recorded a bet
		DefaultBet int `yaml:"defaultBet" envconfig:"default_bet"`
		// MaxRounds is the default round limit for new rooms
		MaxRounds int `yaml:"maxRounds" envconfig:"max_rounds"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = Config{}

	configFile := util.Getenv("NN_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("nn", &config); err != nil {
		return err
	}

	applyDefaults(&config)
	config.loaded = true
	return nil
}

func applyDefaults(c *Config) {
	if c.PGDSN == "" {
		c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	}

	if c.MigrationsPath == "" {
		c.MigrationsPath = "./sql"
	}

	if c.Game.ReadyCountdownTicks == 0 {
		c.Game.ReadyCountdownTicks = 10
	}

	if c.Game.RevealCountdownTicks == 0 {
		c.Game.RevealCountdownTicks = 10
	}

	if c.Game.DisplayTicks == 0 {
		c.Game.DisplayTicks = 8
	}

	if c.Game.DefaultBet == 0 {
		c.Game.DefaultBet = 10
	}

	if c.Game.MaxRounds == 0 {
		c.Game.MaxRounds = 20
	}
}
