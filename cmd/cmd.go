package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"`
	APIBaseURL  string `json:"api_base_url"`
	SessionFile string `json:"session_file"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "console",
		APIBaseURL: "https://hack-or-snooze-v3.herokuapp.com",
	}
}

func (c *Config) Load() error {
	f, err := os.Open("config.json")
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if !os.IsNotExist(err) {
		err = json.NewDecoder(f).Decode(c)
		if err != nil {
			return err
		}
	}

	v := os.Getenv("LOG_LEVEL")
	if v != "" {
		c.LogLevel = v
	}

	v = os.Getenv("LOG_FORMAT")
	if v != "" {
		c.LogFormat = v
	}

	v = os.Getenv("SNOOZE_API_URL")
	if v != "" {
		c.APIBaseURL = v
	}

	v = os.Getenv("SNOOZE_SESSION_FILE")
	if v != "" {
		c.SessionFile = v
	}

	if c.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.SessionFile = filepath.Join(home, ".snooze-session.json")
	}

	if c.APIBaseURL == "" {
		return fmt.Errorf("missing config 'api base url'")
	}

	return nil
}

func SetupLogger(cfg *Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("input", cfg.LogLevel).Msg("Cannot parse log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
}
