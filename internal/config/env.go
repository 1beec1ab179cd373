package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces all environment settings (MOODBOT_*).
const EnvPrefix = "MOODBOT"

// Settings are the process-level knobs read from the environment.
// Command-line flags take precedence over these values. Seed stays nil when
// MOODBOT_SEED is unset, so 0 is a usable seed.
type Settings struct {
	Vocabulary   string  `envconfig:"VOCAB" default:"moodbot.yaml"`
	Seed         *uint64 `envconfig:"SEED"`
	Port         string  `envconfig:"PORT" default:"8080"`
	Debug        bool    `envconfig:"DEBUG"`
	LogLevel     string  `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string  `envconfig:"LOG_FORMAT" default:"text"`
	MaxInputSize int     `envconfig:"MAX_INPUT_SIZE" default:"4096"`
}

// LoadSettings reads optional .env files and then the MOODBOT_* environment.
// Missing .env files are ignored; variables already set in the environment win.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv.Load never overrides variables that are already set.
		_ = godotenv.Load(f)
	}

	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &s, nil
}
