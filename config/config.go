package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Calendar client specifics
	Google  GoogleConfig
	Window  WindowConfig
	Speech  SpeechConfig
	Suggest SuggestConfig
}

type EnvironmentConfig struct {
	Name string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GoogleConfig configures access to the remote calendar service.
type GoogleConfig struct {
	CredentialsPath string // OAuth desktop-app client secret JSON
	TokenPath       string // persisted credential record, owner-only
	CalendarID      string
}

// WindowConfig configures the past/today/upcoming window computation.
type WindowConfig struct {
	Timezone             string        // IANA zone used for the whole categorization pass
	PastDays             int           // span of the past-range fetch
	UpcomingDays         int           // span of the upcoming-range fetch
	AutoRefreshInterval  time.Duration // periodic window reload
	MutationRefreshDelay time.Duration // delay before post-mutation re-fetch
}

// SpeechConfig configures the external transcription collaborator.
type SpeechConfig struct {
	URL            string
	PrimaryDevice  string
	FallbackDevice string
	RecordSeconds  int
	Language       string
}

type SuggestConfig struct {
	Path string // plain-text suggestion store, one title per line
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/voicecal/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/voicecal/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Google.CredentialsPath = viper.GetString("google.credentials_path")
	cfg.Google.TokenPath = viper.GetString("google.token_path")
	cfg.Google.CalendarID = viper.GetString("google.calendar_id")
	if googleCreds := viper.GetString("google_credentials"); googleCreds != "" {
		cfg.Google.CredentialsPath = googleCreds
	}
	if calendarID := viper.GetString("google_calendar_id"); calendarID != "" {
		cfg.Google.CalendarID = calendarID
	}

	cfg.Window.Timezone = viper.GetString("window.timezone")
	cfg.Window.PastDays = viper.GetInt("window.past_days")
	cfg.Window.UpcomingDays = viper.GetInt("window.upcoming_days")
	cfg.Window.AutoRefreshInterval = viper.GetDuration("window.auto_refresh_interval")
	cfg.Window.MutationRefreshDelay = viper.GetDuration("window.mutation_refresh_delay")

	cfg.Speech.URL = viper.GetString("speech.url")
	cfg.Speech.PrimaryDevice = viper.GetString("speech.primary_device")
	cfg.Speech.FallbackDevice = viper.GetString("speech.fallback_device")
	cfg.Speech.RecordSeconds = viper.GetInt("speech.record_seconds")
	cfg.Speech.Language = viper.GetString("speech.language")

	cfg.Suggest.Path = viper.GetString("suggest.path")

	if cfg.Window.PastDays <= 0 || cfg.Window.UpcomingDays <= 0 {
		return nil, fmt.Errorf("window day spans must be positive (past=%d upcoming=%d)",
			cfg.Window.PastDays, cfg.Window.UpcomingDays)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("google.credentials_path", "credentials.json")
	viper.SetDefault("google.token_path", "token.json")
	viper.SetDefault("google.calendar_id", "primary")

	viper.SetDefault("window.timezone", "UTC")
	viper.SetDefault("window.past_days", 30)
	viper.SetDefault("window.upcoming_days", 30)
	viper.SetDefault("window.auto_refresh_interval", "5m")
	viper.SetDefault("window.mutation_refresh_delay", "1s")

	viper.SetDefault("speech.url", "http://localhost:9090")
	viper.SetDefault("speech.primary_device", "cuda")
	viper.SetDefault("speech.fallback_device", "cpu")
	viper.SetDefault("speech.record_seconds", 5)
	viper.SetDefault("speech.language", "en")

	viper.SetDefault("suggest.path", "event_names.txt")
}
