package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Theme names accepted by the `theme` setting.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Config struct {
	Env     string        // Env is the current environment: local, development, production.
	Theme   string        // Theme is the process-wide display theme: light or dark.
	API     APIConfig     // API holds the Staffy backend configuration.
	Monitor MonitorConfig // Monitor holds the metrics endpoint configuration.
}

// APIConfig struct holds the configuration details for reaching the Staffy API.
type APIConfig struct {
	BaseURL string        // BaseURL is the API location in format `http://host:port`.
	Timeout time.Duration // Timeout bounds a single API round-trip.
}

// MonitorConfig struct holds the configuration for the local monitoring server.
type MonitorConfig struct {
	Port int // Port is where /metrics and /healthz are served.
}

// MustLoad loads the configuration and panics on an unusable one. A `.env`
// file is honored when present; a YAML file pointed to by CONFIG_PATH is
// layered on top of the defaults; STAFFY_* environment variables win over
// both.
func MustLoad() *Config {
	// Best effort: running without a .env file is normal.
	_ = godotenv.Load()

	defTimeout := 10 * time.Second
	defMonitorPort := 9091

	viper.SetDefault("env", "local")
	viper.SetDefault("theme", ThemeDark)
	viper.SetDefault("api.url", "http://localhost:8000")
	viper.SetDefault("api.timeout", defTimeout)
	viper.SetDefault("monitor.port", defMonitorPort)

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	mustBindEnv("env", "STAFFY_ENV")
	mustBindEnv("theme", "STAFFY_THEME")
	mustBindEnv("api.url", "STAFFY_API_URL")
	mustBindEnv("api.timeout", "STAFFY_API_TIMEOUT")
	mustBindEnv("monitor.port", "STAFFY_MONITOR_PORT")

	theme := viper.GetString("theme")
	if theme != ThemeLight && theme != ThemeDark {
		panic("invalid theme in configuration: " + theme)
	}

	return &Config{
		Env:   viper.GetString("env"),
		Theme: theme,
		API: APIConfig{
			BaseURL: viper.GetString("api.url"),
			Timeout: viper.GetDuration("api.timeout"),
		},
		Monitor: MonitorConfig{
			Port: viper.GetInt("monitor.port"),
		},
	}
}

func mustBindEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		panic("failed to bind environment variable " + env + ": " + err.Error())
	}
}
