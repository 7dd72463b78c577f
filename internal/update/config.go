package update

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys. Each is also read from the environment as CHEFS_<KEY>.
const (
	KeyBaseURL              = "base_url"
	KeyDBPath               = "db_path"
	KeyLogFile              = "log_file"
	KeyLogLevel             = "log_level"
	KeyHTTPTimeout          = "http_timeout"
	KeyHTTPRetries          = "http_retries"
	KeyDesktopNotifications = "desktop_notifications"
	KeyView                 = "view"
	KeyOTelEnabled          = "otel_enabled"
	KeyOTelStdout           = "otel_stdout"
	KeyOTelMetricsEndpoint  = "otel_metrics_endpoint"
)

const EnvPrefix = "CHEFS"

type RuntimeConfig struct {
	BaseURL              string
	DBPath               string
	LogFile              string
	LogLevel             string
	HTTPTimeout          time.Duration
	HTTPRetries          int
	DesktopNotifications bool
	View                 View
	OTelEnabled          bool
	OTelStdout           bool
	OTelMetricsEndpoint  string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		BaseURL:              "https://server-ivym.onrender.com",
		DBPath:               defaultDataPath("chefschoice.db"),
		LogFile:              defaultDataPath("chefschoice.log"),
		LogLevel:             "info",
		HTTPTimeout:          30 * time.Second,
		HTTPRetries:          2,
		DesktopNotifications: false,
		View:                 ViewHome,
	}
}

func defaultDataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return name
	}
	return filepath.Join(dir, "chefschoice", name)
}

// NewViper returns a viper instance seeded with the defaults and reading
// CHEFS_* environment variables.
func NewViper() *viper.Viper {
	def := DefaultRuntimeConfig()
	v := viper.New()
	v.SetDefault(KeyBaseURL, def.BaseURL)
	v.SetDefault(KeyDBPath, def.DBPath)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyHTTPTimeout, def.HTTPTimeout)
	v.SetDefault(KeyHTTPRetries, def.HTTPRetries)
	v.SetDefault(KeyDesktopNotifications, def.DesktopNotifications)
	v.SetDefault(KeyView, strings.ToLower(string(def.View)))
	v.SetDefault(KeyOTelEnabled, false)
	v.SetDefault(KeyOTelStdout, false)
	v.SetDefault(KeyOTelMetricsEndpoint, "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfigFile merges a YAML config file into v. A missing file is not an
// error.
func ReadConfigFile(v *viper.Viper, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func RuntimeConfigFrom(v *viper.Viper) (RuntimeConfig, error) {
	cfg := RuntimeConfig{
		BaseURL:              strings.TrimRight(strings.TrimSpace(v.GetString(KeyBaseURL)), "/"),
		DBPath:               strings.TrimSpace(v.GetString(KeyDBPath)),
		LogFile:              strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel:             strings.TrimSpace(v.GetString(KeyLogLevel)),
		HTTPTimeout:          v.GetDuration(KeyHTTPTimeout),
		HTTPRetries:          v.GetInt(KeyHTTPRetries),
		DesktopNotifications: v.GetBool(KeyDesktopNotifications),
		OTelEnabled:          v.GetBool(KeyOTelEnabled),
		OTelStdout:           v.GetBool(KeyOTelStdout),
		OTelMetricsEndpoint:  strings.TrimSpace(v.GetString(KeyOTelMetricsEndpoint)),
	}
	if cfg.BaseURL == "" {
		return RuntimeConfig{}, fmt.Errorf("%s must not be empty", KeyBaseURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return RuntimeConfig{}, fmt.Errorf("%s must be positive, got %s", KeyHTTPTimeout, cfg.HTTPTimeout)
	}
	if cfg.HTTPRetries < 0 {
		return RuntimeConfig{}, fmt.Errorf("%s must not be negative, got %d", KeyHTTPRetries, cfg.HTTPRetries)
	}
	view, ok := ParseView(v.GetString(KeyView))
	if !ok {
		return RuntimeConfig{}, fmt.Errorf("%s must be home or catalog, got %q", KeyView, v.GetString(KeyView))
	}
	cfg.View = view
	return cfg, nil
}
