package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	FrameworkChi = "chi"
	FrameworkGin = "gin"

	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	LogDir                  string
	URLPrefix               string
	HTTPFramework           string
	Username                string
	Password                string
	PasswordHash            string
	PrivilegedAccess        bool
	PrivilegedJWTSecret     string
	DefaultLines            int
	TailAverageLineBytes    int64
	TailFloorBytes          int64
	EntryFormat             string
	EntryStartPattern       string
	CORSOrigins             []string
	RateLimitRPM            int
	MutationRateLimitRPM    int
	AuditLogFile            string
	UIAutoRefresh           bool
	UIRefreshTimer          int
	UIAutoScroll            bool
	UIColorize              bool
	LogLevel                string
	LogFormat               string
	ConfigFile              string
}

// Load reads .env, then the file named by LOGVIEWER_CONFIG (if any), then the
// environment. Environment values win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return LoadFile(strings.TrimSpace(os.Getenv("LOGVIEWER_CONFIG")))
}

// LoadFile is Load without the .env step and with an explicit config file.
// An empty path skips the file.
func LoadFile(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{
		ServerPort:              strings.TrimSpace(v.GetString("server_port")),
		ServerReadHeaderTimeout: v.GetDuration("server_read_header_timeout"),
		ServerWriteTimeout:      v.GetDuration("server_write_timeout"),
		ServerIdleTimeout:       v.GetDuration("server_idle_timeout"),
		RequestTimeout:          v.GetDuration("request_timeout"),
		LogDir:                  strings.TrimSpace(v.GetString("log_dir")),
		URLPrefix:               normalizePrefix(v.GetString("url_prefix")),
		HTTPFramework:           strings.ToLower(strings.TrimSpace(v.GetString("http_framework"))),
		Username:                v.GetString("logviewer_username"),
		Password:                v.GetString("logviewer_password"),
		PasswordHash:            strings.TrimSpace(v.GetString("logviewer_password_hash")),
		PrivilegedAccess:        v.GetBool("privileged_access"),
		PrivilegedJWTSecret:     strings.TrimSpace(v.GetString("privileged_jwt_secret")),
		DefaultLines:            v.GetInt("default_lines"),
		TailAverageLineBytes:    v.GetInt64("tail_avg_line_bytes"),
		TailFloorBytes:          v.GetInt64("tail_floor_bytes"),
		EntryFormat:             strings.ToLower(strings.TrimSpace(v.GetString("entry_format"))),
		EntryStartPattern:       v.GetString("entry_start_pattern"),
		CORSOrigins:             stringList(v, "cors_origins"),
		RateLimitRPM:            v.GetInt("rate_limit_rpm"),
		MutationRateLimitRPM:    v.GetInt("mutation_rate_limit_rpm"),
		AuditLogFile:            strings.TrimSpace(v.GetString("audit_log_file")),
		UIAutoRefresh:           v.GetBool("ui_auto_refresh"),
		UIRefreshTimer:          v.GetInt("ui_refresh_timer"),
		UIAutoScroll:            v.GetBool("ui_auto_scroll"),
		UIColorize:              v.GetBool("ui_colorize"),
		LogLevel:                strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:               strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		ConfigFile:              v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("server_port", "8080")
	v.SetDefault("server_read_header_timeout", 10*time.Second)
	v.SetDefault("server_write_timeout", 30*time.Second)
	v.SetDefault("server_idle_timeout", 120*time.Second)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("url_prefix", "/logs")
	v.SetDefault("http_framework", FrameworkChi)
	v.SetDefault("logviewer_username", "")
	v.SetDefault("logviewer_password", "")
	v.SetDefault("logviewer_password_hash", "")
	v.SetDefault("privileged_access", false)
	v.SetDefault("privileged_jwt_secret", "")
	v.SetDefault("default_lines", 500)
	v.SetDefault("tail_avg_line_bytes", 500)
	v.SetDefault("tail_floor_bytes", 5*1024*1024)
	v.SetDefault("entry_format", "heuristic")
	v.SetDefault("entry_start_pattern", "")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("rate_limit_rpm", 100)
	v.SetDefault("mutation_rate_limit_rpm", 20)
	v.SetDefault("audit_log_file", "./state/audit.log")
	v.SetDefault("ui_auto_refresh", true)
	v.SetDefault("ui_refresh_timer", 5000)
	v.SetDefault("ui_auto_scroll", true)
	v.SetDefault("ui_colorize", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", LogFormatPretty)

	return v
}

// AuthEnabled reports whether Basic Auth is configured.
func (c *Config) AuthEnabled() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.LogDir == "" {
		return fmt.Errorf("LOG_DIR cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.DefaultLines < 0 {
		return fmt.Errorf("DEFAULT_LINES cannot be negative")
	}

	if c.TailAverageLineBytes <= 0 {
		return fmt.Errorf("TAIL_AVG_LINE_BYTES must be positive")
	}

	if c.TailFloorBytes <= 0 {
		return fmt.Errorf("TAIL_FLOOR_BYTES must be positive")
	}

	switch c.HTTPFramework {
	case FrameworkChi, FrameworkGin:
	default:
		return fmt.Errorf("HTTP_FRAMEWORK must be %q or %q", FrameworkChi, FrameworkGin)
	}

	switch c.EntryFormat {
	case "heuristic", "json":
	case "pattern":
		if strings.TrimSpace(c.EntryStartPattern) == "" {
			return fmt.Errorf("ENTRY_START_PATTERN is required when ENTRY_FORMAT is pattern")
		}
		if _, err := regexp.Compile(c.EntryStartPattern); err != nil {
			return fmt.Errorf("ENTRY_START_PATTERN is invalid: %w", err)
		}
	default:
		return fmt.Errorf("unsupported ENTRY_FORMAT %q", c.EntryFormat)
	}

	if c.Username == "" && (c.Password != "" || c.PasswordHash != "") {
		return errors.New("LOGVIEWER_USERNAME is required when a password is set")
	}

	if c.Username != "" && c.Password == "" && c.PasswordHash == "" {
		return errors.New("LOGVIEWER_PASSWORD or LOGVIEWER_PASSWORD_HASH is required when LOGVIEWER_USERNAME is set")
	}

	if c.PrivilegedAccess && c.PrivilegedJWTSecret == "" {
		return errors.New("PRIVILEGED_JWT_SECRET is required when PRIVILEGED_ACCESS is enabled")
	}

	if c.UIRefreshTimer <= 0 {
		return fmt.Errorf("UI_REFRESH_TIMER must be positive")
	}

	switch c.LogFormat {
	case LogFormatPretty, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}

	return nil
}

func normalizePrefix(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}

	return "/" + trimmed
}

// stringList accepts either a list from a config file or a comma separated
// string from the environment.
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).([]any); ok {
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			out = append(out, splitCSV(fmt.Sprint(item))...)
		}
		return out
	}

	return splitCSV(v.GetString(key))
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
