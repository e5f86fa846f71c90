package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string

	// Dataset persistence
	DataFile  string
	UploadDir string

	// HTTP behavior
	AllowedOrigins     []string
	RateLimitPerMinute int

	// Gin framework configuration
	GinMode string
	GinPath string

	// Moderation service (any OpenAI-compatible endpoint)
	ModerationAPIKey      string
	ModerationBaseURL     string
	ModerationModel       string
	ModerationTemperature float64
	ModerationTimeoutSec  int
	ModerationDisabled    bool

	// Redis for token revocation (optional; in-memory fallback applies)
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once
// during boot. Precedence: config/config.json -> defaults -> environment
// variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		// Development fallback; set JWT_SECRET in any real deployment.
		log.Println("warning: JWT_SECRET not set, using insecure development secret")
		cfg.JWTSecret = "dialink-dev-secret-change-me"
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// SetForTesting replaces the cached configuration. Tests only.
func SetForTesting(c AppConfig) {
	cfg = c
	loaded = true
}

func applyDefaults(out *AppConfig) {
	if out.AppPort == "" {
		out.AppPort = "5001"
	}
	if out.DataFile == "" {
		out.DataFile = "data.json"
	}
	if out.UploadDir == "" {
		out.UploadDir = filepath.Join("static", "uploads", "posts")
	}
	if len(out.AllowedOrigins) == 0 {
		out.AllowedOrigins = []string{"*"}
	}
	if out.RateLimitPerMinute == 0 {
		out.RateLimitPerMinute = 60
	}
	if out.GinMode == "" {
		out.GinMode = "release"
	}
	if out.GinPath == "" {
		out.GinPath = filepath.Join("logs", "gin.log")
	}
	if out.ModerationBaseURL == "" {
		out.ModerationBaseURL = "https://api.openai.com/v1"
	}
	if out.ModerationModel == "" {
		out.ModerationModel = "gpt-4o-mini"
	}
	if out.ModerationTemperature == 0 {
		out.ModerationTemperature = 0.6
	}
	if out.ModerationTimeoutSec == 0 {
		out.ModerationTimeoutSec = 30
	}
	if out.RedisHost == "" {
		out.RedisHost = "127.0.0.1"
	}
	if out.RedisPort == 0 {
		out.RedisPort = 6379
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	if out.LogPath == "" {
		out.LogPath = filepath.Join("logs", "app.log")
	}
	if out.LogMaxSizeMB == 0 {
		out.LogMaxSizeMB = 100
	}
	if out.LogMaxBackups == 0 {
		out.LogMaxBackups = 3
	}
	if out.LogMaxAgeDays == 0 {
		out.LogMaxAgeDays = 7
	}
}

func applyEnvOverrides(out *AppConfig) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}
	setFloat := func(dst *float64, key string) {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}

	setString(&out.AppPort, "PORT")
	setString(&out.JWTSecret, "JWT_SECRET")
	setString(&out.DataFile, "DATA_FILE")
	setString(&out.UploadDir, "UPLOAD_DIR")
	setInt(&out.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		out.AllowedOrigins = splitAndTrim(v)
	}
	setString(&out.GinMode, "GIN_MODE")
	setString(&out.GinPath, "GIN_LOG_PATH")
	setString(&out.ModerationAPIKey, "MODERATION_API_KEY")
	// Compatibility with the key name used by earlier deployments.
	setString(&out.ModerationAPIKey, "OPENAI_API_KEY")
	setString(&out.ModerationBaseURL, "MODERATION_BASE_URL")
	setString(&out.ModerationModel, "MODERATION_MODEL")
	setFloat(&out.ModerationTemperature, "MODERATION_TEMPERATURE")
	setInt(&out.ModerationTimeoutSec, "MODERATION_TIMEOUT_SEC")
	setBool(&out.ModerationDisabled, "MODERATION_DISABLED")
	setString(&out.RedisHost, "REDIS_HOST")
	setInt(&out.RedisPort, "REDIS_PORT")
	setInt(&out.RedisDB, "REDIS_DB")
	setString(&out.RedisPassword, "REDIS_PASSWORD")
	setString(&out.LogLevel, "LOG_LEVEL")
	setString(&out.LogPath, "LOG_PATH")
	setInt(&out.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&out.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&out.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&out.LogCompress, "LOG_COMPRESS")
}

// loadJSONConfig reads a JSON file into cfg if present. Returns an error
// only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(m map[string]any, key string) string {
		if s, ok := m[key].(string); ok {
			return s
		}
		return ""
	}
	getInt := func(m map[string]any, key string) int {
		switch t := m[key].(type) {
		case float64:
			return int(t)
		case json.Number:
			i, _ := t.Int64()
			return int(i)
		}
		return 0
	}
	getBool := func(m map[string]any, key string) bool {
		b, _ := m[key].(bool)
		return b
	}
	getFloat := func(m map[string]any, key string) float64 {
		f, _ := m[key].(float64)
		return f
	}
	getStringSlice := func(m map[string]any, key string) []string {
		arr, ok := m[key].([]any)
		if !ok {
			return nil
		}
		res := make([]string, 0, len(arr))
		for _, it := range arr {
			if s, ok := it.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}

	if app, ok := raw["app"].(map[string]any); ok {
		out.AppPort = getString(app, "AppPort")
		out.JWTSecret = getString(app, "JWTSecret")
		out.DataFile = getString(app, "DataFile")
		out.UploadDir = getString(app, "UploadDir")
		if v := getInt(app, "RateLimitPerMinute"); v != 0 {
			out.RateLimitPerMinute = v
		}
		if list := getStringSlice(app, "AllowedOrigins"); len(list) > 0 {
			out.AllowedOrigins = list
		}
	}

	if g, ok := raw["gin"].(map[string]any); ok {
		if v := getString(g, "Mode"); v != "" {
			out.GinMode = v
		}
		if v := getString(g, "LogPath"); v != "" {
			out.GinPath = v
		}
	}

	if m, ok := raw["moderation"].(map[string]any); ok {
		out.ModerationAPIKey = getString(m, "APIKey")
		if v := getString(m, "BaseURL"); v != "" {
			out.ModerationBaseURL = v
		}
		if v := getString(m, "Model"); v != "" {
			out.ModerationModel = v
		}
		if v := getFloat(m, "Temperature"); v != 0 {
			out.ModerationTemperature = v
		}
		if v := getInt(m, "TimeoutSec"); v != 0 {
			out.ModerationTimeoutSec = v
		}
		out.ModerationDisabled = getBool(m, "Disabled")
	}

	if r, ok := raw["redis"].(map[string]any); ok {
		if v := getString(r, "Host"); v != "" {
			out.RedisHost = v
		}
		if v := getInt(r, "Port"); v != 0 {
			out.RedisPort = v
		}
		out.RedisDB = getInt(r, "DB")
		out.RedisPassword = getString(r, "Password")
	}

	if l, ok := raw["log"].(map[string]any); ok {
		if v := getString(l, "Level"); v != "" {
			out.LogLevel = v
		}
		if v := getString(l, "Path"); v != "" {
			out.LogPath = v
		}
		if v := getInt(l, "MaxSizeMB"); v != 0 {
			out.LogMaxSizeMB = v
		}
		if v := getInt(l, "MaxBackups"); v != 0 {
			out.LogMaxBackups = v
		}
		if v := getInt(l, "MaxAgeDays"); v != 0 {
			out.LogMaxAgeDays = v
		}
		out.LogCompress = getBool(l, "Compress")
	}

	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			res = append(res, t)
		}
	}
	return res
}
