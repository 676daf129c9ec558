package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client and agent settings read from the environment.
type Config struct {
	APIURL        string
	DBPath        string
	LogLevel      string
	EncryptionKey string
	AgentAddr     string
	HTTPTimeout   time.Duration
	HTTPRetries   uint64

	NotificationInterval time.Duration
	HistoryInterval      time.Duration
	ChatInterval         time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set
// in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		APIURL:        getEnv("DUKANAM_API_URL", "http://localhost:8080/api"),
		DBPath:        getEnv("DUKANAM_DB_PATH", defaultDBPath()),
		LogLevel:      getEnv("DUKANAM_LOG_LEVEL", "info"),
		EncryptionKey: getEnv("DUKANAM_ENCRYPTION_KEY", ""),
		AgentAddr:     getEnv("DUKANAM_AGENT_ADDR", "127.0.0.1:7420"),
		HTTPTimeout:   getDuration("DUKANAM_HTTP_TIMEOUT", 15*time.Second),
		HTTPRetries:   getUint("DUKANAM_HTTP_RETRIES", 0),

		NotificationInterval: getDuration("DUKANAM_NOTIFICATION_INTERVAL", 30*time.Second),
		HistoryInterval:      getDuration("DUKANAM_HISTORY_INTERVAL", 5*time.Second),
		ChatInterval:         getDuration("DUKANAM_CHAT_INTERVAL", 3*time.Second),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go duration strings ("30s") or plain seconds ("30").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getUint accepts zero, which disables the feature it counts.
func getUint(key string, defaultValue uint64) uint64 {
	n, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dukanam.db"
	}
	return dir + string(os.PathSeparator) + "dukanam" + string(os.PathSeparator) + "dukanam.db"
}
