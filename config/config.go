package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config is the external configuration surface of the sync core: where the
// backend lives, how patient the HTTP client is, and how often the mirror
// polls. Everything comes from the environment with workable defaults.
type Config struct {
	APIBaseURL    string
	ListenAddr    string
	Timeout       time.Duration
	RetryAttempts int
	PollInterval  time.Duration
	RedisAddr     string
	PublicBaseURL string
}

func Load() *Config {
	return &Config{
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:3000"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8090"),
		Timeout:       getDuration("REQUEST_TIMEOUT", 10*time.Second),
		RetryAttempts: getInt("RETRY_ATTEMPTS", 3),
		PollInterval:  getDuration("POLL_INTERVAL", 15*time.Second),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8090"),
	}
}

// MustInitRedis connects to the optional snapshot cache. Returns nil when no
// Redis address is configured; dies when one is configured but unreachable.
func (c *Config) MustInitRedis() *redis.Client {
	if c.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	return client
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, val, defaultVal)
		return defaultVal
	}
	return d
}
