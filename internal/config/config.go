package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the activity feed service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	RedisURL        string
	PageCacheTTL    time.Duration
	GroupCacheTTL   time.Duration
	PageSize        int
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ATLAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Atlas Activity API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("page.cache_ttl", "30s")
	v.SetDefault("group.cache_ttl", "5m")
	v.SetDefault("page.size", 20)
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")

	upstreamTimeout, err := parseDuration(v, "upstream.timeout")
	if err != nil {
		return Config{}, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	pageTTL, err := parseDuration(v, "page.cache_ttl")
	if err != nil {
		return Config{}, fmt.Errorf("invalid page cache ttl: %w", err)
	}

	groupTTL, err := parseDuration(v, "group.cache_ttl")
	if err != nil {
		return Config{}, fmt.Errorf("invalid group cache ttl: %w", err)
	}

	rateWindow, err := parseDuration(v, "rate_limit.window")
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		UpstreamBaseURL: v.GetString("upstream.base_url"),
		UpstreamTimeout: upstreamTimeout,
		RedisURL:        v.GetString("redis.url"),
		PageCacheTTL:    pageTTL,
		GroupCacheTTL:   groupTTL,
		PageSize:        v.GetInt("page.size"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: rateWindow,
	}

	if cfg.UpstreamBaseURL == "" {
		return Config{}, fmt.Errorf("upstream base url must be provided")
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value := v.GetString(key)
	if value == "" {
		return 0, fmt.Errorf("%s must not be empty", key)
	}
	return time.ParseDuration(value)
}
