package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the login-attempt limiter. The limiter is a
// fixed window per client IP: at most Attempts login requests per
// Window. It exists to slow credential guessing, not to throttle
// catalog traffic.
type RateLimitConfig struct {
	Enabled  bool
	Attempts int
	Window   time.Duration
	Prefix   string
}

// LoadRateLimitConfig reads limiter settings from the environment,
// with defaults suitable for interactive logins.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:  envBool("LOGIN_RATE_LIMIT_ENABLED", true),
		Attempts: envInt("LOGIN_RATE_LIMIT_ATTEMPTS", 10),
		Window:   envDur("LOGIN_RATE_LIMIT_WINDOW", time.Minute),
		Prefix:   getenv("LOGIN_RATE_LIMIT_PREFIX", "rl:login"),
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
