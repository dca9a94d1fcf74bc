package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/secdash/internal/utils"
)

// Source names
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRedis    = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout (ex: 2s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Source          string        // "embedded" | "file" | "redis"
	DataFile        string        // path to the dataset file (required when Source = "file")
	UIFile          string        // optional ui.yaml overriding the built-in texts
	PublishSnapshot bool          // push the loaded records to redis for other replicas
	ViewCacheTTL    time.Duration // 0 disables the view cache

	// Redis (optional, empty addr = disabled)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string         // optional, restrict access to specific Host headers
	AllowedCIDRS []string         // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	AllowedNets  *utils.IPMatcher // AllowedCIDRS parsed once by validate
	TrustProxy   bool             // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string         // optional, origins allowed to call the API from a browser

	RateLimitBurst  int // max burst per client IP
	RateLimitPerMin int // sustained requests per minute per client IP
}

// RedisEnabled reports whether a redis address is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Load reads the configuration from the environment. A .env file in the
// working directory, if present, is loaded first and never overrides
// variables already set.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load .env file: %v", err)
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SECDASH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SECDASH_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("SECDASH_REQUEST_TIMEOUT", 2*time.Second),

		// Logging
		LogLevel:  getenv("SECDASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SECDASH_PRETTY_LOG", true),

		// Data
		Source:          strings.ToLower(getenv("SECDASH_SOURCE", SourceEmbedded)),
		DataFile:        getenv("SECDASH_DATA_FILE", ""),
		UIFile:          getenv("SECDASH_UI_FILE", ""),
		PublishSnapshot: mustBool("SECDASH_PUBLISH_SNAPSHOT", false),
		ViewCacheTTL:    mustDuration("SECDASH_VIEW_CACHE_TTL", 5*time.Minute),

		// Redis settings
		RedisAddr:           getenv("SECDASH_REDIS_ADDR", ""),
		RedisUser:           getenv("SECDASH_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SECDASH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SECDASH_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SECDASH_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SECDASH_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SECDASH_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("SECDASH_CORS_ORIGINS", "")),

		RateLimitBurst:  getenvInt("SECDASH_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("SECDASH_RATE_LIMIT_PER_MIN", 120),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// validate checks the settings and fills the ones derived from them.
func (c *Config) validate() error {
	switch c.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.DataFile == "" {
			return fmt.Errorf("SECDASH_DATA_FILE is required when SECDASH_SOURCE=%s", SourceFile)
		}
	case SourceRedis:
		if !c.RedisEnabled() {
			return fmt.Errorf("SECDASH_REDIS_ADDR is required when SECDASH_SOURCE=%s", SourceRedis)
		}
	default:
		return fmt.Errorf("invalid SECDASH_SOURCE %q (want %s, %s or %s)", c.Source, SourceEmbedded, SourceFile, SourceRedis)
	}

	if c.PublishSnapshot && !c.RedisEnabled() {
		return fmt.Errorf("SECDASH_REDIS_ADDR is required when SECDASH_PUBLISH_SNAPSHOT=true")
	}
	if c.ViewCacheTTL < 0 {
		return fmt.Errorf("SECDASH_VIEW_CACHE_TTL must be >= 0, got %v", c.ViewCacheTTL)
	}

	nets, err := utils.ParseIPMatcher(c.AllowedCIDRS)
	if err != nil {
		return fmt.Errorf("invalid SECDASH_ALLOWED_CIDRS: %w", err)
	}
	c.AllowedNets = nets
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
