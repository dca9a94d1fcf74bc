package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/secdash/internal/config"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

// ConnectOptions defines the Redis client and its startup retry policy.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	User           string        // Optional username
	Password       string        // Optional password
	RedisDB        int           // Redis DB number
	DialTimeout    time.Duration // Redis dial timeout
	ReadTimeout    time.Duration // Redis read timeout
	WriteTimeout   time.Duration // Redis write timeout
	PoolSize       int           // Redis connection pool size
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	MaxWait        time.Duration // max wait between retries (ex: 10s)
	PingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	WarnThreshold  int           // warn after this many attempts, then log errors
}

// OptionsFromConfig maps the SECDASH_REDIS_* and REDIS_* settings.
func OptionsFromConfig(cfg *config.Config) ConnectOptions {
	return ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
}

func (o ConnectOptions) validate() error {
	switch {
	case o.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	case o.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	case o.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	case o.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	case o.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold)
	}
	return nil
}

// backoff doubles the wait after each attempt, capped at max.
type backoff struct {
	next time.Duration
	max  time.Duration
}

func (b *backoff) wait() time.Duration {
	d := b.next
	b.next = min(b.next*2, b.max)
	return d
}

// New creates a Redis client and pings it until it answers, ConnectTimeout
// elapses or ctx is cancelled. The client is closed on failure.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	log = log.Named("redis").With(logger.String("addr", opts.Addr))
	if err := opts.validate(); err != nil {
		log.Error("invalid redis connection options", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitReady(ctx, client, opts, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// waitReady pings with exponential backoff.
func waitReady(parent context.Context, client *redis.Client, opts ConnectOptions, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(parent, opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis", logger.Duration("timeout", opts.ConnectTimeout))
	start := time.Now()
	b := backoff{next: opts.RetryInterval, max: opts.MaxWait}

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			logConnected(log, attempt, time.Since(start))
			return nil
		}

		wait := b.wait()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(parent.Err(), context.Canceled) {
				return fmt.Errorf("redis connection to %s cancelled after %d attempts: %w", opts.Addr, attempt, parent.Err())
			}
			log.Error("redis unavailable, view cache and snapshot publishing cannot start",
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				opts.Addr, attempt, opts.ConnectTimeout, err)

		case <-timer.C:
			logRetry(log, attempt, opts.WarnThreshold, timeLeft(ctx), wait, err)
		}
	}
}

func logConnected(log logger.Logger, attempts int, elapsed time.Duration) {
	if attempts == 1 {
		log.Info("connected to redis")
		return
	}
	log.Warn("connected to redis after retry",
		logger.Int("attempts", attempts),
		logger.Duration("elapsed", elapsed))
}

func logRetry(log logger.Logger, attempt, warnThreshold int, remaining, waited time.Duration, err error) {
	fields := []logger.Field{
		logger.Int("attempt", attempt),
		logger.Duration("waited", waited),
		logger.Duration("remaining", remaining),
		logger.Error(err),
	}
	switch {
	case remaining < 10*time.Second:
		log.Error("redis still down, timeout approaching", fields...)
	case attempt <= warnThreshold:
		log.Warn("redis connection failed, retrying", fields...)
	default:
		log.Error("redis still unavailable", fields...)
	}
}

// timeLeft returns the remaining time before context deadline.
func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
