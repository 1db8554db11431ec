package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Options struct {
	Driver          string
	DataSource      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	RetryAttempts   uint64
	RetryInterval   time.Duration
}

type Option func(*Options)

func WithDriver(driver string) Option {
	return func(o *Options) { o.Driver = driver }
}

func WithDataSource(dsn string) Option {
	return func(o *Options) { o.DataSource = dsn }
}

func WithMaxOpenConns(count int) Option {
	return func(o *Options) { o.MaxOpenConns = count }
}

func WithMaxIdleConns(count int) Option {
	return func(o *Options) { o.MaxIdleConns = count }
}

func WithConnMaxLifetime(duration time.Duration) Option {
	return func(o *Options) { o.ConnMaxLifetime = duration }
}

func WithConnMaxIdleTime(duration time.Duration) Option {
	return func(o *Options) { o.ConnMaxIdleTime = duration }
}

func WithRetry(attempts uint64, interval time.Duration) Option {
	return func(o *Options) {
		o.RetryAttempts = attempts
		o.RetryInterval = interval
	}
}

// New creates a new database connection pool using the provided options.
func New(opts ...Option) (*sql.DB, error) {
	options := &Options{
		Driver:          "sqlite3",
		DataSource:      ":memory:",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		RetryAttempts:   3,
		RetryInterval:   time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.Driver == "" {
		return nil, fmt.Errorf("database driver cannot be empty")
	}
	if options.DataSource == "" {
		return nil, fmt.Errorf("database data source cannot be empty")
	}

	var db *sql.DB

	connect := func() error {
		pool, err := sql.Open(options.Driver, options.DataSource)
		if err != nil {
			return err
		}

		pool.SetMaxOpenConns(options.MaxOpenConns)
		pool.SetMaxIdleConns(options.MaxIdleConns)
		pool.SetConnMaxLifetime(options.ConnMaxLifetime)
		pool.SetConnMaxIdleTime(options.ConnMaxIdleTime)

		if err := pool.Ping(); err != nil {
			pool.Close()
			return err
		}

		db = pool
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = options.RetryInterval

	if err := backoff.Retry(connect, backoff.WithMaxRetries(policy, options.RetryAttempts)); err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", options.RetryAttempts+1, err)
	}

	return db, nil
}
