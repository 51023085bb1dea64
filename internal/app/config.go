package app

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
	"github.com/google/uuid"
)

type Config struct {
	RunAddress       string
	DatabaseURI      string
	LogLevel         string
	JWTSecretKey     string
	MigrationsPath   string
	SessionTimeout   time.Duration
	LoginDelay       time.Duration
	GuestIdleTimeout time.Duration
	Title            string
}

// NewConfigFromFlags reads the process flags, then lets environment
// variables override them. Invalid configuration aborts the process.
func NewConfigFromFlags() *Config {
	cfg, err := ParseConfig(os.Args[0], os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

func ParseConfig(name string, args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "Server address (env: RUN_ADDRESS)")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "Database URI, empty serves the built-in demo data (env: DATABASE_URI)")
	fs.StringVar(&cfg.LogLevel, "l", "info", "Log level (debug|info|warn|error) (env: LOG_LEVEL)")
	fs.StringVar(&cfg.JWTSecretKey, "jwt-secret", "", "JWT secret key, random when empty (env: JWT_SECRET_KEY)")
	fs.StringVar(&cfg.MigrationsPath, "migrations", "./migrations", "Path to migrations folder (env: MIGRATIONS_PATH)")
	fs.DurationVar(&cfg.SessionTimeout, "session-timeout", session.DefaultTimeout, "Inactivity timeout (env: SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.LoginDelay, "login-delay", service.DefaultLoginDelay, "Simulated login latency (env: LOGIN_DELAY)")
	fs.DurationVar(&cfg.GuestIdleTimeout, "guest-idle", 30*time.Minute, "Idle time before guest sessions are dropped (env: GUEST_IDLE_TIMEOUT)")
	fs.StringVar(&cfg.Title, "title", "MINI CAPSTONE", "Dashboard title (env: APP_TITLE)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvVars(getenv); err != nil {
		return nil, err
	}
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = uuid.NewString()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvVars(getenv func(string) string) error {
	strs := map[string]*string{
		"RUN_ADDRESS":     &c.RunAddress,
		"DATABASE_URI":    &c.DatabaseURI,
		"LOG_LEVEL":       &c.LogLevel,
		"JWT_SECRET_KEY":  &c.JWTSecretKey,
		"MIGRATIONS_PATH": &c.MigrationsPath,
		"APP_TITLE":       &c.Title,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"SESSION_TIMEOUT":    &c.SessionTimeout,
		"LOGIN_DELAY":        &c.LoginDelay,
		"GUEST_IDLE_TIMEOUT": &c.GuestIdleTimeout,
	}
	for key, dst := range durations {
		v := getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.RunAddress == "" {
		return errors.New("server address is required (use -a flag or RUN_ADDRESS env)")
	}
	if c.SessionTimeout <= 0 {
		return errors.New("session timeout must be positive")
	}
	if c.LoginDelay < 0 {
		return errors.New("login delay must not be negative")
	}
	if c.GuestIdleTimeout <= 0 {
		return errors.New("guest idle timeout must be positive")
	}
	return nil
}

func (c *Config) MaskDBPassword() string {
	u, err := url.Parse(c.DatabaseURI)
	if err != nil {
		return c.DatabaseURI
	}

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
