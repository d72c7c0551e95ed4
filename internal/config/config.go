package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	RedisAddress  string
	AdminPassword string
	TokenSecret   string

	RepurchaseWindow time.Duration
	DownloadWindow   time.Duration

	DriveBaseURL    string
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	AdminEmail      string
	ClientURL       string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string

	DispatcherWorkers int
	EventQueueSize    int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultRedisAddress     = "localhost:6379"
	defaultTokenSecret      = "change-me-in-production"
	defaultRepurchaseWindow = 7 * 24 * time.Hour
	defaultDownloadWindow   = 72 * time.Hour
	defaultSMTPPort         = 465
	defaultClientURL        = "http://localhost:3000"
	defaultVAPIDSubject     = "mailto:admin@craftmart.local"
	defaultWorkers          = 4
	defaultQueueSize        = 64
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags, in ascending priority.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RedisAddress:      getString(lookup, "REDIS_ADDRESS", defaultRedisAddress),
		AdminPassword:     getString(lookup, "ADMIN_PASSWORD", ""),
		TokenSecret:       getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		RepurchaseWindow:  getDuration(lookup, "REPURCHASE_WINDOW", defaultRepurchaseWindow),
		DownloadWindow:    getDuration(lookup, "DOWNLOAD_WINDOW", defaultDownloadWindow),
		DriveBaseURL:      getString(lookup, "DRIVE_BASE_URL", ""),
		SMTPHost:          getString(lookup, "SMTP_HOST", ""),
		SMTPPort:          getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUser:          getString(lookup, "SMTP_USER", ""),
		SMTPPassword:      getString(lookup, "SMTP_PASSWORD", ""),
		AdminEmail:        getString(lookup, "ADMIN_EMAIL", ""),
		ClientURL:         getString(lookup, "CLIENT_URL", defaultClientURL),
		VAPIDPublicKey:    getString(lookup, "VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey:   getString(lookup, "VAPID_PRIVATE_KEY", ""),
		VAPIDSubject:      getString(lookup, "VAPID_SUBJECT", defaultVAPIDSubject),
		DispatcherWorkers: getInt(lookup, "DISPATCHER_WORKERS", defaultWorkers),
		EventQueueSize:    getInt(lookup, "EVENT_QUEUE_SIZE", defaultQueueSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("craftmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		repurchaseStr = cfg.RepurchaseWindow.String()
		downloadStr   = cfg.DownloadWindow.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "r", cfg.RedisAddress, "Redis address")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Shared secret for admin endpoints")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&repurchaseStr, "repurchase-window", repurchaseStr, "Period after approval during which re-purchase is blocked")
	fs.StringVar(&downloadStr, "download-window", downloadStr, "Period after approval during which download is allowed")
	fs.StringVar(&cfg.DriveBaseURL, "drive-url", cfg.DriveBaseURL, "Blob storage service base URL")
	fs.IntVar(&cfg.DispatcherWorkers, "dispatcher-workers", cfg.DispatcherWorkers, "Number of concurrent notification workers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RepurchaseWindow, err = time.ParseDuration(repurchaseStr); err != nil {
		return nil, fmt.Errorf("invalid repurchase window: %w", err)
	}

	if cfg.DownloadWindow, err = time.ParseDuration(downloadStr); err != nil {
		return nil, fmt.Errorf("invalid download window: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.RepurchaseWindow <= 0 {
		cfg.RepurchaseWindow = defaultRepurchaseWindow
	}

	if cfg.DownloadWindow <= 0 {
		cfg.DownloadWindow = defaultDownloadWindow
	}

	if cfg.DispatcherWorkers <= 0 {
		cfg.DispatcherWorkers = defaultWorkers
	}

	if cfg.EventQueueSize <= 0 {
		cfg.EventQueueSize = defaultQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin password must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
