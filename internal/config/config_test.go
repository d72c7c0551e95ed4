package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":   "postgres://localhost/craftmart",
		"ADMIN_PASSWORD": "hunter2",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Fatalf("RunAddress = %q", cfg.RunAddress)
	}
	if cfg.RepurchaseWindow != 7*24*time.Hour {
		t.Fatalf("RepurchaseWindow = %v", cfg.RepurchaseWindow)
	}
	if cfg.DownloadWindow != 72*time.Hour {
		t.Fatalf("DownloadWindow = %v", cfg.DownloadWindow)
	}
	if cfg.DispatcherWorkers != 4 || cfg.EventQueueSize != 64 {
		t.Fatalf("dispatcher defaults = %d/%d", cfg.DispatcherWorkers, cfg.EventQueueSize)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["REPURCHASE_WINDOW"] = "48h"
	env["DOWNLOAD_WINDOW"] = "24h"
	env["SMTP_PORT"] = "587"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("RunAddress = %q", cfg.RunAddress)
	}
	if cfg.RepurchaseWindow != 48*time.Hour {
		t.Fatalf("RepurchaseWindow = %v", cfg.RepurchaseWindow)
	}
	if cfg.DownloadWindow != 24*time.Hour {
		t.Fatalf("DownloadWindow = %v", cfg.DownloadWindow)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("SMTPPort = %d", cfg.SMTPPort)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9090"

	cfg, err := load([]string{"-a", ":7070", "-repurchase-window", "24h"}, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("RunAddress = %q, want the flag value", cfg.RunAddress)
	}
	if cfg.RepurchaseWindow != 24*time.Hour {
		t.Fatalf("RepurchaseWindow = %v", cfg.RepurchaseWindow)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	env := baseEnv()
	delete(env, "DATABASE_URI")

	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected an error without a database URI")
	}
}

func TestLoadRequiresAdminPassword(t *testing.T) {
	env := baseEnv()
	delete(env, "ADMIN_PASSWORD")

	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected an error without an admin password")
	}
}

func TestLoadTokenSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	env := baseEnv()
	env["TOKEN_SECRET_FILE"] = path

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenSecret != "file-secret" {
		t.Fatalf("TokenSecret = %q, want the file content", cfg.TokenSecret)
	}
}

func TestLoadInvalidWindow(t *testing.T) {
	if _, err := load([]string{"-download-window", "tomorrow"}, lookupFrom(baseEnv())); err == nil {
		t.Fatal("expected an error for an unparsable window")
	}
}

func TestLoadNegativeWindowFallsBack(t *testing.T) {
	cfg, err := load([]string{"-download-window", "-1h"}, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DownloadWindow != 72*time.Hour {
		t.Fatalf("DownloadWindow = %v, want the default", cfg.DownloadWindow)
	}
}
