package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"habitloop/internal/domain/unlock"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage paths
	Storage StorageConfig

	// Session signing and CSRF keys
	Keys KeyConfig

	// Unlock codes for premium content and the admin editor
	Codes CodeConfig

	// Email delivery (Resend)
	Email EmailConfig

	// External checkout link shown on the locked view
	CheckoutLink string

	// Env is "production" or "development"
	Env string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string
	StaticDir string
}

// StorageConfig holds the sqlite and tasks-file paths.
type StorageConfig struct {
	DBPath    string
	TasksPath string
}

// KeyConfig holds the session-signing and CSRF keys (32 bytes each).
type KeyConfig struct {
	SessionKey []byte
	CSRFKey    []byte
}

// CodeConfig holds the premium and admin unlock secrets.
type CodeConfig struct {
	Premium unlock.Secret
	Admin   unlock.Secret
}

// EmailConfig holds Resend settings. An empty APIKey selects the noop sender.
type EmailConfig struct {
	APIKey  string
	From    string
	ReplyTo string
}

// Load reads configuration from environment variables, with defaults usable
// for local development. In production the signing keys must be set.
func Load() (*Config, error) {
	env := envOrDefault("HABITLOOP_ENV", "development")

	sessionKey, err := loadKey("HABITLOOP_SESSION_KEY", env)
	if err != nil {
		return nil, err
	}
	csrfKey, err := loadKey("HABITLOOP_CSRF_KEY", env)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:      envOrDefault("HABITLOOP_ADDR", ":8080"),
			StaticDir: envOrDefault("HABITLOOP_STATIC_DIR", "static"),
		},
		Storage: StorageConfig{
			DBPath:    envOrDefault("HABITLOOP_DB_PATH", "progress.db"),
			TasksPath: envOrDefault("HABITLOOP_TASKS_PATH", "tasks.json"),
		},
		Keys: KeyConfig{
			SessionKey: sessionKey,
			CSRFKey:    csrfKey,
		},
		Codes: CodeConfig{
			Premium: unlock.Secret{
				Plain: envOrDefault("HABITLOOP_PREMIUM_CODE", "PREMIUM-123"),
				Hash:  os.Getenv("HABITLOOP_PREMIUM_CODE_HASH"),
			},
			Admin: unlock.Secret{
				Plain: envOrDefault("HABITLOOP_ADMIN_CODE", "ADMIN-123"),
				Hash:  os.Getenv("HABITLOOP_ADMIN_CODE_HASH"),
			},
		},
		Email: EmailConfig{
			APIKey:  os.Getenv("HABITLOOP_RESEND_KEY"),
			From:    envOrDefault("HABITLOOP_RESEND_FROM", "Habitloop <noreply@habitloop.local>"),
			ReplyTo: os.Getenv("HABITLOOP_REPLY_TO"),
		},
		CheckoutLink: os.Getenv("HABITLOOP_CHECKOUT_LINK"),
		Env:          env,
	}
	return cfg, nil
}

// loadKey reads a 32-byte hex-encoded key from the named env var. In
// production the key is required; in development a random per-process key is
// generated, which means sessions do not survive a restart.
func loadKey(name, env string) ([]byte, error) {
	if keyHex := os.Getenv(name); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("%s must be 64 hex characters (32 bytes)", name)
		}
		return key, nil
	}
	if env == "production" {
		return nil, fmt.Errorf("%s is required in production", name)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", name, err)
	}
	slog.Warn("using random key, sessions will not survive restart", "var", name)
	return key, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
