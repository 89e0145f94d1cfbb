package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads the first env file found among envFilePath (searched upward from the
// working directory), falls back to ./.env and then fills App from the environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"auth_pin", maskValue(cfg.Auth.Pin),
		"settlement_delay", cfg.Payment.SettlementDelay,
		"settlement_mode", cfg.Payment.SettlementMode,
		"source_account", cfg.Payment.SourceAccount,
		"receive_account", cfg.Payment.ReceiveAccount,
		"allow_overdraft", cfg.Payment.AllowOverdraft,
		"notification_ttl", cfg.Notification.TTL,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

// Validate checks the values envconfig cannot.
func (c *App) Validate() error {
	switch {
	case c.Payment.SettlementDelay < 0:
		return fmt.Errorf("%w: PAYMENT_SETTLEMENT_DELAY must not be negative", ErrInvalidConfig)
	case c.Notification.TTL <= 0:
		return fmt.Errorf("%w: NOTIFICATION_TTL must be positive", ErrInvalidConfig)
	case c.Payment.SourceAccount == "" || c.Payment.ReceiveAccount == "":
		return fmt.Errorf("%w: settlement accounts are required", ErrInvalidConfig)
	case c.Dashboard.RecentLimit <= 0:
		return fmt.Errorf("%w: DASHBOARD_RECENT_LIMIT must be positive", ErrInvalidConfig)
	}
	return nil
}

// FindEnvTest walks up from the working directory looking for filename (.env when
// empty) and returns the first match.
func FindEnvTest(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, filename)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
