package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"petcare-tracker/internal/adapters/notify/cronsched"
	"petcare-tracker/internal/platform/logger"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StorageSQLite   StorageDriver = "sqlite"
	StoragePostgres StorageDriver = "postgres"
)

type Plans struct {
	BaseURL  string
	APIKey   string
	UserID   string
	Timeout  time.Duration
	AllowAll bool
}

type Config struct {
	Port string

	Storage    StorageDriver
	SQLitePath string
	DBDSN      string
	PhotosDir  string

	NotifySweep string

	Plans           Plans
	PremiumOverride bool
	CouponCodes     []string

	AppName   string
	LogLevel  logger.Level
	LogFormat logger.Format
}

// Load lee la configuración del entorno con defaults para modo dev.
// Solo falla con valores que no se pueden interpretar.
func Load() (Config, error) {
	cfg := Config{
		Port:        env("PORT", "8080"),
		SQLitePath:  env("SQLITE_PATH", "data/petcare.db"),
		DBDSN:       env("DB_DSN", ""),
		PhotosDir:   env("PHOTOS_DIR", "data/photos"),
		NotifySweep: env("NOTIFY_SWEEP", cronsched.DefaultSweep),
		AppName:     env("APP_NAME", "petcare-tracker"),
		LogLevel:    logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:   logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		Plans: Plans{
			BaseURL: env("PLANS_BASE_URL", ""),
			APIKey:  env("PLANS_API_KEY", ""),
			UserID:  env("PLANS_USER_ID", "local"),
		},
		CouponCodes: splitList(os.Getenv("COUPON_CODES")),
	}

	switch d := StorageDriver(strings.ToLower(env("STORAGE_DRIVER", string(StorageMemory)))); d {
	case StorageMemory, StorageSQLite, StoragePostgres:
		cfg.Storage = d
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", d)
	}
	if cfg.Storage == StoragePostgres && cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required for postgres storage")
	}

	var err error
	if cfg.Plans.Timeout, err = durationEnv("PLANS_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Plans.AllowAll, err = boolEnv("ALLOW_ALL_CAPABILITIES", false); err != nil {
		return Config{}, err
	}
	if cfg.PremiumOverride, err = boolEnv("PREMIUM_OVERRIDE", false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
