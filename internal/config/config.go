// Package config loads server settings from an optional .env file and the
// process environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything cmd/server and the tools need at startup.
type Config struct {
	Port   int
	DBPath string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	// PhoneRegion is the default region for numbers typed without a country code.
	PhoneRegion string

	MediaRoot       string
	StorageProvider string
	GCSBucket       string
	GCSCredentials  string

	// RedisAddress enables the shared cache and locker when set.
	RedisAddress      string
	DashboardCacheTTL time.Duration
	LowStockThreshold int

	AllowedOrigins []string

	Business Business
}

// Business is printed on invoices.
type Business struct {
	Name    string
	Address string
	Phone   string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "./data/milkagency.db")
	v.SetDefault("JWT_TTL_HOURS", 24*7)
	v.SetDefault("PHONE_REGION", "IN")
	v.SetDefault("MEDIA_ROOT", "./data/media")
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("DASHBOARD_CACHE_TTL", "60s")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("BUSINESS_NAME", "Milk Agency")
}

// Load reads envFile if it exists, then lets the environment override it.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	defaults(v)
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			slog.Debug("No env file, using environment only", "file", envFile, "error", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetInt("PORT"),
		DBPath:            v.GetString("DB_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTTTL:            time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		PhoneRegion:       strings.ToUpper(v.GetString("PHONE_REGION")),
		MediaRoot:         v.GetString("MEDIA_ROOT"),
		StorageProvider:   strings.ToLower(v.GetString("STORAGE_PROVIDER")),
		GCSBucket:         v.GetString("GCS_BUCKET"),
		GCSCredentials:    v.GetString("GCS_CREDENTIALS_JSON"),
		RedisAddress:      v.GetString("REDIS_ADDRESS"),
		DashboardCacheTTL: v.GetDuration("DASHBOARD_CACHE_TTL"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		AllowedOrigins:    splitList(v.GetString("ALLOWED_ORIGINS")),
		Business: Business{
			Name:    v.GetString("BUSINESS_NAME"),
			Address: v.GetString("BUSINESS_ADDRESS"),
			Phone:   v.GetString("BUSINESS_PHONE"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	switch c.StorageProvider {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_PROVIDER=gcs")
		}
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}
	return nil
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
