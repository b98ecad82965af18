package app

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sarunks7/storely-backend/internal/platform/logger"
	"github.com/sarunks7/storely-backend/internal/utils"
)

type Config struct {
	Addr            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SessionTTL      time.Duration
	TaxRateBP       int64
	AllowedOrigins  []string
}

// fileConfig is the optional CONFIG_FILE yaml shape. Environment variables
// win over the file so containers can override a baked-in config.
type fileConfig struct {
	Addr            string   `yaml:"addr"`
	JWTSecretKey    string   `yaml:"jwt_secret_key"`
	AccessTokenTTL  int      `yaml:"access_token_ttl_seconds"`
	RefreshTokenTTL int      `yaml:"refresh_token_ttl_seconds"`
	SessionTTL      int      `yaml:"session_ttl_seconds"`
	TaxRateBP       int64    `yaml:"tax_rate_basis_points"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

func LoadConfig(log *logger.Logger) Config {
	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("config file unreadable, using env only", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &fc); err != nil {
			log.Warn("config file invalid yaml, using env only", "path", path, "error", err)
		}
	}

	cfg := Config{
		Addr:            utils.GetEnv("ADDR", orString(fc.Addr, ":8080"), log),
		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", orString(fc.JWTSecretKey, "defaultsecret"), log),
		AccessTokenTTL:  secondsEnv("ACCESS_TOKEN_TTL", fc.AccessTokenTTL, 3600, log),
		RefreshTokenTTL: secondsEnv("REFRESH_TOKEN_TTL", fc.RefreshTokenTTL, 86400, log),
		SessionTTL:      secondsEnv("CART_SESSION_TTL", fc.SessionTTL, int(14*24*time.Hour/time.Second), log),
		TaxRateBP:       int64(utils.GetEnvAsInt("TAX_RATE_BASIS_POINTS", orInt(int(fc.TaxRateBP), 500), log)),
		AllowedOrigins:  fc.AllowedOrigins,
	}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	return cfg
}

func (c Config) CartCookieMaxAge() int {
	return int(c.SessionTTL / time.Second)
}

func secondsEnv(key string, fileVal, def int, log *logger.Logger) time.Duration {
	return time.Duration(utils.GetEnvAsInt(key, orInt(fileVal, def), log)) * time.Second
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
