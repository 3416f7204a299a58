package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	Server   ServerConfig
	Saleor   SaleorConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Server.validate(cfg.App.IsProd()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
}

// LogOutput is LOG_FORMAT, or console in development and json elsewhere when unset.
func (a AppConfig) LogOutput() string {
	if format := strings.TrimSpace(a.LogFormat); format != "" {
		return format
	}
	if a.IsDev() {
		return "console"
	}
	return "json"
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "prod")
}

type TelegramConfig struct {
	BotToken    string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminChatID int64  `envconfig:"ADMIN_CHAT_ID" default:"0"`
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"3000"`
	BaseURL         string        `envconfig:"BASE_URL" default:"http://localhost:3000"`
	WebhookURL      string        `envconfig:"WEBHOOK_URL"`
	ResourceBaseURL string        `envconfig:"RESOURCE_BASE_URL" default:"https://example.com"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + strings.TrimPrefix(s.Port, ":")
}

// validate requires absolute urls. In production the Mini-App urls must be https,
// since Telegram refuses web_app buttons on anything else.
func (s ServerConfig) validate(prod bool) error {
	for _, v := range []struct{ name, raw string }{
		{"BASE_URL", s.BaseURL},
		{"WEBHOOK_URL", s.WebhookURL},
		{"RESOURCE_BASE_URL", s.ResourceBaseURL},
	} {
		if v.raw == "" {
			continue
		}
		u, err := url.Parse(v.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute url, got %q", v.name, v.raw)
		}
		if prod && v.name != "WEBHOOK_URL" && u.Scheme != "https" {
			return fmt.Errorf("%s must use https in production, got %q", v.name, v.raw)
		}
	}
	return nil
}

type SaleorConfig struct {
	APIURL       string        `envconfig:"SALEOR_API_URL"`
	ChannelToken string        `envconfig:"SALEOR_CHANNEL_TOKEN"`
	Timeout      time.Duration `envconfig:"SALEOR_TIMEOUT" default:"10s"`
	ProductLimit int           `envconfig:"SALEOR_PRODUCT_LIMIT" default:"20"`
}

// Enabled reports whether a live query path is configured.
func (s SaleorConfig) Enabled() bool {
	return strings.TrimSpace(s.APIURL) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
	SnapshotTTL  time.Duration `envconfig:"CATALOG_SNAPSHOT_TTL" default:"24h"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}
