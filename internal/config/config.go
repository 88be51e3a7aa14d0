package config

import (
	"time"

	"github.com/joho/godotenv"

	"farmsync/internal/domain/model"
)

type Config struct {
	Mysql       MysqlConfig
	Marketplace MarketplaceConfig
	POS         POSConfig
	TelegramBot TelegramBotConfig
	Pricing     PricingConfig
	Audit       AuditConfig
	Metrics     MetricsConfig
}

type MysqlConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

type MarketplaceConfig struct {
	BaseUrl           string
	Username          string
	Password          string
	Timeout           time.Duration
	RequestsPerMinute int
}

type POSConfig struct {
	BaseUrl     string
	AccessToken string
	Timeout     time.Duration
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}

type PricingConfig struct {
	DiscountFactor float64
	MemberMarkup   float64
	GuestMarkup    float64
	SaleActive     bool
	SaleDeduction  float64
	Targets        []model.PriceListTarget
}

type AuditConfig struct {
	LogPath string
}

type MetricsConfig struct {
	Port string
}

// Load resolves the whole configuration once at process start. A .env file in
// the working directory is honored when present; real environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	if cfg.Mysql.Host, err = requiredString("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Mysql.Port, err = intWithDefault("DB_PORT", 3306); err != nil {
		return nil, err
	}
	if cfg.Mysql.Username, err = requiredString("DB_USER"); err != nil {
		return nil, err
	}
	cfg.Mysql.Password = stringWithDefault("DB_PASSWORD", "")
	if cfg.Mysql.Database, err = requiredString("DB_NAME"); err != nil {
		return nil, err
	}

	if cfg.Marketplace.BaseUrl, err = requiredString("MARKETPLACE_BASE_URL"); err != nil {
		return nil, err
	}
	if cfg.Marketplace.Username, err = requiredString("MARKETPLACE_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Marketplace.Password, err = requiredString("MARKETPLACE_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Marketplace.Timeout, err = durationWithDefault("MARKETPLACE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Marketplace.RequestsPerMinute, err = intWithDefault("MARKETPLACE_RPM", 60); err != nil {
		return nil, err
	}

	cfg.POS.BaseUrl = stringWithDefault("POS_BASE_URL", "https://connect.squareup.com/v2")
	cfg.POS.AccessToken = stringWithDefault("POS_ACCESS_TOKEN", "")
	if cfg.POS.Timeout, err = durationWithDefault("POS_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.TelegramBot.ChatId = stringWithDefault("TELEGRAM_CHAT_ID", "")
	cfg.TelegramBot.Token = stringWithDefault("TELEGRAM_TOKEN", "")

	if cfg.Pricing.DiscountFactor, err = requiredFloat("DISCOUNT"); err != nil {
		return nil, err
	}
	if cfg.Pricing.MemberMarkup, err = requiredFloat("MEMBER_MARKUP"); err != nil {
		return nil, err
	}
	if cfg.Pricing.GuestMarkup, err = requiredFloat("GUEST_MARKUP"); err != nil {
		return nil, err
	}
	if cfg.Pricing.SaleActive, err = boolWithDefault("SALE_ACTIVE", false); err != nil {
		return nil, err
	}
	if cfg.Pricing.SaleDeduction, err = floatWithDefault("SALE_DEDUCTION", 0.5); err != nil {
		return nil, err
	}

	targetsPath := stringWithDefault("PRICE_LISTS_FILE", "pricelists.yaml")
	cfg.Pricing.Targets, err = LoadTargets(targetsPath, cfg.Pricing.MemberMarkup, cfg.Pricing.GuestMarkup)
	if err != nil {
		return nil, err
	}

	cfg.Audit.LogPath = stringWithDefault("AUDIT_LOG_PATH", "data/inventory_updates_log.csv")
	cfg.Metrics.Port = stringWithDefault("METRICS_PORT", "9090")

	return cfg, nil
}
