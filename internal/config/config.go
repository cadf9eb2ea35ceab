package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

// Catalog sources.
const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceFile     = "file"
)

type ManagerAPIConfig struct {
	Addr         string        `envconfig:"API_ADDR"          default:":8081"`
	ReadTimeout  time.Duration `envconfig:"API_READ_TIMEOUT"  default:"10s"`
	WriteTimeout time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"API_IDLE_TIMEOUT"  default:"60s"`
	// Quote rate limit per client IP. A zero rate disables it.
	RateLimitRPS   float64 `envconfig:"API_RATE_LIMIT_RPS"   default:"5"`
	RateLimitBurst int     `envconfig:"API_RATE_LIMIT_BURST" default:"20"`
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the TCP peer.
	TrustedProxies []string `envconfig:"API_TRUSTED_PROXIES"`
	// AdminAPIKeyHash is the bcrypt hash of the admin key. Admin routes are disabled when empty.
	AdminAPIKeyHash string `envconfig:"ADMIN_API_KEY_HASH"`
}

// Config holds the overall application configuration.
type Config struct {
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	LogLevel     string `envconfig:"LOG_LEVEL"    default:"info"`
	Catalog      CatalogConfig
	Pricing      PricingConfig
	Breaker      BreakerConfig
	WorkerConfig WorkerConfig
	ManagerAPI   ManagerAPIConfig
}

// CatalogConfig selects the catalog backend and its cache.
type CatalogConfig struct {
	Source   string        `envconfig:"CATALOG_SOURCE"    default:"postgres"`
	File     string        `envconfig:"CATALOG_FILE"      default:"catalog.yaml"`
	RedisURL string        `envconfig:"REDIS_URL"`
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

// PricingConfig overrides the pricing constants. Coefficient maps use the
// "key:2.0,other_key:2.2" format; keys given here replace the built-in entries.
type PricingConfig struct {
	VATRate             decimal.Decimal            `envconfig:"PRICING_VAT_RATE"             default:"0.20"`
	ReducedVATRate      decimal.Decimal            `envconfig:"PRICING_REDUCED_VAT_RATE"     default:"0.10"`
	GlobalCoefficient   decimal.Decimal            `envconfig:"PRICING_GLOBAL_COEFFICIENT"   default:"2.0"`
	ProductCoefficients map[string]decimal.Decimal `envconfig:"PRICING_PRODUCT_COEFFICIENTS"`
	TypeCoefficients    map[string]decimal.Decimal `envconfig:"PRICING_TYPE_COEFFICIENTS"`
}

type BreakerConfig struct {
	FailureThreshold int           `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	SuccessThreshold int           `envconfig:"BREAKER_SUCCESS_THRESHOLD" default:"2"`
	VolumeThreshold  int           `envconfig:"BREAKER_VOLUME_THRESHOLD"  default:"10"`
	OpenTimeout      time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT"      default:"30s"`
	RequestTimeout   time.Duration `envconfig:"BREAKER_REQUEST_TIMEOUT"   default:"5s"`
}

type WorkerConfig struct {
	CacheWarmInterval   time.Duration `envconfig:"WORKER_CACHE_WARM_INTERVAL"   default:"10m"`
	RuleExpiryInterval  time.Duration `envconfig:"WORKER_RULE_EXPIRY_INTERVAL"  default:"1h"`
	RuleExpiryLookahead time.Duration `envconfig:"WORKER_RULE_EXPIRY_LOOKAHEAD" default:"72h"`
	NotifyRecipient     string        `envconfig:"WORKER_NOTIFY_RECIPIENT"      default:"pricing-admin"`
}

// Settings returns the pricing settings, starting from the built-in defaults.
func (p PricingConfig) Settings() pricing.Settings {
	s := pricing.DefaultSettings()
	s.VATRate = p.VATRate
	s.ReducedVATRate = p.ReducedVATRate
	s.GlobalCoefficient = p.GlobalCoefficient
	for key, c := range p.ProductCoefficients {
		s.ProductCoefficients[strings.TrimSpace(key)] = c
	}
	for key, c := range p.TypeCoefficients {
		s.TypeCoefficients[strings.TrimSpace(key)] = c
	}
	return s
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogSourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE=%s", CatalogSourcePostgres)
		}
	case CatalogSourceFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE=%s", CatalogSourceFile)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}
	if err := c.Pricing.Settings().Validate(); err != nil {
		return fmt.Errorf("invalid pricing configuration: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	log.Println("Loading configuration from environment variables...")

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, skipping: %v", err)
	} else {
		log.Println(".env loaded")
	}

	err := envconfig.Process("", &cfg) // Use "" prefix for env vars
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("Configuration loaded successfully (API Addr: %s, catalog: %s)", cfg.ManagerAPI.Addr, cfg.Catalog.Source)
	return &cfg, nil
}
