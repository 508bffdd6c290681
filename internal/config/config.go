package config

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultJWTSecret = "your-very-secret-key-for-rental-service"

// Config holds all configuration for the service.
type Config struct {
	ServiceName            string `mapstructure:"SERVICE_NAME"`
	HTTPPort               string `mapstructure:"HTTP_PORT"`
	GRPCHealthPort         string `mapstructure:"GRPC_HEALTH_PORT"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ListingCacheTTL time.Duration `mapstructure:"LISTING_CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUsername    string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	SMTPSenderEmail string `mapstructure:"SMTP_SENDER_EMAIL"`

	FeaturedListingsLimit     int    `mapstructure:"FEATURED_LISTINGS_LIMIT"`
	BookingCompensationPolicy string `mapstructure:"BOOKING_COMPENSATION_POLICY"` // "refund" or "none"
}

// SMTPEnabled reports whether booking confirmation mail can be sent.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPSenderEmail != ""
}

// MinioEnabled reports whether thumbnail uploads are configured.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioBucket != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "rental-service")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("GRPC_HEALTH_PORT", "50055")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "rentals")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LISTING_CACHE_TTL", "10m")

	v.SetDefault("NATS_URL", "nats://localhost:4222")

	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "listing-thumbnails")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SENDER_EMAIL", "")

	v.SetDefault("FEATURED_LISTINGS_LIMIT", 3)
	v.SetDefault("BOOKING_COMPENSATION_POLICY", "refund")
}

// LoadConfig reads configuration from the environment. The .env file, if any,
// is loaded into the environment by main before this runs.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if err := cfg.validate(appLogger); err != nil {
		return nil, err
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_health_port", cfg.GRPCHealthPort),
		zap.Bool("mongo_uri_present", cfg.MongoURI != ""),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.Duration("listing_cache_ttl", cfg.ListingCacheTTL),
		zap.String("nats_url", cfg.NATSURL),
		zap.Bool("minio_enabled", cfg.MinioEnabled()),
		zap.Bool("smtp_enabled", cfg.SMTPEnabled()),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
		zap.String("booking_compensation_policy", cfg.BookingCompensationPolicy),
	)
	return &cfg, nil
}

func (c *Config) validate(appLogger *logger.Logger) error {
	if c.JWTSecret == defaultJWTSecret || c.JWTSecret == "" {
		appLogger.Warn("JWT_SECRET is set to its default insecure value or is empty. Please set a strong secret in your environment.")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is not set")
	}
	if c.MongoDatabase == "" {
		return fmt.Errorf("MONGO_DATABASE is not set")
	}
	if c.FeaturedListingsLimit < 1 {
		appLogger.Warn("FEATURED_LISTINGS_LIMIT must be positive, using 3", zap.Int("configured", c.FeaturedListingsLimit))
		c.FeaturedListingsLimit = 3
	}
	switch c.BookingCompensationPolicy {
	case "refund", "none":
	default:
		return fmt.Errorf("BOOKING_COMPENSATION_POLICY must be 'refund' or 'none', got %q", c.BookingCompensationPolicy)
	}
	return nil
}
