package app

import (
	"strings"
	"time"

	"github.com/yungbote/talent-analytics-backend/internal/clients/gemini"
	"github.com/yungbote/talent-analytics-backend/internal/clients/mlservice"
	"github.com/yungbote/talent-analytics-backend/internal/clients/openai"
	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/data/db"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/envutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port        string
	AutoMigrate bool
	DB          db.Options

	JWTSecretKey string
	CORSOrigins  []string

	AIProvider string
	Gemini     gemini.Config
	OpenAI     openai.Config
	MLService  mlservice.Config
	Redis      redis.Config

	EmbedConcurrency    int
	AssessmentFreshness time.Duration

	OTel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		AutoMigrate: envutil.Bool("DB_AUTO_MIGRATE", true),
		DB: db.Options{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "talent"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "talent.db"),
			SlowThreshold:    envutil.Seconds("DB_SLOW_THRESHOLD_SECONDS", time.Second),
		},
		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		CORSOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),
		AIProvider:   strings.ToLower(envutil.String("AI_PROVIDER", ProviderGemini)),
		Gemini:       gemini.ConfigFromEnv(),
		OpenAI:       openai.ConfigFromEnv(),
		MLService:    mlservice.ConfigFromEnv(),
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
			Channel:  envutil.String("REDIS_CHANNEL", redis.DefaultChannel),
		},
		EmbedConcurrency:    envutil.Int("EMBED_CONCURRENCY", 8),
		AssessmentFreshness: time.Duration(envutil.Int("ASSESSMENT_FRESHNESS_HOURS", 24)) * time.Hour,
		OTel: observability.OtelConfig{
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "talent-analytics-backend"),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", "dev"),
		},
	}

	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY not set, using insecure development secret")
		cfg.JWTSecretKey = "defaultsecret"
	}
	switch cfg.AIProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		log.Warn("unknown AI_PROVIDER, falling back to gemini", "ai_provider", cfg.AIProvider)
		cfg.AIProvider = ProviderGemini
	}
	log.Debug("config loaded",
		"port", cfg.Port,
		"db_driver", cfg.DB.Driver,
		"ai_provider", cfg.AIProvider,
		"redis_enabled", cfg.Redis.Addr != "",
		"assessment_freshness", cfg.AssessmentFreshness.String(),
	)
	return cfg
}
