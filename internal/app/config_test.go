package app

import (
	"testing"
	"time"

	"github.com/yungbote/talent-analytics-backend/internal/clients/gemini"
	"github.com/yungbote/talent-analytics-backend/internal/clients/openai"
	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/data/db"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "JWT_SECRET_KEY", "CORS_ALLOWED_ORIGINS", "AI_PROVIDER",
		"REDIS_ADDR", "REDIS_CHANNEL", "EMBED_CONCURRENCY", "ASSESSMENT_FRESHNESS_HOURS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig(logger.Nop())

	if cfg.Port != "8080" {
		t.Fatalf("port: %q", cfg.Port)
	}
	if cfg.DB.Driver != db.DriverPostgres {
		t.Fatalf("driver: %q", cfg.DB.Driver)
	}
	if cfg.JWTSecretKey != "defaultsecret" {
		t.Fatalf("expected development secret fallback, got %q", cfg.JWTSecretKey)
	}
	if cfg.AIProvider != ProviderGemini {
		t.Fatalf("provider: %q", cfg.AIProvider)
	}
	if cfg.AssessmentFreshness != 24*time.Hour {
		t.Fatalf("freshness: %s", cfg.AssessmentFreshness)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.Channel != redis.DefaultChannel {
		t.Fatalf("redis: %+v", cfg.Redis)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hr.example.com, ,https://admin.example.com")
	t.Setenv("ASSESSMENT_FRESHNESS_HOURS", "6")
	t.Setenv("DB_DRIVER", db.DriverSQLite)

	cfg := LoadConfig(logger.Nop())
	if cfg.AIProvider != ProviderOpenAI {
		t.Fatalf("provider: %q", cfg.AIProvider)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example.com" {
		t.Fatalf("origins: %v", cfg.CORSOrigins)
	}
	if cfg.AssessmentFreshness != 6*time.Hour {
		t.Fatalf("freshness: %s", cfg.AssessmentFreshness)
	}
	if cfg.DB.Driver != db.DriverSQLite {
		t.Fatalf("driver: %q", cfg.DB.Driver)
	}
}

func TestLoadConfigUnknownProviderFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "llama")
	if got := LoadConfig(logger.Nop()).AIProvider; got != ProviderGemini {
		t.Fatalf("expected gemini fallback, got %q", got)
	}
}

func TestWireClientsSelectsProvider(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		provider string
		check    func(c Clients) bool
	}{
		{ProviderGemini, func(c Clients) bool { _, ok := c.Generator.(*gemini.Client); return ok }},
		{ProviderOpenAI, func(c Clients) bool { _, ok := c.Embedder.(*openai.Client); return ok }},
	}
	for _, tc := range cases {
		cfg := LoadConfig(logger.Nop())
		cfg.AIProvider = tc.provider
		c, err := wireClients(logger.Nop(), cfg)
		if err != nil {
			t.Fatalf("%s: wire: %v", tc.provider, err)
		}
		if !tc.check(c) {
			t.Fatalf("%s: unexpected client types %T / %T", tc.provider, c.Generator, c.Embedder)
		}
		if c.EventBus != nil {
			t.Fatalf("%s: event bus should be disabled without REDIS_ADDR", tc.provider)
		}
		if c.Oracle == nil {
			t.Fatalf("%s: oracle not wired", tc.provider)
		}
	}
}
