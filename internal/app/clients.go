package app

import (
	"fmt"

	"github.com/yungbote/talent-analytics-backend/internal/clients/gemini"
	"github.com/yungbote/talent-analytics-backend/internal/clients/mlservice"
	"github.com/yungbote/talent-analytics-backend/internal/clients/openai"
	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type Clients struct {
	Generator services.Generator
	Embedder  services.Embedder
	Oracle    services.ProbabilityOracle
	EventBus  redis.EventBus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	switch cfg.AIProvider {
	case ProviderOpenAI:
		c := openai.NewClient(log, cfg.OpenAI)
		out.Generator, out.Embedder = c, c
	default:
		c := gemini.NewClient(log, cfg.Gemini)
		out.Generator, out.Embedder = c, c
	}
	out.Oracle = mlservice.NewClient(log, cfg.MLService)

	// Redis
	if cfg.Redis.Addr != "" {
		bus, err := redis.NewEventBus(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
		out.EventBus = bus
	}
	return out, nil
}

func (c Clients) Close() {
	if c.EventBus != nil {
		_ = c.EventBus.Close()
	}
}
