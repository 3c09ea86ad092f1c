package services

import (
	"context"
	"time"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
)

// Generator turns a system prompt and user input into free text.
// Implementations fail with an apierr.ErrUpstream chain and never retry.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userInput string) (string, error)
}

// Embedder maps text to a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ProbabilityOracle returns an attrition probability for one feature vector.
type ProbabilityOracle interface {
	PredictAttrition(ctx context.Context, f types.AttritionFeatures) (float64, error)
}

type clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
