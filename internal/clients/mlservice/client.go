package mlservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/envutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
)

const serviceName = "ml_service"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL: envutil.String("ML_SERVICE_URL", "http://localhost:8000"),
		Timeout: envutil.Seconds("ML_SERVICE_TIMEOUT_SECONDS", 15*time.Second),
	}
}

// Client asks the attrition model for a probability.
type Client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = "http://localhost:8000"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		log:        log.With("client", "MLServiceClient"),
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Employees []types.AttritionFeatures `json:"employees"`
}

type predictResponse struct {
	Probabilities []json.RawMessage `json:"probabilities"`
}

// PredictAttrition posts a single-employee batch and returns probabilities[0].
func (c *Client) PredictAttrition(ctx context.Context, f types.AttritionFeatures) (p float64, err error) {
	start := time.Now()
	defer func() {
		observability.Current().ObserveExternal(serviceName, "predict_attrition", err, time.Since(start))
	}()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(predictRequest{Employees: []types.AttritionFeatures{f}}); err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict/attrition", &buf)
	if err != nil {
		return 0, apierr.Upstream(err, "ml service")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apierr.Upstream(err, "ml service")
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, apierr.Upstream(err, "ml service")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, apierr.Upstream(nil, fmt.Sprintf("ml service error: %d %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var out predictResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, apierr.Upstream(err, "invalid ML response")
	}
	if len(out.Probabilities) == 0 {
		return 0, apierr.Upstream(nil, "invalid ML response")
	}
	var first *float64
	if err := json.Unmarshal(out.Probabilities[0], &first); err != nil || first == nil {
		return 0, apierr.Upstream(nil, "invalid ML response")
	}
	return *first, nil
}
