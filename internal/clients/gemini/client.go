package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/envutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultModel      = "gemini-2.5-flash"
	DefaultEmbedModel = "gemini-embedding-001"

	serviceName = "gemini"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	Timeout    time.Duration
}

// ConfigFromEnv reads GEMINI_* variables. A missing key is allowed; calls then fail upstream.
func ConfigFromEnv() Config {
	return Config{
		APIKey:     envutil.String("GEMINI_API_KEY", ""),
		BaseURL:    envutil.String("GEMINI_BASE_URL", DefaultBaseURL),
		Model:      envutil.String("GEMINI_MODEL", DefaultModel),
		EmbedModel: envutil.String("GEMINI_EMBED_MODEL", DefaultEmbedModel),
		Timeout:    envutil.Seconds("GEMINI_TIMEOUT_SECONDS", 60*time.Second),
	}
}

// Client talks to the Gemini generateContent and embedContent endpoints. It never retries.
type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	embedModel string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		log:        log.With("client", "GeminiClient"),
		baseURL:    base,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      normalizeModel(cfg.Model, DefaultModel),
		embedModel: normalizeModel(cfg.EmbedModel, DefaultEmbedModel),
		httpClient: &http.Client{Timeout: timeout},
	}
	if c.apiKey == "" {
		c.log.Warn("GEMINI_API_KEY not set; generator and embedder calls will fail")
	}
	return c
}

// normalizeModel strips a leading "models/" so both "gemini-x" and "models/gemini-x" work.
func normalizeModel(raw, def string) string {
	m := strings.TrimSpace(raw)
	lower := strings.ToLower(m)
	if strings.HasPrefix(lower, "models/") {
		m = m[len("models/"):]
	} else if strings.HasPrefix(lower, "models") {
		m = m[len("models"):]
	}
	if m == "" {
		return def
	}
	return m
}

func (c *Client) Model() string { return c.model }

type geminiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *geminiHTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type embedRequest struct {
	Content content `json:"content"`
}

type embedResponse struct {
	Embedding *struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

// Generate sends one user turn with an optional system instruction and returns the first
// candidate's text.
func (c *Client) Generate(ctx context.Context, systemPrompt, userInput string) (text string, err error) {
	start := time.Now()
	defer func() {
		observability.Current().ObserveExternal(serviceName, "generate", err, time.Since(start))
	}()
	if c.apiKey == "" {
		return "", apierr.Upstream(nil, "GEMINI_API_KEY not set")
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: userInput}}}},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}

	var resp generateResponse
	if err := c.post(ctx, c.model+":generateContent", req, &resp); err != nil {
		return "", apierr.Upstream(err, "gemini generate")
	}
	for _, cand := range resp.Candidates {
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if out := sb.String(); strings.TrimSpace(out) != "" {
			return out, nil
		}
	}
	return "", apierr.Upstream(nil, "gemini generate: empty response")
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() {
		observability.Current().ObserveExternal(serviceName, "embed", err, time.Since(start))
	}()
	if c.apiKey == "" {
		return nil, apierr.Upstream(nil, "GEMINI_API_KEY not set")
	}

	req := embedRequest{Content: content{Parts: []part{{Text: text}}}}
	var resp embedResponse
	if err := c.post(ctx, c.embedModel+":embedContent", req, &resp); err != nil {
		return nil, apierr.Upstream(err, "gemini embed")
	}
	switch {
	case resp.Embedding != nil && len(resp.Embedding.Values) > 0:
		return resp.Embedding.Values, nil
	case len(resp.Embeddings) > 0 && len(resp.Embeddings[0].Values) > 0:
		return resp.Embeddings[0].Values, nil
	default:
		return nil, apierr.Upstream(nil, "invalid embedding response from gemini")
	}
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/%s?key=%s", c.baseURL, path, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &geminiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gemini decode error: %w", err)
	}
	return nil
}
