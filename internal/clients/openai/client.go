package openai

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
)

const serviceName = "openai"

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	Timeout    time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:     envutil.String("OPENAI_API_KEY", ""),
		BaseURL:    envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		Model:      envutil.String("OPENAI_MODEL", "gpt-4.1-mini"),
		EmbedModel: envutil.String("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		Timeout:    envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 120*time.Second),
	}
}

// Client covers the Responses and Embeddings endpoints. One attempt per call.
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
		base = "https://api.openai.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	c := &Client{
		log:        log.With("client", "OpenAIClient"),
		baseURL:    base,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
		httpClient: &http.Client{Timeout: timeout},
	}
	if c.apiKey == "" {
		c.log.Warn("OPENAI_API_KEY not set; generator and embedder calls will fail")
	}
	return c
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model       string    `json:"model"`
	Input       []message `json:"input"`
	Temperature float64   `json:"temperature,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func extractOutputText(resp responsesResponse) string {
	var out strings.Builder
	for _, item := range resp.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && c.Text != "" {
					out.WriteString(c.Text)
				}
			}
		}
	}
	return out.String()
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userInput string) (text string, err error) {
	start := time.Now()
	defer func() {
		observability.Current().ObserveExternal(serviceName, "generate", err, time.Since(start))
	}()
	if c.apiKey == "" {
		return "", apierr.Upstream(nil, "OPENAI_API_KEY not set")
	}

	input := make([]message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		input = append(input, message{Role: "system", Content: systemPrompt})
	}
	input = append(input, message{Role: "user", Content: userInput})

	var resp responsesResponse
	if err := c.post(ctx, "/v1/responses", responsesRequest{Model: c.model, Input: input, Temperature: 0.2}, &resp); err != nil {
		return "", apierr.Upstream(err, "openai generate")
	}
	if resp.Refusal != "" {
		return "", apierr.Upstream(nil, "openai generate: model refused: "+resp.Refusal)
	}
	out := extractOutputText(resp)
	if strings.TrimSpace(out) == "" {
		return "", apierr.Upstream(nil, "openai generate: no output_text found in response")
	}
	return out, nil
}

func (c *Client) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() {
		observability.Current().ObserveExternal(serviceName, "embed", err, time.Since(start))
	}()
	if c.apiKey == "" {
		return nil, apierr.Upstream(nil, "OPENAI_API_KEY not set")
	}
	in := strings.TrimSpace(text)
	if in == "" {
		in = " "
	}
	var resp embeddingsResponse
	if err := c.post(ctx, "/v1/embeddings", embeddingsRequest{Model: c.embedModel, Input: []string{in}}, &resp); err != nil {
		return nil, apierr.Upstream(err, "openai embed")
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, apierr.Upstream(nil, "openai embed: empty embedding")
	}
	return resp.Data[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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
		return &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("openai decode error: %w", err)
	}
	return nil
}
