package groq

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the Groq (OpenAI-compatible) client. Values come from the
// application config built at startup; the client never reads the process
// environment itself.
type Config struct {
	APIKey      string
	BaseURL     string        // default https://api.groq.com/openai/v1
	VisionModel string        // multimodal model used for receipt extraction
	TextModel   string        // cheaper text-only model used for classification
	Temperature float32       // low and fixed: the parser assumes near-deterministic output
	Timeout     time.Duration // bounds each request; no automatic retry on expiry
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = "meta-llama/llama-4-scout-17b-16e-instruct"
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "llama-3.1-8b-instant"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// VisionModel reports the active multimodal model identifier.
func (c *Client) VisionModel() string { return c.cfg.VisionModel }

// TextModel reports the active text-only model identifier.
func (c *Client) TextModel() string { return c.cfg.TextModel }

// Configured reports whether a provider credential is present.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }
