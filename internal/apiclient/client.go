package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"tinytales/storefront/internal/config"
)

var (
	ErrBaseURLUnset      = errors.New("apiclient: backend base url is not configured (set backend.baseurl)")
	ErrMalformedEnvelope = errors.New("apiclient: response is not a json envelope")
)

// Client performs single-shot calls against the Tinytales backend. It never
// interprets the envelope; HTTP error statuses come back as envelopes too.
type Client struct {
	http    *resty.Client
	baseURL string
	log     zerolog.Logger
}

func New(cfg config.BackendConfig, log zerolog.Logger) *Client {
	logger := log.With().Str("component", "apiclient").Logger()

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{log: logger}).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		log:     logger,
	}
}

// Post sends fields as multipart/form-data. A non-empty token is sent as a
// bearer Authorization header.
func (c *Client) Post(ctx context.Context, path string, fields map[string]string, token string) (Envelope, error) {
	req, err := c.request(ctx, token)
	if err != nil {
		return Envelope{}, err
	}
	if len(fields) > 0 {
		req.SetMultipartFormData(fields)
	}

	resp, err := req.Post(c.baseURL + path)
	return c.decode(http.MethodPost, path, resp, err)
}

func (c *Client) Get(ctx context.Context, path string, token string) (Envelope, error) {
	req, err := c.request(ctx, token)
	if err != nil {
		return Envelope{}, err
	}

	resp, err := req.Get(c.baseURL + path)
	return c.decode(http.MethodGet, path, resp, err)
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) request(ctx context.Context, token string) (*resty.Request, error) {
	if c.baseURL == "" {
		return nil, ErrBaseURLUnset
	}

	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req, nil
}

func (c *Client) decode(method, path string, resp *resty.Response, err error) (Envelope, error) {
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return Envelope{}, fmt.Errorf("%s %s (http %d): %w: %v", method, path, resp.StatusCode(), ErrMalformedEnvelope, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("http_status", resp.StatusCode()).
		Bool("status", env.Status).
		Dur("latency", resp.Time()).
		Msg("backend call")

	return env, nil
}

type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{}) { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
