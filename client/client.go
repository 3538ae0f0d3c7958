package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"measurement-generator/measurement"
	"measurement-generator/utils"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client writes batches to one database.
type Client struct {
	writeURL string
	queryURL string

	http       *http.Client
	gzip       bool
	logger     zerolog.Logger
	registerer prometheus.Registerer
	metrics    *Metrics
}

// New creates a Client for the server at baseURL writing into database.
func New(baseURL, database string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrURL, err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q needs a scheme and a host", ErrURL, baseURL)
	}

	if database == "" {
		return nil, fmt.Errorf("%w: empty database name", ErrURL)
	}

	if base.Path == "" {
		base.Path = "/"
	}

	write := base.JoinPath("write")
	write.RawQuery = url.Values{"db": {database}}.Encode()

	c := &Client{
		writeURL: write.String(),
		queryURL: base.JoinPath("query").String(),
		http:     http.DefaultClient,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.registerer != nil {
		c.metrics, err = newMetrics(c.registerer)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WriteURL is the endpoint batches are posted to.
func (c *Client) WriteURL() string {
	return c.writeURL
}

// QueryURL is the server's query endpoint. The client does not query.
func (c *Client) QueryURL() string {
	return c.queryURL
}

// Write serializes items, one line each, and posts them as one batch.
func (c *Client) Write(ctx context.Context, items ...any) error {
	if len(items) == 0 {
		return nil
	}

	body, err := measurement.AppendBatch(nil, items...)
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}

	return c.post(ctx, body, len(items))
}

// WriteLines posts already encoded lines as one batch.
func (c *Client) WriteLines(ctx context.Context, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	return c.post(ctx, []byte(strings.Join(lines, "\n")), len(lines))
}

func (c *Client) post(ctx context.Context, payload []byte, lines int) error {
	body := payload
	if c.gzip {
		var err error
		if body, err = compress(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.writeURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building write request: %w", err)
	}

	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if c.gzip {
		req.Header.Set("Content-Encoding", "gzip")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.failed(reasonTransport)
		c.logger.Error().Err(err).Str("url", c.writeURL).Msg("write request failed")

		return fmt.Errorf("posting batch: %w", err)
	}
	defer resp.Body.Close()

	if utils.IsInRange(200, resp.StatusCode, 299) {
		_, _ = io.Copy(io.Discard, resp.Body)

		c.metrics.written(lines, len(payload))
		c.logger.Debug().Int("lines", lines).Int("bytes", len(payload)).Int("status", resp.StatusCode).Msg("batch written")

		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		c.metrics.failed(reasonTransport)
		return fmt.Errorf("reading response (%d): %w", resp.StatusCode, err)
	}

	msg := responseMessage(raw)

	c.logger.Warn().Int("status", resp.StatusCode).Str("error", msg).Int("lines", lines).Msg("batch rejected")

	if utils.IsInRange(400, resp.StatusCode, 499) {
		c.metrics.failed(reasonBadRequest)
		return &BadRequestError{Status: resp.StatusCode, Body: msg}
	}

	c.metrics.failed(reasonServer)

	return &ServerError{Status: resp.StatusCode, Body: msg}
}

func compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("compressing batch: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing batch: %w", err)
	}

	return buf.Bytes(), nil
}
