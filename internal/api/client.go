// Package api talks to the betting bot's HTTP service.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/logger"
	"github.com/birbbrains/arenaview/pkg/arena"
)

// ErrNotFound is returned when the service answers 404.
var ErrNotFound = errors.New("not found")

// maxBody caps a decoded response body.
const maxBody = 64 << 20

// Client fetches maps, team summaries and sprite assets.
type Client struct {
	baseURL   string
	assetPath string
	http      *http.Client
	log       *zap.Logger
}

// New creates a client for the service at baseURL. Sprites are fetched
// from assetPath on the same host.
func New(baseURL, assetPath string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, assetPath, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient is New with a caller-provided http.Client.
func NewWithHTTPClient(baseURL, assetPath string, hc *http.Client) *Client {
	if assetPath == "" {
		assetPath = "/"
	}
	if !strings.HasPrefix(assetPath, "/") {
		assetPath = "/" + assetPath
	}
	if !strings.HasSuffix(assetPath, "/") {
		assetPath += "/"
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		assetPath: assetPath,
		http:      hc,
		log:       logger.Named("api"),
	}
}

// Map fetches and validates /map/{id}.
func (c *Client) Map(ctx context.Context, id int) (*arena.Map, error) {
	body, err := c.get(ctx, "/map/"+strconv.Itoa(id))
	if err != nil {
		return nil, fmt.Errorf("map %d: %w", id, err)
	}
	m, err := arena.DecodeMap(body)
	if err != nil {
		return nil, fmt.Errorf("map %d: %w", id, err)
	}
	return m, nil
}

// TeamSummary fetches /team-summary.
func (c *Client) TeamSummary(ctx context.Context) (*arena.TeamSummary, error) {
	body, err := c.get(ctx, "/team-summary")
	if err != nil {
		return nil, fmt.Errorf("team summary: %w", err)
	}
	return arena.DecodeTeamSummary(body)
}

// Asset fetches a raw file from the asset path.
func (c *Client) Asset(ctx context.Context, name string) ([]byte, error) {
	body, err := c.get(ctx, c.assetPath+url.PathEscape(name))
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", name, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, image/gif, */*")
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	r, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	body, err := io.ReadAll(io.LimitReader(r, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.log.Debug("fetched",
		zap.String("path", path),
		zap.String("size", humanize.Bytes(uint64(len(body)))),
		zap.String("encoding", resp.Header.Get("Content-Encoding")),
		zap.Duration("took", time.Since(start)))
	return body, nil
}

// decodeBody unwraps the response body according to Content-Encoding.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gr, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}
