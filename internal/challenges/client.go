// Package challenges downloads published challenge data files.
package challenges

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/logging"
	"github.com/RowanDark/cryptokit/internal/observability/metrics"
)

// DefaultBaseURL hosts the challenge data files as <id>.txt.
const DefaultBaseURL = "https://cryptopals.com/static/challenge-data"

var (
	// ErrNotFound is returned when the server has no file for the id.
	ErrNotFound = errors.New("challenge data not found")
	// ErrRequest covers every other failed download.
	ErrRequest = errors.New("challenge data request failed")
)

// Client fetches challenge data. The zero value is usable.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Logger     *slog.Logger
	Audit      *logging.AuditLogger
}

// Fetch downloads the text of challenge id. Results are not cached and
// failed requests are not retried.
func (c *Client) Fetch(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: invalid challenge id %d", ErrRequest, id)
	}
	target, err := c.urlFor(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}

	start := time.Now()
	body, status, err := c.download(ctx, target)
	metrics.RecordFetch(status, time.Since(start))
	c.logger().Debug("fetched challenge data", "id", id, "status", status, "took", time.Since(start))
	c.emit(id, status, err)
	if err != nil {
		return "", err
	}
	return body, nil
}

// FetchBase64 fetches a base64 file, joining its lines before decoding.
func (c *Client) FetchBase64(ctx context.Context, id int) (bindata.Data, error) {
	text, err := c.Fetch(ctx, id)
	if err != nil {
		return bindata.Data{}, err
	}
	return bindata.FromBase64(strings.Join(strings.Fields(text), ""))
}

// FetchHexLines fetches a file of hex strings, one buffer per non-empty
// line.
func (c *Client) FetchHexLines(ctx context.Context, id int) ([]bindata.Data, error) {
	text, err := c.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	var out []bindata.Data
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := bindata.FromHex(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *Client) urlFor(id int) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	u.Path = path.Join(u.Path, strconv.Itoa(id)+".txt")
	return u.String(), nil
}

func (c *Client) download(ctx context.Context, target string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, fmt.Errorf("%w: construct request: %w", ErrRequest, err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("cryptokit (%s/%s)", runtime.GOOS, runtime.GOARCH))
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: download %s: %w", ErrRequest, target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", resp.StatusCode, fmt.Errorf("%w: %s", ErrNotFound, target)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return "", resp.StatusCode, fmt.Errorf("%w: download %s: unexpected status %d: %s", ErrRequest, target, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("%w: read %s: %w", ErrRequest, target, err)
	}
	return string(data), resp.StatusCode, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Client) emit(id, status int, err error) {
	if c.Audit == nil {
		return
	}
	event := logging.AuditEvent{
		EventType: logging.EventFetch,
		Outcome:   logging.OutcomeSuccess,
		Metadata:  map[string]any{"id": id, "status": status},
	}
	if err != nil {
		event.Outcome = logging.OutcomeFailure
		event.Reason = err.Error()
	}
	if emitErr := c.Audit.Emit(event); emitErr != nil {
		c.logger().Warn("audit emit failed", "error", emitErr)
	}
}
