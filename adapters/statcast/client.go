package statcast

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"recentstats/internal"
	"recentstats/internal/errors"
)

const defaultBaseURL = "https://baseballsavant.mlb.com/statcast_search/csv"

// Client downloads pitch-level Statcast CSV exports month by month and
// assembles them into a single local cache file.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *internal.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a download client with production defaults.
func NewClient(logger *internal.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    defaultBaseURL,
		logger:     logger,
		maxRetries: 3,
		retryDelay: 5 * time.Second,
	}
}

// FetchSeasons downloads March through October for every season in
// [startYear, endYear] and appends the rows to outPath, writing the CSV
// header exactly once. The download is skipped entirely when outPath already
// exists. A month that keeps failing after retries is logged and skipped;
// fetching nothing at all is fatal.
func (c *Client) FetchSeasons(ctx context.Context, startYear, endYear int, outPath string) error {
	if _, err := os.Stat(outPath); err == nil {
		c.logger.Info("dataset %s already exists, skipping download", outPath)
		return nil
	}

	// Assemble under a partial name so an aborted run is never mistaken for
	// a complete cache.
	partial := outPath + ".partial"
	f, err := os.Create(partial)
	if err != nil {
		return errors.Wrapf(err, "creating %s", partial)
	}
	defer f.Close()

	headerWritten := false
	totalRows := 0
	for year := startYear; year <= endYear; year++ {
		for month := 3; month <= 10; month++ {
			start := fmt.Sprintf("%d-%02d-01", year, month)
			end := fmt.Sprintf("%d-%02d-28", year, month) // safe month end

			rows, err := c.fetchRange(ctx, f, start, end, &headerWritten)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Warn("giving up on %s to %s after %d attempts: %v", start, end, c.maxRetries, err)
				continue
			}
			totalRows += rows
			c.logger.Info("fetched %d rows for %s to %s", rows, start, end)
		}
	}

	if totalRows == 0 {
		_ = f.Close()
		_ = os.Remove(partial)
		return errors.FetchFailed("no data was fetched", nil)
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "flushing %s", partial)
	}
	if err := os.Rename(partial, outPath); err != nil {
		return errors.Wrapf(err, "renaming %s", partial)
	}
	c.logger.Info("dataset saved to %s (%d rows)", outPath, totalRows)
	return nil
}

func (c *Client) fetchRange(ctx context.Context, f *os.File, start, end string, headerWritten *bool) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		rows, err := c.fetchOnce(ctx, f, start, end, headerWritten)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		c.logger.Warn("fetch %s to %s attempt %d failed: %v", start, end, attempt, err)

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return 0, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, f *os.File, start, end string, headerWritten *bool) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rangeURL(start, end), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	// Stage the chunk in memory and append only after the body was read in
	// full, so a retried request never leaves duplicate rows behind.
	var buf bytes.Buffer
	rows := 0
	first := true
	wroteHeader := false
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if !*headerWritten {
				buf.WriteString(line + "\n")
				wroteHeader = true
			}
			continue
		}
		if line == "" {
			continue
		}
		buf.WriteString(line + "\n")
		rows++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	if wroteHeader {
		*headerWritten = true
	}
	return rows, nil
}

func (c *Client) rangeURL(start, end string) string {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", "batter")
	q.Set("game_date_gt", start)
	q.Set("game_date_lt", end)
	return c.baseURL + "?" + q.Encode()
}
