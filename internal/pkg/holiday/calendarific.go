package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/config"
	"github.com/leaveease/leaveease-backend-go/internal/domain/holiday"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/validator"
)

// Client fetches public holidays from the Calendarific API.
//
// Results are immutable calendar-year snapshots, cached in memory per
// (country, year). A fetch failure is always surfaced as
// holiday.ErrUpstreamUnavailable and never downgraded to an empty set.
type Client struct {
	cfg        config.HolidayConfig
	httpClient *http.Client

	mu    sync.RWMutex
	cache map[string]holiday.Set
}

func NewClient(cfg config.HolidayConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: make(map[string]holiday.Set),
	}
}

type calendarificResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
			Date struct {
				ISO string `json:"iso"`
			} `json:"date"`
		} `json:"holidays"`
	} `json:"response"`
}

func (c *Client) Fetch(ctx context.Context, country string, year int) (holiday.Set, error) {
	if !validator.IsValidCountryCode(country) {
		return nil, fmt.Errorf("%w: %q", holiday.ErrInvalidCountryCode, country)
	}

	key := fmt.Sprintf("%s-%d", country, year)

	c.mu.RLock()
	if cached, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	set, err := c.fetchRemote(ctx, country, year)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = set
	c.mu.Unlock()

	return set, nil
}

func (c *Client) fetchRemote(ctx context.Context, country string, year int) (holiday.Set, error) {
	endpoint := fmt.Sprintf("%s/holidays?api_key=%s&country=%s&year=%d",
		c.cfg.BaseURL, url.QueryEscape(c.cfg.APIKey), url.QueryEscape(country), year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Holiday API request failed", "country", country, "year", year, "error", err)
		return nil, fmt.Errorf("%w: %v", holiday.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Holiday API returned non-200", "country", country, "year", year, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", holiday.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload calendarificResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", holiday.ErrUpstreamUnavailable, err)
	}

	set := make(holiday.Set, len(payload.Response.Holidays))
	for _, h := range payload.Response.Holidays {
		iso := h.Date.ISO
		// Some entries carry a full timestamp; the date is the first 10 chars.
		if len(iso) > 10 {
			iso = iso[:10]
		}
		date, err := time.Parse("2006-01-02", iso)
		if err != nil {
			slog.Warn("Skipping holiday with unparseable date", "iso", h.Date.ISO, "name", h.Name)
			continue
		}
		set.Add(date)
	}

	return set, nil
}
