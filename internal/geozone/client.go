// Package geozone resolves coordinates to IANA timezone names via an
// external lookup service. Results are cached in Redis; every failure is
// returned as an error and absorbed by callers, which fall back to UTC.
package geozone

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/wayfarer-app/wayfarer-backend/config"
	"github.com/wayfarer-app/wayfarer-backend/utils"
)

const cacheTTL = 30 * 24 * time.Hour

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.ZoneLookupURL,
		apiKey:  cfg.ZoneLookupKey,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type lookupResponse struct {
	ZoneName string `json:"zoneName"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// Lookup returns the IANA zone name for a coordinate pair.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("zone lookup not configured")
	}

	// Two-decimal rounding keeps the cache key stable across the tiny
	// jitter different geocoders produce for the same place (~1km).
	key := fmt.Sprintf("zone_lookup:%.2f:%.2f", lat, lng)
	if zone, err := utils.CacheGet(ctx, key); err == nil && zone != "" {
		return zone, nil
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("format", "json")
	q.Set("by", "position")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lng", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("zone lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zone lookup returned %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("zone lookup decode failed: %w", err)
	}
	if body.Status != "" && body.Status != "OK" {
		return "", fmt.Errorf("zone lookup rejected: %s", body.Message)
	}
	if body.ZoneName == "" {
		return "", fmt.Errorf("zone lookup returned no zone")
	}

	if err := utils.CacheSet(ctx, key, body.ZoneName, cacheTTL); err != nil {
		log.Printf("⚠️ zone cache write failed: %v", err)
	}
	return body.ZoneName, nil
}
