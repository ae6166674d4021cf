package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ResolveStatus tags the outcome of a geocoding call so callers can tell
// "no such place" apart from "service down".
type ResolveStatus string

const (
	StatusFound       ResolveStatus = "found"
	StatusNotFound    ResolveStatus = "not_found"
	StatusUnavailable ResolveStatus = "unavailable"
)

// Candidate is one geocoded location candidate
type Candidate struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Result is the tagged outcome of a forward-geocoding call
type Result struct {
	Status     ResolveStatus
	Candidates []Candidate
}

// Geocoder resolves free-text place names to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) Result
	Resolve(ctx context.Context, place string) (Candidate, ResolveStatus)
}

// NominatimClient is a Geocoder backed by a Nominatim-compatible search
// endpoint. Resolved places are cached in Redis when a client is provided;
// cache failures fall through to a live lookup.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *logrus.Entry
}

// NewNominatimClient creates a geocoder client. redisClient may be nil.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, redisClient *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    redisClient,
		cacheTTL: cacheTTL,
		logger:   logger.WithField("component", "geo.nominatim"),
	}
}

// nominatimPlace mirrors the wire format; lat/lon come back as strings
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode performs a forward-geocoding search. Network, decode, and non-200
// failures map to StatusUnavailable; an empty result set to StatusNotFound.
func (c *NominatimClient) Geocode(ctx context.Context, query string, limit int) Result {
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to build geocoding request")
		return Result{Status: StatusUnavailable}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("query", query).Warn("Geocoding request failed")
		return Result{Status: StatusUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{"query": query, "status": resp.StatusCode}).Warn("Geocoder returned non-OK status")
		return Result{Status: StatusUnavailable}
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.logger.WithError(err).Warn("Failed to decode geocoder response")
		return Result{Status: StatusUnavailable}
	}

	if len(places) == 0 {
		return Result{Status: StatusNotFound}
	}

	candidates := make([]Candidate, 0, len(places))
	for _, p := range places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lon, lonErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		candidates = append(candidates, Candidate{
			DisplayName: p.DisplayName,
			Lat:         lat,
			Lon:         lon,
		})
	}
	if len(candidates) == 0 {
		return Result{Status: StatusNotFound}
	}

	return Result{Status: StatusFound, Candidates: candidates}
}

// Resolve returns the single best candidate for a place name, consulting
// the cache first. Only Found outcomes are cached.
func (c *NominatimClient) Resolve(ctx context.Context, place string) (Candidate, ResolveStatus) {
	key := cacheKey(place)

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Bytes(); err == nil {
			var candidate Candidate
			if err := json.Unmarshal(cached, &candidate); err == nil {
				return candidate, StatusFound
			}
		}
	}

	result := c.Geocode(ctx, place, 1)
	if result.Status != StatusFound {
		return Candidate{}, result.Status
	}

	best := result.Candidates[0]
	if c.cache != nil {
		if payload, err := json.Marshal(best); err == nil {
			if err := c.cache.Set(ctx, key, payload, c.cacheTTL).Err(); err != nil {
				c.logger.WithError(err).Debug("Failed to cache geocoded place")
			}
		}
	}

	return best, StatusFound
}

func cacheKey(place string) string {
	return "geo:place:" + strings.ToLower(strings.TrimSpace(place))
}
