package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*NominatimClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := NewNominatimClient(server.URL, "freight-quote-service-test/1.0", 2*time.Second, nil, time.Minute, logger)
	return client, server
}

func TestGeocode_Found(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "singapore port" {
			t.Fatalf("unexpected query: %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Fatalf("unexpected limit: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"display_name": "Port of Singapore, Singapore", "lat": "1.264", "lon": "103.840"},
			{"display_name": "Jurong Port, Singapore", "lat": "1.310", "lon": "103.710"}
		]`))
	})

	result := client.Geocode(context.Background(), "singapore port", 5)
	if result.Status != StatusFound {
		t.Fatalf("expected StatusFound, got %v", result.Status)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(result.Candidates))
	}
	first := result.Candidates[0]
	if first.DisplayName != "Port of Singapore, Singapore" || first.Lat != 1.264 || first.Lon != 103.840 {
		t.Fatalf("unexpected candidate: %+v", first)
	}
}

func TestGeocode_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	result := client.Geocode(context.Background(), "xyzzy", 1)
	if result.Status != StatusNotFound {
		t.Fatalf("expected StatusNotFound, got %v", result.Status)
	}
}

func TestGeocode_ServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	result := client.Geocode(context.Background(), "singapore", 1)
	if result.Status != StatusUnavailable {
		t.Fatalf("expected StatusUnavailable, got %v", result.Status)
	}
}

func TestGeocode_MalformedBodyIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	result := client.Geocode(context.Background(), "singapore", 1)
	if result.Status != StatusUnavailable {
		t.Fatalf("expected StatusUnavailable, got %v", result.Status)
	}
}

func TestResolve_ReturnsBestMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"display_name": "Phnom Penh, Cambodia", "lat": "11.5564", "lon": "104.9282"}
		]`))
	})

	candidate, status := client.Resolve(context.Background(), "Phnom Penh")
	if status != StatusFound {
		t.Fatalf("expected StatusFound, got %v", status)
	}
	if candidate.Lat != 11.5564 || candidate.Lon != 104.9282 {
		t.Fatalf("unexpected candidate: %+v", candidate)
	}
}

func TestGeocode_SendsUserAgent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "freight-quote-service-test/1.0" {
			t.Fatalf("unexpected user agent: %q", got)
		}
		w.Write([]byte(`[]`))
	})

	client.Geocode(context.Background(), "anything", 1)
}
