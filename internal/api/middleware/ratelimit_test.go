package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	handler := rl.Middleware()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ingest/v1/tickets", nil)
		req.RemoteAddr = "203.0.113.7:4411"
		handler(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("request %d within burst should pass, got %d", i+1, recorder.Code)
		}
	}
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(0.01, 1)
	handler := rl.Middleware()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ingest/v1/tickets", nil)
	req.RemoteAddr = "203.0.113.8:4411"
	handler(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/ingest/v1/tickets", nil)
	req.RemoteAddr = "203.0.113.8:4411"
	handler(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", second.Code)
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter(0.01, 1)
	handler := rl.Middleware()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	burn := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "203.0.113.9:1000"
	handler(burn, req)

	other := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "203.0.113.10:1000"
	handler(other, req)

	if other.Code != http.StatusOK {
		t.Fatalf("a different client should have its own bucket, got %d", other.Code)
	}
}
