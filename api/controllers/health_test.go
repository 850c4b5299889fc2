package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jordanveras/threadline-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func healthConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive(healthConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-Threadline-Env") != "test" {
		t.Fatalf("expected env header to be set")
	}
}

func TestHealthReady(t *testing.T) {
	pingers := map[string]Pinger{"database": stubPinger{}}
	rec := httptest.NewRecorder()
	HealthReady(healthConfig(), nil, pingers).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestHealthReadyFailsWhenDependencyDown(t *testing.T) {
	pingers := map[string]Pinger{
		"database": stubPinger{},
		"redis":    stubPinger{err: errors.New("connection refused")},
	}
	rec := httptest.NewRecorder()
	HealthReady(healthConfig(), nil, pingers).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
