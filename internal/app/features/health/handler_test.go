package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/pmhub/internal/app/features/health"
	"github.com/dalemusser/pmhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context, *readpref.ReadPref) error { return p.err }

type stubBreaker string

func (b stubBreaker) State() string { return string(b) }

type healthBody struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
	Breaker  string `json:"breaker"`
}

func TestServe_DatabaseConnected(t *testing.T) {
	handler := health.NewHandler(stubPinger{}, stubBreaker("closed"), zap.NewNop())

	rec := testutil.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/api/health", nil))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var body healthBody
	rec.DecodeJSON(t, &body)
	if body.Status != "OK" || body.Database != "connected" || body.Breaker != "closed" {
		t.Errorf("body = %+v", body)
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	handler := health.NewHandler(stubPinger{err: errors.New("server selection timeout 10.0.0.5")}, nil, zap.NewNop())

	rec := testutil.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/api/health", nil))

	rec.AssertStatus(t, http.StatusServiceUnavailable)
	var body healthBody
	rec.DecodeJSON(t, &body)
	if body.Status != "error" || body.Database != "disconnected" {
		t.Errorf("body = %+v", body)
	}
	if body.Breaker != "" {
		t.Error("no breaker configured, expected no breaker state")
	}
}

func TestServe_RealMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), nil, zap.NewNop())

	rec := testutil.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/api/health", nil))
	rec.AssertStatus(t, http.StatusOK)
}
