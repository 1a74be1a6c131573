package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping() error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantBody   HealthResponse
	}{
		{"healthy", fakePinger{}, http.StatusOK, HealthResponse{Status: "ok", Database: "up"}},
		{"database down", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable,
			HealthResponse{Status: "degraded", Database: "down"}},
		{"no database", nil, http.StatusOK, HealthResponse{Status: "ok", Database: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthHandler(tt.db).Health)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody.Status, body.Status)
			assert.Equal(t, tt.wantBody.Database, body.Database)
			assert.NotEmpty(t, body.Uptime)
		})
	}
}
