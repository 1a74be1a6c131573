package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHandler_Stream(t *testing.T) {
	app := newTestApp(t)
	server := httptest.NewServer(app.engine)
	t.Cleanup(server.Close)

	userID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/feed", nil)
	require.NoError(t, err)
	req.Header.Set(testUserHeader, userID.String())

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	next := func() string {
		t.Helper()
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			return line
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for feed event")
			return ""
		}
	}

	assert.Equal(t, "event: connected", next())
	assert.Contains(t, next(), userID.String())
	assert.Equal(t, "", next())

	require.Eventually(t, func() bool { return app.feed.Subscribers(userID) == 1 }, time.Second, 10*time.Millisecond)

	msg, err := shared.NewFeedMessage(userID, shared.FeedKindOrder, map[string]string{"status": "confirmed"})
	require.NoError(t, err)
	require.NoError(t, app.feed.Publish(context.Background(), msg))

	assert.Equal(t, "event: order", next())
	data := next()
	assert.True(t, strings.HasPrefix(data, "data: "))
	assert.Contains(t, data, `"status":"confirmed"`)

	cancel()
	assert.Eventually(t, func() bool { return app.feed.Subscribers(userID) == 0 }, time.Second, 10*time.Millisecond)
}

func TestFeedHandler_RequiresUser(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/feed", uuid.Nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
