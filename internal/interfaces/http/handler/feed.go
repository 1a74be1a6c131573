package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/localmarket/backend/internal/domain/shared"
	"github.com/localmarket/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const defaultFeedHeartbeat = 30 * time.Second

// FeedHandler streams the caller's realtime feed as server-sent events
type FeedHandler struct {
	BaseHandler
	feed      shared.FeedSubscriber
	heartbeat time.Duration
}

// FeedHandlerOption configures a FeedHandler
type FeedHandlerOption func(*FeedHandler)

// WithFeedHeartbeat sets the keep-alive comment interval
func WithFeedHeartbeat(interval time.Duration) FeedHandlerOption {
	return func(h *FeedHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed shared.FeedSubscriber, opts ...FeedHandlerOption) *FeedHandler {
	h := &FeedHandler{feed: feed, heartbeat: defaultFeedHeartbeat}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Stream GET /feed
//
// Each feed message becomes one event named after its kind with the
// payload as data. The stream ends when the client goes away or the
// subscription closes.
func (h *FeedHandler) Stream(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	log := logger.GetGinLogger(c)
	ctx := c.Request.Context()

	sub, err := h.feed.Subscribe(ctx, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer func() {
		if err := sub.Close(); err != nil {
			log.Warn("failed to close feed subscription", zap.Error(err))
		}
	}()

	// The server write timeout would cut long-lived streams.
	rc := http.NewResponseController(c.Writer)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("cannot clear write deadline for feed stream", zap.Error(err))
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	writeEvent(c.Writer, "connected", []byte(fmt.Sprintf(`{"user_id":%q}`, userID.String())))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("feed client disconnected")
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()
		case msg, ok := <-sub.C():
			if !ok {
				return
			}
			writeEvent(c.Writer, string(msg.Kind), msg.Payload)
			c.Writer.Flush()
		}
	}
}

func writeEvent(w io.Writer, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
