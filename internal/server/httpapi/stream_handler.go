package httpapi

import (
	"io"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/store"
)

// StreamHandler pushes provider snapshots over SSE. Every subscriber gets
// the current snapshot on connect and a fresh one after each change, so a
// client never needs to poll after a mutation.
type StreamHandler struct {
	log    logging.Logger
	mirror *store.Mirror
}

func NewStreamHandler(log logging.Logger, mirror *store.Mirror) *StreamHandler {
	return &StreamHandler{log: log.With("handler", "stream"), mirror: mirror}
}

// Snapshots handles GET /api/providers/stream.
func (h *StreamHandler) Snapshots(c *gin.Context) {
	ch, cancel := h.mirror.Subscribe()
	defer cancel()

	ctx := c.Request.Context()
	h.log.Debug(ctx, "snapshot stream opened", "remote", c.ClientIP())

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-ctx.Done():
			return false
		}
	})
	h.log.Debug(ctx, "snapshot stream closed", "remote", c.ClientIP())
}
