package realtime

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// watchableTables lists the tables a client may subscribe to; one change
// channel per table, mirroring the persistence schema.
var watchableTables = map[string]bool{
	"users":       true,
	"vehicles":    true,
	"items":       true,
	"inventory":   true,
	"submissions": true,
	"requests":    true,
}

type EventsHandler struct {
	Hub *Hub
}

func NewEventsHandler(hub *Hub) *EventsHandler {
	return &EventsHandler{Hub: hub}
}

func (h *EventsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events/:table", h.StreamChanges)
}

// StreamChanges is the per-table change feed, served as Server-Sent Events.
// Each event only says which table changed; clients re-fetch their list. The
// subscription is released when the client goes away.
func (h *EventsHandler) StreamChanges(c *gin.Context) {
	table := c.Param("table")
	if !watchableTables[table] {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown table: " + table})
		return
	}

	events, cancel := h.Hub.Subscribe(table)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case _, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", gin.H{"table": table})
			return true
		}
	})
}
