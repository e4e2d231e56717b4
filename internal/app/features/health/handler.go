// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler answers liveness checks with a storage ping.
type Handler struct {
	Client *mongo.Client
	Log    *zap.Logger
}

// NewHandler constructs a Health handler bound to the mongo client.
func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

// ServeHealth pings storage and reports ok or unavailable.
//
// Route: GET /health
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		httpx.ServerError(w, h.Log, "health.ping", err)
		return
	}
	httpx.OK(w, map[string]string{"status": "ok"})
}
