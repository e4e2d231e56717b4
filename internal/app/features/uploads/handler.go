// internal/app/features/uploads/handler.go
package uploads

import (
	"context"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/blobrelay"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Uploads.
type Handler struct {
	Relay blobrelay.Relay
	Log   *zap.Logger
}

// NewHandler constructs an Uploads handler bound to a blob relay.
func NewHandler(relay blobrelay.Relay, logger *zap.Logger) *Handler {
	return &Handler{Relay: relay, Log: logger}
}

// maxUploadSize bounds multipart image uploads.
const maxUploadSize = 10 << 20 // 10 MB

// HandleImage accepts a multipart image (field name "image"), stores
// it through the blob relay, and returns the public URL.
//
// Route: POST /api/uploads/image
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.BadRequest(w, "invalid multipart body or file too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.BadRequest(w, `missing "image" file field`)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		httpx.BadRequest(w, "unsupported image type "+contentType)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	url, err := h.Relay.Put(ctx, header.Filename, contentType, file)
	if err != nil {
		httpx.ServerError(w, h.Log, "uploads.image", err)
		return
	}
	httpx.Created(w, map[string]string{"url": url})
}
