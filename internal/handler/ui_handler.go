package handler

import (
	"log/slog"
	"net/http"

	"go-log-viewer/internal/ui"
)

// UIHandler serves the viewer page for the mount root and for file deep links.
type UIHandler struct {
	page *ui.Page
}

func NewUIHandler(page *ui.Page) *UIHandler {
	return &UIHandler{page: page}
}

func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Render(w); err != nil {
		slog.ErrorContext(r.Context(), "render viewer page failed", "error", err)
		http.Error(w, "Unable to render log viewer", http.StatusInternalServerError)
	}
}
