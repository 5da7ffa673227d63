package handler

import (
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"go-log-viewer/internal/middleware"
	"go-log-viewer/internal/model"
	"go-log-viewer/internal/service"
)

const defaultFile = "app.log"

type LogHandler struct {
	service      *service.LogService
	defaultLines int
}

func NewLogHandler(service *service.LogService, defaultLines int) *LogHandler {
	return &LogHandler{service: service, defaultLines: defaultLines}
}

func (h *LogHandler) Files(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListFiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.FilesResponse{Files: files})
}

func (h *LogHandler) Content(w http.ResponseWriter, r *http.Request) {
	query := ParseContentQuery(r.URL.Query(), h.defaultLines)
	writeJSON(w, http.StatusOK, h.service.Read(r.Context(), query))
}

func (h *LogHandler) Clear(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.service.Clear(r.Context(), file, actor); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MutationSuccess(file, "cleared"))
}

func (h *LogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.service.Delete(r.Context(), file, actor); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MutationSuccess(file, "deleted"))
}

// ParseContentQuery reads file, lines, level, search and page. Missing or
// malformed numbers fall back to their defaults.
func ParseContentQuery(values url.Values, defaultLines int) model.ContentQuery {
	file := values.Get("file")
	if _, present := values["file"]; !present {
		file = defaultFile
	}

	return model.ContentQuery{
		File:   file,
		Lines:  parseIntOrDefault(values.Get("lines"), defaultLines),
		Level:  values.Get("level"),
		Search: values.Get("search"),
		Page:   parseIntOrDefault(values.Get("page"), 1),
	}
}

// MutationSuccess is the body for a successful clear or delete.
func MutationSuccess(file string, verb string) model.APIResponse {
	return model.APIResponse{Success: true, Message: baseName(file) + " " + verb}
}

func baseName(file string) string {
	return path.Base(strings.ReplaceAll(file, "\\", "/"))
}

func parseIntOrDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}

	return v
}
