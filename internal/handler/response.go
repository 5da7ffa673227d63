package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-log-viewer/internal/model"
	"go-log-viewer/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := ErrorResponse(err)
	writeJSON(w, status, body)
}

// ErrorResponse maps an error to the status code and failure body shared by
// every transport.
func ErrorResponse(err error) (int, model.APIResponse) {
	status := http.StatusInternalServerError
	message := "Unexpected server error"

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		message = apiErr.Message
	} else if errors.Is(err, model.ErrPathEscape) || errors.Is(err, model.ErrFileNotFound) {
		status = http.StatusNotFound
		message = model.InvalidFileMessage
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		message = "Authentication required"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		message = "Invalid input"
	} else if errors.Is(err, model.ErrMutationFailure) {
		message = "Unable to modify log file"
		slog.Error("log mutation failed", "error", err.Error())
	} else {
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	return status, model.APIResponse{Success: false, Error: message}
}
