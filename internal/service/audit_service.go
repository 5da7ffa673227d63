package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go-log-viewer/internal/model"
)

const (
	AuditActionClear  = "log.clear"
	AuditActionDelete = "log.delete"

	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
)

// AuditService appends one JSON line per mutation. A nil service or an empty
// path records nothing.
type AuditService struct {
	filePath string
	mu       sync.Mutex
}

func NewAuditService(filePath string) (*AuditService, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("prepare audit directory: %w", err)
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("initialize audit file: %w", err)
	}
	_ = f.Close()

	return &AuditService{filePath: filePath}, nil
}

type pathContainer interface {
	Contains(path string) (bool, error)
}

// NewConfinedAuditService is NewAuditService for a trail that must stay out of
// reach of clear and delete: a path inside root is rejected.
func NewConfinedAuditService(filePath string, root pathContainer) (*AuditService, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath != "" && root != nil {
		inside, err := root.Contains(filePath)
		if err != nil {
			return nil, fmt.Errorf("check audit path: %w", err)
		}
		if inside {
			return nil, fmt.Errorf("%w: AUDIT_LOG_FILE %q is inside LOG_DIR", model.ErrInvalidInput, filePath)
		}
	}

	return NewAuditService(filePath)
}

func (s *AuditService) Log(action string, actor model.AuditActor, status string, resource string, errText string) {
	if s == nil {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:      actor,
		Status:     status,
		Resource:   resource,
		Error:      errText,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("audit write failed", "path", s.filePath, "error", err)
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}
