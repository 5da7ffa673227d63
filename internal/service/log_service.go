package service

import (
	"context"
	"log/slog"

	"go-log-viewer/internal/logentry"
	"go-log-viewer/internal/model"
	"go-log-viewer/internal/storage"
)

// LogStore is the filesystem surface the log service needs. *storage.Storage
// satisfies it.
type LogStore interface {
	Resolve(clientPath string) (string, error)
	List() ([]model.FileRecord, error)
	ReadTail(resolvedPath string, maxBytes int64) ([]string, error)
	Clear(clientPath string) error
	Delete(clientPath string) error
}

// TailWindow sizes the byte window read from the end of a file.
type TailWindow struct {
	AverageLineBytes int64
	FloorBytes       int64
}

func DefaultTailWindow() TailWindow {
	return TailWindow{
		AverageLineBytes: storage.DefaultAverageLineBytes,
		FloorBytes:       storage.DefaultFloorBytes,
	}
}

type LogService struct {
	store   LogStore
	matcher logentry.EntryMatcher
	window  TailWindow
	audit   *AuditService
}

func NewLogService(store LogStore, matcher logentry.EntryMatcher, window TailWindow, audit *AuditService) *LogService {
	if matcher == nil {
		matcher = logentry.HeuristicMatcher{}
	}
	if window.AverageLineBytes <= 0 {
		window.AverageLineBytes = storage.DefaultAverageLineBytes
	}
	if window.FloorBytes <= 0 {
		window.FloorBytes = storage.DefaultFloorBytes
	}

	return &LogService{store: store, matcher: matcher, window: window, audit: audit}
}

func (s *LogService) ListFiles(_ context.Context) ([]model.FileRecord, error) {
	files, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []model.FileRecord{}
	}

	return files, nil
}

// Read never fails: invalid references and read errors are reported inside
// the result. Lines <= 0 returns every entry on a single page.
func (s *LogService) Read(ctx context.Context, query model.ContentQuery) model.ReadResult {
	resolved, err := s.store.Resolve(query.File)
	if err != nil {
		return model.ReadResult{
			Lines:      []string{},
			Page:       1,
			TotalPages: 1,
			Error:      model.InvalidFileMessage,
		}
	}

	page := query.Page
	if page < 1 {
		page = 1
	}

	maxBytes := storage.ReadWindow(page, query.Lines, s.window.AverageLineBytes, s.window.FloorBytes)
	lines, err := s.store.ReadTail(resolved, maxBytes)
	if err != nil {
		message := "Error reading log file: " + err.Error()
		slog.WarnContext(ctx, "log read failed", "file", query.File, "error", err)
		return model.ReadResult{
			Lines:      []string{message},
			Page:       1,
			TotalPages: 1,
			Error:      message,
		}
	}

	entries := logentry.Group(lines, s.matcher)
	entries = logentry.Filter(entries, query.Level, query.Search)
	result := logentry.Paginate(entries, query.Lines, page)

	out := result.Entries
	if out == nil {
		out = []string{}
	}

	return model.ReadResult{
		Lines:      out,
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	}
}

func (s *LogService) Clear(ctx context.Context, file string, actor model.AuditActor) error {
	return s.mutate(ctx, AuditActionClear, file, actor, s.store.Clear)
}

func (s *LogService) Delete(ctx context.Context, file string, actor model.AuditActor) error {
	return s.mutate(ctx, AuditActionDelete, file, actor, s.store.Delete)
}

func (s *LogService) mutate(ctx context.Context, action string, file string, actor model.AuditActor, apply func(string) error) error {
	if err := apply(file); err != nil {
		s.audit.Log(action, actor, AuditStatusFailed, file, err.Error())
		slog.WarnContext(ctx, "log mutation failed", "action", action, "file", file, "user", actor.Username, "error", err)
		return err
	}

	s.audit.Log(action, actor, AuditStatusSuccess, file, "")
	slog.InfoContext(ctx, "log mutation applied", "action", action, "file", file, "user", actor.Username)
	return nil
}
