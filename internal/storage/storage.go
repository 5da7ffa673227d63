package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go-log-viewer/internal/model"
)

// Storage is the filesystem side of the engine: listing, resolution, tail
// reads and mutations, all confined to one root. It holds no mutable state.
type Storage struct {
	validator *PathValidator
}

func New(root string) (*Storage, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	return &Storage{validator: validator}, nil
}

func (s *Storage) RootAbs() string {
	return s.validator.RootAbs()
}

// Contains reports whether path falls inside the log root.
func (s *Storage) Contains(path string) (bool, error) {
	return s.validator.Contains(path)
}

func (s *Storage) Resolve(clientPath string) (string, error) {
	return s.validator.ResolveFile(clientPath)
}

// List walks the root and returns every regular file sorted by relative name.
// A missing root, or one that is not a directory, yields an empty list.
func (s *Storage) List() ([]model.FileRecord, error) {
	root := s.validator.RootAbs()
	records := make([]model.FileRecord, 0)

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return nil, fmt.Errorf("stat log root: %w", err)
	}
	if !info.IsDir() {
		return records, nil
	}

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if entry != nil && entry.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		name := filepath.ToSlash(rel)

		var fileInfo fs.FileInfo
		var infoErr error
		switch {
		case entry.Type().IsRegular():
			fileInfo, infoErr = entry.Info()
		case entry.Type()&fs.ModeSymlink != 0:
			// Only links that stay inside the root and land on a file are listed.
			resolved, resolveErr := s.validator.ResolveFile(name)
			if resolveErr != nil {
				return nil
			}
			fileInfo, infoErr = os.Stat(resolved)
		default:
			return nil
		}
		if infoErr != nil {
			return nil
		}

		records = append(records, model.FileRecord{
			Name:     name,
			Size:     fileInfo.Size(),
			Modified: fileInfo.ModTime().UTC(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk log root: %w", walkErr)
	}

	sort.Slice(records, func(i int, j int) bool {
		return records[i].Name < records[j].Name
	})

	return records, nil
}

// ReadTail reads the trailing lines of an already resolved file.
func (s *Storage) ReadTail(resolvedPath string, maxBytes int64) ([]string, error) {
	return ReadTail(resolvedPath, maxBytes)
}

// Clear truncates a log file to zero bytes; the file keeps existing.
func (s *Storage) Clear(clientPath string) error {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return err
	}

	if err := os.Truncate(resolved, 0); err != nil {
		return fmt.Errorf("%w: clear %q: %w", model.ErrMutationFailure, clientPath, err)
	}

	return nil
}

// Delete removes a log file.
func (s *Storage) Delete(clientPath string) error {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil {
		return fmt.Errorf("%w: delete %q: %w", model.ErrMutationFailure, clientPath, err)
	}

	return nil
}
