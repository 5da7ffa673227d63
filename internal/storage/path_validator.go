package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"go-log-viewer/internal/model"
	"go-log-viewer/pkg/apierror"
)

// PathValidator confines client file references to the log root.
type PathValidator struct {
	rootAbs string
}

func NewPathValidator(root string) (*PathValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve log root: %w", err)
	}

	// Fixed for the validator's lifetime, even if a symlinked root is repointed.
	return &PathValidator{rootAbs: canonicalPath(rootAbs)}, nil
}

func (v *PathValidator) RootAbs() string {
	return v.rootAbs
}

// ResolveFile returns the canonical absolute path of an existing regular file
// inside the root. Every failure is reported as INVALID_FILE; the wrapped cause
// is model.ErrPathEscape or model.ErrFileNotFound.
func (v *PathValidator) ResolveFile(clientPath string) (string, error) {
	cleanRel, err := cleanRelative(clientPath)
	if err != nil {
		return "", invalidFile(err)
	}

	root := v.rootAbs
	candidate := filepath.Join(root, filepath.FromSlash(cleanRel))

	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", invalidFile(model.ErrFileNotFound)
		}
		return "", invalidFile(fmt.Errorf("%w: %w", model.ErrFileNotFound, err))
	}

	if !isWithinRoot(root, resolved) {
		return "", invalidFile(model.ErrPathEscape)
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", invalidFile(model.ErrFileNotFound)
	}

	return resolved, nil
}

// Contains reports whether target, existing or not, lies inside the root once
// symlinks in its existing ancestors are resolved.
func (v *PathValidator) Contains(target string) (bool, error) {
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return false, fmt.Errorf("resolve path: %w", err)
	}

	return isWithinRoot(v.rootAbs, canonicalPath(targetAbs)), nil
}

// canonicalPath resolves symlinks in the longest existing prefix of an
// absolute path and re-appends the missing tail.
func canonicalPath(abs string) string {
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return abs
	}

	return filepath.Join(canonicalPath(parent), filepath.Base(abs))
}

// cleanRelative performs the syntactic stage: no filesystem access.
func cleanRelative(clientPath string) (string, error) {
	normalized := strings.ReplaceAll(clientPath, `\`, "/")
	if strings.TrimSpace(normalized) == "" {
		return "", model.ErrFileNotFound
	}

	if hasControlCharacters(normalized) {
		return "", model.ErrPathEscape
	}

	if strings.HasPrefix(normalized, "/") || filepath.IsAbs(clientPath) || filepath.VolumeName(clientPath) != "" {
		return "", model.ErrPathEscape
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", model.ErrPathEscape
		}
	}

	cleaned := path.Clean(normalized)
	if cleaned == "." {
		return "", model.ErrFileNotFound
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", model.ErrPathEscape
	}

	return cleaned, nil
}

func invalidFile(cause error) error {
	return apierror.Wrap(cause, "INVALID_FILE", model.InvalidFileMessage, "", http.StatusNotFound)
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

// isWithinRoot checks containment both textually and component-wise.
func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	rootWithSeparator := rootAbs
	if !strings.HasSuffix(rootWithSeparator, string(filepath.Separator)) {
		rootWithSeparator += string(filepath.Separator)
	}
	if !strings.HasPrefix(candidateAbs, rootWithSeparator) {
		return false
	}

	rel, err := filepath.Rel(rootAbs, candidateAbs)
	if err != nil {
		return false
	}

	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	return first != ".."
}
