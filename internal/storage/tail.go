package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	"go-log-viewer/internal/model"
)

const (
	DefaultAverageLineBytes int64 = 500
	DefaultFloorBytes       int64 = 5 * 1024 * 1024

	readBufferSize = 64 * 1024
)

// ReadWindow returns the byte budget for reading a page of pageSize entries,
// or 0 (whole file) when pageSize is unlimited or the budget would overflow.
// The window grows with the page number and never drops below floorBytes.
func ReadWindow(page int, pageSize int, averageLineBytes int64, floorBytes int64) int64 {
	if pageSize <= 0 {
		return 0
	}
	if page < 1 {
		page = 1
	}
	if averageLineBytes <= 0 {
		averageLineBytes = DefaultAverageLineBytes
	}

	if int64(pageSize) > math.MaxInt64/averageLineBytes/int64(page) {
		return 0
	}

	window := int64(page) * int64(pageSize) * averageLineBytes
	if window < floorBytes {
		window = floorBytes
	}

	return window
}

// ReadTail returns the complete lines found in the last maxBytes of the file.
// maxBytes <= 0 reads everything. Line terminators are stripped.
func ReadTail(path string, maxBytes int64) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open log: %w", model.ErrReadFailure, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".gz") {
		return readCompressedTail(file, maxBytes)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat log: %w", model.ErrReadFailure, err)
	}

	size := info.Size()
	if maxBytes <= 0 || size <= maxBytes {
		return readLines(bufio.NewReaderSize(file, readBufferSize))
	}

	start := size - maxBytes
	if _, err := file.Seek(start-1, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek log: %w", model.ErrReadFailure, err)
	}

	reader := bufio.NewReaderSize(file, readBufferSize)
	previous, err := reader.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: read log: %w", model.ErrReadFailure, err)
	}

	// Unless the window starts right after a newline, its first line is partial.
	if previous != '\n' {
		if _, err := reader.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return []string{}, nil
			}
			return nil, fmt.Errorf("%w: read log: %w", model.ErrReadFailure, err)
		}
	}

	return readLines(reader)
}

func readLines(reader *bufio.Reader) ([]string, error) {
	lines := make([]string, 0, 256)
	for {
		raw, err := reader.ReadString('\n')
		if len(raw) > 0 {
			line, decodeErr := decodeLine(raw)
			if decodeErr != nil {
				return nil, decodeErr
			}
			lines = append(lines, line)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, fmt.Errorf("%w: read log: %w", model.ErrReadFailure, err)
		}
	}
}

// readCompressedTail streams a gzip file, retaining only the trailing lines
// that fit in maxBytes of decompressed text.
func readCompressedTail(file *os.File, maxBytes int64) ([]string, error) {
	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: open compressed log: %w", model.ErrReadFailure, err)
	}
	defer gz.Close()

	reader := bufio.NewReaderSize(gz, readBufferSize)
	if maxBytes <= 0 {
		return readLines(reader)
	}

	var (
		lines    []string
		sizes    []int64
		head     int
		retained int64
	)
	for {
		raw, err := reader.ReadString('\n')
		if len(raw) > 0 {
			line, decodeErr := decodeLine(raw)
			if decodeErr != nil {
				return nil, decodeErr
			}

			lines = append(lines, line)
			sizes = append(sizes, int64(len(raw)))
			retained += int64(len(raw))

			for retained > maxBytes && head < len(lines) {
				retained -= sizes[head]
				head++
			}

			if head > 1024 && head > len(lines)/2 {
				lines = append([]string(nil), lines[head:]...)
				sizes = append([]int64(nil), sizes[head:]...)
				head = 0
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return append(make([]string, 0, len(lines)-head), lines[head:]...), nil
			}
			return nil, fmt.Errorf("%w: read compressed log: %w", model.ErrReadFailure, err)
		}
	}
}

func decodeLine(raw string) (string, error) {
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: log file is not valid UTF-8", model.ErrReadFailure)
	}

	line := strings.TrimSuffix(raw, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
