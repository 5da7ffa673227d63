package model

import "time"

// FileRecord describes one log file under the root.
type FileRecord struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type FilesResponse struct {
	Files []FileRecord `json:"files"`
}

// ContentQuery is a transport-independent read request.
type ContentQuery struct {
	File   string
	Lines  int
	Level  string
	Search string
	Page   int
}

// ReadResult is the outcome of a content read. Lines is newest-last within the page.
type ReadResult struct {
	Lines      []string `json:"lines"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Error      string   `json:"error,omitempty"`
}
