package model

import "errors"

var (
	// Resolution errors. Both surface to clients as "Invalid or missing file".
	ErrPathEscape   = errors.New("path escapes log root")
	ErrFileNotFound = errors.New("file not found")

	// I/O errors
	ErrReadFailure     = errors.New("read failure")
	ErrMutationFailure = errors.New("mutation failure")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidInput = errors.New("invalid input")
)

// InvalidFileMessage is the single message shown for escape attempts and missing files alike.
const InvalidFileMessage = "Invalid or missing file"
