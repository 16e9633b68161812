package media

import "errors"

var (
	// ErrFileTooLarge indicates a file exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile indicates a file has no content.
	ErrEmptyFile = errors.New("file is empty")

	// ErrUnsupportedType indicates a file is not an image, video or audio file.
	ErrUnsupportedType = errors.New("unsupported media type")

	// ErrKindMismatch indicates the file type doesn't match the requested kind.
	ErrKindMismatch = errors.New("media type does not match requested kind")

	// ErrIntakeReleased indicates Submit was called after Release.
	ErrIntakeReleased = errors.New("intake released")

	// ErrCallbackRequired indicates Submit was called without a callback.
	ErrCallbackRequired = errors.New("callback is required")
)
