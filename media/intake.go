package media

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/caretrack/core"
)

// DefaultMaxSize is the largest file accepted by default (10 MiB).
const DefaultMaxSize int64 = 10 * 1024 * 1024

// Result is a file converted to embeddable form.
type Result struct {
	DataURI string
	Name    string
	Kind    core.MediaKind
	MIME    string
	Size    int64
}

// Callback receives the outcome of a submitted file. It is called exactly
// once per successful Submit, from a pool goroutine.
type Callback func(Result, error)

// Intake converts files into data URIs on a worker pool.
type Intake struct {
	pool    *ants.Pool
	maxSize int64
	logger  *slog.Logger
	wg      sync.WaitGroup

	mu       sync.Mutex
	released bool
}

// Option configures an Intake.
type Option func(*Intake) error

// WithPoolSize sets the number of files read concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(in *Intake) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if in.pool != nil {
			in.pool.Release()
		}
		in.pool = pool
		return nil
	}
}

// WithMaxSize sets the largest accepted file size in bytes.
// Default is DefaultMaxSize; non-positive values are ignored.
func WithMaxSize(size int64) Option {
	return func(in *Intake) error {
		if size > 0 {
			in.maxSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Intake) error {
		if logger == nil {
			logger = slog.Default()
		}
		in.logger = logger
		return nil
	}
}

// NewIntake creates an intake with its worker pool.
func NewIntake(opts ...Option) (*Intake, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	in := &Intake{
		pool:    pool,
		maxSize: DefaultMaxSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			in.pool.Release()
			return nil, err
		}
	}
	return in, nil
}

// Submit reads the file at path in the background and passes the result
// to cb. An empty kind is inferred from the file type. An error is
// returned only when the work could not be scheduled; in that case cb is
// never called.
func (in *Intake) Submit(path string, kind core.MediaKind, cb Callback) error {
	if cb == nil {
		return ErrCallbackRequired
	}

	in.mu.Lock()
	if in.released {
		in.mu.Unlock()
		return ErrIntakeReleased
	}
	in.wg.Add(1)
	in.mu.Unlock()

	err := in.pool.Submit(func() {
		defer in.wg.Done()
		result, err := in.Encode(path, kind)
		if err != nil {
			in.logger.Warn("error reading media file", "path", path, "err", err)
		}
		cb(result, err)
	})
	if err != nil {
		in.wg.Done()
		return fmt.Errorf("scheduling %s: %w", path, err)
	}
	return nil
}

// Encode reads the file at path and returns it as a data URI.
func (in *Intake) Encode(path string, kind core.MediaKind) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, err
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > in.maxSize {
		return Result{}, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, path, info.Size(), in.maxSize)
	}
	if info.Size() == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	mimeType := detectMIME(path, data)
	detected, ok := KindFromMIME(mimeType)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, path, mimeType)
	}
	if kind != "" && kind != detected {
		return Result{}, fmt.Errorf("%w: %s is %s, requested %s", ErrKindMismatch, path, detected, kind)
	}

	return Result{
		DataURI: DataURI(mimeType, data),
		Name:    filepath.Base(path),
		Kind:    detected,
		MIME:    mimeType,
		Size:    info.Size(),
	}, nil
}

// Release waits for submitted files to finish and frees the pool. Later
// calls to Submit return ErrIntakeReleased. Release may be called more
// than once.
func (in *Intake) Release() {
	in.mu.Lock()
	in.released = true
	in.mu.Unlock()

	in.wg.Wait()
	in.pool.Release()
}

// KindFromMIME maps a MIME type to its media kind.
func KindFromMIME(mimeType string) (core.MediaKind, bool) {
	family, _, _ := strings.Cut(mimeType, "/")
	switch family {
	case "image":
		return core.MediaImage, true
	case "video":
		return core.MediaVideo, true
	case "audio":
		return core.MediaAudio, true
	}
	return "", false
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// detectMIME prefers the file extension and falls back to sniffing the
// content. Parameters such as charset are dropped.
func detectMIME(path string, data []byte) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if base, _, err := mime.ParseMediaType(mimeType); err == nil {
		return base
	}
	return mimeType
}
