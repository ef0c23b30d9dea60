// Package watch uploads documents dropped into a local directory.
// It drives the corpus ingest operation from filesystem events.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// DefaultRate limits uploads to avoid hammering the ingest endpoint
// when many files land at once.
var DefaultRate = rate.Limit(2.0)

// DefaultBurst is the upload burst size.
const DefaultBurst = 4

// ingestExtensions are the file types worth uploading.
var ingestExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".docx": true,
	".html": true,
}

// Watcher observes a directory and ingests files as they appear.
type Watcher struct {
	corpus  driving.CorpusService
	limiter *rate.Limiter
	dir     string
}

// NewWatcher creates a watcher over dir.
func NewWatcher(corpus driving.CorpusService, dir string) *Watcher {
	return &Watcher{
		corpus:  corpus,
		limiter: rate.NewLimiter(DefaultRate, DefaultBurst),
		dir:     dir,
	}
}

// Run blocks, uploading files created or written under the directory,
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !Ingestible(event.Name) {
				continue
			}
			if err := w.ingest(ctx, event.Name); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("Ingest of %s failed: %v", event.Name, err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) ingest(ctx context.Context, path string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	logger.Info("Ingesting %s", path)
	return w.corpus.Ingest(ctx, path)
}

// Ingestible reports whether the file type is worth uploading.
// Hidden files and partial downloads are skipped.
func Ingestible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return ingestExtensions[strings.ToLower(filepath.Ext(base))]
}
