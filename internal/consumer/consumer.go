package consumer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"media-parser/internal/database"
	"media-parser/internal/logging"
	"media-parser/internal/metrics"
	"media-parser/internal/mimetypes"
	"media-parser/internal/workers"
)

const (
	// maxScanWorkers caps parallel file processing per scan.
	maxScanWorkers = 8

	// sniffBytes is how much of a file is read for content-type detection.
	sniffBytes = 512
)

// Consumer polls the consume directory and runs new files through the
// winning parser, storing the resulting document records.
type Consumer struct {
	db         *database.Database
	registry   *Registry
	fallback   Declaration
	consumeDir string
	interval   time.Duration

	stopChan  chan struct{}
	stopOnce  sync.Once
	scanMu    sync.Mutex
	startTime time.Time

	initialScanDone atomic.Bool
	filesProcessed  atomic.Int64
	lastRun         atomic.Value // time.Time
}

// HealthStatus summarizes consumer state for health endpoints.
type HealthStatus struct {
	Ready          bool      `json:"ready"`
	Uptime         string    `json:"uptime"`
	FilesProcessed int64     `json:"filesProcessed"`
	LastRun        time.Time `json:"lastRun,omitzero"`
}

// New creates a Consumer. The fallback declaration handles files whose
// detected mime type no registered declaration claims; for this plugin
// that is the media declaration itself, since inventing types for unknown
// formats is its whole point.
func New(db *database.Database, registry *Registry, fallback Declaration, consumeDir string, interval time.Duration) *Consumer {
	return &Consumer{
		db:         db,
		registry:   registry,
		fallback:   fallback,
		consumeDir: consumeDir,
		interval:   interval,
		stopChan:   make(chan struct{}),
		startTime:  time.Now(),
	}
}

// Start begins polling. The initial scan runs immediately in the calling
// goroutine's background.
func (c *Consumer) Start(ctx context.Context) {
	go func() {
		logging.Info("Starting initial consume scan...")
		if err := c.Scan(ctx); err != nil {
			logging.Error("Initial consume scan error: %v", err)
		}
		c.initialScanDone.Store(true)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stopChan:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Scan(ctx); err != nil {
					logging.Error("Consume scan error: %v", err)
				}
			}
		}
	}()
}

// Stop halts the polling loop.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

// IsReady reports whether the initial scan has completed.
func (c *Consumer) IsReady() bool {
	return c.initialScanDone.Load()
}

// GetHealthStatus returns a snapshot of consumer state.
func (c *Consumer) GetHealthStatus() HealthStatus {
	status := HealthStatus{
		Ready:          c.IsReady(),
		Uptime:         time.Since(c.startTime).Round(time.Second).String(),
		FilesProcessed: c.filesProcessed.Load(),
	}
	if last, ok := c.lastRun.Load().(time.Time); ok {
		status.LastRun = last
	}
	return status
}

// Scan processes every regular file in the consume directory. Files whose
// checksum is already stored are skipped, so a scan is idempotent. Only one
// scan runs at a time.
func (c *Consumer) Scan(ctx context.Context) error {
	c.scanMu.Lock()
	defer c.scanMu.Unlock()

	start := time.Now()
	metrics.ConsumerIsRunning.Set(1)
	defer func() {
		metrics.ConsumerIsRunning.Set(0)
		metrics.ConsumerRunsTotal.Inc()
		metrics.ConsumerLastRunTimestamp.SetToCurrentTime()
		metrics.ConsumerLastRunDuration.Set(time.Since(start).Seconds())
		c.lastRun.Store(time.Now())
	}()

	entries, err := os.ReadDir(c.consumeDir)
	if err != nil {
		metrics.ConsumerErrors.Inc()
		return fmt.Errorf("failed to read consume directory: %w", err)
	}

	paths := make(chan string)
	var wg sync.WaitGroup
	numWorkers := workers.ForMixed(maxScanWorkers)
	logging.Debug("Consume scan using %d workers", numWorkers)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				if err := c.consumeFile(ctx, path); err != nil {
					metrics.ConsumerErrors.Inc()
					logging.Error("Failed to consume %s: %v", path, err)
				}
			}
		}()
	}

	queued := 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		select {
		case paths <- filepath.Join(c.consumeDir, entry.Name()):
			queued++
		case <-ctx.Done():
			close(paths)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(paths)
	wg.Wait()

	if queued > 0 {
		logging.Info("Consume scan complete: %d files in %v", queued, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// consumeFile ingests one file: dedup by checksum, detect mime type, parse
// thumbnail and excerpt, store the record.
func (c *Consumer) consumeFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat: %w", err)
	}

	checksum, err := fileChecksum(path)
	if err != nil {
		return err
	}

	if _, err := c.db.GetDocumentByChecksum(ctx, checksum); err == nil {
		logging.Debug("Skipping %s: already consumed", path)
		return nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	mimeType := detectMimeType(path)
	fileName := filepath.Base(path)

	decl, ok := c.registry.DeclarationFor(mimeType)
	if !ok {
		decl = c.fallback
	}
	p := decl.Factory()

	text, err := p.Parse(ctx, path, mimeType, fileName)
	if err != nil {
		logging.Warn("Text extraction failed for %s: %v", fileName, err)
		text = ""
	}

	thumbPath, err := p.GetThumbnail(ctx, path, mimeType, fileName)
	if err != nil {
		logging.Warn("Thumbnail generation failed for %s: %v", fileName, err)
		thumbPath = ""
	}

	doc := &database.Document{
		OriginalFilename: fileName,
		Title:            strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		MimeType:         mimeType,
		Size:             info.Size(),
		ModTime:          info.ModTime(),
		Checksum:         checksum,
		Content:          text,
		ThumbnailPath:    thumbPath,
	}

	if err := c.db.SaveDocument(ctx, doc); err != nil {
		return err
	}

	c.filesProcessed.Add(1)
	metrics.ConsumerFilesProcessed.Inc()
	logging.Info("Consumed %s (%s) as document %s", fileName, doc.MimeType, doc.ID)
	return nil
}

// detectMimeType sniffs the file's leading bytes. Detection failures fall
// back to octet-stream, which downstream treats as "invent a type from the
// extension".
func detectMimeType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("failed to close %s: %v", path, cerr)
		}
	}()

	buf := make([]byte, sniffBytes)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "application/octet-stream"
	}

	mimeType := http.DetectContentType(buf[:n])
	// Strip parameters like "; charset=utf-8"
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// fileChecksum hashes the file contents for duplicate detection.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open for checksum: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("failed to close %s: %v", path, cerr)
		}
	}()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// RegisterMimeCorrection attaches the pre-save mime correction hook to the
// store, so every saved record gets its mime type fixed up from the
// combined table.
func RegisterMimeCorrection(db *database.Database, corrector *mimetypes.Corrector) {
	db.RegisterPreSave(func(doc *database.Document) {
		corrected, changed := corrector.Correct(doc.OriginalFilename, doc.MimeType)
		if changed {
			doc.MimeType = corrected
		}
	})
}
