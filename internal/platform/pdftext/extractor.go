package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// instanceTimeout bounds the wait for a free pdfium instance.
const instanceTimeout = 30 * time.Second

var (
	// ErrUnreadable is returned when the bytes are not a PDF pdfium can open.
	ErrUnreadable = errors.New("document is not a readable PDF")

	// ErrNoText is returned for documents without a text layer, such as scans.
	ErrNoText = errors.New("document contains no extractable text")
)

// Extractor turns PDF bytes into page text. It is safe for concurrent use;
// calls are served by a small pool of pdfium instances.
type Extractor struct {
	logger   *slog.Logger
	poolSize int

	once    sync.Once
	pool    pdfium.Pool
	initErr error
}

// NewExtractor creates an Extractor backed by at most poolSize pdfium
// instances. The WebAssembly runtime is not started until the first call.
func NewExtractor(logger *slog.Logger, poolSize int) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if poolSize < 1 {
		poolSize = 1
	}
	return &Extractor{logger: logger, poolSize: poolSize}
}

func (e *Extractor) init() error {
	e.once.Do(func() {
		start := time.Now()
		e.pool, e.initErr = webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  e.poolSize,
			MaxTotal: e.poolSize,
		})
		if e.initErr != nil {
			e.initErr = fmt.Errorf("failed to start pdfium: %w", e.initErr)
			return
		}
		e.logger.Info("pdfium runtime started", "duration", time.Since(start).String())
	})
	return e.initErr
}

// Text returns the text of every page, pages separated by a blank line.
func (e *Extractor) Text(ctx context.Context, data []byte) (string, error) {
	if err := e.init(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	instance, err := e.pool.GetInstance(instanceTimeout)
	if err != nil {
		return "", fmt.Errorf("failed to get pdfium instance: %w", err)
	}
	defer func() { _ = instance.Close() }()

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		e.logger.DebugContext(ctx, "pdfium could not open document", "error", err, "size", len(data))
		return "", ErrUnreadable
	}
	defer func() {
		_, _ = instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})
	}()

	count, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return "", fmt.Errorf("failed to count pages: %w", err)
	}

	pages := make([]string, 0, count.PageCount)
	for i := 0; i < count.PageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page, err := instance.GetPageText(&requests.GetPageText{
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{Document: doc.Document, Index: i},
			},
		})
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i+1, err)
		}
		if text := strings.TrimSpace(page.Text); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", ErrNoText
	}

	e.logger.DebugContext(ctx, "pdf text extracted", "pages", count.PageCount, "size", len(data))
	return strings.Join(pages, "\n\n"), nil
}

// Close shuts the pdfium runtime down if it was started.
func (e *Extractor) Close() error {
	var err error
	e.once.Do(func() { e.initErr = errors.New("extractor closed") })
	if e.pool != nil {
		err = e.pool.Close()
	}
	return err
}
