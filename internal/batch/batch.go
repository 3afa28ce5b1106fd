// Package batch runs boundary detection over multiple pages with a bounded
// worker pool and a per-page wall-clock budget.
//
// Page detection is CPU- and memory-bound, so parallelism is capped at the
// core count by default. A page that exceeds its budget fails with
// detect.ErrTimeout; the failure is isolated and remaining pages continue.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/planscan/boundary/internal/detect"
)

// Page is one drawing page queued for detection.
type Page struct {
	// Name identifies the page in results and errors (file name or page
	// number).
	Name string

	// Data is the raw image bytes.
	Data []byte

	// ScaleFactor is feet per pixel for this page.
	ScaleFactor float64

	// Labels are the page's OCR text elements, may be nil.
	Labels []detect.OCRTextElement
}

// PageResult pairs a page with its detection result.
type PageResult struct {
	Name   string
	Result *detect.BoundaryDetectionResult
}

// PageError records a failed page. Batch processing continues past it.
type PageError struct {
	Name string
	Err  error
}

func (e PageError) Error() string {
	return fmt.Sprintf("page %s: %v", e.Name, e.Err)
}

func (e PageError) Unwrap() error {
	return e.Err
}

// Config bounds the worker pool and the per-page budget.
type Config struct {
	// Workers caps concurrent pages. Zero or negative means NumCPU.
	Workers int

	// PageTimeout is the wall-clock budget per page. Zero means 30s.
	PageTimeout time.Duration

	// Options are the detection thresholds applied to every page.
	Options detect.DetectionOptions
}

// Run detects all pages and returns successful results alongside an
// aggregated error list. Page order is preserved within each slice. Run
// returns early only when ctx is canceled; per-page failures never stop the
// batch.
func Run(ctx context.Context, pages []Page, cfg Config) ([]PageResult, []PageError) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	timeout := cfg.PageTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	type slot struct {
		result *detect.BoundaryDetectionResult
		err    error
	}
	slots := make([]slot, len(pages))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range pages {
		if ctx.Err() != nil {
			slots[i].err = ctx.Err()
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[i].result, slots[i].err = detectPage(ctx, pages[i], cfg.Options, timeout)
		}(i)
	}
	wg.Wait()

	results := make([]PageResult, 0, len(pages))
	errs := make([]PageError, 0)
	for i, s := range slots {
		if s.err != nil {
			errs = append(errs, PageError{Name: pages[i].Name, Err: s.err})
			continue
		}
		results = append(results, PageResult{Name: pages[i].Name, Result: s.result})
	}
	return results, errs
}

// detectPage runs one page under its wall-clock budget. The engine has no
// internal cancellation, so on expiry the in-flight detection is abandoned:
// its goroutine finishes on its own and the buffered channel lets it exit.
func detectPage(ctx context.Context, page Page, opts detect.DetectionOptions, timeout time.Duration) (*detect.BoundaryDetectionResult, error) {
	type outcome struct {
		result *detect.BoundaryDetectionResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := detect.Detect(page.Data, page.ScaleFactor, opts, page.Labels)
		done <- outcome{result: result, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.result, out.err
	case <-timer.C:
		return nil, detect.ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
