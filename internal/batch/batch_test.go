package batch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/planscan/boundary/internal/detect"
)

func blankPNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestRun_AllPagesSucceed(t *testing.T) {
	data := blankPNG(t, 200)
	pages := []Page{
		{Name: "a1.png", Data: data, ScaleFactor: 0.0833},
		{Name: "a2.png", Data: data, ScaleFactor: 0.0833},
		{Name: "a3.png", Data: data, ScaleFactor: 0.0833},
	}

	results, errs := Run(context.Background(), pages, Config{Workers: 2})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Page order is preserved.
	for i, want := range []string{"a1.png", "a2.png", "a3.png"} {
		if results[i].Name != want {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Name, want)
		}
		if results[i].Result == nil {
			t.Errorf("results[%d] has nil result", i)
		}
	}
}

func TestRun_FailedPageIsolated(t *testing.T) {
	data := blankPNG(t, 200)
	pages := []Page{
		{Name: "good-1.png", Data: data, ScaleFactor: 0.0833},
		{Name: "corrupt.png", Data: []byte("not an image"), ScaleFactor: 0.0833},
		{Name: "good-2.png", Data: data, ScaleFactor: 0.0833},
	}

	results, errs := Run(context.Background(), pages, Config{})
	if len(results) != 2 {
		t.Fatalf("got %d results, want the 2 good pages", len(results))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Name != "corrupt.png" {
		t.Errorf("failed page = %s", errs[0].Name)
	}
	if !errors.Is(errs[0], detect.ErrInvalidImage) {
		t.Errorf("error %v does not unwrap to ErrInvalidImage", errs[0])
	}
}

func TestRun_PageTimeout(t *testing.T) {
	data := blankPNG(t, 400)
	pages := []Page{{Name: "slow.png", Data: data, ScaleFactor: 0.0833}}

	// A nanosecond budget expires before any detection can finish.
	results, errs := Run(context.Background(), pages, Config{PageTimeout: time.Nanosecond})
	if len(results) != 0 {
		t.Fatalf("got %d results under an expired budget", len(results))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if !errors.Is(errs[0], detect.ErrTimeout) {
		t.Errorf("error %v, want ErrTimeout", errs[0])
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := blankPNG(t, 200)
	pages := []Page{
		{Name: "a.png", Data: data, ScaleFactor: 0.0833},
		{Name: "b.png", Data: data, ScaleFactor: 0.0833},
	}

	results, errs := Run(ctx, pages, Config{})
	if len(results) != 0 {
		t.Errorf("canceled run produced results: %v", results)
	}
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want one per page", len(errs))
	}
	for _, e := range errs {
		if !errors.Is(e, context.Canceled) {
			t.Errorf("error %v, want context.Canceled", e)
		}
	}
}

func TestRun_EmptyBatch(t *testing.T) {
	results, errs := Run(context.Background(), nil, Config{})
	if len(results) != 0 || len(errs) != 0 {
		t.Errorf("empty batch produced results=%v errs=%v", results, errs)
	}
}

func TestPageError_Formatting(t *testing.T) {
	err := PageError{Name: "a1.png", Err: detect.ErrTimeout}
	if err.Error() != "page a1.png: detection timed out" {
		t.Errorf("message = %q", err.Error())
	}
}
