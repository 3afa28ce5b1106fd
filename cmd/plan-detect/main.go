package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/planscan/boundary/internal/batch"
	"github.com/planscan/boundary/internal/config"
	"github.com/planscan/boundary/internal/detect"
	"github.com/planscan/boundary/internal/ocr"
	"github.com/planscan/boundary/internal/raster"
	"github.com/planscan/boundary/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags before normal flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("plan-detect %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	configPath := flag.String("config", "", "YAML configuration file")
	scale := flag.Float64("scale", 0, "feet per pixel (overrides config)")
	labelsPath := flag.String("labels", "", "JSON file with OCR text elements (overrides config)")
	runOCR := flag.Bool("ocr", false, "extract text elements with the built-in OCR backend when no labels file is given")
	overlayPath := flag.String("overlay", "", "write a detection overlay PNG to this path (single-image mode)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	target := flag.Arg(0)

	// Detection results go to stdout; logging stays on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("PLAN_DETECT_LOG_LEVEL") == "debug"

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
	}
	if *scale > 0 {
		cfg.ScaleFactor = *scale
	}
	if *labelsPath != "" {
		cfg.LabelsFile = *labelsPath
	}

	var labels []detect.OCRTextElement
	if cfg.LabelsFile != "" {
		var err error
		labels, err = loadLabels(cfg.LabelsFile)
		if err != nil {
			log.Fatalf("Labels error: %v", err)
		}
		if debug {
			log.Printf("Loaded %d text elements from %s", len(labels), cfg.LabelsFile)
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		log.Fatalf("Cannot open %s: %v", target, err)
	}

	var textDetector ocr.TextDetector
	if *runOCR && cfg.LabelsFile == "" {
		textDetector = ocr.NewTextDetector()
	}

	if info.IsDir() {
		runBatch(target, cfg, labels, textDetector, debug)
		return
	}
	runSingle(target, cfg, labels, textDetector, *overlayPath, debug)
}

// extractLabels runs the OCR backend over raw image bytes. OCR failures are
// logged and yield no labels; detection still runs on geometry alone.
func extractLabels(data []byte, detector ocr.TextDetector, name string, debug bool) []detect.OCRTextElement {
	img, err := raster.Decode(data)
	if err != nil {
		return nil
	}
	elements, err := detector.DetectText(img)
	if err != nil {
		log.Printf("OCR failed on %s: %v", name, err)
		return nil
	}
	if debug {
		log.Printf("OCR found %d text elements on %s", len(elements), name)
	}
	return elements
}

func usage() {
	fmt.Fprintln(os.Stderr, "plan-detect - boundary detection for architectural drawing pages")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: plan-detect [options] <image-file | page-directory>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment variables:")
	fmt.Fprintln(os.Stderr, "  PLAN_DETECT_LOG_LEVEL=debug    Enable debug logging")
}

// runSingle detects one page and writes the JSON result to stdout.
func runSingle(path string, cfg config.Config, labels []detect.OCRTextElement, detector ocr.TextDetector, overlayPath string, debug bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Cannot read %s: %v", path, err)
	}
	if detector != nil && len(labels) == 0 {
		labels = extractLabels(data, detector, path, debug)
	}

	result, err := detect.Detect(data, cfg.ScaleFactor, cfg.Options, labels)
	if err != nil {
		log.Fatalf("Detection failed: %v", err)
	}
	if debug {
		log.Printf("%s: %d rooms, %d walls, %d doors, %d windows in %dms",
			path, len(result.Rooms), len(result.Walls), len(result.Doors), len(result.Windows), result.ProcessingTimeMS)
	}

	if overlayPath != "" {
		if err := writeOverlay(data, cfg.ScaleFactor, result, overlayPath); err != nil {
			log.Fatalf("Overlay failed: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Encoding failed: %v", err)
	}
}

// runBatch detects every image in a directory through the bounded worker
// pool and writes a combined JSON document to stdout. Per-page failures are
// reported and skipped.
func runBatch(dir string, cfg config.Config, labels []detect.OCRTextElement, detector ocr.TextDetector, debug bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("Cannot read directory %s: %v", dir, err)
	}

	pages := make([]batch.Page, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		pageLabels := labels
		if detector != nil && len(pageLabels) == 0 {
			pageLabels = extractLabels(data, detector, entry.Name(), debug)
		}
		pages = append(pages, batch.Page{
			Name:        entry.Name(),
			Data:        data,
			ScaleFactor: cfg.ScaleFactor,
			Labels:      pageLabels,
		})
	}
	if debug {
		log.Printf("Processing %d pages from %s", len(pages), dir)
	}

	results, pageErrs := batch.Run(context.Background(), pages, batch.Config{
		Workers:     cfg.Workers,
		PageTimeout: cfg.PageTimeout(),
		Options:     cfg.Options,
	})
	for _, pageErr := range pageErrs {
		log.Printf("Page failed: %v", pageErr)
	}

	type pageOutput struct {
		Page   string                          `json:"page"`
		Result *detect.BoundaryDetectionResult `json:"result"`
	}
	out := make([]pageOutput, 0, len(results))
	for _, r := range results {
		out = append(out, pageOutput{Page: r.Name, Result: r.Result})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Encoding failed: %v", err)
	}
}

// writeOverlay renders the result over the working image and saves it.
func writeOverlay(data []byte, scaleFactor float64, result *detect.BoundaryDetectionResult, path string) error {
	img, err := raster.Decode(data)
	if err != nil {
		return err
	}
	work := raster.Preprocess(img, scaleFactor)
	overlay, err := render.Overlay(work.Img, result)
	if err != nil {
		return err
	}
	return os.WriteFile(path, overlay, 0o644)
}

// loadLabels reads a JSON array of OCR text elements.
func loadLabels(path string) ([]detect.OCRTextElement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	var labels []detect.OCRTextElement
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}
	return labels, nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
