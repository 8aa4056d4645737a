package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// errOCRNoYield means the engine ran over every rendered page and recognized
// nothing. Distinct from toolchain faults (missing binaries, render failure):
// zero yield over a complete run is a terminal condition for the document,
// not a degraded environment.
var errOCRNoYield = errors.New("ocr recognized no text")

// ocrDPI is the render resolution for OCR input. 300 DPI is the sweet spot
// for tesseract on statement typefaces.
const ocrDPI = "300"

// IsOCRAvailable reports whether the external OCR toolchain (pdftoppm +
// tesseract) is installed. When it is not, the recovery service degrades to
// whatever sparse text the direct path found instead of raising.
func IsOCRAvailable() bool {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return false
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return false
	}
	return true
}

// extractWithOCR renders each PDF page to a raster image and runs tesseract
// on it. Per-page failures are logged and skipped — a statement with one
// unreadable page is still worth parsing. Cancellation is honored between
// pages: OCR runs seconds per page and a user should be able to abort
// without waiting for the rest of the document.
func extractWithOCR(ctx context.Context, logger *slog.Logger, filePath string) ([]string, error) {
	if !IsOCRAvailable() {
		return nil, fmt.Errorf("ocr tools not available (install poppler-utils and tesseract-ocr)")
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", ocrDPI, "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("reading temp dir: %w", err)
	}
	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for i, imgFile := range imageFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
		// PSM 6 = assume a uniform block of text, which suits statements
		cmd := exec.CommandContext(ctx, "tesseract", imgFile, outBase, "-l", "eng", "--psm", "6")
		if out, err := cmd.CombinedOutput(); err != nil {
			logger.Warn("ocr failed for page, skipping",
				"page", i+1, "error", err, "output", string(out))
			continue
		}

		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			logger.Warn("reading ocr output failed, skipping page", "page", i+1, "error", err)
			continue
		}

		text := strings.TrimSpace(string(data))
		if text != "" {
			pages = append(pages, fmt.Sprintf("--- Page %d ---\n%s", i+1, text))
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w across %d page images", errOCRNoYield, len(imageFiles))
	}
	return pages, nil
}
