// Package extractor recovers best-effort plain text from a statement PDF:
// direct text-layer extraction first, OCR as the fallback for scanned pages.
package extractor

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/admission"
)

// ErrNoExtractableText is the terminal condition for a scanned document
// when OCR is enabled but yields nothing on any page, or when no extraction
// path produced any text at all.
var ErrNoExtractableText = errors.New("no extractable text found in document")

// minTextContent is the threshold below which a document is treated as
// scanned/image-based. Tuned empirically: a digital statement's text layer
// yields thousands of characters; a scanned one yields none or a handful of
// metadata strings.
const minTextContent = 100

// Service is the text recovery stage. OCR is optional because the external
// engine may not be installed; the zero value with OCREnabled=false still
// returns whatever the text layer holds.
type Service struct {
	OCREnabled bool
	Logger     *slog.Logger
}

// NewService returns a recovery service that uses OCR when both requested
// and actually available on this system.
func NewService(enableOCR bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if enableOCR && !IsOCRAvailable() {
		logger.Warn("ocr requested but pdftoppm/tesseract not installed; scanned documents will not be readable")
		enableOCR = false
	}
	return &Service{OCREnabled: enableOCR, Logger: logger}
}

// RecoverText extracts the text of every page of the admitted document,
// concatenated with newline separators. The text layer is always tried
// first — OCR is slow and lossy — and OCR only runs when the direct yield
// falls below the minimum-content threshold. With OCR unavailable the
// sparse direct text is returned as-is and the caller decides what to do
// with it.
func (s *Service) RecoverText(ctx context.Context, h *admission.Handle) (string, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := ExtractText(h.Path)
	text := strings.Join(pages, "\n")

	if err == nil && len(strings.TrimSpace(text)) > minTextContent {
		return text, nil
	}

	if !s.OCREnabled {
		if strings.TrimSpace(text) == "" {
			return "", ErrNoExtractableText
		}
		logger.Warn("document appears scanned but ocr is disabled; returning sparse text",
			"chars", len(text))
		return text, nil
	}

	logger.Info("document appears scanned, falling back to ocr",
		"pages", h.PageCount, "directChars", len(strings.TrimSpace(text)))

	ocrPages, ocrErr := ocrExtract(ctx, logger, h.Path)
	if ocrErr != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// OCR ran to completion and recognized nothing on any page:
		// terminal, even when the text layer held a few stray characters.
		if errors.Is(ocrErr, errOCRNoYield) {
			return "", ErrNoExtractableText
		}
		// Toolchain fault mid-run. Nothing recovered anywhere is terminal;
		// otherwise degrade to the sparse direct text.
		if strings.TrimSpace(text) == "" {
			return "", ErrNoExtractableText
		}
		logger.Warn("ocr failed, returning sparse direct text", "error", ocrErr)
		return text, nil
	}

	return strings.Join(ocrPages, "\n"), nil
}

// ocrExtract is swappable so the recovery policy can be tested without an
// installed OCR toolchain.
var ocrExtract = extractWithOCR
