// Package pipeline wires admission, text recovery, bank identification and
// extraction into the single statement-parsing entry point.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hap4114/credit-card-statement-parser/internal/admission"
	"github.com/hap4114/credit-card-statement-parser/internal/extractor"
	"github.com/hap4114/credit-card-statement-parser/internal/models"
	"github.com/hap4114/credit-card-statement-parser/internal/parser"
)

// Terminal conditions re-exported so callers depend on one package. Each is
// distinguishable with errors.Is; there is deliberately no generic catch-all
// so the presentation layer can give targeted guidance (wrong password vs.
// scanned-without-OCR vs. corrupt file).
var (
	ErrPasswordRequired  = admission.ErrPasswordRequired
	ErrDecryptionFailed  = admission.ErrDecryptionFailed
	ErrNoExtractableText = extractor.ErrNoExtractableText
)

// Pipeline runs the full document-to-record conversion. Instances are
// stateless beyond configuration: concurrent documents are handled by
// independent Run calls, each owning its own handle and temporary
// artifacts. The only shared state is the read-only pattern tables.
type Pipeline struct {
	recovery *extractor.Service
	logger   *slog.Logger
}

// New builds a pipeline. enableOCR toggles the scanned-document fallback.
func New(enableOCR bool, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		recovery: extractor.NewService(enableOCR, logger),
		logger:   logger,
	}
}

// Run converts the statement at path into a normalized record. password may
// be empty; it is only consulted when the document turns out to be
// encrypted and the empty password fails.
//
// A corrupt document yields a placeholder record with Bank == CORRUPT and
// no error — a terminal but renderable outcome. An unrecognized bank yields
// a degraded all-default record, also without error. The remaining terminal
// conditions (ErrPasswordRequired, ErrDecryptionFailed,
// ErrNoExtractableText) are returned as distinct errors because no
// meaningful partial record exists for them.
func (p *Pipeline) Run(ctx context.Context, path, password string) (*models.StatementRecord, error) {
	handle, err := admission.Admit(path, password)
	if err != nil {
		if errors.Is(err, admission.ErrCorruptDocument) {
			p.logger.Warn("document is corrupt, returning placeholder record", "path", path)
			return models.NewCorruptRecord(), nil
		}
		return nil, err
	}
	defer handle.Close()

	text, err := p.recovery.RecoverText(ctx, handle)
	if err != nil {
		return nil, err
	}

	bank := parser.Identify(text)
	p.logger.Info("identified issuer", "bank", string(bank), "pages", handle.PageCount)

	rec := parser.Assemble(parser.New(bank).Parse(text))
	p.logger.Info("extraction complete",
		"bank", string(rec.Bank), "transactions", len(rec.Transactions))
	return rec, nil
}
