// Package api exposes the parsing pipeline over HTTP for callers that
// cannot shell out to the CLI.
package api

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
	"github.com/hap4114/credit-card-statement-parser/internal/pipeline"
)

// ParseResponse is the JSON body returned by POST /api/parse.
type ParseResponse struct {
	Success bool                    `json:"success"`
	Error   string                  `json:"error,omitempty"`
	Code    string                  `json:"code,omitempty"`
	Record  *models.StatementRecord `json:"record,omitempty"`
	Count   int                     `json:"count"`
}

// Error codes let a UI branch on the failure without string-matching
// messages.
const (
	codePasswordRequired = "PASSWORD_REQUIRED"
	codeDecryptionFailed = "DECRYPTION_FAILED"
	codeNoText           = "NO_EXTRACTABLE_TEXT"
	codeBadRequest       = "BAD_REQUEST"
	codeInternal         = "INTERNAL"
)

// Handler bundles the route handlers with their pipeline.
type Handler struct {
	Pipeline *pipeline.Pipeline
	Logger   *slog.Logger
}

// Register sets up the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleParse accepts a multipart upload (field "file", optional field
// "password") and returns the normalized record. Terminal pipeline
// conditions map to distinct codes so the client can render specific
// remediation (prompt for password, suggest installing OCR, report a
// corrupt file).
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, codeBadRequest,
			"No file uploaded. Use multipart form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, codeBadRequest,
			"Only PDF files are supported.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, codeInternal,
			"Failed to read uploaded file.")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "statement-upload-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, codeInternal,
			"Failed to create temp file.")
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return writeError(c, fiber.StatusInternalServerError, codeInternal,
			"Failed to save uploaded file.")
	}
	tmp.Close()

	rec, err := h.Pipeline.Run(c.Context(), tmp.Name(), c.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrPasswordRequired):
			return writeError(c, fiber.StatusUnauthorized, codePasswordRequired,
				"This statement is password protected. Re-submit with the 'password' form field.")
		case errors.Is(err, pipeline.ErrDecryptionFailed):
			return writeError(c, fiber.StatusUnauthorized, codeDecryptionFailed,
				"The supplied password did not decrypt the statement.")
		case errors.Is(err, pipeline.ErrNoExtractableText):
			return writeError(c, fiber.StatusUnprocessableEntity, codeNoText,
				"No text could be extracted. The statement looks scanned; OCR is unavailable or found nothing.")
		default:
			h.Logger.Error("pipeline failed", "error", err)
			return writeError(c, fiber.StatusInternalServerError, codeInternal, err.Error())
		}
	}

	return c.JSON(ParseResponse{
		Success: true,
		Record:  rec,
		Count:   len(rec.Transactions),
	})
}

func writeError(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success: false,
		Error:   msg,
		Code:    code,
	})
}
