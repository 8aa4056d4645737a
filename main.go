package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hap4114/credit-card-statement-parser/internal/api"
	"github.com/hap4114/credit-card-statement-parser/internal/models"
	"github.com/hap4114/credit-card-statement-parser/internal/pipeline"
	"github.com/hap4114/credit-card-statement-parser/internal/render"
)

const version = "1.0.0"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:   "statement-parser",
		Short: "Convert credit card statement PDFs into normalized records",
		Long: `Parses credit card statement PDFs (digital, encrypted or scanned)
into a normalized record: identity fields, balances and an itemized
transaction list.

Supported banks: HDFC, ICICI, Axis Bank, IDFC First, Indian Bank.
Statements from other issuers produce a degraded record with bank UNKNOWN.`,
		SilenceUsage: true,
	}

	root.AddCommand(newParseCmd(logger), newServeCmd(logger), newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newParseCmd(logger *slog.Logger) *cobra.Command {
	var (
		password string
		noOCR    bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "parse <statement.pdf>",
		Short: "Parse a statement PDF and print the extracted record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New(!noOCR, logger)
			rec, err := p.Run(cmd.Context(), args[0], password)
			if err != nil {
				return describeFailure(err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			render.WriteSummary(cmd.OutOrStdout(), rec)
			if rec.Bank == models.BankUnknown {
				fmt.Fprintln(cmd.OutOrStdout(), "Issuer not recognized; no extraction was attempted.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for encrypted statements")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "disable the OCR fallback for scanned statements")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON instead of a summary")
	return cmd
}

// describeFailure augments the terminal conditions with remediation hints
// for CLI users.
func describeFailure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pipeline.ErrPasswordRequired):
		return fmt.Errorf("%w (re-run with --password)", err)
	case errors.Is(err, pipeline.ErrDecryptionFailed):
		return fmt.Errorf("%w (check the password and try again)", err)
	case errors.Is(err, pipeline.ErrNoExtractableText):
		return fmt.Errorf("%w (the statement looks scanned; install poppler-utils and tesseract-ocr)", err)
	default:
		return err
	}
}

func newServeCmd(logger *slog.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP parsing API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; environment variables win either way
			_ = godotenv.Load()

			if addr == "" {
				addr = os.Getenv("LISTEN_ADDR")
			}
			if addr == "" {
				addr = ":8080"
			}
			enableOCR := os.Getenv("DISABLE_OCR") != "true"

			app := fiber.New(fiber.Config{
				BodyLimit: 32 << 20, // statements are small; 32MB is generous
			})
			h := &api.Handler{
				Pipeline: pipeline.New(enableOCR, logger),
				Logger:   logger,
			}
			h.Register(app)

			logger.Info("starting http api", "addr", addr, "ocr", enableOCR)
			return app.Listen(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $LISTEN_ADDR or :8080)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statement-parser v%s\n", version)
		},
	}
}
