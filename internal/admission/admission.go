// Package admission decides whether a statement PDF can enter the pipeline.
// It classifies documents as corrupt, encrypted or ready, performs
// decryption, and owns the lifetime of the temporary decrypted artifact.
package admission

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Terminal admission outcomes. All are checked with errors.Is by callers so
// the presentation layer can render targeted remediation.
var (
	// ErrCorruptDocument means the reader could not even enumerate pages.
	// The pipeline converts this into a CORRUPT placeholder record.
	ErrCorruptDocument = errors.New("document is corrupt or truncated")
	// ErrPasswordRequired means the document is encrypted, the empty
	// password did not open it, and no credential was supplied. The caller
	// must re-invoke with one.
	ErrPasswordRequired = errors.New("encrypted document requires a password")
	// ErrDecryptionFailed means the supplied credential was wrong.
	ErrDecryptionFailed = errors.New("failed to decrypt document with provided password")
)

// Handle is an admitted, plaintext-readable document. When the document had
// to be decrypted the handle points at a uniquely-named temporary file that
// Close removes; callers must Close on every exit path and must not retain
// the handle past pipeline completion.
type Handle struct {
	Path      string
	PageCount int
	temp      bool
}

// Close releases the temporary decrypted artifact, if any. Safe to call on
// a handle over the original document.
func (h *Handle) Close() error {
	if h == nil || !h.temp {
		return nil
	}
	return os.Remove(h.Path)
}

// corruptionMarkers classify open/validate failures that indicate a damaged
// document rather than an encrypted or otherwise readable one.
var corruptionMarkers = []string{
	"corrupt", "cannot read", "invalid", "malformed", "truncated",
	"no header", "unexpected eof", "dict corrupt", "xref",
}

var encryptionMarkers = []string{
	"password", "encrypted", "encryption",
}

// Admit opens the document defensively and returns a readable handle.
// Encrypted documents are tried with the empty password first (common for
// auto-generated statements), then with the supplied credential; no further
// guessing. Decryption re-writes every page into a fresh unencrypted file so
// downstream extraction never sees the original.
func Admit(path, password string) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	if err := api.ValidateFile(path, nil); err != nil {
		msg := strings.ToLower(err.Error())
		switch {
		case matchesAny(msg, encryptionMarkers):
			return decryptToTemp(path, password)
		case matchesAny(msg, corruptionMarkers):
			return nil, ErrCorruptDocument
		default:
			return nil, fmt.Errorf("reading document: %w", err)
		}
	}

	// Validation can pass on documents encrypted with an empty user
	// password; those still need re-writing before the text-layer reader
	// can touch them.
	if encrypted, err := isEncrypted(path); err == nil && encrypted {
		return decryptToTemp(path, password)
	}

	count, err := api.PageCountFile(path)
	if err != nil || count == 0 {
		return nil, ErrCorruptDocument
	}
	return &Handle{Path: path, PageCount: count}, nil
}

func isEncrypted(path string) (bool, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return false, err
	}
	return ctx.XRefTable.Encrypt != nil, nil
}

// decryptToTemp writes a plaintext-equivalent copy of an encrypted document
// into a per-invocation temporary file. The empty password is always tried
// before the supplied one.
func decryptToTemp(path, password string) (*Handle, error) {
	tmp, err := os.CreateTemp("", "statement-decrypted-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for decrypted document: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	conf := model.NewDefaultConfiguration()
	conf.UserPW = ""
	conf.OwnerPW = ""
	if err := api.DecryptFile(path, tmpPath, conf); err != nil {
		if password == "" {
			os.Remove(tmpPath)
			return nil, ErrPasswordRequired
		}
		conf.UserPW = password
		conf.OwnerPW = password
		if err := api.DecryptFile(path, tmpPath, conf); err != nil {
			os.Remove(tmpPath)
			return nil, ErrDecryptionFailed
		}
	}

	count, err := api.PageCountFile(tmpPath)
	if err != nil || count == 0 {
		os.Remove(tmpPath)
		return nil, ErrCorruptDocument
	}
	return &Handle{Path: tmpPath, PageCount: count, temp: true}, nil
}

func matchesAny(msg string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
