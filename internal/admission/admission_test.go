package admission

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// writeTestPDF writes a minimal valid single-page PDF with no content, just
// enough structure to validate, encrypt and count pages.
func writeTestPDF(t *testing.T, path string) {
	t.Helper()

	var b bytes.Buffer
	offsets := make([]int, 4)
	b.WriteString("%PDF-1.4\n")
	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n")
	xref := b.Len()
	b.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for i := 1; i < 4; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// encryptTestPDF writes a password-protected copy of a minimal PDF.
func encryptTestPDF(t *testing.T, dir, userPW, ownerPW string) string {
	t.Helper()

	plain := filepath.Join(dir, "plain.pdf")
	writeTestPDF(t, plain)

	enc := filepath.Join(dir, "encrypted.pdf")
	conf := model.NewDefaultConfiguration()
	conf.UserPW = userPW
	conf.OwnerPW = ownerPW
	if err := api.EncryptFile(plain, enc, conf); err != nil {
		t.Fatalf("encrypting fixture: %v", err)
	}
	return enc
}

func TestAdmitMissingFile(t *testing.T) {
	_, err := Admit(filepath.Join(t.TempDir(), "absent.pdf"), "")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrCorruptDocument) {
		t.Error("missing file must not classify as corrupt")
	}
}

func TestAdmitGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf document at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Admit(path, "")
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("err = %v, want ErrCorruptDocument", err)
	}
}

func TestAdmitTruncatedFile(t *testing.T) {
	// A valid header with nothing behind it is still unreadable.
	path := filepath.Join(t.TempDir(), "truncated.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Admit(path, "")
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("err = %v, want ErrCorruptDocument", err)
	}
}

func TestAdmitValidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	writeTestPDF(t, path)

	h, err := Admit(path, "")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	defer h.Close()
	if h.Path != path {
		t.Errorf("path = %q, want the original %q", h.Path, path)
	}
	if h.PageCount != 1 {
		t.Errorf("page count = %d, want 1", h.PageCount)
	}
}

func TestAdmitEncrypted(t *testing.T) {
	enc := encryptTestPDF(t, t.TempDir(), "secret", "secret")

	t.Run("no credential", func(t *testing.T) {
		_, err := Admit(enc, "")
		if !errors.Is(err, ErrPasswordRequired) {
			t.Fatalf("err = %v, want ErrPasswordRequired", err)
		}
	})

	t.Run("wrong credential", func(t *testing.T) {
		_, err := Admit(enc, "wrong")
		if !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("err = %v, want ErrDecryptionFailed", err)
		}
	})

	t.Run("correct credential", func(t *testing.T) {
		h, err := Admit(enc, "secret")
		if err != nil {
			t.Fatalf("Admit: %v", err)
		}
		if h.Path == enc {
			t.Error("handle still points at the encrypted original")
		}
		if h.PageCount != 1 {
			t.Errorf("page count = %d, want 1", h.PageCount)
		}
		if err := h.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
		if _, err := os.Stat(h.Path); !os.IsNotExist(err) {
			t.Error("decrypted temp artifact still present after Close")
		}
	})
}

// An owner-password-only document opens with the empty user password; no
// credential from the caller is needed.
func TestAdmitEncryptedEmptyUserPassword(t *testing.T) {
	enc := encryptTestPDF(t, t.TempDir(), "", "owneronly")

	h, err := Admit(enc, "")
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	defer h.Close()
	if h.Path == enc {
		t.Error("handle still points at the encrypted original")
	}
	if h.PageCount != 1 {
		t.Errorf("page count = %d, want 1", h.PageCount)
	}
}

func TestHandleCloseNilSafe(t *testing.T) {
	var h *Handle
	if err := h.Close(); err != nil {
		t.Errorf("nil handle Close: %v", err)
	}
}

func TestHandleCloseNonTempLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "original.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := &Handle{Path: path, PageCount: 1}
	if err := h.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("original file removed by Close: %v", err)
	}
}

func TestHandleCloseRemovesTemp(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "decrypted-*.pdf")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()

	h := &Handle{Path: path, PageCount: 1, temp: true}
	if err := h.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp file still present after Close")
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		msg  string
		set  []string
		want bool
	}{
		{"pdfcpu: no header version found", corruptionMarkers, true},
		{"unexpected eof while reading xref", corruptionMarkers, true},
		{"this file is encrypted", encryptionMarkers, true},
		{"all good", corruptionMarkers, false},
	}
	for _, tt := range tests {
		if got := matchesAny(tt.msg, tt.set); got != tt.want {
			t.Errorf("matchesAny(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
