// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/insightpaper/insight-tui/internal/model"
)

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestValidateAcceptsPDF(t *testing.T) {
	path := writeFile(t, "paper.pdf", 128)

	att, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if att.MIME != model.MIMEPDF {
		t.Errorf("MIME = %q", att.MIME)
	}
	if att.Size != 128 {
		t.Errorf("Size = %d", att.Size)
	}
}

func TestValidateAcceptsDOCX(t *testing.T) {
	path := writeFile(t, "thesis.docx", 64)

	att, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !att.IsDOCX() {
		t.Error("expected DOCX attachment")
	}
}

func TestValidateRejectsUnsupportedType(t *testing.T) {
	path := writeFile(t, "notes.txt", 10)

	_, err := Validate(path)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("want ErrUnsupportedType, got %v", err)
	}
	if Message(err) != "Please upload only PDF or DOCX files." {
		t.Errorf("Message = %q", Message(err))
	}
}

func TestValidateRejectsOversize(t *testing.T) {
	path := writeFile(t, "big.pdf", 1)
	// Grow past the limit without allocating 10 MiB in the test.
	if err := os.Truncate(path, model.MaxAttachmentSize+1); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}

	_, err := Validate(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
	if Message(err) != "File size exceeds 10MB limit." {
		t.Errorf("Message = %q", Message(err))
	}
}

func TestValidateExactLimitAccepted(t *testing.T) {
	path := writeFile(t, "edge.pdf", 1)
	if err := os.Truncate(path, model.MaxAttachmentSize); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}

	if _, err := Validate(path); err != nil {
		t.Errorf("a file exactly at the limit should pass, got %v", err)
	}
}

func TestValidateMissingFile(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "gone.pdf"))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("want ErrUnreadable, got %v", err)
	}
}

func TestRenderPDFCreatesAndReleasesCopy(t *testing.T) {
	path := writeFile(t, "paper.pdf", 256)
	att, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	p, err := Render(att)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !p.IsPDF() {
		t.Fatal("expected PDF preview")
	}
	if _, err := os.Stat(p.PDFPath); err != nil {
		t.Fatalf("transient copy missing: %v", err)
	}

	if err := p.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(p.PDFPath); !errors.Is(err, os.ErrNotExist) {
		if p.PDFPath != "" {
			t.Error("transient copy should be removed on Release")
		}
	}

	// Releasing twice is safe.
	if err := p.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
}

func TestRenderDOCXPlaceholder(t *testing.T) {
	path := writeFile(t, "thesis.docx", 64)
	att, _ := Validate(path)

	p, err := Render(att)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if p.IsPDF() {
		t.Error("DOCX preview must not carry a PDF copy")
	}
	if len(p.Placeholder) == 0 {
		t.Error("expected placeholder lines for DOCX")
	}
}
