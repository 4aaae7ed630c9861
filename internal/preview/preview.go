// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview validates composer attachments and renders the document
// preview pane.
//
// PDFs are copied to a transient temp file so an external viewer can open
// them; the copy is removed when the pane closes. DOCX files get a
// placeholder, the document is still fully usable for questions.
package preview

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/insightpaper/insight-tui/internal/model"
)

// Validation errors. The user-facing text lives in Message.
var (
	ErrUnsupportedType = errors.New("unsupported attachment type")
	ErrTooLarge        = errors.New("attachment exceeds size limit")
	ErrUnreadable      = errors.New("attachment not readable")
)

// User-facing validation strings.
const (
	MsgUnsupportedType = "Please upload only PDF or DOCX files."
	MsgTooLarge        = "File size exceeds 10MB limit."
	MsgPreviewFailed   = "Error reading file"
)

// Placeholder lines shown in the preview pane for DOCX documents.
var docxPlaceholder = []string{
	"Preview not available for DOCX files",
	"You can still ask questions about this document",
}

// Message maps a validation error to the banner text shown in the composer.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return MsgUnsupportedType
	case errors.Is(err, ErrTooLarge):
		return MsgTooLarge
	default:
		return MsgPreviewFailed
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks a local file against the upload rules and returns the
// attachment on success. Rejections carry ErrUnsupportedType or ErrTooLarge;
// a rejected file is never staged.
func Validate(path string) (*model.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: is a directory", ErrUnreadable)
	}

	att := model.NewAttachment(path, info.Size())
	if att.MIME == "" {
		return nil, ErrUnsupportedType
	}
	if att.Size > model.MaxAttachmentSize {
		return nil, ErrTooLarge
	}
	return att, nil
}

// =============================================================================
// PREVIEW PANE
// =============================================================================

// Preview is the content of an open preview pane.
type Preview struct {
	// Name is the document's display name (pane header).
	Name string

	// PDFPath, when non-empty, is a transient copy of the PDF for an
	// external viewer. Owned by this preview; removed on Release.
	PDFPath string

	// Placeholder holds the pane body for formats with no inline preview.
	Placeholder []string
}

// IsPDF reports whether this preview carries a transient PDF copy.
func (p *Preview) IsPDF() bool {
	return p.PDFPath != ""
}

// Render builds the preview for a staged attachment.
func Render(att *model.Attachment) (*Preview, error) {
	switch {
	case att.IsPDF():
		tmpPath, err := copyToTemp(att.Path)
		if err != nil {
			return nil, err
		}
		return &Preview{Name: att.Name, PDFPath: tmpPath}, nil
	case att.IsDOCX():
		return &Preview{Name: att.Name, Placeholder: docxPlaceholder}, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// Release removes the transient PDF copy, if any. Safe to call twice.
func (p *Preview) Release() error {
	if p.PDFPath == "" {
		return nil
	}
	err := os.Remove(p.PDFPath)
	p.PDFPath = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// copyToTemp writes a private copy of the document to the temp directory.
func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "insight-preview-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create preview copy: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to copy document: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to finalize preview copy: %w", err)
	}
	return dst.Name(), nil
}
