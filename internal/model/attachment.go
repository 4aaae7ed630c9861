// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"path/filepath"
	"strings"
)

// MaxAttachmentSize is the largest document the composer accepts, in bytes.
const MaxAttachmentSize = 10 * 1024 * 1024

// MIME types accepted for document upload.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// Attachment describes a document staged in the composer for upload.
type Attachment struct {
	// Path is the location of the file on the local filesystem.
	Path string `json:"path"`
	// Name is the base file name sent to the server.
	Name string `json:"name"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// MIME is the detected content type (one of MIMEPDF, MIMEDOCX).
	MIME string `json:"mime"`
}

// NewAttachment builds an attachment for a local file path. The MIME type
// is derived from the extension; unknown extensions yield an empty MIME,
// which validation rejects.
func NewAttachment(path string, size int64) *Attachment {
	return &Attachment{
		Path: path,
		Name: filepath.Base(path),
		Size: size,
		MIME: MIMEForExtension(filepath.Ext(path)),
	}
}

// IsPDF reports whether the attachment is a PDF document.
func (a *Attachment) IsPDF() bool {
	return a.MIME == MIMEPDF
}

// IsDOCX reports whether the attachment is a Word document.
func (a *Attachment) IsDOCX() bool {
	return a.MIME == MIMEDOCX
}

// MIMEForExtension maps a file extension (with leading dot, any case) to
// the accepted MIME type, or "" when the extension is not supported.
func MIMEForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	default:
		return ""
	}
}
