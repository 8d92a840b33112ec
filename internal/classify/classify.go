// Package classify decides how each uploaded document is encoded for the
// extraction request based on its filename extension.
package classify

import (
	"path/filepath"
	"strings"
)

// Strategy is the encoding route chosen for a document.
type Strategy int

const (
	// NativeUpload submits the raw bytes as a multimodal binary part.
	NativeUpload Strategy = iota
	// TextExtractRequired routes the document through text extraction first.
	TextExtractRequired
	// Unsupported excludes the document's content from the request.
	Unsupported
)

// String returns the strategy name for logs.
func (s Strategy) String() string {
	switch s {
	case NativeUpload:
		return "native"
	case TextExtractRequired:
		return "text-extract"
	default:
		return "unsupported"
	}
}

// Classification pairs a strategy with the resolved MIME type.
// MIMEType is only set for NativeUpload.
type Classification struct {
	Strategy Strategy
	MIMEType string
}

// nativeMIMETypes maps extensions the model accepts directly as binary input.
var nativeMIMETypes = map[string]string{
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"csv":  "text/csv",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// wordProcessorExts are handled by text extraction rather than native upload.
var wordProcessorExts = map[string]bool{
	"doc":  true,
	"docx": true,
}

// File classifies a filename. It is total: any filename, including one with
// no extension at all, yields exactly one classification.
func File(filename string) Classification {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	if mime, ok := nativeMIMETypes[ext]; ok {
		return Classification{Strategy: NativeUpload, MIMEType: mime}
	}
	if wordProcessorExts[ext] {
		return Classification{Strategy: TextExtractRequired}
	}
	return Classification{Strategy: Unsupported}
}
