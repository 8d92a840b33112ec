package encode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/rfp-shredder/internal/classify"
	"github.com/jonathan/rfp-shredder/internal/docx"
)

// TextExtractor converts word-processor document bytes to plain text.
type TextExtractor func(data []byte) (string, error)

// Encoder produces extraction-request parts from acquired files. It holds no
// state across calls and retains no document bytes.
type Encoder struct {
	extractText TextExtractor
}

// New creates an Encoder. A nil extractor uses the built-in DOCX extraction.
func New(extractText TextExtractor) *Encoder {
	if extractText == nil {
		extractText = docx.Extract
	}
	return &Encoder{extractText: extractText}
}

// File encodes one document. Every file yields at least one part; files
// whose content cannot be included degrade to a RejectedPart rather than
// failing the batch.
func (e *Encoder) File(filename string, data []byte) []Part {
	c := classify.File(filename)

	switch c.Strategy {
	case classify.NativeUpload:
		return []Part{
			BinaryPart{Data: data, MIMEType: c.MIMEType},
			TextPart{Text: fmt.Sprintf("\n\n--- End of document: %s ---\n\n", filename)},
		}

	case classify.TextExtractRequired:
		text, err := e.extractText(data)
		if err != nil {
			return []Part{RejectedPart{
				Filename: filename,
				Reason:   fmt.Sprintf("text extraction failed (%v); please convert to PDF or DOCX", err),
			}}
		}
		return []Part{TextPart{
			Text: fmt.Sprintf("\n\n--- Document: %s ---\n\n%s\n\n--- End of document: %s ---\n\n", filename, text, filename),
		}}

	default:
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
		if ext == "" {
			ext = "unknown"
		}
		return []Part{RejectedPart{
			Filename: filename,
			Reason:   fmt.Sprintf("file format %q is not supported; please convert to PDF, DOCX, or plain text", ext),
		}}
	}
}
