// Package encode turns acquired document bytes into the ordered parts of an
// extraction request.
package encode

// Part is one element of the multimodal extraction request. Exactly three
// shapes exist: binary content, plain text, and a rejected placeholder.
type Part interface {
	isPart()
}

// BinaryPart carries raw document bytes submitted natively to the model.
type BinaryPart struct {
	Data     []byte
	MIMEType string
}

// TextPart carries plain text: extracted document content or a
// document-boundary marker.
type TextPart struct {
	Text string
}

// RejectedPart marks a file whose content could not be included. It
// contributes no document content but is surfaced to the model as an
// informational notice and accounted for in logs.
type RejectedPart struct {
	Filename string
	Reason   string
}

func (BinaryPart) isPart()   {}
func (TextPart) isPart()     {}
func (RejectedPart) isPart() {}
