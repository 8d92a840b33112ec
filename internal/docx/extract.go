// Package docx extracts plain text from Word-processor documents so they can
// be submitted to the extraction model as text parts. DOCX files are OOXML
// ZIP containers; the document body lives in word/document.xml.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Extract returns the readable text of a DOCX document: body paragraphs
// joined with blank lines, followed by table rows flattened to
// pipe-delimited cell text.
//
// Legacy binary .doc files are not ZIP containers and fail here with a
// container error; callers degrade those files to a rejected placeholder.
func Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid OOXML container: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in container")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document body: %w", err)
	}
	defer func() { _ = rc.Close() }()

	paragraphs, tableRows, err := parseBody(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse document body: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(paragraphs, "\n\n"))
	if len(tableRows) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.Join(tableRows, "\n"))
	}
	return strings.TrimSpace(sb.String()), nil
}

// parseBody walks the document token stream collecting top-level paragraph
// text and table rows. Paragraphs nested inside table cells belong to their
// row, not to the paragraph list.
func parseBody(r io.Reader) (paragraphs []string, tableRows []string, err error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "p":
			text, err := collectText(dec, start.Name.Local)
			if err != nil {
				return nil, nil, err
			}
			if strings.TrimSpace(text) != "" {
				paragraphs = append(paragraphs, strings.TrimSpace(text))
			}
		case "tbl":
			rows, err := collectTable(dec)
			if err != nil {
				return nil, nil, err
			}
			tableRows = append(tableRows, rows...)
		}
	}
	return paragraphs, tableRows, nil
}

// collectText concatenates every w:t run until the named element closes.
// Line breaks and tabs inside runs become single spaces.
func collectText(dec *xml.Decoder, closing string) (string, error) {
	var sb strings.Builder
	depth := 1
	inText := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == closing {
				depth++
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "br", "tab":
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Local == closing {
				depth--
			}
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// collectTable flattens each w:tr into "cell | cell | cell".
func collectTable(dec *xml.Decoder) ([]string, error) {
	var rows []string
	var cells []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tr":
				cells = nil
			case "tc":
				text, err := collectText(dec, "tc")
				if err != nil {
					return nil, err
				}
				cells = append(cells, strings.TrimSpace(text))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tr":
				if len(cells) > 0 {
					rows = append(rows, strings.Join(cells, " | "))
				}
			case "tbl":
				return rows, nil
			}
		}
	}
}
