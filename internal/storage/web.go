package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultWebTimeout bounds a single document download.
const DefaultWebTimeout = 30 * time.Second

// webUserAgent identifies the service to procurement portals.
const webUserAgent = "Mozilla/5.0 (compatible; RFPShredder/1.0)"

// WebFetcher downloads documents from http(s) locators. Procurement portals
// often serve the RFP itself as an HTML page; those are reduced to readable
// text so the batch can carry them as plain-text documents. Non-HTML
// responses (direct PDF links and the like) pass through as raw bytes.
type WebFetcher struct {
	client    *http.Client
	userAgent string
}

// NewWebFetcher creates a web fetcher with the given timeout. A zero
// timeout uses DefaultWebTimeout.
func NewWebFetcher(timeout time.Duration) *WebFetcher {
	if timeout <= 0 {
		timeout = DefaultWebTimeout
	}
	return &WebFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: webUserAgent,
	}
}

// Fetch downloads one document. HTML responses are converted to text and
// given a .txt display name so downstream classification routes them as
// plain text.
func (f *WebFetcher) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	parsed, err := url.Parse(locator)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, "", &Error{Locator: locator, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, "", &Error{Locator: locator, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", &Error{Locator: locator, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &Error{Locator: locator, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Locator: locator, Message: "failed to read response body", Cause: err}
	}

	filename := path.Base(parsed.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "document"
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		text, err := htmlToText(string(body))
		if err != nil {
			return nil, "", &Error{Locator: locator, Message: "failed to parse HTML", Cause: err}
		}
		return []byte(text), strings.TrimSuffix(filename, path.Ext(filename)) + ".txt", nil
	}

	return body, filename, nil
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// htmlToText reduces an HTML page to its readable body text, dropping
// navigation and script noise.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup").Remove()

	content := doc.Find("body")
	if content.Length() == 0 {
		content = doc.Selection
	}

	lines := strings.Split(content.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text := strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
