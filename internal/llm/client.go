// Package llm provides the extraction-service client and the instruction
// payloads sent with each document batch.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/rfp-shredder/internal/encode"
)

// DefaultModel is the Gemini model used for document shredding.
const DefaultModel = "gemini-2.0-flash"

// Extractor is the extraction-service boundary. Given the instruction text
// and the encoded document parts, it performs exactly one generation call
// and returns the raw response text.
type Extractor interface {
	Extract(ctx context.Context, instruction string, parts []encode.Part) (string, error)
	Model() string
	Close() error
}

// GeminiClient implements Extractor against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini extraction client. An empty model name
// selects DefaultModel.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Extract sends one non-streaming multimodal request carrying the
// instruction followed by every encoded part, and returns the raw response
// text. Rejected parts are submitted as informational text, never as
// binary. Transport and service errors propagate unchanged; no retry is
// attempted here.
func (c *GeminiClient) Extract(ctx context.Context, instruction string, parts []encode.Part) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.2)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)
	// Procurement paperwork can trip content-safety heuristics (weapons
	// contracts, medical RFPs); all categories run unblocked.
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}

	resp, err := model.GenerateContent(ctx, buildParts(instruction, parts)...)
	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// buildParts maps encoded parts onto the wire request, instruction first.
func buildParts(instruction string, parts []encode.Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts)+1)
	out = append(out, genai.Text(instruction))
	for _, p := range parts {
		switch p := p.(type) {
		case encode.BinaryPart:
			out = append(out, genai.Blob{MIMEType: p.MIMEType, Data: p.Data})
		case encode.TextPart:
			out = append(out, genai.Text(p.Text))
		case encode.RejectedPart:
			out = append(out, genai.Text(fmt.Sprintf(
				"\n\n[Document %q was provided but could not be included: %s]\n\n",
				p.Filename, p.Reason)))
		}
	}
	return out
}

// extractTextFromResponse concatenates the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			texts = append(texts, string(text))
		}
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(texts, ""), nil
}
