// Package shred drives one document-shredding batch: acquire files, encode
// them, invoke the extraction model once, and normalize its response into a
// fully-defaulted result.
package shred

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/rfp-shredder/internal/llm"
	"github.com/jonathan/rfp-shredder/internal/schemas"
	"github.com/jonathan/rfp-shredder/internal/types"
)

// Raw response shapes: the model emits snake_case keys with any optional
// subtree possibly missing. The canonical camelCase types in
// internal/types never have missing subtrees.

type rawResponse struct {
	ProjectMetadata        *rawMetadata     `json:"project_metadata"`
	PursuitDetails         *rawPursuit      `json:"pursuit_details"`
	ProductionDetails      *rawProduction   `json:"production_details"`
	SubmissionRequirements []rawRequirement `json:"submission_requirements"`
}

type rawMetadata struct {
	ProjectName *string `json:"project_name"`
	IssuerName  *string `json:"issuer_name"`
	DueDate     *string `json:"due_date"`
}

type rawSource struct {
	SourceFile      *string `json:"source_file"`
	SourceLocation  *string `json:"source_location"`
	ConfidenceScore *string `json:"confidence_score"`
}

type rawPursuit struct {
	CustomerAddress *string    `json:"customer_address"`
	ContactInfo     *string    `json:"contact_info"`
	FinalApprover   *string    `json:"final_approver"`
	Signer          *string    `json:"signer"`
	Source          *rawSource `json:"source"`
}

type rawProduction struct {
	SubmissionFormat    *string    `json:"submission_format"`
	FileRequirements    *string    `json:"file_requirements"`
	PrintRequirements   *string    `json:"print_requirements"`
	DeliveryMethod      *string    `json:"delivery_method"`
	SpecialInstructions *string    `json:"special_instructions"`
	Source              *rawSource `json:"source"`
}

type rawRequirement struct {
	ResponseItemName string       `json:"response_item_name"`
	Description      string       `json:"description"`
	IsRequired       bool         `json:"is_required"`
	Mentions         []rawMention `json:"mentions"`
}

type rawMention struct {
	SourceFile      string  `json:"source_file"`
	SourceLocation  string  `json:"source_location"`
	ConfidenceScore *string `json:"confidence_score"`
}

// Normalize turns the raw response text into a canonical ExtractionResult:
// strip an optional code fence, parse, validate the shape for the schema
// version, then default every absent optional subtree so callers never
// branch on missing keys. Parse and shape failures are fatal for the batch;
// no lenient repair is attempted.
func Normalize(raw string, version types.SchemaVersion) (*types.ExtractionResult, error) {
	text := []byte(llm.StripJSONFence(raw))

	if !json.Valid(text) {
		return nil, fmt.Errorf("extraction response is not valid JSON")
	}
	if err := schemas.Validate(version, text); err != nil {
		return nil, err
	}

	var doc rawResponse
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	result := &types.ExtractionResult{
		ProjectMetadata:        normalizeMetadata(doc.ProjectMetadata),
		SubmissionRequirements: normalizeRequirements(doc.SubmissionRequirements),
	}
	if version == types.SchemaExtended {
		result.PursuitDetails = normalizePursuit(doc.PursuitDetails)
		result.ProductionDetails = normalizeProduction(doc.ProductionDetails)
	}
	return result, nil
}

func normalizeMetadata(m *rawMetadata) types.ProjectMetadata {
	if m == nil {
		return types.ProjectMetadata{}
	}
	return types.ProjectMetadata{
		ProjectName: m.ProjectName,
		IssuerName:  m.IssuerName,
		DueDate:     normalizeDueDate(m.DueDate),
	}
}

func normalizePursuit(p *rawPursuit) *types.PursuitDetails {
	if p == nil {
		return &types.PursuitDetails{}
	}
	return &types.PursuitDetails{
		CustomerAddress: p.CustomerAddress,
		ContactInfo:     p.ContactInfo,
		FinalApprover:   p.FinalApprover,
		Signer:          p.Signer,
		Source:          normalizeSource(p.Source),
	}
}

func normalizeProduction(p *rawProduction) *types.ProductionDetails {
	if p == nil {
		return &types.ProductionDetails{}
	}
	return &types.ProductionDetails{
		SubmissionFormat:    p.SubmissionFormat,
		FileRequirements:    p.FileRequirements,
		PrintRequirements:   p.PrintRequirements,
		DeliveryMethod:      p.DeliveryMethod,
		SpecialInstructions: p.SpecialInstructions,
		Source:              normalizeSource(p.Source),
	}
}

func normalizeSource(s *rawSource) *types.SourceRef {
	if s == nil {
		return nil
	}
	return &types.SourceRef{
		SourceFile:      s.SourceFile,
		SourceLocation:  s.SourceLocation,
		ConfidenceScore: s.ConfidenceScore,
	}
}

// normalizeRequirements maps the raw list, defaulting absence to an empty
// slice so downstream iteration never nil-checks.
func normalizeRequirements(raw []rawRequirement) []types.SubmissionRequirement {
	out := make([]types.SubmissionRequirement, 0, len(raw))
	for _, r := range raw {
		mentions := make([]types.Mention, 0, len(r.Mentions))
		for _, m := range r.Mentions {
			mentions = append(mentions, types.Mention{
				SourceFile:      m.SourceFile,
				SourceLocation:  m.SourceLocation,
				ConfidenceScore: m.ConfidenceScore,
			})
		}
		out = append(out, types.SubmissionRequirement{
			ResponseItemName: r.ResponseItemName,
			Description:      r.Description,
			IsRequired:       r.IsRequired,
			Mentions:         mentions,
		})
	}
	return out
}

// dueDateLayouts are tried in order when the model emits something other
// than the requested ISO 8601 form.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// normalizeDueDate reformats a parseable due date to RFC 3339 UTC.
// Unparseable strings pass through untouched; correctness of the value is
// the model's contract, only the format is normalized here.
func normalizeDueDate(s *string) *string {
	if s == nil || *s == "" {
		return s
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			formatted := t.UTC().Format(time.RFC3339)
			return &formatted
		}
	}
	return s
}
