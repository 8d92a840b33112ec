// Package types defines the shared data structures passed between the
// shredding pipeline, the HTTP server, and the CLI.
package types

import "fmt"

// SchemaVersion selects the output contract for a batch.
type SchemaVersion string

const (
	// SchemaBasic extracts project metadata and submission requirements.
	SchemaBasic SchemaVersion = "basic"
	// SchemaExtended adds pursuit and production details.
	SchemaExtended SchemaVersion = "extended"
)

// ParseSchemaVersion validates a schema version string. The empty string
// maps to the given default.
func ParseSchemaVersion(s string, def SchemaVersion) (SchemaVersion, error) {
	switch SchemaVersion(s) {
	case "":
		return def, nil
	case SchemaBasic:
		return SchemaBasic, nil
	case SchemaExtended:
		return SchemaExtended, nil
	default:
		return "", fmt.Errorf("unknown schema version %q (expected %q or %q)", s, SchemaBasic, SchemaExtended)
	}
}

// Confidence levels reported by the extraction model for a mention.
// Absence (nil) means the model was very uncertain.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// ProjectMetadata holds the top-level project fields. Leaves are nil when
// the documents did not state them; the record itself is always present.
type ProjectMetadata struct {
	ProjectName *string `json:"projectName"`
	IssuerName  *string `json:"issuerName"`
	DueDate     *string `json:"dueDate"`
}

// SourceRef points at where a detail was found.
type SourceRef struct {
	SourceFile      *string `json:"sourceFile"`
	SourceLocation  *string `json:"sourceLocation"`
	ConfidenceScore *string `json:"confidenceScore"`
}

// PursuitDetails is the extended-schema record describing who the proposal
// is for and who signs off on it. All five leaves are present in output,
// nil when unknown.
type PursuitDetails struct {
	CustomerAddress *string    `json:"customerAddress"`
	ContactInfo     *string    `json:"contactInfo"`
	FinalApprover   *string    `json:"finalApprover"`
	Signer          *string    `json:"signer"`
	Source          *SourceRef `json:"source"`
}

// ProductionDetails is the extended-schema record describing how the
// response must be produced and delivered.
type ProductionDetails struct {
	SubmissionFormat    *string    `json:"submissionFormat"`
	FileRequirements    *string    `json:"fileRequirements"`
	PrintRequirements   *string    `json:"printRequirements"`
	DeliveryMethod      *string    `json:"deliveryMethod"`
	SpecialInstructions *string    `json:"specialInstructions"`
	Source              *SourceRef `json:"source"`
}

// Mention is one occurrence of a requirement in a specific source document.
type Mention struct {
	SourceFile      string  `json:"sourceFile"`
	SourceLocation  string  `json:"sourceLocation"`
	ConfidenceScore *string `json:"confidenceScore"`
}

// SubmissionRequirement is one semantically distinct item proposers must
// submit. A requirement found in several places carries several mentions;
// it is never duplicated.
type SubmissionRequirement struct {
	ResponseItemName string    `json:"responseItemName"`
	Description      string    `json:"description"`
	IsRequired       bool      `json:"isRequired"`
	Mentions         []Mention `json:"mentions"`
}

// ExtractionResult is the pipeline's sole output. PursuitDetails and
// ProductionDetails are set only under the extended schema;
// SubmissionRequirements is never nil.
type ExtractionResult struct {
	ProjectMetadata        ProjectMetadata         `json:"projectMetadata"`
	PursuitDetails         *PursuitDetails         `json:"pursuitDetails,omitempty"`
	ProductionDetails      *ProductionDetails      `json:"productionDetails,omitempty"`
	SubmissionRequirements []SubmissionRequirement `json:"submissionRequirements"`
}
