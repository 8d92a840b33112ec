package shred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-shredder/internal/types"
)

func strPtr(s string) *string { return &s }

func TestNormalize_FencedEmptyResponse(t *testing.T) {
	raw := "```json\n{\"project_metadata\":{},\"submission_requirements\":[]}\n```"

	result, err := Normalize(raw, types.SchemaBasic)
	require.NoError(t, err)

	assert.Nil(t, result.ProjectMetadata.ProjectName)
	assert.Nil(t, result.ProjectMetadata.IssuerName)
	assert.Nil(t, result.ProjectMetadata.DueDate)
	require.NotNil(t, result.SubmissionRequirements)
	assert.Empty(t, result.SubmissionRequirements)
	assert.Nil(t, result.PursuitDetails)
	assert.Nil(t, result.ProductionDetails)
}

func TestNormalize_KeySparseResponseFullyDefaulted(t *testing.T) {
	result, err := Normalize(`{}`, types.SchemaBasic)
	require.NoError(t, err)

	assert.Equal(t, types.ProjectMetadata{}, result.ProjectMetadata)
	require.NotNil(t, result.SubmissionRequirements)
	assert.Empty(t, result.SubmissionRequirements)
}

func TestNormalize_ExtendedMissingSubtreesBecomeNullRecords(t *testing.T) {
	result, err := Normalize(`{"project_metadata":{"project_name":"Cloud RFP"}}`, types.SchemaExtended)
	require.NoError(t, err)

	require.NotNil(t, result.PursuitDetails)
	assert.Nil(t, result.PursuitDetails.CustomerAddress)
	assert.Nil(t, result.PursuitDetails.ContactInfo)
	assert.Nil(t, result.PursuitDetails.FinalApprover)
	assert.Nil(t, result.PursuitDetails.Signer)
	assert.Nil(t, result.PursuitDetails.Source)

	require.NotNil(t, result.ProductionDetails)
	assert.Nil(t, result.ProductionDetails.SubmissionFormat)
	assert.Nil(t, result.ProductionDetails.Source)
}

func TestNormalize_PartialSubtreeKeepsPresentLeaves(t *testing.T) {
	raw := `{
		"pursuit_details": {
			"final_approver": "CIO",
			"source": {"source_file": "a.pdf"}
		},
		"submission_requirements": []
	}`

	result, err := Normalize(raw, types.SchemaExtended)
	require.NoError(t, err)

	require.NotNil(t, result.PursuitDetails)
	assert.Equal(t, strPtr("CIO"), result.PursuitDetails.FinalApprover)
	assert.Nil(t, result.PursuitDetails.Signer)
	require.NotNil(t, result.PursuitDetails.Source)
	assert.Equal(t, strPtr("a.pdf"), result.PursuitDetails.Source.SourceFile)
	assert.Nil(t, result.PursuitDetails.Source.SourceLocation)
	assert.Nil(t, result.PursuitDetails.Source.ConfidenceScore)
}

func TestNormalize_BasicSchemaIgnoresExtendedSubtrees(t *testing.T) {
	// A basic-version batch never surfaces extended records, even if the
	// model volunteers them.
	raw := `{"pursuit_details": {"signer": "CEO"}, "submission_requirements": []}`

	result, err := Normalize(raw, types.SchemaBasic)
	require.NoError(t, err)
	assert.Nil(t, result.PursuitDetails)
	assert.Nil(t, result.ProductionDetails)
}

func TestNormalize_RequirementsWithMultipleMentions(t *testing.T) {
	raw := `{
		"project_metadata": {
			"project_name": "Cloud Infrastructure Services RFP",
			"issuer_name": "Department of Technology",
			"due_date": "2024-03-15T17:00:00Z"
		},
		"submission_requirements": [{
			"response_item_name": "Provide Company Financial Statements",
			"description": "Audited statements for the past 3 years",
			"is_required": true,
			"mentions": [
				{"source_file": "RFP_Main.pdf", "source_location": "Section 4.2, Page 15", "confidence_score": "high"},
				{"source_file": "Appendix_B.pdf", "source_location": "Page 2, Item 7", "confidence_score": null}
			]
		}]
	}`

	result, err := Normalize(raw, types.SchemaBasic)
	require.NoError(t, err)

	assert.Equal(t, strPtr("Cloud Infrastructure Services RFP"), result.ProjectMetadata.ProjectName)
	assert.Equal(t, strPtr("2024-03-15T17:00:00Z"), result.ProjectMetadata.DueDate)

	require.Len(t, result.SubmissionRequirements, 1)
	req := result.SubmissionRequirements[0]
	assert.True(t, req.IsRequired)
	require.Len(t, req.Mentions, 2)
	assert.Equal(t, strPtr(types.ConfidenceHigh), req.Mentions[0].ConfidenceScore)
	assert.Nil(t, req.Mentions[1].ConfidenceScore)
}

func TestNormalize_DueDateReformattedToUTC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already UTC", "2024-03-15T17:00:00Z", "2024-03-15T17:00:00Z"},
		{"offset converted", "2024-03-15T10:00:00-07:00", "2024-03-15T17:00:00Z"},
		{"bare date", "2024-03-15", "2024-03-15T00:00:00Z"},
		{"written out", "March 15, 2024", "2024-03-15T00:00:00Z"},
		{"unparseable passes through", "mid-March 2024", "mid-March 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"project_metadata":{"due_date":"` + tt.input + `"}}`
			result, err := Normalize(raw, types.SchemaBasic)
			require.NoError(t, err)
			require.NotNil(t, result.ProjectMetadata.DueDate)
			assert.Equal(t, tt.want, *result.ProjectMetadata.DueDate)
		})
	}
}

func TestNormalize_InvalidJSONIsFatal(t *testing.T) {
	_, err := Normalize("I could not find any requirements, sorry!", types.SchemaBasic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestNormalize_SchemaViolationIsFatal(t *testing.T) {
	raw := `{"submission_requirements":[{"response_item_name":"X","description":"Y","is_required":true,"mentions":[]}]}`
	_, err := Normalize(raw, types.SchemaBasic)
	require.Error(t, err)
}
