package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-shredder/internal/schemas"
	"github.com/jonathan/rfp-shredder/internal/types"
)

func TestBuildInstruction_Basic(t *testing.T) {
	got := BuildInstruction(types.SchemaBasic)

	assert.Contains(t, got, "RFP Analyst")
	assert.Contains(t, got, "DE-DUPLICATION")
	assert.Contains(t, got, "Return ONLY the JSON object")
	assert.NotContains(t, got, "Pursuit Details")
	assert.NotContains(t, got, "pursuit_details")
}

func TestBuildInstruction_Extended(t *testing.T) {
	got := BuildInstruction(types.SchemaExtended)

	assert.Contains(t, got, "Pursuit Details")
	assert.Contains(t, got, "Production Details")
	assert.Contains(t, got, "pursuit_details")
	assert.Contains(t, got, "production_details")
}

func TestBuildInstruction_Deterministic(t *testing.T) {
	assert.Equal(t, BuildInstruction(types.SchemaBasic), BuildInstruction(types.SchemaBasic))
	assert.Equal(t, BuildInstruction(types.SchemaExtended), BuildInstruction(types.SchemaExtended))
}

// The worked example shown to the model must satisfy the response schema the
// pipeline later validates against, so prompt and schema cannot drift.
func TestExampleOutputsSatisfyResponseSchemas(t *testing.T) {
	tests := []struct {
		name    string
		version types.SchemaVersion
		example string
	}{
		{"basic", types.SchemaBasic, exampleOutputBasic},
		{"extended", types.SchemaExtended, exampleOutputExtended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, schemas.Validate(tt.version, []byte(tt.example)))
		})
	}
}

// The extended example must also satisfy the basic schema: a basic-version
// batch tolerates (and ignores) volunteered extended subtrees.
func TestExtendedExampleSatisfiesBasicSchema(t *testing.T) {
	require.NoError(t, schemas.Validate(types.SchemaBasic, []byte(exampleOutputExtended)))
}

func TestInstructionEndsWithAnalysisCue(t *testing.T) {
	for _, version := range []types.SchemaVersion{types.SchemaBasic, types.SchemaExtended} {
		got := BuildInstruction(version)
		assert.True(t, strings.HasSuffix(got, "according to these instructions."), "version %s", version)
	}
}
