package shred

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-shredder/internal/encode"
	"github.com/jonathan/rfp-shredder/internal/types"
)

// fakeFetcher serves canned bytes per locator and fails everything else.
type fakeFetcher struct {
	files map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, locator string) ([]byte, string, error) {
	data, ok := f.files[locator]
	if !ok {
		return nil, "", errors.New("object not found")
	}
	parts := strings.Split(locator, "/")
	return data, parts[len(parts)-1], nil
}

// fakeExtractor records what it was asked and returns a canned response.
type fakeExtractor struct {
	calls       int
	instruction string
	parts       []encode.Part
	response    string
	err         error
}

func (f *fakeExtractor) Extract(_ context.Context, instruction string, parts []encode.Part) (string, error) {
	f.calls++
	f.instruction = instruction
	f.parts = parts
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeExtractor) Model() string { return "fake-model" }
func (f *fakeExtractor) Close() error  { return nil }

const emptyResponse = `{"project_metadata":{},"submission_requirements":[]}`

func TestRun_MixedBatchSingleExtractionCall(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string][]byte{
		"gs://docs/rfp_main.pdf": []byte("%PDF-1.7"),
		"gs://docs/workbook.xls": []byte("binary"),
	}}
	extractor := &fakeExtractor{response: emptyResponse}
	s := New(fetcher, nil, extractor)

	result, err := s.Run(context.Background(), BatchRequest{
		OrgID:  "org-1",
		Schema: types.SchemaBasic,
		Files: []FileDescriptor{
			{FileID: "f1", Filename: "rfp_main.pdf", Locator: "gs://docs/rfp_main.pdf"},
			{FileID: "f2", Filename: "workbook.xls", Locator: "gs://docs/workbook.xls"},
		},
	})
	require.NoError(t, err)

	// Exactly one extraction call for the whole batch.
	assert.Equal(t, 1, extractor.calls)

	// The PDF travels natively, the spreadsheet as a rejection notice.
	var sawBinary, sawRejected bool
	for _, p := range extractor.parts {
		switch p := p.(type) {
		case encode.BinaryPart:
			sawBinary = true
			assert.Equal(t, "application/pdf", p.MIMEType)
		case encode.RejectedPart:
			sawRejected = true
			assert.Equal(t, "workbook.xls", p.Filename)
			assert.Contains(t, p.Reason, "not supported")
		}
	}
	assert.True(t, sawBinary, "expected a native binary part for the PDF")
	assert.True(t, sawRejected, "expected a rejected placeholder for the spreadsheet")

	// The result reflects only what the service extracted.
	require.NotNil(t, result.SubmissionRequirements)
	assert.Empty(t, result.SubmissionRequirements)
}

func TestRun_AllFetchesFailed(t *testing.T) {
	fetcher := &fakeFetcher{files: nil}
	extractor := &fakeExtractor{response: emptyResponse}
	s := New(fetcher, nil, extractor)

	for _, count := range []int{1, 50} {
		files := make([]FileDescriptor, count)
		for i := range files {
			files[i] = FileDescriptor{FileID: "f", Filename: "x.pdf", Locator: "gs://missing/x.pdf"}
		}

		_, err := s.Run(context.Background(), BatchRequest{OrgID: "org-1", Schema: types.SchemaBasic, Files: files})
		require.ErrorIs(t, err, ErrNoUsableFiles, "batch of %d", count)
		assert.Zero(t, extractor.calls, "no extraction call when nothing was acquired")
	}
}

func TestRun_PartialFetchFailureDropsFileOnly(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string][]byte{
		"gs://docs/rfp_main.pdf": []byte("%PDF-1.7"),
	}}
	extractor := &fakeExtractor{response: emptyResponse}
	s := New(fetcher, nil, extractor)

	_, err := s.Run(context.Background(), BatchRequest{
		OrgID:  "org-1",
		Schema: types.SchemaBasic,
		Files: []FileDescriptor{
			{FileID: "f1", Filename: "rfp_main.pdf", Locator: "gs://docs/rfp_main.pdf"},
			{FileID: "f2", Filename: "gone.pdf", Locator: "gs://docs/gone.pdf"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, extractor.calls)

	// Only the acquired file contributes parts.
	for _, p := range extractor.parts {
		if text, ok := p.(encode.TextPart); ok {
			assert.NotContains(t, text.Text, "gone.pdf")
		}
	}
}

func TestRun_InstructionMatchesSchemaVersion(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string][]byte{"gs://d/a.pdf": []byte("%PDF")}}
	extractor := &fakeExtractor{response: emptyResponse}
	s := New(fetcher, nil, extractor)

	_, err := s.Run(context.Background(), BatchRequest{
		OrgID:  "org-1",
		Schema: types.SchemaExtended,
		Files:  []FileDescriptor{{FileID: "f1", Filename: "a.pdf", Locator: "gs://d/a.pdf"}},
	})
	require.NoError(t, err)
	assert.Contains(t, extractor.instruction, "Pursuit Details")
	assert.Contains(t, extractor.instruction, "production_details")
}

func TestRun_ExtractionErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string][]byte{"gs://d/a.pdf": []byte("%PDF")}}
	boom := errors.New("service unavailable")
	s := New(fetcher, nil, &fakeExtractor{err: boom})

	_, err := s.Run(context.Background(), BatchRequest{
		OrgID:  "org-1",
		Schema: types.SchemaBasic,
		Files:  []FileDescriptor{{FileID: "f1", Filename: "a.pdf", Locator: "gs://d/a.pdf"}},
	})
	require.ErrorIs(t, err, boom)
}

func TestRun_MalformedResponseIsTerminal(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string][]byte{"gs://d/a.pdf": []byte("%PDF")}}
	s := New(fetcher, nil, &fakeExtractor{response: "no json here"})

	_, err := s.Run(context.Background(), BatchRequest{
		OrgID:  "org-1",
		Schema: types.SchemaBasic,
		Files:  []FileDescriptor{{FileID: "f1", Filename: "a.pdf", Locator: "gs://d/a.pdf"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalize")
}
