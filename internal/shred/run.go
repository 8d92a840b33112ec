package shred

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rfp-shredder/internal/encode"
	"github.com/jonathan/rfp-shredder/internal/llm"
	"github.com/jonathan/rfp-shredder/internal/storage"
	"github.com/jonathan/rfp-shredder/internal/types"
)

// ErrNoUsableFiles is returned when every file in a batch failed
// acquisition.
var ErrNoUsableFiles = errors.New("no files could be processed")

// acquireConcurrency bounds parallel file downloads per batch.
const acquireConcurrency = 4

// FileDescriptor identifies one input document. Owned by the caller;
// read-only here.
type FileDescriptor struct {
	FileID   string
	Filename string
	Locator  string
}

// BatchRequest is one shredding batch over a set of related documents.
type BatchRequest struct {
	Files  []FileDescriptor
	OrgID  string
	Schema types.SchemaVersion
}

// Shredder runs batches end to end. It holds no state across batches; all
// collaborators are injected at construction.
type Shredder struct {
	fetcher   storage.Fetcher
	encoder   *encode.Encoder
	extractor llm.Extractor
}

// New creates a Shredder. A nil encoder uses the default document encoder.
func New(fetcher storage.Fetcher, encoder *encode.Encoder, extractor llm.Extractor) *Shredder {
	if encoder == nil {
		encoder = encode.New(nil)
	}
	return &Shredder{fetcher: fetcher, encoder: encoder, extractor: extractor}
}

// acquired is the per-file acquisition outcome: either usable bytes or a
// drop reason. Explicit outcomes keep one file's failure from aborting the
// batch.
type acquired struct {
	desc    FileDescriptor
	name    string
	data    []byte
	dropped string
}

// Run executes one batch: Acquiring, Encoding, Invoking, Normalizing.
// Individual fetch failures drop the file; everything after acquisition
// either fully succeeds or fails the batch.
func (s *Shredder) Run(ctx context.Context, req BatchRequest) (*types.ExtractionResult, error) {
	batchID := uuid.New().String()[:8]
	log.Printf("[batch %s] shredding %d files for org %s (%s schema)",
		batchID, len(req.Files), req.OrgID, req.Schema)

	files := s.acquire(ctx, batchID, req.Files)

	usable := files[:0]
	for _, f := range files {
		if f.dropped == "" {
			usable = append(usable, f)
		}
	}
	if len(usable) == 0 {
		log.Printf("[batch %s] all %d files failed acquisition", batchID, len(req.Files))
		return nil, ErrNoUsableFiles
	}

	var parts []encode.Part
	var rejected int
	for _, f := range usable {
		fileParts := s.encoder.File(f.name, f.data)
		for _, p := range fileParts {
			if rej, ok := p.(encode.RejectedPart); ok {
				rejected++
				log.Printf("[batch %s] %s rejected: %s", batchID, rej.Filename, rej.Reason)
			}
		}
		parts = append(parts, fileParts...)
	}
	log.Printf("[batch %s] encoded %d files (%d rejected)", batchID, len(usable), rejected)

	raw, err := s.extractor.Extract(ctx, llm.BuildInstruction(req.Schema), parts)
	if err != nil {
		return nil, err
	}

	result, err := Normalize(raw, req.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize extraction response: %w", err)
	}

	log.Printf("[batch %s] done: %d requirements extracted", batchID, len(result.SubmissionRequirements))
	return result, nil
}

// acquire fetches every file's bytes in parallel. A failed fetch records a
// drop reason for its own slot and never cancels sibling downloads.
func (s *Shredder) acquire(ctx context.Context, batchID string, files []FileDescriptor) []acquired {
	results := make([]acquired, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(acquireConcurrency)
	for i, desc := range files {
		i, desc := i, desc
		g.Go(func() error {
			data, fetchedName, err := s.fetcher.Fetch(ctx, desc.Locator)
			if err != nil {
				log.Printf("[batch %s] dropping %s: %v", batchID, desc.Filename, err)
				results[i] = acquired{desc: desc, dropped: err.Error()}
				return nil
			}

			name := desc.Filename
			if name == "" {
				name = fetchedName
			}
			results[i] = acquired{desc: desc, name: name, data: data}
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes above.
	_ = g.Wait()

	return results
}
