/*
Package datastore defines the storage interfaces used by the daily note workflow.

	type NoteStore interface {
	    Exists(ctx context.Context, title string) (bool, error)
	    Create(ctx context.Context, note storagemodels.NoteProperties) error
	}

	type Claimer interface {
	    Claim(ctx context.Context, note storagemodels.NoteProperties, traceID string) error
	    Release(ctx context.Context, note storagemodels.NoteProperties) error
	}

Implementations:
  - notion: NoteStore backed by a Notion database
  - ddb: Claimer backed by a DynamoDB conditional put
  - mock: In-memory recording implementations for testing

Exists followed by Create is a check-then-act sequence. Without a Claimer two
concurrent invocations can both observe "not found" and both create a note.
*/
package datastore
