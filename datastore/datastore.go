/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/dailynote/storagemodels"
)

// NoteStore is the remote database holding daily notes.
type NoteStore interface {
	// Exists reports whether a note titled exactly title is present.
	Exists(ctx context.Context, title string) (bool, error)

	// Create inserts one note. It is not idempotent.
	Create(ctx context.Context, note storagemodels.NoteProperties) error
}

// Claimer guards note creation for one day across concurrent invocations.
type Claimer interface {
	// Claim records ownership of note's day for traceID. It returns an
	// AlreadyClaimedError when another invocation holds the day.
	Claim(ctx context.Context, note storagemodels.NoteProperties, traceID string) error

	// Release drops the claim on note's day.
	Release(ctx context.Context, note storagemodels.NoteProperties) error
}
