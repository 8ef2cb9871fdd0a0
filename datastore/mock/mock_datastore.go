/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore interfaces for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/dailynote/errors"
	"github.com/suparena/dailynote/storagemodels"
)

// NoteStore is a mock implementation of datastore.NoteStore that records every call
type NoteStore struct {
	mu          sync.RWMutex
	notes       map[string]storagemodels.NoteProperties
	existsCalls []string
	createCalls []storagemodels.NoteProperties
	existsError error
	createError error
}

// New creates a new empty mock NoteStore
func New() *NoteStore {
	return &NoteStore{
		notes: make(map[string]storagemodels.NoteProperties),
	}
}

// WithNote seeds a note so Exists reports it as present
func (m *NoteStore) WithNote(note storagemodels.NoteProperties) *NoteStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.Title] = note
	return m
}

// WithExistsError makes Exists return an error
func (m *NoteStore) WithExistsError(err error) *NoteStore {
	m.existsError = err
	return m
}

// WithCreateError makes Create return an error
func (m *NoteStore) WithCreateError(err error) *NoteStore {
	m.createError = err
	return m
}

// Exists reports whether a note with the exact title was seeded or created
func (m *NoteStore) Exists(ctx context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.existsCalls = append(m.existsCalls, title)
	if m.existsError != nil {
		return false, m.existsError
	}
	_, ok := m.notes[title]
	return ok, nil
}

// Create stores the note. Like the real store it does not reject duplicates.
func (m *NoteStore) Create(ctx context.Context, note storagemodels.NoteProperties) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls = append(m.createCalls, note)
	if m.createError != nil {
		return m.createError
	}
	m.notes[note.Title] = note
	return nil
}

// ExistsCalls returns the titles passed to Exists, in order
func (m *NoteStore) ExistsCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.existsCalls...)
}

// CreateCalls returns the notes passed to Create, in order
func (m *NoteStore) CreateCalls() []storagemodels.NoteProperties {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]storagemodels.NoteProperties(nil), m.createCalls...)
}

// Count returns the number of stored notes
func (m *NoteStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notes)
}

// Claimer is a mock implementation of datastore.Claimer
type Claimer struct {
	mu           sync.Mutex
	claims       map[string]string
	released     []string
	claimError   error
	releaseError error
}

// NewClaimer creates a new mock Claimer with no claims
func NewClaimer() *Claimer {
	return &Claimer{
		claims: make(map[string]string),
	}
}

// WithClaim marks day as already held by traceID
func (c *Claimer) WithClaim(day, traceID string) *Claimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.claims[day] = traceID
	return c
}

// WithClaimError makes Claim return an error
func (c *Claimer) WithClaimError(err error) *Claimer {
	c.claimError = err
	return c
}

// WithReleaseError makes Release return an error
func (c *Claimer) WithReleaseError(err error) *Claimer {
	c.releaseError = err
	return c
}

// Claim records traceID as the owner of note.Date
func (c *Claimer) Claim(ctx context.Context, note storagemodels.NoteProperties, traceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.claimError != nil {
		return c.claimError
	}
	if _, held := c.claims[note.Date]; held {
		return errors.NewAlreadyClaimedError(note.Date)
	}
	c.claims[note.Date] = traceID
	return nil
}

// Release drops the claim on note.Date
func (c *Claimer) Release(ctx context.Context, note storagemodels.NoteProperties) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.released = append(c.released, note.Date)
	if c.releaseError != nil {
		return c.releaseError
	}
	delete(c.claims, note.Date)
	return nil
}

// Holder returns the trace id holding day, if any
func (c *Claimer) Holder(day string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.claims[day]
	return id, ok
}

// Released returns the days passed to Release, in order
func (c *Claimer) Released() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.released...)
}
