/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/suparena/dailynote/config"
	"github.com/suparena/dailynote/storagemodels"
)

// dateLayout is the layout of NoteProperties.Date.
const dateLayout = "2006-01-02"

// NoteStore implements datastore.NoteStore on top of a Notion database.
type NoteStore struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	schema     config.Schema
}

// NewNoteStore constructs a NoteStore for the database identified by databaseID.
// Client options are passed through to notionapi, e.g. notionapi.WithHTTPClient.
func NewNoteStore(apiKey, databaseID string, schema config.Schema, opts ...notionapi.ClientOption) *NoteStore {
	if schema.TitleProperty == "" {
		schema.TitleProperty = config.DefaultTitleProperty
	}
	if schema.DateProperty == "" {
		schema.DateProperty = config.DefaultDateProperty
	}

	return &NoteStore{
		client:     notionapi.NewClient(notionapi.Token(apiKey), opts...),
		databaseID: notionapi.DatabaseID(databaseID),
		schema:     schema,
	}
}

// Exists queries the database for a page whose title property equals title exactly.
func (s *NoteStore) Exists(ctx context.Context, title string) (bool, error) {
	resp, err := s.client.Database.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: s.schema.TitleProperty,
			RichText: &notionapi.TextFilterCondition{
				Equals: title,
			},
		},
		PageSize: 1,
	})
	if err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return len(resp.Results) > 0, nil
}

// dayProperty is a date property holding a single calendar day. notionapi.Date
// always marshals a full RFC 3339 timestamp, which Notion stores as midnight UTC
// instead of a day.
type dayProperty struct {
	Type notionapi.PropertyType `json:"type"`
	Date dayValue               `json:"date"`
}

type dayValue struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

func newDayProperty(day string) dayProperty {
	return dayProperty{
		Type: notionapi.PropertyTypeDate,
		Date: dayValue{Start: day},
	}
}

func (p dayProperty) GetID() string {
	return ""
}

func (p dayProperty) GetType() notionapi.PropertyType {
	return p.Type
}

// Create inserts a page with the title property set to note.Title and a single-day
// date property starting at note.Date with no end.
func (s *NoteStore) Create(ctx context.Context, note storagemodels.NoteProperties) error {
	if _, err := time.Parse(dateLayout, note.Date); err != nil {
		return fmt.Errorf("failed to parse note date %q: %w", note.Date, err)
	}
	if !note.Valid() {
		return fmt.Errorf("note title %q does not start with date %q", note.Title, note.Date)
	}

	_, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: notionapi.Properties{
			s.schema.TitleProperty: notionapi.TitleProperty{
				Type: notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{
					{
						Type: notionapi.ObjectTypeText,
						Text: &notionapi.Text{Content: note.Title},
					},
				},
			},
			s.schema.DateProperty: newDayProperty(note.Date),
		},
	})
	if err != nil {
		return fmt.Errorf("page create failed: %w", err)
	}
	return nil
}

// ErrorFields extracts the Notion API status and code from err for logging.
// It returns nil when err does not carry a Notion API error.
func ErrorFields(err error) map[string]any {
	var apiErr *notionapi.Error
	if !errors.As(err, &apiErr) {
		return nil
	}
	return map[string]any{
		"notionStatus":  apiErr.Status,
		"notionCode":    apiErr.Code,
		"notionMessage": apiErr.Message,
	}
}
