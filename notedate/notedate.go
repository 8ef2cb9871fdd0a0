/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notedate

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/dailynote/errors"
	"github.com/suparena/dailynote/storagemodels"
)

// Location is the fixed UTC+9 zone every daily note is dated in. It never observes daylight saving.
var Location = time.FixedZone("JST", 9*60*60)

// titleLayout renders the weekday abbreviation appended to the date.
const titleLayout = "Mon"

// Current captures one instant from now and renders it with For.
func Current(now func() time.Time) (storagemodels.NoteProperties, error) {
	if now == nil {
		now = time.Now
	}
	return For(now())
}

// For renders the note properties of the calendar day containing t in Location.
// Both strings come from the same converted instant so they always agree on the day.
func For(t time.Time) (storagemodels.NoteProperties, error) {
	if t.IsZero() {
		return storagemodels.NoteProperties{}, errors.NewInvalidDateError(t.Format(time.RFC3339))
	}

	local := t.In(Location)
	if y := local.Year(); y < 1 || y > 9999 {
		return storagemodels.NoteProperties{}, errors.NewInvalidDateError(t.Format(time.RFC3339))
	}

	date := strfmt.Date(local).String()
	return storagemodels.NoteProperties{
		Title: date + " " + local.Format(titleLayout),
		Date:  date,
	}, nil
}
