/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "strings"

// NoteProperties holds the two renderings of one calendar day that a daily note carries.
// Title always starts with Date.
type NoteProperties struct {
	// Title is the page title, e.g. "2025-04-28 Mon".
	Title string `json:"title"`
	// Date is the zero-padded calendar day, e.g. "2025-04-28".
	Date string `json:"date"`
}

// Valid reports whether Title is prefixed by Date.
func (n NoteProperties) Valid() bool {
	return n.Date != "" && strings.HasPrefix(n.Title, n.Date)
}

// Claim is the DynamoDB record written by the duplicate guard for one day.
type Claim struct {
	// PK is the partition key, "DAILYNOTE#<date>".
	PK string `dynamodbav:"PK"`
	// SK is always "CLAIM".
	SK string `dynamodbav:"SK"`
	// Day is the claimed calendar day.
	Day string `dynamodbav:"Day"`
	// Title is the note title the claimer intends to create.
	Title string `dynamodbav:"Title"`
	// TraceID is the correlation id of the invocation holding the claim.
	TraceID string `dynamodbav:"TraceId"`
	// ClaimedAt is an ISO-8601 timestamp.
	ClaimedAt string `dynamodbav:"ClaimedAt"`
	// ExpiresAt is an epoch-seconds TTL attribute.
	ExpiresAt int64 `dynamodbav:"ExpiresAt"`
}
