/*
Package ddb provides a DynamoDB implementation of the datastore.Claimer interface.

A claim is a single item keyed by the note's day:

	PK: "DAILYNOTE#2025-04-28"
	SK: "CLAIM"

Claim writes it with the condition attribute_not_exists(PK). When the condition
fails another invocation already owns the day and Claim returns an
*errors.AlreadyClaimedError. Release deletes the item so a later run may retry
after a failed creation.

Items carry an ExpiresAt epoch attribute. Enable DynamoDB TTL on it to expire
old claims:

	store := ddb.NewClaimStore(client, "daily-note-claims").WithTTL(72 * time.Hour)
*/
package ddb
