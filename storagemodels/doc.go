/*
Package storagemodels defines the value types shared by the daily note workflow and its stores.

Key Types:

NoteProperties:
The rendered day, derived from a single captured instant:

	note := NoteProperties{
	    Title: "2025-04-28 Mon",
	    Date:  "2025-04-28",
	}

Claim:
The item written to DynamoDB when the duplicate guard is enabled:

	claim := Claim{
	    PK:    "DAILYNOTE#2025-04-28",
	    SK:    "CLAIM",
	    Day:   "2025-04-28",
	    Title: "2025-04-28 Mon",
	}

Nothing here outlives a single invocation except the Claim item in DynamoDB.
*/
package storagemodels
