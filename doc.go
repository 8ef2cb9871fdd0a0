/*
Package dailynote ensures that a "daily note" page exists in a Notion database for
the current day in UTC+9, creating it when it is absent.

The workflow is a single forward path with no retries:

	Start -> ConfigValidated -> DateComputed -> ExistenceChecked
	    -> AlreadyExists: Done
	    -> NotFound: Created -> Done

Each invocation gets a fresh correlation id that tags every log line it emits.
Failures are logged once where they are detected and returned unchanged as one of
the kinds in the errors package.

Local run:

	err := dailynote.Execute(ctx)
	os.Exit(dailynote.ExitCode(err))

Scheduled trigger:

	lambda.Start(dailynote.NewScheduledHandler())

Known limitation:
Checking for the note and creating it are two separate calls. Two invocations
running at the same moment can both see "not found" and both create a note. Set
DAILY_NOTE_LOCK_TABLE to claim the day in DynamoDB before creating; without it the
race is accepted.

Using the workflow with custom stores:

	store := notion.NewNoteStore(apiKey, databaseID, config.Schema{})
	err := dailynote.Execute(ctx,
	    dailynote.WithNoteStore(store),
	    dailynote.WithClaimer(ddb.NewClaimStore(client, "daily-note-claims")),
	)
*/
package dailynote
