/*
Package errors provides the closed set of failure kinds for a daily note invocation.

Every terminal failure of the workflow is one of:

	var (
	    ErrConfiguration  = errors.New("configuration error")
	    ErrInvalidDate    = errors.New("invalid date")
	    ErrLookup         = errors.New("note lookup failed")
	    ErrCreation       = errors.New("note creation failed")
	)

ErrAlreadyClaimed is not terminal; it signals that a concurrent invocation owns the
day when the DynamoDB claim guard is enabled.

Usage:

	if err := dailynote.Run(ctx, inv); err != nil {
	    if errors.IsConfiguration(err) {
	        var cfgErr *errors.ConfigurationError
	        stdErrors.As(err, &cfgErr)
	        fmt.Println("set", cfgErr.Key)
	    }
	    return err
	}

LookupError and CreationError wrap the underlying transport error, so errors.As can
still reach the API error returned by the Notion client.
*/
package errors
