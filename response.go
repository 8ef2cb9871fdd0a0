/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dailynote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// Response messages returned to the scheduler. Failure detail stays in the logs.
const (
	SuccessMessage = "daily note ensured"
	FailureMessage = "daily note creation failed"
)

// Response is returned to the scheduled trigger.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// NewResponse translates the workflow result into a trigger response.
func NewResponse(err error) Response {
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       mustJSON(map[string]string{"error": FailureMessage}),
		}
	}
	return Response{
		StatusCode: http.StatusOK,
		Body:       mustJSON(map[string]string{"message": SuccessMessage}),
	}
}

// ExitCode translates the workflow result into a process exit status.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func mustJSON(v map[string]string) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// ScheduledHandler is the signature lambda.Start expects for scheduled events.
type ScheduledHandler func(ctx context.Context, event events.CloudWatchEvent) (Response, error)

// NewScheduledHandler returns a handler running one invocation per event. The Go
// error is always nil; failures are reported through the response status.
func NewScheduledHandler(opts ...Option) ScheduledHandler {
	return func(ctx context.Context, event events.CloudWatchEvent) (Response, error) {
		fields := logrus.Fields{
			"eventId":    event.ID,
			"eventTime":  event.Time,
			"detailType": event.DetailType,
			"source":     event.Source,
		}
		err := Execute(ctx, append(opts[:len(opts):len(opts)], WithLogFields(fields))...)
		return NewResponse(err), nil
	}
}
