/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dailynote_test

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/dailynote"
	"github.com/suparena/dailynote/config"
	"github.com/suparena/dailynote/datastore/mock"
	"github.com/suparena/dailynote/errors"
	"github.com/suparena/dailynote/notedate"
	"github.com/suparena/dailynote/storagemodels"
)

var monday = storagemodels.NoteProperties{Title: "2025-04-28 Mon", Date: "2025-04-28"}

func fixedClock() time.Time {
	return time.Date(2025, 4, 28, 9, 0, 0, 0, notedate.Location)
}

func env(overrides map[string]string) config.LookupFunc {
	m := map[string]string{
		config.EnvNotionAPIKey: "secret_test",
		config.EnvDatabaseID:   "db-123",
	}
	for k, v := range overrides {
		if v == "" {
			delete(m, k)
			continue
		}
		m[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

type logLine struct {
	TraceID        string         `json:"traceId"`
	Timestamp      string         `json:"timestamp"`
	Level          string         `json:"level"`
	Message        string         `json:"message"`
	AdditionalInfo map[string]any `json:"additionalInfo"`
}

func parseLog(t *testing.T, buf *bytes.Buffer) []logLine {
	t.Helper()
	var lines []logLine
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var l logLine
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		lines = append(lines, l)
	}
	return lines
}

func countLevel(lines []logLine, level string) int {
	n := 0
	for _, l := range lines {
		if l.Level == level {
			n++
		}
	}
	return n
}

func execute(t *testing.T, store *mock.NoteStore, extra ...dailynote.Option) ([]logLine, error) {
	t.Helper()
	var buf bytes.Buffer
	opts := append([]dailynote.Option{
		dailynote.WithLookup(env(nil)),
		dailynote.WithOutput(&buf),
		dailynote.WithTraceID("trace-test"),
		dailynote.WithNoteStore(store),
		dailynote.WithClock(fixedClock),
	}, extra...)
	err := dailynote.Execute(context.Background(), opts...)
	return parseLog(t, &buf), err
}

func TestExistingNoteIsNotCreated(t *testing.T) {
	store := mock.New().WithNote(monday)

	lines, err := execute(t, store)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-04-28 Mon"}, store.ExistsCalls())
	assert.Empty(t, store.CreateCalls())
	assert.Zero(t, countLevel(lines, "error"))

	var sawExists bool
	for _, l := range lines {
		if l.Message == "daily note already exists" {
			sawExists = true
		}
	}
	assert.True(t, sawExists)
}

func TestMissingNoteIsCreatedOnce(t *testing.T) {
	store := mock.New()

	_, err := execute(t, store)
	require.NoError(t, err)

	calls := store.CreateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, monday, calls[0])
	assert.True(t, strings.HasPrefix(calls[0].Title, calls[0].Date))
}

func TestMissingDatabaseIDFailsBeforeAnyCall(t *testing.T) {
	store := mock.New()
	var buf bytes.Buffer

	err := dailynote.Execute(context.Background(),
		dailynote.WithLookup(env(map[string]string{config.EnvDatabaseID: ""})),
		dailynote.WithOutput(&buf),
		dailynote.WithNoteStore(store),
		dailynote.WithClock(fixedClock),
	)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))

	var cfgErr *errors.ConfigurationError
	require.True(t, stdErrors.As(err, &cfgErr))
	assert.Equal(t, "DATABASE_ID", cfgErr.Key)

	assert.Empty(t, store.ExistsCalls())
	assert.Empty(t, store.CreateCalls())

	lines := parseLog(t, &buf)
	assert.Equal(t, 1, countLevel(lines, "error"))
}

func TestEachMissingVariableFailsBeforeAnyCall(t *testing.T) {
	for _, key := range []string{config.EnvNotionAPIKey, config.EnvDatabaseID} {
		t.Run(key, func(t *testing.T) {
			store := mock.New()
			err := dailynote.Execute(context.Background(),
				dailynote.WithLookup(env(map[string]string{key: ""})),
				dailynote.WithOutput(&bytes.Buffer{}),
				dailynote.WithNoteStore(store),
			)
			require.True(t, errors.IsConfiguration(err))
			assert.Empty(t, store.ExistsCalls())
			assert.Empty(t, store.CreateCalls())
		})
	}

	t.Run("hosted region", func(t *testing.T) {
		store := mock.New()
		err := dailynote.Execute(context.Background(),
			dailynote.WithLookup(env(nil)),
			dailynote.WithHosted(true),
			dailynote.WithOutput(&bytes.Buffer{}),
			dailynote.WithNoteStore(store),
		)
		var cfgErr *errors.ConfigurationError
		require.True(t, stdErrors.As(err, &cfgErr))
		assert.Equal(t, config.EnvAWSRegion, cfgErr.Key)
		assert.Empty(t, store.ExistsCalls())
	})
}

func TestLookupFailureStopsWorkflow(t *testing.T) {
	transport := stdErrors.New("read: connection reset by peer")
	store := mock.New().WithExistsError(transport)

	lines, err := execute(t, store)
	require.Error(t, err)
	assert.True(t, errors.IsLookup(err))
	assert.True(t, stdErrors.Is(err, transport))
	assert.Empty(t, store.CreateCalls())

	require.Equal(t, 1, countLevel(lines, "error"))
	for _, l := range lines {
		assert.Equal(t, "trace-test", l.TraceID)
		if l.Level == "error" {
			assert.Equal(t, "LookupError", l.AdditionalInfo["kind"])
			assert.Equal(t, "read: connection reset by peer", l.AdditionalInfo["error"])
		}
	}
}

func TestCreationFailureIsNotRechecked(t *testing.T) {
	store := mock.New().WithCreateError(stdErrors.New("502 bad gateway"))

	lines, err := execute(t, store)
	require.Error(t, err)
	assert.True(t, errors.IsCreation(err))
	assert.Len(t, store.ExistsCalls(), 1)
	assert.Len(t, store.CreateCalls(), 1)
	assert.Equal(t, 1, countLevel(lines, "error"))
}

func TestInvalidClock(t *testing.T) {
	store := mock.New()

	lines, err := execute(t, store, dailynote.WithClock(func() time.Time { return time.Time{} }))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidDate(err))
	assert.Empty(t, store.ExistsCalls())
	assert.Equal(t, 1, countLevel(lines, "error"))
}

func TestDotenvFailureIsLoggedWithTraceID(t *testing.T) {
	store := mock.New()

	// A directory passes the existence check but cannot be read as an env file.
	lines, err := execute(t, store, dailynote.WithDotenv(t.TempDir()))
	require.NoError(t, err)

	var warned bool
	for _, l := range lines {
		if l.Message == "failed to load env file" {
			warned = true
			assert.Equal(t, "warn", l.Level)
			assert.Equal(t, "trace-test", l.TraceID)
			assert.NotEmpty(t, l.AdditionalInfo["error"])
		}
	}
	assert.True(t, warned)
	assert.Len(t, store.CreateCalls(), 1)
}

func TestDotenvSkippedInProduction(t *testing.T) {
	store := mock.New()

	lines, err := execute(t, store,
		dailynote.WithLookup(env(map[string]string{config.EnvAppEnv: "production"})),
		dailynote.WithDotenv(t.TempDir()),
	)
	require.NoError(t, err)

	for _, l := range lines {
		assert.NotEqual(t, "failed to load env file", l.Message)
	}
	assert.Len(t, store.CreateCalls(), 1)
}

func TestTraceIDIsGeneratedPerInvocation(t *testing.T) {
	run := func() string {
		var buf bytes.Buffer
		err := dailynote.Execute(context.Background(),
			dailynote.WithLookup(env(nil)),
			dailynote.WithOutput(&buf),
			dailynote.WithNoteStore(mock.New().WithNote(monday)),
			dailynote.WithClock(fixedClock),
		)
		require.NoError(t, err)
		lines := parseLog(t, &buf)
		require.NotEmpty(t, lines)
		for _, l := range lines[1:] {
			require.Equal(t, lines[0].TraceID, l.TraceID)
		}
		return lines[0].TraceID
	}

	first, second := run(), run()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestSequentialRunsCreateOnce(t *testing.T) {
	store := mock.New()

	for i := 0; i < 3; i++ {
		_, err := execute(t, store)
		require.NoError(t, err)
	}
	assert.Len(t, store.CreateCalls(), 1)
	assert.Equal(t, 1, store.Count())
}

func TestClaimGuard(t *testing.T) {
	t.Run("claims before creating", func(t *testing.T) {
		store := mock.New()
		claimer := mock.NewClaimer()

		_, err := execute(t, store, dailynote.WithClaimer(claimer))
		require.NoError(t, err)
		assert.Len(t, store.CreateCalls(), 1)

		holder, held := claimer.Holder(monday.Date)
		assert.True(t, held)
		assert.Equal(t, "trace-test", holder)
	})

	t.Run("lost claim skips creation", func(t *testing.T) {
		store := mock.New()
		claimer := mock.NewClaimer().WithClaim(monday.Date, "other-invocation")

		lines, err := execute(t, store, dailynote.WithClaimer(claimer))
		require.NoError(t, err)
		assert.Empty(t, store.CreateCalls())
		assert.Equal(t, 1, countLevel(lines, "warn"))
	})

	t.Run("claim failure is a creation error", func(t *testing.T) {
		store := mock.New()
		claimer := mock.NewClaimer().WithClaimError(stdErrors.New("throttled"))

		lines, err := execute(t, store, dailynote.WithClaimer(claimer))
		require.Error(t, err)
		assert.True(t, errors.IsCreation(err))
		assert.Empty(t, store.CreateCalls())
		assert.Equal(t, 1, countLevel(lines, "error"))
	})

	t.Run("failed creation releases claim", func(t *testing.T) {
		store := mock.New().WithCreateError(stdErrors.New("boom"))
		claimer := mock.NewClaimer()

		_, err := execute(t, store, dailynote.WithClaimer(claimer))
		require.True(t, errors.IsCreation(err))
		assert.Equal(t, []string{monday.Date}, claimer.Released())
		_, held := claimer.Holder(monday.Date)
		assert.False(t, held)
	})

	t.Run("release failure keeps creation error", func(t *testing.T) {
		store := mock.New().WithCreateError(stdErrors.New("boom"))
		claimer := mock.NewClaimer().WithReleaseError(stdErrors.New("throttled"))

		lines, err := execute(t, store, dailynote.WithClaimer(claimer))
		require.True(t, errors.IsCreation(err))
		assert.Equal(t, 1, countLevel(lines, "error"))
		assert.Equal(t, 1, countLevel(lines, "warn"))
	})

	t.Run("existing note never claims", func(t *testing.T) {
		claimer := mock.NewClaimer()

		_, err := execute(t, mock.New().WithNote(monday), dailynote.WithClaimer(claimer))
		require.NoError(t, err)
		_, held := claimer.Holder(monday.Date)
		assert.False(t, held)
	})
}

func TestRunWithInvocation(t *testing.T) {
	store := mock.New()
	var buf bytes.Buffer
	inv := &dailynote.Invocation{
		TraceID: "t",
		Notes:   store,
		Log:     newEntry(&buf),
		Now:     fixedClock,
	}

	require.NoError(t, dailynote.Run(context.Background(), inv))
	assert.Equal(t, []storagemodels.NoteProperties{monday}, store.CreateCalls())
}

func TestScheduledHandler(t *testing.T) {
	event := events.CloudWatchEvent{
		Version:    "0",
		ID:         "evt-1",
		DetailType: "Scheduled Event",
		Source:     "aws.events",
		AccountID:  "123456789012",
		Time:       time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC),
		Region:     "ap-northeast-1",
		Resources:  []string{"arn:aws:events:ap-northeast-1:123456789012:rule/daily-note"},
		Detail:     json.RawMessage(`{}`),
	}

	t.Run("success", func(t *testing.T) {
		store := mock.New()
		handler := dailynote.NewScheduledHandler(
			dailynote.WithLookup(env(nil)),
			dailynote.WithOutput(&bytes.Buffer{}),
			dailynote.WithNoteStore(store),
			dailynote.WithClock(fixedClock),
		)

		resp, err := handler(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"daily note ensured"}`, resp.Body)
		assert.Len(t, store.CreateCalls(), 1)
	})

	t.Run("failure hides detail", func(t *testing.T) {
		store := mock.New().WithExistsError(stdErrors.New("secret internal detail"))
		handler := dailynote.NewScheduledHandler(
			dailynote.WithLookup(env(nil)),
			dailynote.WithOutput(&bytes.Buffer{}),
			dailynote.WithNoteStore(store),
			dailynote.WithClock(fixedClock),
		)

		resp, err := handler(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"daily note creation failed"}`, resp.Body)
		assert.NotContains(t, resp.Body, "secret")
	})
}
