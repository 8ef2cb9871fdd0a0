/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dailynote

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/suparena/dailynote/config"
	"github.com/suparena/dailynote/datastore"
	"github.com/suparena/dailynote/datastore/ddb"
	"github.com/suparena/dailynote/datastore/notion"
	"github.com/suparena/dailynote/errors"
	"github.com/suparena/dailynote/logging"
	"github.com/suparena/dailynote/notedate"
	"github.com/suparena/dailynote/storagemodels"
)

// Invocation carries everything one run of the workflow needs. It is created per
// invocation and never shared.
type Invocation struct {
	TraceID string
	Config  *config.Config
	Notes   datastore.NoteStore
	// Claims is nil unless the DynamoDB duplicate guard is configured.
	Claims datastore.Claimer
	Log    *logrus.Entry
	Now    func() time.Time
}

type options struct {
	lookup     config.LookupFunc
	configOpts []config.Option
	output     io.Writer
	traceID    string
	notes      datastore.NoteStore
	claims     datastore.Claimer
	now        func() time.Time
	fields     logrus.Fields
	dotenv     bool
	envFiles   []string
}

// Option customizes Execute.
type Option func(*options)

// WithLookup replaces os.LookupEnv as the configuration source.
func WithLookup(lookup config.LookupFunc) Option {
	return func(o *options) { o.lookup = lookup }
}

// WithHosted forces hosted-mode configuration requirements on or off.
func WithHosted(hosted bool) Option {
	return func(o *options) { o.configOpts = append(o.configOpts, config.WithHosted(hosted)) }
}

// WithOutput sets the log destination. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithTraceID fixes the correlation id instead of generating one.
func WithTraceID(id string) Option {
	return func(o *options) { o.traceID = id }
}

// WithNoteStore replaces the Notion store.
func WithNoteStore(store datastore.NoteStore) Option {
	return func(o *options) { o.notes = store }
}

// WithClaimer installs a duplicate guard regardless of DAILY_NOTE_LOCK_TABLE.
func WithClaimer(claimer datastore.Claimer) Option {
	return func(o *options) { o.claims = claimer }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogFields adds fields to the first log line of the invocation.
func WithLogFields(fields logrus.Fields) Option {
	return func(o *options) { o.fields = fields }
}

// WithDotenv loads development env files before configuration is read. With no
// files it loads .env. Nothing is loaded when APP_ENV=production.
func WithDotenv(files ...string) Option {
	return func(o *options) {
		o.dotenv = true
		o.envFiles = files
	}
}

// Execute runs one complete invocation: load configuration, build the invocation
// context and run the workflow. Every failure has already been logged once when
// Execute returns it.
func Execute(ctx context.Context, opts ...Option) error {
	o := options{
		lookup: os.LookupEnv,
		output: os.Stdout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.traceID == "" {
		o.traceID = uuid.NewString()
	}

	var (
		loaded    []string
		dotenvErr error
	)
	if o.dotenv {
		loaded, dotenvErr = config.LoadDotenv(o.lookup, o.envFiles...)
	}

	level, _ := o.lookup(config.EnvLogLevel)
	log := logging.New(o.output, logging.ParseLevel(level), o.traceID)
	log.WithFields(o.fields).Debug("invocation started")
	if dotenvErr != nil {
		log.WithError(dotenvErr).Warn("failed to load env file")
	} else if len(loaded) > 0 {
		log.WithField("files", loaded).Debug("loaded env files")
	}

	cfg, err := config.Load(o.lookup, o.configOpts...)
	if err != nil {
		log.WithError(err).WithField("kind", errors.Kind(err)).Error("configuration invalid")
		return err
	}

	inv, err := newInvocation(ctx, cfg, log, o)
	if err != nil {
		log.WithError(err).WithField("kind", errors.Kind(err)).Error("failed to initialize invocation")
		return err
	}

	return Run(ctx, inv)
}

func newInvocation(ctx context.Context, cfg *config.Config, log *logrus.Entry, o options) (*Invocation, error) {
	inv := &Invocation{
		TraceID: o.traceID,
		Config:  cfg,
		Notes:   o.notes,
		Claims:  o.claims,
		Log:     log,
		Now:     o.now,
	}

	if inv.Notes == nil {
		inv.Notes = notion.NewNoteStore(cfg.APIKey, cfg.DatabaseID, cfg.Schema)
	}

	if inv.Claims == nil && cfg.LockTable != "" {
		client, err := ddb.NewDynamoDBClient(ctx, cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.SessionToken, cfg.AWS.Region)
		if err != nil {
			return nil, errors.NewInvalidConfigurationError(config.EnvLockTable, err)
		}
		inv.Claims = ddb.NewClaimStore(client, cfg.LockTable)
	}

	return inv, nil
}

// Run is the per-invocation workflow: compute today's note, check whether it exists
// and create it if not. There are no retries.
func Run(ctx context.Context, inv *Invocation) error {
	note, err := ComputeNote(inv)
	if err != nil {
		return err
	}

	exists, err := CheckNoteExists(ctx, inv, note.Title)
	if err != nil {
		return err
	}
	if exists {
		inv.Log.WithField("title", note.Title).Info("daily note already exists")
		return nil
	}

	if inv.Claims != nil {
		claimed, err := claimDay(ctx, inv, note)
		if err != nil || !claimed {
			return err
		}
	}

	if err := CreateDailyNote(ctx, inv, note); err != nil {
		if inv.Claims != nil {
			releaseDay(ctx, inv, note)
		}
		return err
	}

	inv.Log.WithField("title", note.Title).Info("workflow completed")
	return nil
}

// ComputeNote renders today's note properties from the invocation clock.
func ComputeNote(inv *Invocation) (storagemodels.NoteProperties, error) {
	note, err := notedate.Current(inv.Now)
	if err != nil {
		inv.Log.WithError(err).WithField("kind", errors.Kind(err)).Error("failed to compute note date")
		return storagemodels.NoteProperties{}, err
	}
	inv.Log.WithFields(logrus.Fields{"title": note.Title, "date": note.Date}).Debug("computed note date")
	return note, nil
}

// CheckNoteExists reports whether a note titled title exists. Store failures are
// logged and returned as a LookupError.
func CheckNoteExists(ctx context.Context, inv *Invocation, title string) (bool, error) {
	exists, err := inv.Notes.Exists(ctx, title)
	if err != nil {
		lookupErr := errors.NewLookupError(title, err)
		inv.Log.WithError(err).
			WithFields(logrus.Fields{"kind": errors.Kind(lookupErr), "title": title}).
			WithFields(notion.ErrorFields(err)).
			Error("error checking note existence")
		return false, lookupErr
	}
	return exists, nil
}

// CreateDailyNote inserts note. Store failures are logged and returned as a CreationError.
func CreateDailyNote(ctx context.Context, inv *Invocation, note storagemodels.NoteProperties) error {
	if err := inv.Notes.Create(ctx, note); err != nil {
		createErr := errors.NewCreationError(note.Title, err)
		inv.Log.WithError(err).
			WithFields(logrus.Fields{"kind": errors.Kind(createErr), "title": note.Title}).
			WithFields(notion.ErrorFields(err)).
			Error("error creating daily note")
		return createErr
	}
	inv.Log.WithFields(logrus.Fields{"title": note.Title, "date": note.Date}).Info("daily note created")
	return nil
}

// claimDay returns false with a nil error when another invocation already owns the day.
func claimDay(ctx context.Context, inv *Invocation, note storagemodels.NoteProperties) (bool, error) {
	err := inv.Claims.Claim(ctx, note, inv.TraceID)
	switch {
	case err == nil:
		return true, nil
	case errors.IsAlreadyClaimed(err):
		inv.Log.WithField("date", note.Date).Warn("daily note is being created by another invocation")
		return false, nil
	default:
		createErr := errors.NewCreationError(note.Title, err)
		inv.Log.WithError(err).
			WithFields(logrus.Fields{"kind": errors.Kind(createErr), "date": note.Date}).
			Error("error claiming day")
		return false, createErr
	}
}

func releaseDay(ctx context.Context, inv *Invocation, note storagemodels.NoteProperties) {
	if err := inv.Claims.Release(ctx, note); err != nil {
		inv.Log.WithError(err).WithField("date", note.Date).Warn("failed to release claim")
	}
}
