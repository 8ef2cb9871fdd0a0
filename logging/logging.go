/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package logging emits one JSON record per line, tagged with the invocation's trace id.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/sirupsen/logrus"
)

// TraceIDKey is the entry field carrying the correlation id.
const TraceIDKey = "traceId"

// Record is the shape of every emitted line.
type Record struct {
	TraceID        string         `json:"traceId,omitempty"`
	Timestamp      string         `json:"timestamp"`
	Level          string         `json:"level"`
	Message        string         `json:"message"`
	AdditionalInfo map[string]any `json:"additionalInfo,omitempty"`
}

// Formatter renders logrus entries as Record JSON. Every field except the trace id
// is grouped under additionalInfo.
type Formatter struct{}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	rec := Record{
		Timestamp: strfmt.DateTime(entry.Time.UTC()).String(),
		Level:     levelName(entry.Level),
		Message:   entry.Message,
	}

	for k, v := range entry.Data {
		if k == TraceIDKey {
			rec.TraceID = fmt.Sprint(v)
			continue
		}
		if rec.AdditionalInfo == nil {
			rec.AdditionalInfo = make(map[string]any, len(entry.Data))
		}
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		rec.AdditionalInfo[k] = v
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log record: %w", err)
	}
	return append(b, '\n'), nil
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.TraceLevel, logrus.DebugLevel:
		return "debug"
	case logrus.InfoLevel:
		return "info"
	case logrus.WarnLevel:
		return "warn"
	default:
		return "error"
	}
}

// ParseLevel maps debug|info|warn|error onto logrus levels. Unknown or empty values yield info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger creates a logrus logger writing Records to w (stdout when nil).
func NewLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&Formatter{})
	logger.SetLevel(level)
	return logger
}

// New returns an entry bound to traceID.
func New(w io.Writer, level logrus.Level, traceID string) *logrus.Entry {
	return WithTrace(NewLogger(w, level), traceID)
}

// WithTrace binds traceID to an existing logger.
func WithTrace(logger *logrus.Logger, traceID string) *logrus.Entry {
	return logger.WithField(TraceIDKey, traceID)
}
