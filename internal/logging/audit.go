package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/RowanDark/cryptokit/internal/redact"
)

// EventType names an analysis step recorded in the audit trail.
type EventType string

const (
	EventFetch              EventType = "fetch"
	EventKeyLengthEstimated EventType = "key_length_estimated"
	EventKeyRecovered       EventType = "key_recovered"
	EventDetection          EventType = "detection"
	EventPipelineStep       EventType = "pipeline_step"
	EventRecipeSaved        EventType = "recipe_saved"
)

type Outcome string

const (
	OutcomeInfo    Outcome = "info"
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// AuditEvent is one JSON line in the audit trail. Metadata is redacted
// before it is written.
type AuditEvent struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Component string         `json:"component"`
	EventType EventType      `json:"event_type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Outcome   Outcome        `json:"outcome,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

// sink is the encoder shared by a logger and every logger derived from it.
type sink struct {
	mu      sync.Mutex
	encoder *json.Encoder
	file    *os.File
}

// AuditLogger writes analysis events as JSON lines. Loggers derived with
// WithComponent share the sink and its lock; only the root closes it.
type AuditLogger struct {
	component string
	sink      *sink
	root      bool
}

// NewAuditLogger writes events for component to w.
func NewAuditLogger(component string, w io.Writer) (*AuditLogger, error) {
	if w == nil {
		return nil, errors.New("audit logger needs a writer")
	}
	return newAuditLogger(component, w, nil), nil
}

// OpenAuditLog appends events for component to the file at path, creating
// it with owner-only permissions. Close releases the file.
func OpenAuditLog(component, path string) (*AuditLogger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("audit log path is empty")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return newAuditLogger(component, f, f), nil
}

func newAuditLogger(component string, w io.Writer, f *os.File) *AuditLogger {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &AuditLogger{
		component: component,
		sink:      &sink{encoder: enc, file: f},
		root:      true,
	}
}

// Close releases the audit file. It is a no-op for derived loggers and for
// loggers writing to a caller-owned writer.
func (l *AuditLogger) Close() error {
	if l == nil || !l.root {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.file == nil {
		return nil
	}
	err := l.sink.file.Close()
	l.sink.file = nil
	return err
}

// Emit stamps event with an ID, a UTC timestamp and the logger's component
// when they are unset, redacts it, and writes it as one line.
func (l *AuditLogger) Emit(event AuditEvent) error {
	if l == nil {
		return errors.New("nil audit logger")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Timestamp = event.Timestamp.UTC()
	if event.ID == "" {
		event.ID = ulid.Make().String()
	}
	if event.Component == "" {
		event.Component = l.component
	}
	event.Reason = redact.String(event.Reason)
	if len(event.Metadata) > 0 {
		event.Metadata = redact.Map(event.Metadata)
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.encoder.Encode(event)
}

// WithComponent returns a logger that shares l's sink under another name.
func (l *AuditLogger) WithComponent(component string) *AuditLogger {
	if l == nil {
		return nil
	}
	return &AuditLogger{component: component, sink: l.sink}
}
