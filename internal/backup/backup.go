// Package backup converts the stored collections to and from a single JSON
// document that can be saved to a file and imported later.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/at-ishikawa/quickcards/internal/flashcard"
)

// Version is written into every exported document.
const Version = "1.0.0"

// ErrInvalidFormat is matched by every import failure.
var ErrInvalidFormat = errors.New("invalid backup file format")

// FormatError reports why a document was rejected. Its message is always
// the one of ErrInvalidFormat.
type FormatError struct {
	Cause error
}

func (e *FormatError) Error() string {
	return ErrInvalidFormat.Error()
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrInvalidFormat, e.Cause}
}

func invalidFormat(format string, args ...any) error {
	return &FormatError{Cause: fmt.Errorf(format, args...)}
}

// Document is the backup file.
type Document struct {
	Decks      flashcard.Decks          `json:"decks" validate:"dive"`
	Sessions   []flashcard.StudySession `json:"sessions" validate:"dive"`
	Settings   flashcard.Settings       `json:"settings"`
	ExportDate flashcard.Timestamp      `json:"exportDate"`
	Version    string                   `json:"version"`
}

// Export builds a document of the current state.
func Export(decks flashcard.Decks, sessions []flashcard.StudySession, settings flashcard.Settings, now time.Time) Document {
	if decks == nil {
		decks = flashcard.Decks{}
	}
	if sessions == nil {
		sessions = []flashcard.StudySession{}
	}
	return Document{
		Decks:      decks,
		Sessions:   sessions,
		Settings:   settings,
		ExportDate: flashcard.NewTimestamp(now),
		Version:    Version,
	}
}

// Encode serializes doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent() > %w", err)
	}
	return data, nil
}

type importOptions struct {
	strict bool
}

type ImportOption func(*importOptions)

// WithStrictValidation additionally rejects documents whose records are
// incomplete, such as cards without text or an unknown theme.
func WithStrictValidation() ImportOption {
	return func(o *importOptions) {
		o.strict = true
	}
}

// Import parses a backup document. decks and sessions must be arrays and
// settings must be an object. Values that do not fit their field are left
// empty, and settings missing from the document keep their default values.
// A missing or unreadable exportDate or version is filled from now and
// Version. Nothing is returned unless the whole document is accepted.
func Import(data []byte, now time.Time, opts ...ImportOption) (Document, error) {
	var options importOptions
	for _, opt := range opts {
		opt(&options)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Document{}, &FormatError{Cause: fmt.Errorf("json.Unmarshal() > %w", err)}
	}

	if err := requireJSON(fields, "decks", '['); err != nil {
		return Document{}, err
	}
	if err := requireJSON(fields, "sessions", '['); err != nil {
		return Document{}, err
	}
	if err := requireJSON(fields, "settings", '{'); err != nil {
		return Document{}, err
	}

	doc := Document{
		Decks:    flashcard.Decks{},
		Sessions: []flashcard.StudySession{},
		Settings: flashcard.DefaultSettings(),
		Version:  Version,
	}
	for _, field := range []struct {
		name   string
		target any
	}{
		{name: "decks", target: &doc.Decks},
		{name: "sessions", target: &doc.Sessions},
		{name: "settings", target: &doc.Settings},
	} {
		if options.strict {
			if err := json.Unmarshal(fields[field.name], field.target); err != nil {
				return Document{}, invalidFormat("%s > %w", field.name, err)
			}
			continue
		}
		if !decodeLenient(fields[field.name], reflect.ValueOf(field.target).Elem()) {
			slog.Debug("ignored backup values that do not fit their fields", "field", field.name)
		}
	}

	// exportDate and version are informational and never reject a document.
	if raw, ok := fields["exportDate"]; ok {
		if err := json.Unmarshal(raw, &doc.ExportDate); err != nil {
			slog.Debug("ignored the export date of the backup", "exportDate", string(raw), "error", err)
			doc.ExportDate = flashcard.Timestamp{}
		}
	}
	if doc.ExportDate.IsZero() {
		doc.ExportDate = flashcard.NewTimestamp(now)
	}
	if raw, ok := fields["version"]; ok {
		var version string
		if err := json.Unmarshal(raw, &version); err != nil {
			slog.Debug("ignored the version of the backup", "version", string(raw), "error", err)
		} else if version != "" {
			doc.Version = version
		}
	}

	if options.strict {
		if err := validateDocument(doc); err != nil {
			return Document{}, &FormatError{Cause: err}
		}
	}
	return doc, nil
}

// requireJSON checks that the field exists and holds the JSON value starting
// with opening, i.e. an array or an object.
func requireJSON(fields map[string]json.RawMessage, name string, opening byte) error {
	raw := bytes.TrimSpace(fields[name])
	if len(raw) == 0 || raw[0] != opening {
		kind := "an array"
		if opening == '{' {
			kind = "an object"
		}
		return invalidFormat("%s must be %s", name, kind)
	}
	return nil
}
