package flashcard

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Timestamp is a point in time serialized as an ISO-8601 string.
// The zero value is empty and is serialized as "".
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to UTC so serialized values round-trip.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC()}
}

// String formats the timestamp or returns "" when empty.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (Timestamp, error) {
	if value == "" {
		return Timestamp{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return NewTimestamp(parsed), nil
		}
	}
	return Timestamp{}, fmt.Errorf("unable to parse timestamp '%s': expected RFC3339 or YYYY-MM-DD format", value)
}

// MarshalJSON implements the json.Marshaler interface
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(timestamp) > %w", err)
	}
	parsed, err := parseTimestamp(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := parseTimestamp(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
