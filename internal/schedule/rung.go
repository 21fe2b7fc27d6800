package schedule

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Rung is a card's position on the Leitner ladder.
// 0 means unseen or reset, 4 is the most mastered level.
type Rung int

const (
	MinRung Rung = 0
	MaxRung Rung = 4
)

// NewRung clamps level into [MinRung, MaxRung].
func NewRung(level int) Rung {
	switch {
	case level < int(MinRung):
		return MinRung
	case level > int(MaxRung):
		return MaxRung
	default:
		return Rung(level)
	}
}

// Promote moves one rung up after a correct answer.
func (r Rung) Promote() Rung {
	return NewRung(int(r) + 1)
}

// Demote moves one rung down after an incorrect answer.
func (r Rung) Demote() Rung {
	return NewRung(int(r) - 1)
}

// Next returns the rung reached from r for the given answer.
func (r Rung) Next(wasCorrect bool) Rung {
	if wasCorrect {
		return r.Promote()
	}
	return r.Demote()
}

// Int returns the level as a plain int.
func (r Rung) Int() int {
	return int(r)
}

func (r Rung) String() string {
	return fmt.Sprintf("%d", int(r))
}

// UnmarshalJSON clamps decoded values so an out-of-range level never enters the ladder.
func (r *Rung) UnmarshalJSON(data []byte) error {
	var level int
	if err := json.Unmarshal(data, &level); err != nil {
		return fmt.Errorf("json.Unmarshal(rung) > %w", err)
	}
	*r = NewRung(level)
	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (r *Rung) UnmarshalYAML(value *yaml.Node) error {
	var level int
	if err := value.Decode(&level); err != nil {
		return fmt.Errorf("value.Decode(rung) > %w", err)
	}
	*r = NewRung(level)
	return nil
}
