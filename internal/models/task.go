package models

import (
	"fmt"

	"github.com/KirkDiggler/hideandseek/internal/catalog"
	"github.com/vmihailenco/msgpack/v5"
)

// TaskState is the request/confirm lifecycle shared by tasks and curses
type TaskState string

const (
	TaskStateRequested TaskState = "requested"
	TaskStateCompleted TaskState = "completed"
	TaskStateConfirmed TaskState = "confirmed"
)

// Valid reports whether s is one of the known states
func (s TaskState) Valid() bool {
	switch s {
	case TaskStateRequested, TaskStateCompleted, TaskStateConfirmed:
		return true
	}
	return false
}

// Task is one instance of a scored mini-game request
type Task struct {
	// Task is the catalog key, e.g. "radar50"
	Task string `msgpack:"task" json:"task"`

	State TaskState `msgpack:"state" json:"state"`

	// Result is a human readable outcome
	Result string `msgpack:"result,omitempty" json:"result,omitempty"`

	// Old marks records from a previous round
	Old bool `msgpack:"old,omitempty" json:"old,omitempty"`
}

// Clone returns a copy of the task
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Curse is one dice-funded debuff draw
type Curse struct {
	// Dices holds each die's face
	Dices []int `msgpack:"dices" json:"dices"`

	// Curse is the curse index, 1 through 24
	Curse int `msgpack:"curse" json:"curse"`

	State TaskState `msgpack:"state" json:"state"`

	Old bool `msgpack:"old,omitempty" json:"old,omitempty"`
}

// DecodeMsgpack accepts the curse index either as a number or as a string
// key such as "7" or "curse07"
func (c *Curse) DecodeMsgpack(dec *msgpack.Decoder) error {
	var wire struct {
		Dices []int     `msgpack:"dices"`
		Curse any       `msgpack:"curse"`
		State TaskState `msgpack:"state"`
		Old   bool      `msgpack:"old"`
	}
	if err := dec.Decode(&wire); err != nil {
		return err
	}

	index, err := curseIndex(wire.Curse)
	if err != nil {
		return err
	}

	*c = Curse{Dices: wire.Dices, Curse: index, State: wire.State, Old: wire.Old}
	return nil
}

func curseIndex(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case string:
		return catalog.ParseCurseKey(n)
	default:
		return 0, fmt.Errorf("curse must be a number or a key, got %T", v)
	}
}

// Clone returns a deep copy of the curse
func (c *Curse) Clone() *Curse {
	if c == nil {
		return nil
	}
	cc := *c
	cc.Dices = append([]int(nil), c.Dices...)
	return &cc
}
