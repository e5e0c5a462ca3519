package task

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const eventsFileName = "events.jsonl"

// Event is one line of the append-only activity log. The log is a local
// audit trail only; nothing replays it.
type Event struct {
	ID     string    `json:"id"`
	TS     time.Time `json:"ts"`
	Type   string    `json:"type"`
	TaskID int64     `json:"taskId,omitempty"`
	UserID int64     `json:"userId"`
}

// EventLog appends mutation events to <Dir>/events.jsonl.
type EventLog struct {
	Dir string
}

func (l *EventLog) path() string {
	return filepath.Join(l.Dir, eventsFileName)
}

func (l *EventLog) Append(kind string, taskID, userID int64) error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return err
	}
	e := Event{
		ID:     uuid.NewString(),
		TS:     time.Now().UTC(),
		Type:   kind,
		TaskID: taskID,
		UserID: userID,
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(l.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// Read returns all logged events, oldest first. Unparseable lines are
// skipped rather than failing the read.
func (l *EventLog) Read() ([]Event, error) {
	b, err := os.ReadFile(l.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []Event
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == '\n' {
			line := b[start:i]
			start = i + 1
			if len(line) == 0 {
				continue
			}
			var e Event
			if err := json.Unmarshal(line, &e); err != nil {
				continue
			}
			out = append(out, e)
		}
	}
	return out, nil
}
