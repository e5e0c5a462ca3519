// Package task owns the in-memory task collection and its serialization to
// the durable scope. The collection spans all users and survives logout;
// user-facing reads filter by user id in internal/view.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"taskdeck/internal/kv"
	"taskdeck/internal/model"
)

var (
	ErrEmptyText = errors.New("please enter a task")
	ErrNoTasks   = errors.New("no tasks to export")
)

// isoMillis mirrors the stored timestamp shape (ISO-8601 with milliseconds,
// UTC). time.RFC3339 parses it back.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type Store struct {
	scope  kv.Scope
	events *EventLog

	tasks []model.Task
}

// NewStore creates a store over the durable scope. events may be nil;
// activity logging is best-effort and never blocks a mutation.
func NewStore(scope kv.Scope, events *EventLog) *Store {
	return &Store{scope: scope, events: events}
}

// Load deserializes the full collection. Absent or corrupt data initializes
// to an empty collection; corruption is recovered silently, never surfaced.
func (s *Store) Load() {
	s.tasks = nil
	raw, ok, err := s.scope.Get(kv.KeyTasks)
	if err != nil || !ok || strings.TrimSpace(raw) == "" {
		return
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return
	}
	s.tasks = tasks
}

// persist writes the full collection back after every mutation. No batching.
func (s *Store) persist() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.scope.Set(kv.KeyTasks, string(b))
}

// All returns a copy of the full collection (every user).
func (s *Store) All() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ForUser returns a copy of one user's tasks in stored order.
func (s *Store) ForUser(userID int64) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Find(id int64) (model.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Add appends a new task. Text is trimmed and HTML-escaped at creation; an
// empty result is a validation failure and leaves the collection unchanged.
func (s *Store) Add(userID int64, text string, priority model.Priority, category model.Category) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	now := time.Now()
	t := model.Task{
		ID:        s.freshID(now),
		UserID:    userID,
		Text:      html.EscapeString(text),
		Priority:  priority,
		Category:  category,
		Completed: false,
		CreatedAt: now.UTC().Format(isoMillis),
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		return model.Task{}, err
	}
	s.logEvent("task.add", t.ID, userID)
	return t, nil
}

// Toggle flips completion on the matching task; unknown ids are a no-op.
func (s *Store) Toggle(id int64) (model.Task, bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			// A wrong-typed imported completed value is superseded by the
			// toggle.
			delete(s.tasks[i].Extra, "completed")
			if err := s.persist(); err != nil {
				return model.Task{}, false, err
			}
			s.logEvent("task.toggle", id, s.tasks[i].UserID)
			return s.tasks[i], true, nil
		}
	}
	return model.Task{}, false, nil
}

// Delete removes the matching task. Confirmation is the caller's concern
// (TUI modal / CLI prompt); the store just mutates.
func (s *Store) Delete(id int64) (bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			userID := s.tasks[i].UserID
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if err := s.persist(); err != nil {
				return false, err
			}
			s.logEvent("task.delete", id, userID)
			return true, nil
		}
	}
	return false, nil
}

// ExportForUser produces a pretty-printed snapshot of one user's tasks.
// Zero tasks is a user-visible failure, not an empty file.
func (s *Store) ExportForUser(userID int64) ([]byte, error) {
	tasks := s.ForUser(userID)
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	s.logEvent("task.export", 0, userID)
	return b, nil
}

// ExportFileName follows the tasks_<userName>_<YYYY-MM-DD>.json pattern.
func ExportFileName(userName string, now time.Time) string {
	return fmt.Sprintf("tasks_%s_%s.json", userName, now.Format("2006-01-02"))
}

// freshID derives an id from the creation time, bumped past any existing id
// so back-to-back adds within one millisecond stay distinct. Import ids get a
// secondary random component instead (see import.go).
func (s *Store) freshID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func (s *Store) logEvent(kind string, taskID, userID int64) {
	if s.events == nil {
		return
	}
	_ = s.events.Append(kind, taskID, userID)
}
