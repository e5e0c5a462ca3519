package model

import (
	"encoding/json"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityRank orders priorities for sorting: high before medium before low.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		// Unknown priorities (e.g. from imported records) sort last.
		return 3
	}
}

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther}
}

func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// CategoryIcon returns the badge glyph shown next to the category label.
func CategoryIcon(c Category) string {
	switch c {
	case CategoryWork:
		return "💼"
	case CategoryPersonal:
		return "🏠"
	case CategoryShopping:
		return "🛒"
	case CategoryHealth:
		return "💪"
	default:
		return "📌"
	}
}

// Task is a single to-do item. The full collection (across all users) is
// persisted under one key; every user-facing read filters by UserID.
//
// CreatedAt is kept as the stored ISO-8601 string rather than a time.Time so
// imported records round-trip without normalization. Extra carries fields of
// imported records that sit outside this schema (plus any known field whose
// value was not the expected type); they persist and export verbatim but are
// never interpreted.
type Task struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"userId"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"createdAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts any JSON object as a task. Known fields of the wrong
// type, and fields outside the schema, land in Extra untouched instead of
// failing the record.
func (t *Task) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task{}
	for k, v := range raw {
		var err error
		switch k {
		case "id":
			err = json.Unmarshal(v, &t.ID)
		case "userId":
			err = json.Unmarshal(v, &t.UserID)
		case "text":
			err = json.Unmarshal(v, &t.Text)
		case "priority":
			err = json.Unmarshal(v, &t.Priority)
		case "category":
			err = json.Unmarshal(v, &t.Category)
		case "completed":
			err = json.Unmarshal(v, &t.Completed)
		case "createdAt":
			err = json.Unmarshal(v, &t.CreatedAt)
		default:
			t.setExtra(k, v)
			continue
		}
		if err != nil {
			t.setExtra(k, v)
		}
	}
	return nil
}

// MarshalJSON writes the typed fields plus every Extra field. An Extra entry
// under a known key (a wrong-typed import) wins over the zero typed value it
// displaced.
func (t Task) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+7)
	out["id"] = t.ID
	out["userId"] = t.UserID
	out["text"] = t.Text
	out["priority"] = t.Priority
	out["category"] = t.Category
	out["completed"] = t.Completed
	out["createdAt"] = t.CreatedAt
	for k, v := range t.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

func (t *Task) setExtra(k string, v json.RawMessage) {
	if t.Extra == nil {
		t.Extra = map[string]json.RawMessage{}
	}
	t.Extra[k] = append(json.RawMessage(nil), v...)
}

// CreatedTime parses CreatedAt; malformed timestamps yield the zero time,
// which sorts last among a user's tasks.
func (t Task) CreatedTime() time.Time {
	ts, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Account is a locally stored profile record. Passwords are plaintext: these
// are named profile selectors, not credentials.
type Account struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionScope string

const (
	ScopeDurable   SessionScope = "durable"
	ScopeEphemeral SessionScope = "ephemeral"
)

// Session is the current signed-in identity, derived from whichever storage
// scope holds a complete token + user id.
type Session struct {
	UserID   int64
	UserName string
	Scope    SessionScope
}
