package task

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"taskdeck/internal/model"
)

// ImportMany appends every record from raw (a JSON array of task-like
// objects) to the collection. Only the fields the system owns are re-keyed:
// each record gets a fresh id and the importing user's id. Everything else,
// including fields outside the task schema, is carried verbatim (see
// model.Task.UnmarshalJSON). It fails as a whole only when the input is not
// parseable as an array of objects; no partial apply.
func (s *Store) ImportMany(raw []byte, userID int64) (int, error) {
	var records []model.Task
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, fmt.Errorf("import: input is not a JSON array of tasks: %w", err)
	}

	now := time.Now()
	seen := map[int64]bool{}
	for _, t := range s.tasks {
		seen[t.ID] = true
	}

	for i := range records {
		records[i].ID = importID(now, seen)
		records[i].UserID = userID
		// Wrong-typed originals of the re-keyed fields would otherwise
		// survive in Extra.
		delete(records[i].Extra, "id")
		delete(records[i].Extra, "userId")
		seen[records[i].ID] = true
		s.tasks = append(s.tasks, records[i])
	}

	if err := s.persist(); err != nil {
		return 0, err
	}
	s.logEvent("task.import", 0, userID)
	return len(records), nil
}

// importID combines the import time with a random component so many records
// created in the same instant still get distinct ids.
func importID(now time.Time, seen map[int64]bool) int64 {
	base := now.UnixMilli()
	for {
		id := base + rand.Int63n(1_000_000)
		if !seen[id] {
			return id
		}
	}
}
