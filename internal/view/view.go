// Package view derives the rendered projection of the task collection:
// filter to the current user, apply status/category/search filters, then
// sort. It is pure; rendering of the resulting rows lives in the TUI and CLI.
package view

import (
	"sort"
	"strings"

	"taskdeck/internal/model"
)

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// CategoryAll disables the category filter.
const CategoryAll model.Category = "all"

// Query is the current filter state of the task view.
type Query struct {
	Status   StatusFilter
	Category model.Category
	Search   string
}

func DefaultQuery() Query {
	return Query{Status: StatusAll, Category: CategoryAll}
}

// Project filters tasks to userID, applies q, and sorts:
// incomplete before completed, then priority high<medium<low, then newest
// first. The sort is stable beyond those keys.
func Project(tasks []model.Task, userID int64, q Query) []model.Task {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var out []model.Task
	for _, t := range tasks {
		if t.UserID != userID {
			continue
		}
		switch q.Status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		if q.Category != "" && q.Category != CategoryAll && t.Category != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ra, rb := model.PriorityRank(a.Priority), model.PriorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		return a.CreatedTime().After(b.CreatedTime())
	})
	return out
}

// Stats summarizes one user's full task set (unaffected by filters).
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

func Summarize(tasks []model.Task, userID int64) Stats {
	var st Stats
	for _, t := range tasks {
		if t.UserID != userID {
			continue
		}
		st.Total++
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		// Round to the nearest percent.
		st.CompletionRate = (st.Completed*100 + st.Total/2) / st.Total
	}
	return st
}
