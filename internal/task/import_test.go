package task

import (
	"strings"
	"testing"

	"taskdeck/internal/kv"
	"taskdeck/internal/model"
)

func TestImportManyReKeysRecords(t *testing.T) {
	s := NewStore(memScope{}, nil)
	s.Load()

	raw := `[{"id": 42, "userId": 99, "text": "x", "priority": "low", "category": "other", "completed": false, "createdAt": "2024-01-01T00:00:00.000Z"}]`
	n, err := s.ImportMany([]byte(raw), 7)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("imported %d, want 1", n)
	}

	got := s.All()
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	tk := got[0]
	if tk.ID == 42 {
		t.Fatal("imported id must be re-keyed, not carried over")
	}
	if tk.UserID != 7 {
		t.Fatalf("userId must be the importing user; got %d", tk.UserID)
	}
	if tk.Text != "x" || tk.Priority != model.PriorityLow || tk.Category != model.CategoryOther {
		t.Fatalf("fields must carry over verbatim; got %+v", tk)
	}
	if tk.Completed {
		t.Fatal("completed must carry over verbatim")
	}
	if tk.CreatedAt != "2024-01-01T00:00:00.000Z" {
		t.Fatalf("createdAt must carry over verbatim; got %q", tk.CreatedAt)
	}
}

func TestImportManyRejectsNonArray(t *testing.T) {
	for _, raw := range []string{`{"text": "x"}`, `"hello"`, `not json`} {
		scope := memScope{}
		s := NewStore(scope, nil)
		s.Load()
		if _, err := s.ImportMany([]byte("[]"), 7); err != nil {
			t.Fatal(err)
		}
		before := len(scope)

		n, err := s.ImportMany([]byte(raw), 7)
		if err == nil {
			t.Fatalf("ImportMany(%q): expected error", raw)
		}
		if n != 0 {
			t.Fatalf("ImportMany(%q): count %d on failure", raw, n)
		}
		if len(s.All()) != 0 || len(scope) != before {
			t.Fatalf("ImportMany(%q): failed import must not apply partially", raw)
		}
	}
}

func TestImportManyPreservesUnknownFields(t *testing.T) {
	scope := memScope{}
	s := NewStore(scope, nil)
	s.Load()

	raw := `[{"text": "x", "notes": "keep me", "tags": ["a", "b"], "nested": {"k": 1}}]`
	if _, err := s.ImportMany([]byte(raw), 3); err != nil {
		t.Fatal(err)
	}

	// Unknown fields survive persistence and show up verbatim in a reload
	// and in the export snapshot.
	out, err := reload(scope).ExportForUser(3)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"keep me"`, `"tags"`, `"nested"`} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("export lost %s:\n%s", want, out)
		}
	}
}

func TestImportManyToleratesLooseRecords(t *testing.T) {
	scope := memScope{}
	s := NewStore(scope, nil)
	s.Load()

	// Wrong-typed known fields keep their original values; the typed view of
	// them is zero.
	raw := `[{"text": 5, "completed": "yes"}, {}]`
	n, err := s.ImportMany([]byte(raw), 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}
	for _, tk := range s.All() {
		if tk.Text != "" || tk.Completed || tk.UserID != 3 {
			t.Fatalf("loose record should read as zero values: %+v", tk)
		}
	}

	persisted, _, err := scope.Get(kv.KeyTasks)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(persisted, `"text":5`) || !strings.Contains(persisted, `"completed":"yes"`) {
		t.Fatalf("wrong-typed values must persist verbatim:\n%s", persisted)
	}

	// Toggling supersedes the wrong-typed completed value.
	first := s.All()[0]
	if _, ok, err := s.Toggle(first.ID); err != nil || !ok {
		t.Fatalf("toggle: ok=%v err=%v", ok, err)
	}
	persisted, _, _ = scope.Get(kv.KeyTasks)
	if strings.Contains(persisted, `"completed":"yes"`) {
		t.Fatalf("toggle should replace the wrong-typed completed value:\n%s", persisted)
	}
}

func TestImportManyAssignsDistinctIDs(t *testing.T) {
	s := NewStore(memScope{}, nil)
	s.Load()

	records := make([]string, 50)
	for i := range records {
		records[i] = `{"text": "t"}`
	}
	raw := "[" + strings.Join(records, ",") + "]"
	if _, err := s.ImportMany([]byte(raw), 1); err != nil {
		t.Fatal(err)
	}

	seen := map[int64]bool{}
	for _, tk := range s.All() {
		if seen[tk.ID] {
			t.Fatalf("duplicate id %d in one import batch", tk.ID)
		}
		seen[tk.ID] = true
	}
}
