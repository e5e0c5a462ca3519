package accounts

import (
	"errors"
	"testing"

	"taskdeck/internal/kv"
	"taskdeck/internal/model"
)

type memScope map[string]string

func (m memScope) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memScope) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memScope) Delete(key string) error {
	delete(m, key)
	return nil
}

func TestInsertAndList(t *testing.T) {
	d := NewDirectory(memScope{})

	if err := d.Insert(model.Account{ID: 1, Name: "Ada", Email: "Ada@Example.com", Password: "pw"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	accs, err := d.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(accs) != 1 {
		t.Fatalf("expected 1 account; got %d", len(accs))
	}
	// Email is lowercased on the way in (it is the natural key).
	if accs[0].Email != "ada@example.com" {
		t.Fatalf("expected lowercased email; got %q", accs[0].Email)
	}
}

func TestInsertDuplicateEmailCaseInsensitive(t *testing.T) {
	d := NewDirectory(memScope{})

	if err := d.Insert(model.Account{ID: 1, Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatal(err)
	}
	err := d.Insert(model.Account{ID: 2, Name: "Imposter", Email: "ADA@example.COM"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken; got %v", err)
	}
	accs, _ := d.List()
	if len(accs) != 1 {
		t.Fatalf("duplicate signup must not append; got %d accounts", len(accs))
	}
}

func TestFindByEmail(t *testing.T) {
	d := NewDirectory(memScope{})
	if err := d.Insert(model.Account{ID: 7, Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		in   string
		want bool
	}{
		{"ada@example.com", true},
		{"ADA@EXAMPLE.COM", true},
		{"  ada@example.com  ", true},
		{"nobody@example.com", false},
	}
	for _, tc := range cases {
		_, ok, err := d.FindByEmail(tc.in)
		if err != nil {
			t.Fatalf("FindByEmail(%q): %v", tc.in, err)
		}
		if ok != tc.want {
			t.Fatalf("FindByEmail(%q): expected %v, got %v", tc.in, tc.want, ok)
		}
	}
}

func TestCorruptDirectoryReadsEmpty(t *testing.T) {
	scope := memScope{kv.KeyAccounts: "{not json"}
	d := NewDirectory(scope)

	accs, err := d.List()
	if err != nil {
		t.Fatalf("corruption must not surface: %v", err)
	}
	if len(accs) != 0 {
		t.Fatalf("expected empty list; got %d", len(accs))
	}
}
