package kv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEphemeralRoundTrip(t *testing.T) {
	e := Ephemeral{Dir: t.TempDir()}

	if _, ok, err := e.Get("authToken"); err != nil || ok {
		t.Fatalf("expected absent key; ok=%v err=%v", ok, err)
	}
	if err := e.Set("authToken", "token_1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := e.Get("authToken")
	if err != nil || !ok || v != "token_1" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := e.Set("authToken", "token_2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := e.Get("authToken"); v != "token_2" {
		t.Fatalf("expected overwrite visible; got %q", v)
	}
	if err := e.Delete("authToken"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := e.Get("authToken"); ok {
		t.Fatalf("expected key gone after delete")
	}
	// Deleting an absent key is a no-op.
	if err := e.Delete("authToken"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestEphemeralCorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	e := Ephemeral{Dir: dir}
	if _, ok, err := e.Get("userId"); err != nil || ok {
		t.Fatalf("corrupt file should read as empty; ok=%v err=%v", ok, err)
	}
}

func TestDurableRoundTrip(t *testing.T) {
	d := Durable{Dir: t.TempDir()}

	if _, ok, err := d.Get("tasks_v2"); err != nil || ok {
		t.Fatalf("expected absent key; ok=%v err=%v", ok, err)
	}
	if err := d.Set("tasks_v2", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := d.Get("tasks_v2")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := d.Set("tasks_v2", `[{"id":1}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := d.Get("tasks_v2"); v != `[{"id":1}]` {
		t.Fatalf("expected overwrite visible; got %q", v)
	}
	if err := d.Delete("tasks_v2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := d.Get("tasks_v2"); ok {
		t.Fatalf("expected key gone after delete")
	}
}

func TestRuntimeDirOverride(t *testing.T) {
	t.Setenv("TASKDECK_RUNTIME_DIR", "/tmp/td-test")
	if got := RuntimeDir(); got != "/tmp/td-test" {
		t.Fatalf("expected override; got %q", got)
	}
}

func TestDataDirOverride(t *testing.T) {
	t.Setenv("TASKDECK_DIR", "/tmp/td-data")
	got, err := DataDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/td-data" {
		t.Fatalf("expected override; got %q", got)
	}
}
