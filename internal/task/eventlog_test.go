package task

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEventLogAppendAndRead(t *testing.T) {
	log := &EventLog{Dir: t.TempDir()}

	if err := log.Append("task.add", 1, 7); err != nil {
		t.Fatal(err)
	}
	if err := log.Append("task.delete", 1, 7); err != nil {
		t.Fatal(err)
	}

	events, err := log.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != "task.add" || events[1].Type != "task.delete" {
		t.Fatalf("events out of order: %+v", events)
	}
	if events[0].ID == "" || events[0].ID == events[1].ID {
		t.Fatal("events must carry distinct ids")
	}
	if events[0].UserID != 7 {
		t.Fatalf("userId lost: %+v", events[0])
	}
}

func TestEventLogReadSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	log := &EventLog{Dir: dir}
	if err := log.Append("task.add", 1, 1); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(filepath.Join(dir, eventsFileName), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{garbage\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := log.Append("task.toggle", 1, 1); err != nil {
		t.Fatal(err)
	}

	events, err := log.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 with garbage skipped", len(events))
	}
}

func TestEventLogReadMissingFile(t *testing.T) {
	log := &EventLog{Dir: t.TempDir()}
	events, err := log.Read()
	if err != nil {
		t.Fatal(err)
	}
	if events != nil {
		t.Fatalf("expected no events, got %+v", events)
	}
}
