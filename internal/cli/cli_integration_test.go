package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func TestCLISmoke(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_RUNTIME_DIR", t.TempDir())

	mustRun := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: taskdeck %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		if _, ok := env["data"]; !ok {
			t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
		}
		return env
	}

	// Account + durable session.
	signedUp := mustRun("--dir", dir, "signup", "--name", "Ada", "--email", "ada@example.com", "--password", "secret")
	if name, _ := signedUp["data"].(map[string]any)["name"].(string); name != "Ada" {
		t.Fatalf("expected signup to return the account; got: %#v", signedUp["data"])
	}

	who := mustRun("--dir", dir, "whoami")
	sess, _ := who["data"].(map[string]any)
	if sess["userName"] != "Ada" || sess["scope"] != "durable" {
		t.Fatalf("expected a durable Ada session; got: %#v", who["data"])
	}

	// Tasks.
	added := mustRun("--dir", dir, "add", "Write", "the", "report", "--priority", "high", "--category", "work")
	tk, _ := added["data"].(map[string]any)
	idNum, ok := tk["id"].(float64)
	if !ok || tk["text"] != "Write the report" {
		t.Fatalf("expected add to return the new task; got: %#v", added["data"])
	}
	id := strconv.FormatInt(int64(idNum), 10)

	mustRun("--dir", dir, "add", "Buy milk", "--category", "shopping")

	listTasks := func(args ...string) []any {
		t.Helper()
		env := mustRun(append([]string{"--dir", dir, "list"}, args...)...)
		xs, ok := env["data"].(map[string]any)["tasks"].([]any)
		if !ok {
			t.Fatalf("expected a tasks list; got: %#v", env["data"])
		}
		return xs
	}

	if xs := listTasks(); len(xs) != 2 {
		t.Fatalf("expected 2 tasks; got: %#v", xs)
	}
	if xs := listTasks("--category", "work"); len(xs) != 1 {
		t.Fatalf("expected 1 work task; got: %#v", xs)
	}

	toggled := mustRun("--dir", dir, "toggle", id)
	if done, _ := toggled["data"].(map[string]any)["completed"].(bool); !done {
		t.Fatalf("expected toggle to complete the task; got: %#v", toggled["data"])
	}
	if xs := listTasks("--status", "active"); len(xs) != 1 {
		t.Fatalf("expected 1 active task; got: %#v", xs)
	}

	st := mustRun("--dir", dir, "stats")
	stats, _ := st["data"].(map[string]any)
	if stats["total"] != float64(2) || stats["completed"] != float64(1) || stats["completionRate"] != float64(50) {
		t.Fatalf("unexpected stats: %#v", st["data"])
	}

	// Export, then import the snapshot back (re-keyed copies).
	outDir := t.TempDir()
	exported := mustRun("--dir", dir, "export", "--out", outDir)
	file, _ := exported["data"].(map[string]any)["file"].(string)
	if file == "" {
		t.Fatalf("expected export to name the written file; got: %#v", exported["data"])
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if filepath.Dir(file) != outDir {
		t.Fatalf("export landed in %q, want %q", filepath.Dir(file), outDir)
	}

	imported := mustRun("--dir", dir, "import", file)
	if n, _ := imported["data"].(map[string]any)["imported"].(float64); n != 2 {
		t.Fatalf("expected 2 imported tasks; got: %#v", imported["data"])
	}
	if xs := listTasks(); len(xs) != 4 {
		t.Fatalf("expected 4 tasks after import; got: %#v", xs)
	}

	// Destructive commands take --yes in scripts.
	mustRun("--dir", dir, "delete", id, "--yes")
	if xs := listTasks(); len(xs) != 3 {
		t.Fatalf("expected 3 tasks after delete; got: %#v", xs)
	}

	mustRun("--dir", dir, "logout", "--yes")
	if _, _, err := runCLI(t, []string{"--dir", dir, "whoami"}); err == nil {
		t.Fatal("expected whoami to fail after logout")
	}

	// Tasks survive logout and the next login sees them.
	mustRun("--dir", dir, "login", "--email", "ADA@example.com", "--password", "secret")
	if xs := listTasks(); len(xs) != 3 {
		t.Fatalf("expected tasks to survive logout; got: %#v", xs)
	}
}

func TestCLIRequiresSession(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_RUNTIME_DIR", t.TempDir())

	for _, args := range [][]string{
		{"--dir", dir, "add", "orphan task"},
		{"--dir", dir, "list"},
		{"--dir", dir, "stats"},
		{"--dir", dir, "whoami"},
	} {
		if _, _, err := runCLI(t, args); err == nil {
			t.Fatalf("taskdeck %v: expected an error without a session", args)
		}
	}
}

func TestCLIRejectsBadFilterValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_RUNTIME_DIR", t.TempDir())
	mustSignup(t, dir)

	for _, args := range [][]string{
		{"--dir", dir, "list", "--status", "nope"},
		{"--dir", dir, "list", "--category", "nope"},
		{"--dir", dir, "add", "x", "--priority", "urgent"},
		{"--dir", dir, "add", "x", "--category", "nope"},
	} {
		if _, _, err := runCLI(t, args); err == nil {
			t.Fatalf("taskdeck %v: expected a validation error", args)
		}
	}
}

func TestCLIDuplicateSignup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_RUNTIME_DIR", t.TempDir())
	mustSignup(t, dir)

	_, _, err := runCLI(t, []string{"--dir", dir, "signup", "--name", "Ada2", "--email", "Ada@Example.com", "--password", "other"})
	if err == nil {
		t.Fatal("expected duplicate signup to fail regardless of email case")
	}
}

func mustSignup(t *testing.T, dir string) {
	t.Helper()
	_, stderr, err := runCLI(t, []string{"--dir", dir, "signup", "--name", "Ada", "--email", "ada@example.com", "--password", "secret"})
	if err != nil {
		t.Fatalf("signup failed: %v\n%s", err, stderr)
	}
}
