// Package kv provides the key-value persistence layer. Two disjoint scopes
// exist: the durable scope (a SQLite file in the data dir, survives until
// explicitly cleared) and the ephemeral scope (a JSON file in the OS runtime
// dir, cleared when the login session ends).
package kv

import (
	"os"
	"path/filepath"
	"strings"
)

// Persisted keys. authToken/userName/userId exist in both scopes,
// keepSignedIn/tasks_v2/accounts in the durable scope only.
const (
	KeyAuthToken    = "authToken"
	KeyUserName     = "userName"
	KeyUserID       = "userId"
	KeyKeepSignedIn = "keepSignedIn"
	KeyTasks        = "tasks_v2"
	KeyAccounts     = "accounts"
)

// Scope is a flat key-value store. Writes are immediately visible to
// subsequent reads in the same scope; there are no transactional guarantees
// across keys and no protection against concurrent processes (last writer
// wins).
type Scope interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// DataDir resolves the durable data directory:
// TASKDECK_DIR > ~/.taskdeck.
func DataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TASKDECK_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck"), nil
}

// RuntimeDir resolves the per-login-session directory backing the ephemeral
// scope: TASKDECK_RUNTIME_DIR (tests) > $XDG_RUNTIME_DIR/taskdeck >
// os.TempDir()/taskdeck. The OS clears these at session end / reboot, which
// is what makes the scope ephemeral.
func RuntimeDir() string {
	if v := strings.TrimSpace(os.Getenv("TASKDECK_RUNTIME_DIR")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); v != "" {
		return filepath.Join(v, "taskdeck")
	}
	return filepath.Join(os.TempDir(), "taskdeck")
}
