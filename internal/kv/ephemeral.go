package kv

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const sessionFileName = "session.json"

// Ephemeral is the session-scoped store: a flat JSON object in the runtime
// dir. It is re-read on every access so concurrent invocations observe each
// other's writes (last writer wins, as with the durable scope).
type Ephemeral struct {
	Dir string
}

func (e Ephemeral) path() string {
	return filepath.Join(e.Dir, sessionFileName)
}

func (e Ephemeral) load() (map[string]string, error) {
	b, err := os.ReadFile(e.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		// A corrupt session file means no session; treat as empty.
		return map[string]string{}, nil
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (e Ephemeral) save(m map[string]string) error {
	if err := os.MkdirAll(e.Dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(e.path(), b, 0o600)
}

func (e Ephemeral) Get(key string) (string, bool, error) {
	m, err := e.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (e Ephemeral) Set(key, value string) error {
	m, err := e.load()
	if err != nil {
		return err
	}
	m[key] = value
	return e.save(m)
}

func (e Ephemeral) Delete(key string) error {
	m, err := e.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return e.save(m)
}
