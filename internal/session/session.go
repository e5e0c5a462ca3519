// Package session manages the current signed-in identity across the two
// storage scopes. Exactly one scope holds identity state at a time:
// "keep signed in" writes to the durable scope and clears the ephemeral one,
// and vice versa.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"taskdeck/internal/kv"
	"taskdeck/internal/model"
)

type Manager struct {
	Durable   kv.Scope
	Ephemeral kv.Scope
}

func NewManager(durable, ephemeral kv.Scope) *Manager {
	return &Manager{Durable: durable, Ephemeral: ephemeral}
}

// Token derives the session token for a user id. It is deliberately a
// trivially derived string, not a credential (hardening is a non-goal).
func Token(userID int64) string {
	return fmt.Sprintf("token_%d", userID)
}

var identityKeys = []string{kv.KeyAuthToken, kv.KeyUserName, kv.KeyUserID}

// Establish writes the identity to the scope selected by remember and clears
// the other scope so the two can never disagree.
func (m *Manager) Establish(userID int64, userName string, remember bool) error {
	write, clear := m.Ephemeral, m.Durable
	if remember {
		write, clear = m.Durable, m.Ephemeral
	}

	for _, k := range identityKeys {
		if err := clear.Delete(k); err != nil {
			return err
		}
	}
	if !remember {
		// keepSignedIn is a durable-only presence marker.
		if err := m.Durable.Delete(kv.KeyKeepSignedIn); err != nil {
			return err
		}
	}

	if err := write.Set(kv.KeyAuthToken, Token(userID)); err != nil {
		return err
	}
	if err := write.Set(kv.KeyUserName, userName); err != nil {
		return err
	}
	if err := write.Set(kv.KeyUserID, strconv.FormatInt(userID, 10)); err != nil {
		return err
	}
	if remember {
		if err := m.Durable.Set(kv.KeyKeepSignedIn, "1"); err != nil {
			return err
		}
	}
	return nil
}

// Current reads the durable scope first and falls back to the ephemeral
// scope. A scope only counts when it holds a token and a parseable user id.
func (m *Manager) Current() (model.Session, bool) {
	if s, ok := readScope(m.Durable, model.ScopeDurable); ok {
		return s, true
	}
	return readScope(m.Ephemeral, model.ScopeEphemeral)
}

// Clear removes identity state from both scopes. Task data is untouched:
// logging out never deletes tasks.
func (m *Manager) Clear() error {
	for _, k := range identityKeys {
		if err := m.Durable.Delete(k); err != nil {
			return err
		}
		if err := m.Ephemeral.Delete(k); err != nil {
			return err
		}
	}
	return m.Durable.Delete(kv.KeyKeepSignedIn)
}

func readScope(scope kv.Scope, kind model.SessionScope) (model.Session, bool) {
	token, ok, err := scope.Get(kv.KeyAuthToken)
	if err != nil || !ok || strings.TrimSpace(token) == "" {
		return model.Session{}, false
	}
	rawID, ok, err := scope.Get(kv.KeyUserID)
	if err != nil || !ok {
		return model.Session{}, false
	}
	userID, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return model.Session{}, false
	}
	name, _, _ := scope.Get(kv.KeyUserName)
	return model.Session{UserID: userID, UserName: name, Scope: kind}, true
}
