// Package accounts is the credential directory: a flat, append-only list of
// account records under the "accounts" key of the durable scope.
//
// This is a profile selector, not a security component: passwords are stored
// in plaintext and there is no update or delete.
package accounts

import (
	"encoding/json"
	"errors"
	"strings"

	"taskdeck/internal/kv"
	"taskdeck/internal/model"
)

var ErrEmailTaken = errors.New("account already exists for this email")

type Directory struct {
	scope kv.Scope
}

func NewDirectory(scope kv.Scope) *Directory {
	return &Directory{scope: scope}
}

// List returns all accounts. An absent or unparseable directory reads as
// empty; corruption is never surfaced.
func (d *Directory) List() ([]model.Account, error) {
	raw, ok, err := d.scope.Get(kv.KeyAccounts)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Account{}, nil
	}
	var accs []model.Account
	if err := json.Unmarshal([]byte(raw), &accs); err != nil {
		return []model.Account{}, nil
	}
	return accs, nil
}

// FindByEmail matches case-insensitively against the stored lowercased email.
func (d *Directory) FindByEmail(email string) (model.Account, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	accs, err := d.List()
	if err != nil {
		return model.Account{}, false, err
	}
	for _, a := range accs {
		if strings.ToLower(a.Email) == email {
			return a, true, nil
		}
	}
	return model.Account{}, false, nil
}

// Insert appends the account and persists the full list. The email is
// lowercased on the way in (it is the natural key); a duplicate is rejected.
func (d *Directory) Insert(acc model.Account) error {
	acc.Email = strings.ToLower(strings.TrimSpace(acc.Email))
	if _, exists, err := d.FindByEmail(acc.Email); err != nil {
		return err
	} else if exists {
		return ErrEmailTaken
	}
	accs, err := d.List()
	if err != nil {
		return err
	}
	accs = append(accs, acc)
	b, err := json.Marshal(accs)
	if err != nil {
		return err
	}
	return d.scope.Set(kv.KeyAccounts, string(b))
}
