// Package auth orchestrates signup and login against the credential
// directory and the session manager.
package auth

import (
	"errors"
	"strings"
	"time"

	"taskdeck/internal/accounts"
	"taskdeck/internal/model"
	"taskdeck/internal/session"
)

var (
	ErrMissingFields  = errors.New("please fill all fields")
	ErrBadCredentials = errors.New("no account found; please sign up")
)

// Signup creates an account and signs it in. New signups default to
// remember=true at the call sites, matching the checked-by-default box of
// the signup form this replaces.
func Signup(dir *accounts.Directory, sess *session.Manager, name, email, password string, remember bool) (model.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return model.Account{}, ErrMissingFields
	}

	acc := model.Account{
		ID:       time.Now().UnixMilli(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := dir.Insert(acc); err != nil {
		return model.Account{}, err
	}
	if err := sess.Establish(acc.ID, acc.Name, remember); err != nil {
		return model.Account{}, err
	}
	return acc, nil
}

// Login matches email (case-insensitive) + password and establishes the
// session in the scope selected by remember.
func Login(dir *accounts.Directory, sess *session.Manager, email, password string, remember bool) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.Account{}, ErrMissingFields
	}

	acc, ok, err := dir.FindByEmail(email)
	if err != nil {
		return model.Account{}, err
	}
	if !ok || acc.Password != password {
		return model.Account{}, ErrBadCredentials
	}
	if err := sess.Establish(acc.ID, acc.Name, remember); err != nil {
		return model.Account{}, err
	}
	return acc, nil
}
