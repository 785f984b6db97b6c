// Package auth implements the demo's mock authentication: an in-memory user
// list and a reversible base64 token. It is deliberately not security-grade
// (no hashing, signing, or expiry) and exists only so the UI has a login flow
// to exercise.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUserExists reports a registration with an already-taken username or email.
var ErrUserExists = errors.New("username or email already exists")

// User is one account in the mock registry. The password never leaves the
// package.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	password string
}

// Registry holds the in-memory user list.
type Registry struct {
	mu    sync.Mutex
	users []User
}

// NewRegistry creates a registry pre-populated with the demo accounts
// (admin/admin and user/user123).
func NewRegistry() *Registry {
	return &Registry{
		users: []User{
			{ID: 1, Username: "admin", Email: "admin@ifcviewer.com", password: "admin"},
			{ID: 2, Username: "user", Email: "user@ifcviewer.com", password: "user123"},
		},
	}
}

// Authenticate checks a username/password pair and returns the matching user.
func (r *Registry) Authenticate(username, password string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username && u.password == password {
			return u, true
		}
	}
	return User{}, false
}

// Register adds a new account. Usernames and emails must be unique.
func (r *Registry) Register(username, email, password string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return User{}, ErrUserExists
		}
	}
	user := User{
		ID:       len(r.users) + 1,
		Username: username,
		Email:    email,
		password: password,
	}
	r.users = append(r.users, user)
	return user, nil
}

// Token issues an opaque session token for the user. It is plain base64, not a
// signed credential.
func Token(u User) string {
	raw := fmt.Sprintf("%d:%s:%d", u.ID, u.Username, time.Now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
