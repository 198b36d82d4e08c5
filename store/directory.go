package store

import (
	"strings"
	"sync"

	"github.com/oseikofi/campusfeed/models"
)

// NormalizeUsername lowercases and trims a username. Every directory read
// and write goes through this so that lookups are case-insensitive while
// display casing stays on the record itself.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Directory is the in-memory identity directory: the source of truth for
// display name, avatar, and school for the lifetime of the process. It is
// shared between HTTP handlers and the hub loop, hence the lock.
type Directory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewDirectory creates an empty identity directory.
func NewDirectory() *Directory {
	return &Directory{users: make(map[string]models.User)}
}

// Put inserts or replaces the profile stored under the user's normalized
// username.
func (d *Directory) Put(user models.User) {
	key := NormalizeUsername(user.Username)
	d.mu.Lock()
	d.users[key] = user
	d.mu.Unlock()
}

// Lookup returns the profile for a username, if registered.
func (d *Directory) Lookup(username string) (models.User, bool) {
	key := NormalizeUsername(username)
	d.mu.RLock()
	user, ok := d.users[key]
	d.mu.RUnlock()
	return user, ok
}

// Exists reports whether a username is registered.
func (d *Directory) Exists(username string) bool {
	_, ok := d.Lookup(username)
	return ok
}

// UpdateAvatar points the user's profile at a new avatar URL and returns the
// previous URL so the caller can clean up the old file.
func (d *Directory) UpdateAvatar(username, avatarURL string) (string, error) {
	key := NormalizeUsername(username)
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[key]
	if !ok {
		return "", ErrUnknownIdentity
	}
	previous := user.Avatar
	user.Avatar = avatarURL
	d.users[key] = user
	return previous, nil
}

// Count returns the number of registered identities.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}
