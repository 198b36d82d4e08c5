package realtime

import (
	"sync"

	"github.com/oseikofi/campusfeed/models"
	"github.com/oseikofi/campusfeed/store"
)

// Registry is the bidirectional connection/identity mapping. For any
// username at most one connection id is current; binding a newer connection
// evicts the stale reverse mapping without force-closing the old connection.
type Registry struct {
	mu        sync.RWMutex
	directory *store.Directory
	byConn    map[string]string // connection id -> username
	byUser    map[string]string // username -> current connection id
}

// NewRegistry creates a registry backed by the given identity directory.
func NewRegistry(directory *store.Directory) *Registry {
	return &Registry{
		directory: directory,
		byConn:    make(map[string]string),
		byUser:    make(map[string]string),
	}
}

// Bind associates a connection with a registered identity. It fails with
// store.ErrUnknownIdentity when the username is not in the directory. On
// success any previous connection bound to this username loses its reverse
// mapping and becomes stale.
func (r *Registry) Bind(connID, username string) (models.User, error) {
	user, ok := r.directory.Lookup(username)
	if !ok {
		return models.User{}, store.ErrUnknownIdentity
	}
	key := store.NormalizeUsername(username)

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, bound := r.byUser[key]; bound && old != connID {
		delete(r.byConn, old)
	}
	r.byConn[connID] = key
	r.byUser[key] = connID
	return user, nil
}

// Resolve returns the username bound to a connection. Absence means the
// connection never authenticated or its binding was evicted.
func (r *Registry) Resolve(connID string) (string, bool) {
	r.mu.RLock()
	username, ok := r.byConn[connID]
	r.mu.RUnlock()
	return username, ok
}

// ConnFor returns the current connection id for a username.
func (r *Registry) ConnFor(username string) (string, bool) {
	r.mu.RLock()
	connID, ok := r.byUser[store.NormalizeUsername(username)]
	r.mu.RUnlock()
	return connID, ok
}

// Unbind removes a connection's forward mapping unconditionally, but only
// drops the username's reverse mapping when it still points at this exact
// connection. A stale disconnect must not evict a newer binding.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, ok := r.byConn[connID]
	if !ok {
		return
	}
	delete(r.byConn, connID)
	if current, bound := r.byUser[username]; bound && current == connID {
		delete(r.byUser, username)
	}
}
