package realtime

import (
	"errors"
	"testing"

	"github.com/oseikofi/campusfeed/models"
	"github.com/oseikofi/campusfeed/store"
)

func newTestRegistry(usernames ...string) *Registry {
	d := store.NewDirectory()
	for _, u := range usernames {
		d.Put(models.User{Username: u, DisplayName: u, School: "knust"})
	}
	return NewRegistry(d)
}

func TestRegistryBindUnknownIdentity(t *testing.T) {
	r := newTestRegistry()
	if _, err := r.Bind("c1", "ghost"); !errors.Is(err, store.ErrUnknownIdentity) {
		t.Errorf("err = %v, want ErrUnknownIdentity", err)
	}
	if _, ok := r.Resolve("c1"); ok {
		t.Error("failed bind left a forward mapping")
	}
}

func TestRegistryRebindEvictsStaleConnection(t *testing.T) {
	r := newTestRegistry("kofi")

	if _, err := r.Bind("c1", "kofi"); err != nil {
		t.Fatalf("bind c1: %v", err)
	}
	if _, err := r.Bind("c2", "kofi"); err != nil {
		t.Fatalf("bind c2: %v", err)
	}

	if username, ok := r.Resolve("c2"); !ok || username != "kofi" {
		t.Errorf("Resolve(c2) = %q %v, want kofi true", username, ok)
	}
	if _, ok := r.Resolve("c1"); ok {
		t.Error("stale connection c1 still resolves after rebind")
	}
	if conn, _ := r.ConnFor("kofi"); conn != "c2" {
		t.Errorf("ConnFor(kofi) = %s, want c2", conn)
	}
}

func TestRegistryStaleDisconnectKeepsNewerBinding(t *testing.T) {
	r := newTestRegistry("kofi")
	if _, err := r.Bind("c1", "kofi"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Bind("c2", "kofi"); err != nil {
		t.Fatal(err)
	}

	// The old connection's disconnect arrives after the reconnect.
	r.Unbind("c1")

	if conn, ok := r.ConnFor("kofi"); !ok || conn != "c2" {
		t.Errorf("ConnFor(kofi) = %q %v after stale disconnect, want c2 true", conn, ok)
	}
	if username, ok := r.Resolve("c2"); !ok || username != "kofi" {
		t.Errorf("Resolve(c2) = %q %v, want kofi true", username, ok)
	}
}

func TestRegistryUnbindCurrentConnection(t *testing.T) {
	r := newTestRegistry("kofi")
	if _, err := r.Bind("c1", "kofi"); err != nil {
		t.Fatal(err)
	}

	r.Unbind("c1")

	if _, ok := r.Resolve("c1"); ok {
		t.Error("c1 still resolves after unbind")
	}
	if _, ok := r.ConnFor("kofi"); ok {
		t.Error("kofi still has a connection after unbind")
	}
}

func TestRegistryBindNormalizesUsername(t *testing.T) {
	r := newTestRegistry("kofi")
	user, err := r.Bind("c1", "  KoFi ")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if user.Username != "kofi" {
		t.Errorf("bound user = %q, want kofi", user.Username)
	}
	if username, _ := r.Resolve("c1"); username != "kofi" {
		t.Errorf("Resolve(c1) = %q, want kofi", username)
	}
}
