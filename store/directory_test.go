package store

import (
	"testing"

	"github.com/oseikofi/campusfeed/models"
)

func TestDirectoryNormalizesKeys(t *testing.T) {
	d := NewDirectory()
	d.Put(models.User{Username: "kwame_01", DisplayName: "Kwame_01", School: "knust"})

	for _, lookup := range []string{"kwame_01", "KWAME_01", "  Kwame_01  "} {
		user, ok := d.Lookup(lookup)
		if !ok {
			t.Fatalf("Lookup(%q) failed", lookup)
		}
		if user.DisplayName != "Kwame_01" {
			t.Errorf("Lookup(%q) display name = %q, want Kwame_01", lookup, user.DisplayName)
		}
	}

	if d.Exists("someone_else") {
		t.Error("Exists returned true for unregistered username")
	}
}

func TestDirectoryUpdateAvatar(t *testing.T) {
	d := NewDirectory()
	d.Put(models.User{Username: "ama", DisplayName: "Ama", School: "upsa", Avatar: "/uploads/old.png"})

	previous, err := d.UpdateAvatar("AMA", "/uploads/new.png")
	if err != nil {
		t.Fatalf("UpdateAvatar failed: %v", err)
	}
	if previous != "/uploads/old.png" {
		t.Errorf("previous avatar = %q, want /uploads/old.png", previous)
	}

	user, _ := d.Lookup("ama")
	if user.Avatar != "/uploads/new.png" {
		t.Errorf("avatar = %q, want /uploads/new.png", user.Avatar)
	}
}

func TestDirectoryUpdateAvatarUnknownUser(t *testing.T) {
	d := NewDirectory()
	if _, err := d.UpdateAvatar("ghost", "/uploads/x.png"); err != ErrUnknownIdentity {
		t.Errorf("err = %v, want ErrUnknownIdentity", err)
	}
}
