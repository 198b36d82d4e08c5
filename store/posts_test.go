package store

import (
	"errors"
	"testing"

	"github.com/oseikofi/campusfeed/models"
)

func makePost(id, sender, room string) models.Post {
	return models.Post{ID: id, Sender: sender, Room: room, Content: "hello", Replies: []models.Reply{}}
}

func TestPostsAppendPreservesOrder(t *testing.T) {
	s := NewPosts()
	s.Append(makePost("p1", "alice", "general"))
	s.Append(makePost("p2", "bob", "knust"))
	s.Append(makePost("p3", "alice", "general"))

	user := models.User{Username: "carol", School: "knust"}
	snapshot := s.SnapshotFor(user)
	if len(snapshot) != 3 {
		t.Fatalf("snapshot size = %d, want 3", len(snapshot))
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if snapshot[i].ID != want {
			t.Errorf("snapshot[%d] = %s, want %s", i, snapshot[i].ID, want)
		}
	}
}

func TestPostsSnapshotFiltersOtherSchools(t *testing.T) {
	s := NewPosts()
	s.Append(makePost("p1", "alice", "general"))
	s.Append(makePost("p2", "bob", "knust"))
	s.Append(makePost("p3", "carol", "ashesi university"))

	user := models.User{Username: "dan", School: "ashesi university"}
	snapshot := s.SnapshotFor(user)
	if len(snapshot) != 2 {
		t.Fatalf("snapshot size = %d, want 2", len(snapshot))
	}
	if snapshot[0].ID != "p1" || snapshot[1].ID != "p3" {
		t.Errorf("snapshot = [%s %s], want [p1 p3]", snapshot[0].ID, snapshot[1].ID)
	}
}

func TestPostsAppendReply(t *testing.T) {
	s := NewPosts()
	s.Append(makePost("p1", "alice", "general"))

	updated, err := s.AppendReply("p1", models.Reply{ID: "r1", Sender: "bob"})
	if err != nil {
		t.Fatalf("AppendReply failed: %v", err)
	}
	if len(updated.Replies) != 1 || updated.Replies[0].ID != "r1" {
		t.Errorf("replies = %+v, want single r1", updated.Replies)
	}

	if _, err := s.AppendReply("missing", models.Reply{ID: "r2"}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}

func TestPostsRemoveOwnershipCheck(t *testing.T) {
	s := NewPosts()
	s.Append(makePost("p1", "alice", "general"))

	if _, err := s.Remove("p1", "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if s.Len() != 1 {
		t.Fatal("post removed despite failed ownership check")
	}

	removed, err := s.Remove("p1", "alice")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.ID != "p1" {
		t.Errorf("removed id = %s, want p1", removed.ID)
	}
	if s.Len() != 0 {
		t.Error("post still present after removal")
	}

	if _, err := s.Remove("p1", "alice"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("second remove err = %v, want ErrPostNotFound", err)
	}
}

func TestPostsRemoveReturnsReplies(t *testing.T) {
	s := NewPosts()
	post := makePost("p1", "alice", "general")
	post.ImageURL = "/uploads/a.png"
	s.Append(post)
	if _, err := s.AppendReply("p1", models.Reply{ID: "r1", ImageURL: "/uploads/b.png"}); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Remove("p1", "alice")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	urls := removed.ImageURLs()
	if len(urls) != 2 {
		t.Fatalf("image urls = %v, want post image and reply image", urls)
	}
}

func TestPostsSnapshotIsACopy(t *testing.T) {
	s := NewPosts()
	s.Append(makePost("p1", "alice", "general"))

	snapshot := s.SnapshotFor(models.User{Username: "bob", School: "knust"})
	snapshot[0].Content = "mutated"

	stored, _ := s.FindByID("p1")
	if stored.Content != "hello" {
		t.Error("mutating a snapshot changed the stored post")
	}
}
